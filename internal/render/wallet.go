package render

import (
	"civicfund-go/internal/model"
)

type ContributionRow struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

type Wallet struct {
	Address       string            `json:"address"`
	Balance       string            `json:"balance"`
	TotalGiven    string            `json:"totalGiven"`
	ProjectCount  int               `json:"projectCount"`
	Contributions []ContributionRow `json:"contributions"`
	HasActivity   bool              `json:"hasActivity"`
}

// WalletView renders a wallet with its contributions, newest first.
// Contributions to projects missing from projects keep their raw ID.
func WalletView(w model.Wallet, contributions []model.Contribution, projects []model.Project) Wallet {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	rows := make([]ContributionRow, 0, len(contributions))
	distinct := map[string]struct{}{}
	var total int64
	for i := len(contributions) - 1; i >= 0; i-- {
		c := contributions[i]
		name, ok := names[c.ProjectID]
		if !ok {
			name = c.ProjectID
		}
		rows = append(rows, ContributionRow{
			ID:          c.ID,
			ProjectID:   c.ProjectID,
			ProjectName: name,
			Amount:      model.FormatEuros(c.Amount),
			Date:        c.CreatedAt.Format("02/01/2006"),
		})
		total += c.Amount
		distinct[c.ProjectID] = struct{}{}
	}

	return Wallet{
		Address:       w.Address,
		Balance:       model.FormatEuros(w.Balance),
		TotalGiven:    model.FormatEuros(total),
		ProjectCount:  len(distinct),
		Contributions: rows,
		HasActivity:   len(rows) > 0,
	}
}
