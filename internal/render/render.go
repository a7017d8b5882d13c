package render

import (
	"fmt"

	"civicfund-go/internal/model"
)

type Card struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	Status           string   `json:"status"`
	StatusLabel      string   `json:"statusLabel"`
	StatusClass      string   `json:"statusClass"`
	Budget           string   `json:"budget"`
	Raised           string   `json:"raised"`
	Funding          string   `json:"funding"`
	Progress         int      `json:"progress"`
	ProgressLabel    string   `json:"progressLabel"`
	Contributors     int      `json:"contributors"`
	ContributorLabel string   `json:"contributorLabel"`
	Votes            int      `json:"votes"`
	VotesFor         int      `json:"votesFor"`
	VotesAgainst     int      `json:"votesAgainst"`
	Proposer         string   `json:"proposer,omitempty"`
	DeadlineLabel    string   `json:"deadlineLabel"`
	Description      string   `json:"description"`
	Actions          []string `json:"actions"`
}

type Listing struct {
	Cards        []Card `json:"cards"`
	Count        int    `json:"count"`
	CountLabel   string `json:"countLabel"`
	Empty        bool   `json:"empty"`
	EmptyMessage string `json:"emptyMessage,omitempty"`
}

const emptyMessage = "No se encontraron proyectos con los criterios seleccionados."

func Cards(projects []model.Project) Listing {
	cards := make([]Card, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, NewCard(p))
	}

	listing := Listing{
		Cards:      cards,
		Count:      len(cards),
		CountLabel: countLabel(len(cards)),
		Empty:      len(cards) == 0,
	}
	if listing.Empty {
		listing.EmptyMessage = emptyMessage
	}
	return listing
}

func NewCard(p model.Project) Card {
	progress := p.Progress()
	actions := make([]string, 0, 2)
	for _, a := range p.Actions() {
		actions = append(actions, string(a))
	}
	return Card{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Status:           string(p.Status),
		StatusLabel:      p.Status.Label(),
		StatusClass:      "status-" + string(p.Status),
		Budget:           model.FormatEuros(p.Budget),
		Raised:           model.FormatEuros(p.Raised),
		Funding:          model.FormatFunding(p.Raised, p.Budget),
		Progress:         progress,
		ProgressLabel:    fmt.Sprintf("%d%%", progress),
		Contributors:     p.Contributors,
		ContributorLabel: plural(p.Contributors, "contribuyente", "contribuyentes"),
		Votes:            p.Votes(),
		VotesFor:         p.VotesFor,
		VotesAgainst:     p.VotesAgainst,
		Proposer:         p.Proposer,
		DeadlineLabel:    deadlineLabel(p),
		Description:      p.Description,
		Actions:          actions,
	}
}

func deadlineLabel(p model.Project) string {
	switch {
	case !p.HasDeadline:
		return "Sin fecha límite"
	case p.DaysLeft == 0:
		return "Termina hoy"
	case p.DaysLeft == 1:
		return "1 día restante"
	default:
		return fmt.Sprintf("%d días restantes", p.DaysLeft)
	}
}

func countLabel(n int) string {
	switch n {
	case 0:
		return "Ningún proyecto encontrado"
	case 1:
		return "1 proyecto encontrado"
	default:
		return fmt.Sprintf("%d proyectos encontrados", n)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
