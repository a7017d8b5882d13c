package listing

import (
	"context"

	"github.com/rotisserie/eris"

	"civicfund-go/internal/metrics"
	"civicfund-go/internal/model"
	"civicfund-go/internal/repositories"
)

type Service struct {
	projects repositories.ProjectRepository
	wallets  repositories.WalletRepository
}

func NewService(projects repositories.ProjectRepository, wallets repositories.WalletRepository) *Service {
	return &Service{projects: projects, wallets: wallets}
}

// Search runs the pipeline over the current catalog. The wallet's
// contributions are loaded only when the filter needs them.
func (s *Service) Search(ctx context.Context, q Query, wallet string) ([]model.Project, error) {
	records, err := s.projects.List(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "listing: list projects")
	}

	var contributions []model.Contribution
	if q.Filter == FilterMyContributions && wallet != "" {
		contributions, err = s.wallets.Contributions(ctx, wallet)
		if err != nil {
			return nil, eris.Wrapf(err, "listing: contributions of %s", wallet)
		}
	}

	metrics.IncrementListingQuery(filterLabel(q.Filter), string(q.Sort))
	return Apply(records, q, contributions), nil
}

func filterLabel(f Filter) string {
	if f == filterNone {
		return "unknown"
	}
	return string(f)
}
