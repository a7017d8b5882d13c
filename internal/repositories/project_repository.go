package repositories

import (
	"context"

	"civicfund-go/internal/model"
)

type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id string) (model.Project, error)
	Create(ctx context.Context, input model.ProjectCreate) (model.Project, error)
	Contribute(ctx context.Context, projectID, wallet string, amount int64) (model.Contribution, model.Project, error)
	Vote(ctx context.Context, projectID, wallet string, inFavor bool) (model.Project, error)
	AdvanceDay(ctx context.Context) (closed []model.Project, err error)
}

type WalletRepository interface {
	Wallet(ctx context.Context, address string) (model.Wallet, error)
	Contributions(ctx context.Context, address string) ([]model.Contribution, error)
}
