package funding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"civicfund-go/internal/metrics"
	"civicfund-go/internal/model"
	"civicfund-go/internal/repositories"
	"civicfund-go/internal/services/listing"
)

// DefaultMinContribution is the smallest accepted contribution, in euros.
const DefaultMinContribution int64 = 5

type ActionRequest struct {
	Action string `json:"action" validate:"required"`
	Wallet string `json:"wallet" validate:"required,max=128"`
	Amount int64  `json:"amount" validate:"gte=0"`
	// InFavor is the vote direction; a vote without it counts in favour.
	InFavor *bool `json:"inFavor"`
}

func (r ActionRequest) inFavor() bool {
	return r.InFavor == nil || *r.InFavor
}

type ProposalRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=120"`
	Category    string `json:"category" validate:"required,max=60"`
	Description string `json:"description" validate:"required,max=2000"`
	Budget      int64  `json:"budget" validate:"gt=0"`
	Wallet      string `json:"wallet" validate:"required,max=128"`
}

// ActionResult carries the project after the action. Contribution is set
// only for contributions.
type ActionResult struct {
	Action       model.Action
	Project      model.Project
	Contribution *model.Contribution
}

type WalletSummary struct {
	Wallet        model.Wallet
	Contributions []model.Contribution
	Projects      []model.Project
}

type Service struct {
	projects        repositories.ProjectRepository
	wallets         repositories.WalletRepository
	notifiers       []Notifier
	messenger       Messenger
	minContribution int64
}

type Option func(*Service)

func WithNotifiers(notifiers ...Notifier) Option {
	return func(s *Service) {
		s.notifiers = append(s.notifiers, notifiers...)
	}
}

func WithMessenger(messenger Messenger) Option {
	return func(s *Service) {
		s.messenger = messenger
	}
}

func WithMinContribution(amount int64) Option {
	return func(s *Service) {
		s.minContribution = amount
	}
}

func NewService(projects repositories.ProjectRepository, wallets repositories.WalletRepository, options ...Option) *Service {
	s := &Service{
		projects:        projects,
		wallets:         wallets,
		minContribution: DefaultMinContribution,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Wallet loads a wallet, its contributions and the catalog needed to name them.
func (s *Service) Wallet(ctx context.Context, address string) (WalletSummary, error) {
	w, err := s.wallets.Wallet(ctx, address)
	if err != nil {
		return WalletSummary{}, err
	}
	contributions, err := s.wallets.Contributions(ctx, address)
	if err != nil {
		return WalletSummary{}, err
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return WalletSummary{}, err
	}
	return WalletSummary{Wallet: w, Contributions: contributions, Projects: projects}, nil
}

// Dispatch runs a typed action against a project. A rejected action is
// reported back to the acting wallet through the messenger.
func (s *Service) Dispatch(ctx context.Context, projectID string, req ActionRequest) (ActionResult, error) {
	result, err := s.dispatch(ctx, projectID, req)
	if err != nil {
		s.alert(req.Wallet, err)
		return ActionResult{}, err
	}
	return result, nil
}

func (s *Service) dispatch(ctx context.Context, projectID string, req ActionRequest) (ActionResult, error) {
	if err := validateStruct(req); err != nil {
		return ActionResult{}, err
	}
	action, err := model.ParseAction(req.Action)
	if err != nil {
		metrics.IncrementProjectAction("unknown", "rejected")
		return ActionResult{}, fmt.Errorf("%w: %q", err, req.Action)
	}

	result := ActionResult{Action: action}
	switch action {
	case model.ActionVote:
		result.Project, err = s.projects.Vote(ctx, projectID, req.Wallet, req.inFavor())
	case model.ActionContribute:
		if req.Amount < s.minContribution {
			err = &model.ValidationError{
				Field:   "Amount",
				Message: fmt.Sprintf("minimum contribution is %s", model.FormatEuros(s.minContribution)),
			}
			break
		}
		var c model.Contribution
		c, result.Project, err = s.projects.Contribute(ctx, projectID, req.Wallet, req.Amount)
		if err == nil {
			result.Contribution = &c
		}
	}
	if err != nil {
		metrics.IncrementProjectAction(string(action), "rejected")
		return ActionResult{}, err
	}
	metrics.IncrementProjectAction(string(action), "ok")

	zap.L().Info("project action",
		zap.String("action", string(action)),
		zap.String("project", projectID),
		zap.String("wallet", req.Wallet),
		zap.Int64("amount", req.Amount),
	)

	s.broadcast(ctx, model.Event{
		Action:  action,
		Project: result.Project,
		Wallet:  req.Wallet,
		Amount:  req.Amount,
		InFavor: req.inFavor(),
	})
	return result, nil
}

// Propose adds a new proposed project to the catalog. The store settles the
// final ID.
func (s *Service) Propose(ctx context.Context, req ProposalRequest) (model.Project, error) {
	project, err := s.propose(ctx, req)
	if err != nil {
		s.alert(req.Wallet, err)
		return model.Project{}, err
	}
	return project, nil
}

func (s *Service) propose(ctx context.Context, req ProposalRequest) (model.Project, error) {
	if err := validateStruct(req); err != nil {
		return model.Project{}, err
	}

	slug := listing.Slug(req.Name)
	if slug == "" {
		return model.Project{}, &model.ValidationError{Field: "Name", Message: "must contain letters or digits"}
	}

	project, err := s.projects.Create(ctx, model.ProjectCreate{
		Slug:        slug,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Budget:      req.Budget,
		Proposer:    req.Wallet,
	})
	if err != nil {
		return model.Project{}, err
	}

	zap.L().Info("proposal submitted", zap.String("project", project.ID), zap.String("wallet", req.Wallet))
	if s.messenger != nil {
		s.messenger.Inform(req.Wallet, fmt.Sprintf("Tu propuesta %q ha sido enviada para revisión.", project.Name))
	}
	return project, nil
}

func (s *Service) alert(wallet string, err error) {
	if s.messenger == nil || wallet == "" {
		return
	}
	s.messenger.Alert(wallet, err.Error())
}

// broadcast delivers the event to every notifier concurrently. Notifier
// failures are logged and never undo the action.
func (s *Service) broadcast(ctx context.Context, event model.Event) {
	group, gctx := errgroup.WithContext(ctx)
	for _, notifier := range s.notifiers {
		n := notifier
		group.Go(func() error {
			if err := n.Notify(gctx, event); err != nil {
				zap.L().Warn("notifier failed", zap.String("project", event.Project.ID), zap.Error(err))
			}
			return nil
		})
	}
	_ = group.Wait()
}
