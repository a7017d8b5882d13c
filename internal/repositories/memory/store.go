package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"civicfund-go/internal/model"
)

// Store keeps the catalog in process memory. Nothing survives a restart.
type Store struct {
	mu            sync.RWMutex
	order         []string
	projects      map[string]*model.Project
	wallets       map[string]*model.Wallet
	contributions []model.Contribution
	votes         map[string]map[string]bool

	startBalance int64
	now          func() time.Time
	newID        func() string
}

type Option func(*Store)

func WithStartBalance(balance int64) Option {
	return func(s *Store) {
		s.startBalance = balance
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func NewStore(seed Seed, options ...Option) *Store {
	s := &Store{
		projects: make(map[string]*model.Project, len(seed.Projects)),
		wallets:  make(map[string]*model.Wallet, len(seed.Wallets)),
		votes:    map[string]map[string]bool{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, option := range options {
		option(s)
	}

	for _, p := range seed.Projects {
		project := p.toModel()
		s.order = append(s.order, project.ID)
		s.projects[project.ID] = &project
	}
	for _, w := range seed.Wallets {
		s.wallets[w.Address] = &model.Wallet{Address: w.Address, Balance: w.Balance}
	}
	// Seeded totals already account for seeded contributions.
	for _, c := range seed.Contributions {
		s.contributions = append(s.contributions, model.Contribution{
			ID:        s.newID(),
			ProjectID: c.ProjectID,
			Wallet:    c.Wallet,
			Amount:    c.Amount,
			CreatedAt: c.CreatedAt,
		})
	}
	return s
}

func (s *Store) List(_ context.Context) ([]model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.projects[id])
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, eris.Wrapf(model.ErrNotFound, "project %s", id)
	}
	return *p, nil
}

// Create inserts a proposed project. The ID is the requested slug, or the
// first free slug-N with N >= 2, picked under the same lock as the insert.
func (s *Store) Create(_ context.Context, input model.ProjectCreate) (model.Project, error) {
	if input.Slug == "" || input.Name == "" {
		return model.Project{}, eris.Wrap(model.ErrInvalidInput, "project slug and name are required")
	}
	if input.Budget <= 0 {
		return model.Project{}, eris.Wrap(model.ErrInvalidInput, "budget must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := input.Slug
	for n := 2; s.projects[id] != nil; n++ {
		id = fmt.Sprintf("%s-%d", input.Slug, n)
	}
	project := model.Project{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Status:      model.StatusProposed,
		Budget:      input.Budget,
		Description: input.Description,
		Proposer:    input.Proposer,
	}
	s.order = append(s.order, project.ID)
	s.projects[project.ID] = &project
	return project, nil
}

// Contribute records a contribution and applies it to the project totals and
// the wallet balance under one lock.
func (s *Store) Contribute(_ context.Context, projectID, wallet string, amount int64) (model.Contribution, model.Project, error) {
	if amount <= 0 {
		return model.Contribution{}, model.Project{}, eris.Wrap(model.ErrInvalidInput, "amount must be positive")
	}
	if wallet == "" {
		return model.Contribution{}, model.Project{}, eris.Wrap(model.ErrInvalidInput, "wallet is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return model.Contribution{}, model.Project{}, eris.Wrapf(model.ErrNotFound, "project %s", projectID)
	}
	if p.Status == model.StatusCompleted {
		return model.Contribution{}, model.Project{}, eris.Wrapf(model.ErrActionNotAllowed, "project %s is completed", projectID)
	}

	w := s.walletLocked(wallet)
	if w.Balance < amount {
		return model.Contribution{}, model.Project{}, eris.Wrapf(model.ErrInsufficientFunds, "wallet %s has %d, needs %d", wallet, w.Balance, amount)
	}

	if !s.contributedLocked(wallet, projectID) {
		p.Contributors++
	}
	p.Raised += amount
	w.Balance -= amount

	contribution := model.Contribution{
		ID:        s.newID(),
		ProjectID: projectID,
		Wallet:    wallet,
		Amount:    amount,
		CreatedAt: s.now(),
	}
	s.contributions = append(s.contributions, contribution)
	return contribution, *p, nil
}

// Vote records one vote per wallet and project, in favour or against.
func (s *Store) Vote(_ context.Context, projectID, wallet string, inFavor bool) (model.Project, error) {
	if wallet == "" {
		return model.Project{}, eris.Wrap(model.ErrInvalidInput, "wallet is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[projectID]
	if !ok {
		return model.Project{}, eris.Wrapf(model.ErrNotFound, "project %s", projectID)
	}
	if !p.Status.Open() {
		return model.Project{}, eris.Wrapf(model.ErrActionNotAllowed, "project %s is %s", projectID, p.Status)
	}

	voters := s.votes[projectID]
	if voters == nil {
		voters = map[string]bool{}
		s.votes[projectID] = voters
	}
	if _, voted := voters[wallet]; voted {
		return model.Project{}, eris.Wrapf(model.ErrConflict, "wallet %s already voted on %s", wallet, projectID)
	}
	voters[wallet] = inFavor
	if inFavor {
		p.VotesFor++
	} else {
		p.VotesAgainst++
	}
	return *p, nil
}

// AdvanceDay moves every open deadline one day closer. Projects whose
// deadline was today lose it and are returned.
func (s *Store) AdvanceDay(_ context.Context) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var closed []model.Project
	for _, id := range s.order {
		p := s.projects[id]
		if !p.HasDeadline {
			continue
		}
		if p.DaysLeft == 0 {
			p.HasDeadline = false
			closed = append(closed, *p)
			continue
		}
		p.DaysLeft--
	}
	return closed, nil
}

func (s *Store) Wallet(_ context.Context, address string) (model.Wallet, error) {
	if address == "" {
		return model.Wallet{}, eris.Wrap(model.ErrInvalidInput, "wallet is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if w, ok := s.wallets[address]; ok {
		return *w, nil
	}
	return model.Wallet{Address: address, Balance: s.startBalance}, nil
}

func (s *Store) Contributions(_ context.Context, address string) ([]model.Contribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Contribution{}
	for _, c := range s.contributions {
		if c.Wallet == address {
			out = append(out, c)
		}
	}
	return out, nil
}

// walletLocked returns the wallet, opening it with the start balance on
// first use. Only writers call it.
func (s *Store) walletLocked(address string) *model.Wallet {
	w, ok := s.wallets[address]
	if !ok {
		w = &model.Wallet{Address: address, Balance: s.startBalance}
		s.wallets[address] = w
	}
	return w
}

func (s *Store) contributedLocked(wallet, projectID string) bool {
	for _, c := range s.contributions {
		if c.Wallet == wallet && c.ProjectID == projectID {
			return true
		}
	}
	return false
}
