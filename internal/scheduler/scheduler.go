package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"civicfund-go/internal/model"
)

type DeadlineAdvancer interface {
	AdvanceDay(ctx context.Context) ([]model.Project, error)
}

type Purger interface {
	Purge(now time.Time) int
}

// Scheduler counts campaign deadlines down once per deadline tick and drops
// expired notifications on every purge tick.
type Scheduler struct {
	cron         *cron.Cron
	deadlines    DeadlineAdvancer
	purger       Purger
	deadlineSpec string
	purgeSpec    string
	now          func() time.Time
}

func New(deadlineSpec, purgeSpec string, deadlines DeadlineAdvancer, purger Purger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		deadlines:    deadlines,
		purger:       purger,
		deadlineSpec: deadlineSpec,
		purgeSpec:    purgeSpec,
		now:          time.Now,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.deadlineSpec, func() {
		zap.L().Info("scheduled deadline countdown triggered")
		s.RunDeadlines(context.Background())
	}); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.purgeSpec, s.RunPurge); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunDeadlines advances every open campaign by one day.
func (s *Scheduler) RunDeadlines(ctx context.Context) {
	closed, err := s.deadlines.AdvanceDay(ctx)
	if err != nil {
		zap.L().Error("deadline countdown failed", zap.Error(err))
		return
	}
	for _, p := range closed {
		zap.L().Info("campaign deadline reached",
			zap.String("project", p.ID),
			zap.String("status", string(p.Status)),
			zap.Int64("raised", p.Raised),
			zap.Int64("budget", p.Budget),
		)
	}
}

func (s *Scheduler) RunPurge() {
	if n := s.purger.Purge(s.now()); n > 0 {
		zap.L().Debug("expired notifications purged", zap.Int("count", n))
	}
}
