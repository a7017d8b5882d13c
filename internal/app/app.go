package app

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"civicfund-go/internal/config"
	"civicfund-go/internal/notify"
	"civicfund-go/internal/repositories/memory"
	"civicfund-go/internal/scheduler"
	"civicfund-go/internal/services/funding"
	"civicfund-go/internal/services/listing"
	"civicfund-go/internal/services/story"
	"civicfund-go/internal/telegram"
)

type App struct {
	Config    *config.Config
	Store     *memory.Store
	Hub       *notify.Hub
	Telegram  *telegram.Sender
	Listing   *listing.Service
	Funding   *funding.Service
	Story     *story.Service
	Scheduler *scheduler.Scheduler
	Server    *http.Server
}

func (a *App) Start() error {
	if err := a.Scheduler.Start(); err != nil {
		return err
	}

	go func() {
		zap.L().Info("HTTP server listening", zap.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("http server error", zap.Error(err))
		}
	}()

	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.Scheduler.Stop()
	if err := a.Server.Shutdown(ctx); err != nil {
		return err
	}
	if a.Telegram != nil {
		a.Telegram.Close()
	}
	return nil
}
