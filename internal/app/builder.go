package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"civicfund-go/internal/config"
	"civicfund-go/internal/httpapi"
	"civicfund-go/internal/notify"
	"civicfund-go/internal/providers/anthropic"
	"civicfund-go/internal/repositories/memory"
	"civicfund-go/internal/scheduler"
	"civicfund-go/internal/services/funding"
	"civicfund-go/internal/services/listing"
	"civicfund-go/internal/services/story"
	"civicfund-go/internal/telegram"
)

type Builder struct {
	cfg *config.Config

	store     *memory.Store
	generator story.Generator
	notifiers []funding.Notifier
	scheduler *scheduler.Scheduler
	server    *http.Server
}

type BuilderOption func(*Builder)

func NewBuilder(cfg *config.Config, options ...BuilderOption) *Builder {
	builder := &Builder{cfg: cfg}
	for _, option := range options {
		option(builder)
	}
	return builder
}

func WithStore(store *memory.Store) BuilderOption {
	return func(b *Builder) {
		b.store = store
	}
}

func WithGenerator(generator story.Generator) BuilderOption {
	return func(b *Builder) {
		b.generator = generator
	}
}

// WithNotifiers replaces the optional announcers. The notification hub is
// always attached.
func WithNotifiers(notifiers ...funding.Notifier) BuilderOption {
	return func(b *Builder) {
		b.notifiers = notifiers
	}
}

func WithScheduler(scheduler *scheduler.Scheduler) BuilderOption {
	return func(b *Builder) {
		b.scheduler = scheduler
	}
}

func WithHTTPServer(server *http.Server) BuilderOption {
	return func(b *Builder) {
		b.server = server
	}
}

func (b *Builder) Build(_ context.Context) (*App, error) {
	if b.cfg == nil {
		return nil, errors.New("config is required")
	}

	app := &App{Config: b.cfg}

	if b.store == nil {
		seed, err := memory.LoadSeed(b.cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		b.store = memory.NewStore(seed, memory.WithStartBalance(b.cfg.WalletStartBalance))
	}
	app.Store = b.store

	app.Hub = notify.NewHub(b.cfg.NotificationTTL)

	if b.notifiers == nil && b.cfg.TelegramEnabled() {
		sender := telegram.NewSender(b.cfg.TelegramToken, b.cfg.TelegramChat, b.cfg.TelegramThreadID,
			telegram.WithSiteURL(b.cfg.SiteURL))
		app.Telegram = sender
		b.notifiers = []funding.Notifier{sender}
	}
	notifiers := append([]funding.Notifier{app.Hub}, b.notifiers...)

	if b.generator == nil {
		if b.cfg.AnthropicAPIKey == "" {
			zap.L().Warn("ANTHROPIC_API_KEY is not set; story generation will fail upstream")
		}
		b.generator = anthropic.NewGenerator(b.cfg.AnthropicAPIKey, b.cfg.AnthropicBaseURL)
	}

	app.Listing = listing.NewService(app.Store, app.Store)
	app.Funding = funding.NewService(app.Store, app.Store,
		funding.WithNotifiers(notifiers...),
		funding.WithMessenger(app.Hub),
		funding.WithMinContribution(b.cfg.MinContribution),
	)
	app.Story = story.NewService(b.generator, story.Config{
		DefaultModel: b.cfg.StoryModel,
		MaxTokens:    b.cfg.StoryMaxTokens,
		RateLimit:    b.cfg.StoryRateLimit,
	})

	if b.scheduler == nil {
		b.scheduler = scheduler.New(b.cfg.DeadlineCron, b.cfg.PurgeCron, app.Store, app.Hub)
	}
	app.Scheduler = b.scheduler

	if b.server == nil {
		handler := httpapi.NewHandler(httpapi.Deps{
			Catalog: app.Store,
			Listing: app.Listing,
			Funding: app.Funding,
			Story:   app.Story,
			Hub:     app.Hub,
			Origins: b.cfg.FrontendOrigins,
		})
		b.server = &http.Server{
			Addr:              ":" + b.cfg.HTTPPort,
			Handler:           handler.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	app.Server = b.server

	return app, nil
}
