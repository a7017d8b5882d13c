package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicfund-go/internal/config"
	"civicfund-go/internal/model"
	"civicfund-go/internal/services/funding"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req model.StoryRequest) (model.StoryResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.StoryResult), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event model.Event) error {
	return m.Called(ctx, event).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		HTTPPort:           "0",
		FrontendOrigins:    []string{"*"},
		StoryModel:         "claude-haiku-4-5-20251001",
		StoryMaxTokens:     128,
		WalletStartBalance: 200,
		MinContribution:    5,
		NotificationTTL:    time.Minute,
		DeadlineCron:       "0 0 * * *",
		PurgeCron:          "*/5 * * * *",
	}
}

func TestBuildRequiresConfig(t *testing.T) {
	_, err := NewBuilder(nil).Build(context.Background())
	assert.Error(t, err)
}

func TestBuildWiresServices(t *testing.T) {
	gen := new(MockGenerator)
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Once()

	application, err := NewBuilder(testConfig(),
		WithGenerator(gen),
		WithNotifiers(notifier),
	).Build(context.Background())
	require.NoError(t, err)
	assert.Nil(t, application.Telegram)

	ctx := context.Background()
	_, err = application.Funding.Dispatch(ctx, "taller", funding.ActionRequest{Action: "contribute", Wallet: "0xnew", Amount: 50})
	require.NoError(t, err)

	w, err := application.Store.Wallet(ctx, "0xnew")
	require.NoError(t, err)
	assert.Equal(t, int64(150), w.Balance)
	assert.Len(t, application.Hub.List("0xnew"), 1)
	notifier.AssertExpectations(t)

	srv := httptest.NewServer(application.Server.Handler)
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBuildMissingCatalogFile(t *testing.T) {
	cfg := testConfig()
	cfg.CatalogFile = "/does/not/exist.yaml"
	_, err := NewBuilder(cfg, WithGenerator(new(MockGenerator))).Build(context.Background())
	assert.Error(t, err)
}

func TestBuildTelegramWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.TelegramToken = "tok"
	cfg.TelegramChat = "-100"

	application, err := NewBuilder(cfg, WithGenerator(new(MockGenerator))).Build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, application.Telegram)
	application.Telegram.Close()
}
