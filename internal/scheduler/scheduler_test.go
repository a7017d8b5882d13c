package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicfund-go/internal/model"
	"civicfund-go/internal/notify"
	"civicfund-go/internal/repositories/memory"
)

type MockAdvancer struct {
	mock.Mock
}

func (m *MockAdvancer) AdvanceDay(ctx context.Context) ([]model.Project, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).([]model.Project)
	return projects, args.Error(1)
}

func TestRunDeadlinesAdvancesStore(t *testing.T) {
	seed, err := memory.LoadSeed("")
	require.NoError(t, err)
	store := memory.NewStore(seed)

	s := New("@daily", "@every 1m", store, notify.NewHub(time.Second))
	s.RunDeadlines(context.Background())

	huertos, err := store.Get(context.Background(), "huertos")
	require.NoError(t, err)
	assert.Equal(t, 4, huertos.DaysLeft)
	assert.True(t, huertos.HasDeadline)

	taller, err := store.Get(context.Background(), "taller")
	require.NoError(t, err)
	assert.False(t, taller.HasDeadline)
}

func TestRunDeadlinesToleratesErrors(t *testing.T) {
	adv := new(MockAdvancer)
	adv.On("AdvanceDay", mock.Anything).Return(nil, errors.New("boom")).Once()

	s := New("@daily", "@every 1m", adv, notify.NewHub(time.Second))
	assert.NotPanics(t, func() { s.RunDeadlines(context.Background()) })
	adv.AssertExpectations(t)
}

func TestRunPurgeDropsExpired(t *testing.T) {
	hub := notify.NewHub(time.Second)
	hub.Push("0xdemo", model.NotificationInfo, "hola")

	s := New("@daily", "@every 1m", new(MockAdvancer), hub)
	s.now = func() time.Time { return time.Now().Add(time.Minute) }
	s.RunPurge()

	assert.Empty(t, hub.List("0xdemo"))
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := New("not a cron", "@every 1m", new(MockAdvancer), notify.NewHub(time.Second))
	assert.Error(t, s.Start())

	s = New("@daily", "@every 1m", new(MockAdvancer), notify.NewHub(time.Second))
	require.NoError(t, s.Start())
	s.Stop()
}
