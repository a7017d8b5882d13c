package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicfund-go/internal/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestHub(ttl time.Duration) (*Hub, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	h := NewHub(ttl)
	h.now = clock.now
	seq := 0
	h.newID = func() string {
		seq++
		return fmt.Sprintf("n%d", seq)
	}
	return h, clock
}

func TestPushAndList(t *testing.T) {
	h, _ := newTestHub(5 * time.Second)

	h.Push("0xa", model.NotificationInfo, "uno")
	h.Push("0xb", model.NotificationError, "otro")
	h.Push("0xa", model.NotificationSuccess, "dos")

	list := h.List("0xa")
	require.Len(t, list, 2)
	assert.Equal(t, "uno", list[0].Message)
	assert.Equal(t, "dos", list[1].Message)
	assert.Empty(t, h.List("0xc"))
}

func TestExpiry(t *testing.T) {
	h, clock := newTestHub(5 * time.Second)
	h.Push("0xa", model.NotificationInfo, "uno")

	clock.t = clock.t.Add(4 * time.Second)
	h.Push("0xa", model.NotificationInfo, "dos")
	assert.Len(t, h.List("0xa"), 2)

	clock.t = clock.t.Add(time.Second)
	list := h.List("0xa")
	require.Len(t, list, 1)
	assert.Equal(t, "dos", list[0].Message)

	assert.Equal(t, 1, h.Purge(clock.t))
	assert.Len(t, h.byID, 1)
	assert.Equal(t, []string{"n2"}, h.byWallet["0xa"])
}

func TestZeroTTLNeverExpires(t *testing.T) {
	h, clock := newTestHub(0)
	h.Push("0xa", model.NotificationInfo, "uno")
	clock.t = clock.t.Add(24 * time.Hour)
	assert.Len(t, h.List("0xa"), 1)
	assert.Equal(t, 0, h.Purge(clock.t))
}

func TestDismiss(t *testing.T) {
	h, _ := newTestHub(time.Minute)
	n := h.Push("0xa", model.NotificationInfo, "uno")

	assert.ErrorIs(t, h.Dismiss("0xb", n.ID), model.ErrNotFound)
	require.NoError(t, h.Dismiss("0xa", n.ID))
	assert.Empty(t, h.List("0xa"))
	assert.NotContains(t, h.byWallet, "0xa")
	assert.ErrorIs(t, h.Dismiss("0xa", n.ID), model.ErrNotFound)
}

func TestNotify(t *testing.T) {
	h, _ := newTestHub(time.Minute)
	project := model.Project{ID: "huertos", Name: "Huertos Urbanos"}

	require.NoError(t, h.Notify(context.Background(), model.Event{Action: model.ActionContribute, Project: project, Wallet: "0xa", Amount: 1500}))
	require.NoError(t, h.Notify(context.Background(), model.Event{Action: model.ActionVote, Project: project, Wallet: "0xa", InFavor: true}))
	require.NoError(t, h.Notify(context.Background(), model.Event{Action: model.ActionVote, Project: project, Wallet: "0xa"}))

	list := h.List("0xa")
	require.Len(t, list, 3)
	assert.Equal(t, "¡Gracias! Has aportado 1.500 € a Huertos Urbanos.", list[0].Message)
	assert.Equal(t, model.NotificationSuccess, list[0].Kind)
	assert.Equal(t, "Has votado a favor de Huertos Urbanos.", list[1].Message)
	assert.Equal(t, "Has votado en contra de Huertos Urbanos.", list[2].Message)
}

func TestAlertAndInform(t *testing.T) {
	h, _ := newTestHub(time.Minute)

	h.Alert("0xa", "wallet 0xa has 3, needs 10: insufficient funds")
	h.Inform("0xa", "Tu propuesta \"Parque\" ha sido enviada para revisión.")

	list := h.List("0xa")
	require.Len(t, list, 2)
	assert.Equal(t, model.NotificationError, list[0].Kind)
	assert.Equal(t, "wallet 0xa has 3, needs 10: insufficient funds", list[0].Message)
	assert.Equal(t, model.NotificationInfo, list[1].Kind)
	assert.Empty(t, h.List("0xb"))
}
