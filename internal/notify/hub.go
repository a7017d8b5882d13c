package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"civicfund-go/internal/model"
)

// Hub is the single registry of user-facing notifications, keyed by ID and
// grouped by wallet. Entries expire after ttl.
type Hub struct {
	mu       sync.Mutex
	byWallet map[string][]string
	byID     map[string]model.Notification

	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

func NewHub(ttl time.Duration) *Hub {
	return &Hub{
		byWallet: map[string][]string{},
		byID:     map[string]model.Notification{},
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (h *Hub) Push(wallet string, kind model.NotificationKind, message string) model.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	n := model.Notification{
		ID:        h.newID(),
		Wallet:    wallet,
		Kind:      kind,
		Message:   message,
		CreatedAt: now,
	}
	if h.ttl > 0 {
		n.ExpiresAt = now.Add(h.ttl)
	}
	h.byID[n.ID] = n
	h.byWallet[wallet] = append(h.byWallet[wallet], n.ID)
	return n
}

// List returns the wallet's live notifications, oldest first.
func (h *Hub) List(wallet string) []model.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	out := []model.Notification{}
	for _, id := range h.byWallet[wallet] {
		n := h.byID[id]
		if n.Expired(now) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (h *Hub) Dismiss(wallet, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	n, ok := h.byID[id]
	if !ok || n.Wallet != wallet {
		return fmt.Errorf("notification %s: %w", id, model.ErrNotFound)
	}
	h.removeLocked(n)
	return nil
}

// Purge drops expired notifications and reports how many went.
func (h *Hub) Purge(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for _, n := range h.byID {
		if n.Expired(now) {
			h.removeLocked(n)
			removed++
		}
	}
	return removed
}

// Notify turns a project event into a notification for the acting wallet.
func (h *Hub) Notify(_ context.Context, event model.Event) error {
	h.Push(event.Wallet, model.NotificationSuccess, eventMessage(event))
	return nil
}

// Alert shows a rejected request's error to the wallet as it is.
func (h *Hub) Alert(wallet, message string) {
	h.Push(wallet, model.NotificationError, message)
}

func (h *Hub) Inform(wallet, message string) {
	h.Push(wallet, model.NotificationInfo, message)
}

func (h *Hub) removeLocked(n model.Notification) {
	delete(h.byID, n.ID)
	ids := h.byWallet[n.Wallet]
	for i, id := range ids {
		if id == n.ID {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(h.byWallet, n.Wallet)
		return
	}
	h.byWallet[n.Wallet] = ids
}

func eventMessage(event model.Event) string {
	switch event.Action {
	case model.ActionContribute:
		return fmt.Sprintf("¡Gracias! Has aportado %s a %s.", model.FormatEuros(event.Amount), event.Project.Name)
	case model.ActionVote:
		direction := "en contra"
		if event.InFavor {
			direction = "a favor"
		}
		return fmt.Sprintf("Has votado %s de %s.", direction, event.Project.Name)
	default:
		return fmt.Sprintf("Acción %s completada en %s.", event.Action, event.Project.Name)
	}
}
