package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"civicfund-go/internal/model"
)

type notificationView struct {
	ID        string                 `json:"id"`
	Kind      model.NotificationKind `json:"kind"`
	Message   string                 `json:"message"`
	CreatedAt time.Time              `json:"createdAt"`
	ExpiresAt *time.Time             `json:"expiresAt,omitempty"`
}

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, &model.ValidationError{Field: "wallet", Message: "is required"})
		return
	}

	items := h.hub.List(wallet)
	out := make([]notificationView, 0, len(items))
	for _, n := range items {
		view := notificationView{ID: n.ID, Kind: n.Kind, Message: n.Message, CreatedAt: n.CreatedAt}
		if !n.ExpiresAt.IsZero() {
			expires := n.ExpiresAt
			view.ExpiresAt = &expires
		}
		out = append(out, view)
	}
	writeData(w, http.StatusOK, out)
}

func (h *Handler) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		writeError(w, &model.ValidationError{Field: "wallet", Message: "is required"})
		return
	}
	if err := h.hub.Dismiss(wallet, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
