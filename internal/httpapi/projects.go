package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"civicfund-go/internal/model"
	"civicfund-go/internal/render"
	"civicfund-go/internal/services/funding"
	"civicfund-go/internal/services/listing"
)

type contributionView struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Amount    int64     `json:"amount"`
	Formatted string    `json:"formatted"`
	CreatedAt time.Time `json:"createdAt"`
}

type actionResponse struct {
	Action       model.Action      `json:"action"`
	Project      render.Card       `json:"project"`
	Contribution *contributionView `json:"contribution,omitempty"`
}

func queryFromRequest(r *http.Request) listing.Query {
	values := r.URL.Query()
	return listing.Query{
		Filter: listing.ParseFilter(values.Get("filter")),
		Text:   values.Get("q"),
		Sort:   listing.ParseSort(values.Get("sort")),
	}
}

func (h *Handler) search(r *http.Request) (render.Listing, error) {
	projects, err := h.listing.Search(r.Context(), queryFromRequest(r), r.URL.Query().Get("wallet"))
	if err != nil {
		return render.Listing{}, err
	}
	return render.Cards(projects), nil
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	cards, err := h.search(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, cards)
}

// handleProjectsHTML serves the card grid as an HTML fragment.
func (h *Handler) handleProjectsHTML(w http.ResponseWriter, r *http.Request) {
	cards, err := h.search(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, cards); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		zap.L().Error("failed to write html", zap.Error(err))
	}
}

func (h *Handler) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, render.NewCard(p))
}

func (h *Handler) handleProjectAction(w http.ResponseWriter, r *http.Request) {
	var req funding.ActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, bodyError(err))
		return
	}

	result, err := h.funding.Dispatch(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := actionResponse{Action: result.Action, Project: render.NewCard(result.Project)}
	if c := result.Contribution; c != nil {
		resp.Contribution = &contributionView{
			ID:        c.ID,
			ProjectID: c.ProjectID,
			Amount:    c.Amount,
			Formatted: model.FormatEuros(c.Amount),
			CreatedAt: c.CreatedAt,
		}
	}
	writeData(w, http.StatusOK, resp)
}

func (h *Handler) handlePropose(w http.ResponseWriter, r *http.Request) {
	var req funding.ProposalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, bodyError(err))
		return
	}

	p, err := h.funding.Propose(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, render.NewCard(p))
}

func (h *Handler) handleWallet(w http.ResponseWriter, r *http.Request) {
	summary, err := h.funding.Wallet(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, render.WalletView(summary.Wallet, summary.Contributions, summary.Projects))
}

func bodyError(err error) error {
	if errors.Is(err, io.EOF) {
		return &model.ValidationError{Field: "body", Message: "request body is required"}
	}
	return err
}
