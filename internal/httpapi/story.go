package httpapi

import (
	"errors"
	"io"
	"net/http"
)

type storyRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type storyResponse struct {
	Success bool   `json:"success"`
	Model   string `json:"model"`
	Story   string `json:"story"`
}

// handleGenerateStory relays one prompt to the text-generation service. An
// empty body is the same as an empty prompt.
func (h *Handler) handleGenerateStory(w http.ResponseWriter, r *http.Request) {
	var req storyRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, err)
		return
	}

	result, err := h.story.Generate(r.Context(), req.Prompt, req.Model)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, storyResponse{Success: true, Model: result.Model, Story: result.Text})
}
