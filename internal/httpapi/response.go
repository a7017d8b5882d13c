package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"civicfund-go/internal/model"
)

const maxBodyBytes = 1 << 20

type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("failed to write response", zap.Error(err))
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	writeJSON(w, status, envelope{Error: &apiError{Message: message, Status: status}})
}

func mapError(err error) (int, string) {
	var upErr *model.UpstreamError
	if errors.As(err, &upErr) {
		status := upErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, upErr.Message
	}

	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	switch {
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, model.ErrUnknownAction):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, model.ErrConflict), errors.Is(err, model.ErrActionNotAllowed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, model.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		zap.L().Error("unhandled error", zap.Error(err))
		return http.StatusInternalServerError, "internal server error"
	}
}

// decodeJSON reads a request body into dst. An empty body is reported as
// io.EOF so callers can decide whether that is acceptable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return &model.ValidationError{Field: "body", Message: err.Error()}
	}
	return nil
}
