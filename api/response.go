package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/garnizeh/talentdesk/internal/candidates"
	"github.com/garnizeh/talentdesk/internal/portal"
	"github.com/garnizeh/talentdesk/internal/positions"
	"github.com/garnizeh/talentdesk/internal/schema"
	"github.com/garnizeh/talentdesk/internal/session"
)

// maxBodyBytes fits a 2 MB company logo sent as a base64 data URL.
const maxBodyBytes = 4 << 20

// envelope is embedded in every response body.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	envelope
	Problems []string `json:"problems,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, errorResponse{envelope: envelope{Error: msg}}, status)
}

// writeDomainError maps store and validation errors to a status code.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *schema.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, errorResponse{envelope: envelope{Error: "invalid request"}, Problems: verr.Problems}, http.StatusBadRequest)
	case errors.Is(err, session.ErrDuplicateEmail):
		writeError(w, "An account with this email already exists", http.StatusConflict)
	case errors.Is(err, session.ErrInvalidCredentials):
		writeError(w, "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, session.ErrNoSession), errors.Is(err, portal.ErrSessionChanged):
		writeError(w, "Not signed in", http.StatusUnauthorized)
	case errors.Is(err, positions.ErrNotFound):
		writeError(w, "Position not found", http.StatusNotFound)
	case errors.Is(err, errBodyTooLarge):
		writeError(w, fmt.Sprintf("Request body exceeds %d MiB", maxBodyBytes>>20), http.StatusRequestEntityTooLarge)
	case errors.Is(err, candidates.ErrInvalidExperienceRange), errors.Is(err, errBadRequest):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("request failed", slog.Any("err", err))
		writeError(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

var (
	errBadRequest   = errors.New("bad request")
	errBodyTooLarge = errors.New("request body too large")
)

// decodeBody validates the request body against the named schema and
// decodes it into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, schemas *schema.Loader, name string, dst any) error {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := schemas.Validate(r.Context(), name, b); err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
