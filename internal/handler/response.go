package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/negligencias/site-server/internal/audit"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/httputil"
	"github.com/negligencias/site-server/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// decodeJSON reads a single JSON object. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return apperrors.ValidationError("Content-Type must be application/json")
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return apperrors.ValidationError("Request body is empty")
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.PayloadTooLarge()
		}
		return apperrors.ValidationError("Invalid request body")
	}
}

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Success: true, Data: data})
}

func auditContent(r *http.Request, event audit.EventType, session *model.Session, collection model.Collection, id string) {
	audit.LogFromRequest(r, audit.Event{
		Type:       event,
		UserID:     session.UserID,
		Collection: string(collection),
		RecordID:   id,
	})
}
