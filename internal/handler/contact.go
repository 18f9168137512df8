package handler

import (
	"context"
	"net/http"

	"github.com/negligencias/site-server/internal/audit"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/util"
)

// ContactSubmitter stores a public enquiry and notifies the firm.
type ContactSubmitter interface {
	Submit(ctx context.Context, in model.ContactInput) (*model.Contact, error)
}

type ContactHandler struct {
	contacts ContactSubmitter
}

func NewContactHandler(contacts ContactSubmitter) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type contactResponse struct {
	Success bool                   `json:"success"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// Submit answers {success:true}, or 400 with the per-field errors of the form.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.contacts.Submit(r.Context(), in)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeValidation {
			fields, _ := appErr.Details.([]apperrors.FieldError)
			writeJSON(w, http.StatusBadRequest, contactResponse{Errors: fields, Message: appErr.Message})
			return
		}
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventContactReceived,
		Email:      util.MaskEmail(contact.Email),
		Collection: string(model.CollectionContacts),
		RecordID:   contact.ID,
	})
	writeJSON(w, http.StatusCreated, contactResponse{Success: true})
}
