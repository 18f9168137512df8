package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/model"
)

const validContact = `{"name":"Lucía","email":"lucia@example.test","message":"Necesito ayuda","privacyAccepted":true,"locale":"es"}`

func TestContactHandler_Submit(t *testing.T) {
	t.Run("stores the enquiry", func(t *testing.T) {
		submitter := new(mockContactSubmitter)
		submitter.On("Submit", mock.Anything, mock.MatchedBy(func(in model.ContactInput) bool {
			return in.Name == "Lucía" && in.PrivacyAccepted && in.Locale == "es"
		})).Return(&model.Contact{ID: testContactID, Email: "lucia@example.test"}, nil)

		rec := httptest.NewRecorder()
		NewContactHandler(submitter).Submit(rec, postJSON("/api/contact", validContact))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		submitter.AssertExpectations(t)
	})

	t.Run("reports field errors", func(t *testing.T) {
		submitter := new(mockContactSubmitter)
		fields := []apperrors.FieldError{{Field: "privacyAccepted", Message: "Debe aceptar la política de privacidad"}}
		submitter.On("Submit", mock.Anything, mock.Anything).Return(nil, apperrors.ValidationFields(fields))

		rec := httptest.NewRecorder()
		NewContactHandler(submitter).Submit(rec, postJSON("/api/contact", `{"name":"x"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body contactResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, fields, body.Errors)
		assert.Equal(t, "Validation failed", body.Message)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewContactHandler(new(mockContactSubmitter)).Submit(rec, postJSON("/api/contact", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Request body is empty")
	})

	t.Run("rejects other content types", func(t *testing.T) {
		req := postJSON("/api/contact", validContact)
		req.Header.Set("Content-Type", "text/plain")

		rec := httptest.NewRecorder()
		NewContactHandler(new(mockContactSubmitter)).Submit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("hides storage failures", func(t *testing.T) {
		submitter := new(mockContactSubmitter)
		submitter.On("Submit", mock.Anything, mock.Anything).Return(nil, apperrors.Database(errors.New("connection reset")))

		rec := httptest.NewRecorder()
		NewContactHandler(submitter).Submit(rec, postJSON("/api/contact", validContact))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}
