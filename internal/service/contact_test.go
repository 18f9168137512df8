package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/util"
)

const (
	contactID = "5b0c2f0a-1f3e-4c55-8e3c-0f7a1d2b3c4d"
	testKey   = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
)

func validContactInput() model.ContactInput {
	return model.ContactInput{
		Name:            "  Ana García ",
		Email:           " Ana@Example.COM ",
		Phone:           strPtr("600 000 000"),
		Message:         "Mi madre sufrió un error de diagnóstico.",
		UTMSource:       strPtr(""),
		PrivacyAccepted: true,
		Locale:          "en",
	}
}

func TestContactServiceSubmit(t *testing.T) {
	repo := new(mockContactRepo)
	notifier := new(mockNotifier)
	cipher, err := util.NewEncryptor(testKey)
	require.NoError(t, err)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Contact")).
		Return(&model.Contact{ID: contactID, Status: model.ContactStatusNew}, nil)
	notifier.On("NotifyStaff", mock.Anything, mock.Anything).Return(nil)
	notifier.On("ConfirmSubmitter", mock.Anything, mock.Anything).Return(nil)

	s := NewContactService(repo, notifier, cipher)
	contact, err := s.Submit(context.Background(), validContactInput())
	require.NoError(t, err)

	assert.Equal(t, contactID, contact.ID)
	assert.Equal(t, "Ana García", contact.Name)
	assert.Equal(t, "ana@example.com", contact.Email)
	assert.Equal(t, "en", contact.Locale)
	assert.Nil(t, contact.UTMSource)

	stored := repo.Calls[0].Arguments.Get(1).(*model.Contact)
	assert.True(t, strings.HasPrefix(stored.Message, encryptedPrefix))
	assert.True(t, strings.HasPrefix(*stored.Phone, encryptedPrefix))
	assert.NotContains(t, stored.Message, "diagnóstico")

	notified := notifier.Calls[0].Arguments.Get(1).(*model.Contact)
	assert.Equal(t, "Mi madre sufrió un error de diagnóstico.", notified.Message)
	notifier.AssertExpectations(t)
}

func TestContactServiceSubmitMailFailureIsNotFatal(t *testing.T) {
	repo := new(mockContactRepo)
	notifier := new(mockNotifier)
	repo.On("Create", mock.Anything, mock.Anything).Return(&model.Contact{ID: contactID}, nil)
	notifier.On("NotifyStaff", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	notifier.On("ConfirmSubmitter", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	s := NewContactService(repo, notifier, nil)
	_, err := s.Submit(context.Background(), validContactInput())
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestContactServiceSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.ContactInput)
		field   string
		message string
	}{
		{"privacy not accepted in spanish", func(in *model.ContactInput) {
			in.PrivacyAccepted = false
			in.Locale = "es"
		}, "privacyAccepted", "Debes aceptar la política de privacidad"},
		{"privacy not accepted in english", func(in *model.ContactInput) {
			in.PrivacyAccepted = false
		}, "privacyAccepted", "You must accept the privacy policy"},
		{"bad email", func(in *model.ContactInput) {
			in.Email = "not-an-email"
		}, "email", "Enter a valid email address"},
		{"blank name", func(in *model.ContactInput) {
			in.Name = "   "
		}, "name", "This field is required"},
		{"unknown locale falls back to spanish", func(in *model.ContactInput) {
			in.Message = ""
			in.Locale = "fr"
		}, "message", "Este campo es obligatorio"},
		{"message too long", func(in *model.ContactInput) {
			in.Message = strings.Repeat("a", 5001)
		}, "message", "The text is too long"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockContactRepo)
			s := NewContactService(repo, nil, nil)
			in := validContactInput()
			tc.mutate(&in)

			_, err := s.Submit(context.Background(), in)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
			fields := appErr.Details.([]apperrors.FieldError)
			require.Len(t, fields, 1)
			assert.Equal(t, tc.field, fields[0].Field)
			assert.Equal(t, tc.message, fields[0].Message)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestContactServiceDecryptsOnRead(t *testing.T) {
	cipher, err := util.NewEncryptor(testKey)
	require.NoError(t, err)
	sealed, err := cipher.Encrypt("mensaje privado")
	require.NoError(t, err)

	repo := new(mockContactRepo)
	repo.On("List", mock.Anything, mock.Anything).Return([]model.Contact{
		{ID: "a", Message: encryptedPrefix + sealed},
		{ID: "b", Message: "texto antiguo sin cifrar"},
	}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(2, nil)

	s := NewContactService(repo, nil, cipher)
	page, err := s.List(context.Background(), model.ContactFilter{})
	require.NoError(t, err)
	assert.Equal(t, "mensaje privado", page.Items[0].Message)
	assert.Equal(t, "texto antiguo sin cifrar", page.Items[1].Message)
}

func TestContactServiceUpdate(t *testing.T) {
	status := model.ContactStatusClosed
	patch := model.ContactPatch{IsRead: boolPtr(true), Status: &status}

	repo := new(mockContactRepo)
	repo.On("Update", mock.Anything, contactID, patch).
		Return(&model.Contact{ID: contactID, IsRead: true, Status: status}, nil)

	s := NewContactService(repo, nil, nil)
	c, err := s.Update(context.Background(), contactID, patch)
	require.NoError(t, err)
	assert.Equal(t, model.ContactStatusClosed, c.Status)

	bad := model.ContactStatus("archived")
	_, err = s.Update(context.Background(), contactID, model.ContactPatch{Status: &bad})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestContactServiceNotFound(t *testing.T) {
	repo := new(mockContactRepo)
	repo.On("FindByID", mock.Anything, contactID).Return(nil, nil)
	repo.On("Update", mock.Anything, contactID, mock.Anything).Return(nil, nil)
	repo.On("Delete", mock.Anything, contactID).Return(false, nil)

	s := NewContactService(repo, nil, nil)
	ctx := context.Background()

	_, err := s.Get(ctx, contactID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	_, err = s.Update(ctx, contactID, model.ContactPatch{IsRead: boolPtr(true)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	assert.True(t, apperrors.Is(s.Delete(ctx, contactID), apperrors.ErrCodeNotFound))
}
