package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

var tagMessages = map[string]string{
	"required": "validation.required",
	"email":    "validation.email",
	"max":      "validation.max",
	"url":      "validation.url",
}

// validateInput runs struct validation and reports failures per field,
// with messages in the given locale.
func validateInput(v any, locale i18n.Locale) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.ValidationError("Invalid request body").WithCause(err)
	}

	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe.Field(), fe.Tag(), locale),
		})
	}
	return apperrors.ValidationFields(fields)
}

func fieldMessage(field, tag string, locale i18n.Locale) string {
	if field == "privacyAccepted" {
		return i18n.T(locale, "validation.privacy")
	}
	if key, ok := tagMessages[tag]; ok {
		return i18n.T(locale, key)
	}
	return i18n.T(locale, "validation.invalid")
}

func fieldError(field, message string) *apperrors.AppError {
	return apperrors.ValidationFields([]apperrors.FieldError{{Field: field, Message: message}})
}

func requireID(id string) error {
	if !util.IsValidUUID(id) {
		return apperrors.ValidationError("Invalid id")
	}
	return nil
}

// blankPatch rejects a patch that sets a required text field to blank.
func blankPatch(field string, v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return fieldError(field, i18n.T(i18n.English, "validation.required"))
	}
	return nil
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

// dbError wraps repository failures that are not already AppErrors.
func dbError(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.Database(err)
}
