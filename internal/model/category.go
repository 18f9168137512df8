package model

import (
	"time"

	"github.com/negligencias/site-server/internal/i18n"
)

type Category struct {
	ID            string    `db:"id" json:"id"`
	Slug          string    `db:"slug" json:"slug"`
	Name          string    `db:"name" json:"name"`
	NameEn        *string   `db:"name_en" json:"nameEn"`
	Description   *string   `db:"description" json:"description"`
	DescriptionEn *string   `db:"description_en" json:"descriptionEn"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

func (c *Category) RecordID() string { return c.ID }

func (c *Category) Field(name string) (string, *string) {
	switch name {
	case i18n.FieldName, i18n.FieldTitle:
		return c.Name, c.NameEn
	case i18n.FieldDescription:
		return deref(c.Description), c.DescriptionEn
	}
	return "", nil
}

type CategoryInput struct {
	Slug          string  `json:"slug" validate:"omitempty,max=120"`
	Name          string  `json:"name" validate:"required,max=100"`
	NameEn        *string `json:"nameEn" validate:"omitempty,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	DescriptionEn *string `json:"descriptionEn" validate:"omitempty,max=500"`
}

type CategoryPatch struct {
	Slug          *string `json:"slug" validate:"omitempty,max=120"`
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	NameEn        *string `json:"nameEn" validate:"omitempty,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	DescriptionEn *string `json:"descriptionEn" validate:"omitempty,max=500"`
}
