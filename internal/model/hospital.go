package model

import "time"

type Hospital struct {
	ID        string    `db:"id" json:"id"`
	Slug      string    `db:"slug" json:"slug"`
	Name      string    `db:"name" json:"name"`
	City      string    `db:"city" json:"city"`
	Province  *string   `db:"province" json:"province"`
	Address   *string   `db:"address" json:"address"`
	Phone     *string   `db:"phone" json:"phone"`
	Website   *string   `db:"website" json:"website"`
	Latitude  *float64  `db:"latitude" json:"latitude"`
	Longitude *float64  `db:"longitude" json:"longitude"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (h *Hospital) RecordID() string { return h.ID }

type HospitalInput struct {
	Slug      string   `json:"slug" validate:"omitempty,max=120"`
	Name      string   `json:"name" validate:"required,max=200"`
	City      string   `json:"city" validate:"required,max=100"`
	Province  *string  `json:"province" validate:"omitempty,max=100"`
	Address   *string  `json:"address" validate:"omitempty,max=300"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
	Website   *string  `json:"website" validate:"omitempty,url,max=300"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsActive  *bool    `json:"isActive"`
}

type HospitalPatch struct {
	Slug      *string  `json:"slug" validate:"omitempty,max=120"`
	Name      *string  `json:"name" validate:"omitempty,min=1,max=200"`
	City      *string  `json:"city" validate:"omitempty,min=1,max=100"`
	Province  *string  `json:"province" validate:"omitempty,max=100"`
	Address   *string  `json:"address" validate:"omitempty,max=300"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
	Website   *string  `json:"website" validate:"omitempty,url,max=300"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsActive  *bool    `json:"isActive"`
}
