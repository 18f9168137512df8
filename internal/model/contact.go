package model

import "time"

type Contact struct {
	ID              string        `db:"id" json:"id"`
	Name            string        `db:"name" json:"name"`
	Email           string        `db:"email" json:"email"`
	Phone           *string       `db:"phone" json:"phone"`
	Service         *string       `db:"service" json:"service"`
	Message         string        `db:"message" json:"message"`
	SourceURL       *string       `db:"source_url" json:"sourceUrl"`
	UTMSource       *string       `db:"utm_source" json:"utmSource"`
	UTMMedium       *string       `db:"utm_medium" json:"utmMedium"`
	UTMCampaign     *string       `db:"utm_campaign" json:"utmCampaign"`
	Locale          string        `db:"locale" json:"locale"`
	PrivacyAccepted bool          `db:"privacy_accepted" json:"privacyAccepted"`
	IsRead          bool          `db:"is_read" json:"isRead"`
	Status          ContactStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`
}

// ContactInput is the public contact form payload.
type ContactInput struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	Phone           *string `json:"phone" validate:"omitempty,max=30"`
	Service         *string `json:"service" validate:"omitempty,max=100"`
	Message         string  `json:"message" validate:"required,max=5000"`
	SourceURL       *string `json:"sourceUrl" validate:"omitempty,max=500"`
	UTMSource       *string `json:"utmSource" validate:"omitempty,max=100"`
	UTMMedium       *string `json:"utmMedium" validate:"omitempty,max=100"`
	UTMCampaign     *string `json:"utmCampaign" validate:"omitempty,max=100"`
	PrivacyAccepted bool    `json:"privacyAccepted" validate:"required"`
	Locale          string  `json:"locale" validate:"omitempty,oneof=es en"`
}

// ContactPatch carries the only fields staff may change.
type ContactPatch struct {
	IsRead *bool          `json:"isRead"`
	Status *ContactStatus `json:"status" validate:"omitempty,oneof=new in_progress closed"`
}

type ContactFilter struct {
	Status ContactStatus
	Unread bool
	Limit  int
	Offset int
}
