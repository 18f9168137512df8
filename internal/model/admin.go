package model

import (
	"time"
)

type AdminUser struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	Role         Role       `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

type CreateAdminUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	Role         Role
}

// Stats backs the admin dashboard.
type Stats struct {
	Posts          int `db:"posts" json:"posts"`
	PublishedPosts int `db:"published_posts" json:"publishedPosts"`
	News           int `db:"news" json:"news"`
	SuccessCases   int `db:"success_cases" json:"successCases"`
	Hospitals      int `db:"hospitals" json:"hospitals"`
	Contacts       int `db:"contacts" json:"contacts"`
	UnreadContacts int `db:"unread_contacts" json:"unreadContacts"`
}
