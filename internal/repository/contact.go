package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/negligencias/site-server/internal/database"
	"github.com/negligencias/site-server/internal/model"
)

type ContactRepository interface {
	List(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error)
	Count(ctx context.Context, filter model.ContactFilter) (int, error)
	FindByID(ctx context.Context, id string) (*model.Contact, error)
	Create(ctx context.Context, c *model.Contact) (*model.Contact, error)
	Update(ctx context.Context, id string, patch model.ContactPatch) (*model.Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
}

var contactColumns = []string{
	"name", "email", "phone", "service", "message", "source_url",
	"utm_source", "utm_medium", "utm_campaign", "locale", "privacy_accepted",
}

type contactRepo struct {
	db database.DBTX
	t  table[model.Contact]
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepo{db: db, t: table[model.Contact]{db: db, name: "contacts"}}
}

func contactWhere(f model.ContactFilter) *where {
	w := &where{}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.Unread {
		w.add("is_read = ?", false)
	}
	return w
}

func (r *contactRepo) List(ctx context.Context, f model.ContactFilter) ([]model.Contact, error) {
	return r.t.list(ctx, contactWhere(f), "created_at DESC, id", f.Limit, f.Offset)
}

func (r *contactRepo) Count(ctx context.Context, f model.ContactFilter) (int, error) {
	return r.t.count(ctx, contactWhere(f))
}

func (r *contactRepo) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	return r.t.findByID(ctx, id)
}

func (r *contactRepo) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.GetContext(ctx, &contact, insertSQL("contacts", contactColumns),
		c.Name, c.Email, c.Phone, c.Service, c.Message, c.SourceURL,
		c.UTMSource, c.UTMMedium, c.UTMCampaign, c.Locale, c.PrivacyAccepted)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update changes only is_read and status; created_at is never touched.
func (r *contactRepo) Update(ctx context.Context, id string, patch model.ContactPatch) (*model.Contact, error) {
	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}

	var contact model.Contact
	err := r.db.GetContext(ctx, &contact, `
		UPDATE contacts SET
			is_read = COALESCE($2, is_read),
			status = COALESCE($3, status),
			updated_at = NOW()
		WHERE id = $1
		RETURNING *
	`, id, patch.IsRead, status)
	return HandleNotFound(&contact, err)
}

func (r *contactRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.t.delete(ctx, id)
}
