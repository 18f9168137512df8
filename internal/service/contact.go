package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
	"github.com/negligencias/site-server/internal/util"
)

// encryptedPrefix marks sealed column values; rows written before
// encryption was enabled are read back as plaintext.
const encryptedPrefix = "enc:"

// ContactNotifier sends the emails that follow a contact submission.
type ContactNotifier interface {
	NotifyStaff(ctx context.Context, c *model.Contact) error
	ConfirmSubmitter(ctx context.Context, c *model.Contact) error
}

// Cipher seals the free-text columns of a contact.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encoded string) (string, error)
}

type ContactService struct {
	repo     repository.ContactRepository
	notifier ContactNotifier
	cipher   Cipher
}

// NewContactService builds the service. notifier and cipher may be nil.
func NewContactService(repo repository.ContactRepository, notifier ContactNotifier, cipher Cipher) *ContactService {
	return &ContactService{repo: repo, notifier: notifier, cipher: cipher}
}

// Submit stores a public contact request and notifies staff and the submitter.
// Email failures are logged and never fail the submission.
func (s *ContactService) Submit(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	in = normalizeContact(in)
	locale := i18n.LocaleOrDefault(in.Locale)
	in.Locale = locale.String()
	if err := validateInput(in, locale); err != nil {
		return nil, err
	}

	contact := &model.Contact{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Service:         in.Service,
		Message:         in.Message,
		SourceURL:       in.SourceURL,
		UTMSource:       in.UTMSource,
		UTMMedium:       in.UTMMedium,
		UTMCampaign:     in.UTMCampaign,
		Locale:          locale.String(),
		PrivacyAccepted: in.PrivacyAccepted,
	}

	sealed, err := s.seal(*contact)
	if err != nil {
		return nil, apperrors.Internal("Failed to store contact").WithCause(err)
	}
	created, err := s.repo.Create(ctx, &sealed)
	if err != nil {
		return nil, dbError(err)
	}
	contact.ID = created.ID
	contact.Status = created.Status
	contact.CreatedAt = created.CreatedAt
	contact.UpdatedAt = created.UpdatedAt

	log.Info().
		Str("contact_id", contact.ID).
		Str("email", util.MaskEmail(contact.Email)).
		Str("locale", contact.Locale).
		Msg("contact request received")

	s.notify(ctx, contact)
	return contact, nil
}

func (s *ContactService) notify(ctx context.Context, c *model.Contact) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyStaff(ctx, c); err != nil {
		log.Warn().Err(err).Str("contact_id", c.ID).Msg("failed to notify staff of contact request")
	}
	if err := s.notifier.ConfirmSubmitter(ctx, c); err != nil {
		log.Warn().Err(err).Str("contact_id", c.ID).Msg("failed to send contact confirmation")
	}
}

func normalizeContact(in model.ContactInput) model.ContactInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Message = strings.TrimSpace(in.Message)
	in.Phone = optional(in.Phone)
	in.Service = optional(in.Service)
	in.SourceURL = optional(in.SourceURL)
	in.UTMSource = optional(in.UTMSource)
	in.UTMMedium = optional(in.UTMMedium)
	in.UTMCampaign = optional(in.UTMCampaign)
	in.Locale = strings.TrimSpace(in.Locale)
	return in
}

func (s *ContactService) List(ctx context.Context, filter model.ContactFilter) (*Page[model.Contact], error) {
	filter.Limit, filter.Offset = normalizePage(filter.Limit, filter.Offset)

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, dbError(err)
	}
	for i := range items {
		s.open(&items[i])
	}
	return &Page[model.Contact]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*model.Contact, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if c == nil {
		return nil, apperrors.NotFound("Contact")
	}
	s.open(c)
	return c, nil
}

// Update changes the read flag and status only.
func (s *ContactService) Update(ctx context.Context, id string, patch model.ContactPatch) (*model.Contact, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := validateInput(patch, i18n.English); err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, dbError(err)
	}
	if c == nil {
		return nil, apperrors.NotFound("Contact")
	}
	s.open(c)
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dbError(err)
	}
	if !deleted {
		return apperrors.NotFound("Contact")
	}
	return nil
}

func (s *ContactService) seal(c model.Contact) (model.Contact, error) {
	if s.cipher == nil {
		return c, nil
	}
	msg, err := s.cipher.Encrypt(c.Message)
	if err != nil {
		return c, err
	}
	c.Message = encryptedPrefix + msg
	if c.Phone != nil {
		phone, err := s.cipher.Encrypt(*c.Phone)
		if err != nil {
			return c, err
		}
		sealed := encryptedPrefix + phone
		c.Phone = &sealed
	}
	return c, nil
}

func (s *ContactService) open(c *model.Contact) {
	c.Message = s.decrypt(c.ID, c.Message)
	if c.Phone != nil {
		phone := s.decrypt(c.ID, *c.Phone)
		c.Phone = &phone
	}
}

func (s *ContactService) decrypt(id, value string) string {
	sealed, ok := strings.CutPrefix(value, encryptedPrefix)
	if !ok || s.cipher == nil {
		return value
	}
	plain, err := s.cipher.Decrypt(sealed)
	if err != nil {
		log.Error().Err(err).Str("contact_id", id).Msg("failed to decrypt contact field")
		return value
	}
	return plain
}
