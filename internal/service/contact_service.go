package service

import (
	"context"

	apperrors "govsite/internal/errors"
	"govsite/internal/metrics"
	"govsite/internal/model"
	"govsite/internal/repository"
)

// ContactService handles contact form submissions and the admin inbox.
// Inbox reads are never cached.
type ContactService interface {
	SubmitContact(ctx context.Context, in model.ContactInput) (*model.Contact, error)
	ListContacts(ctx context.Context) ([]model.Contact, error)
	GetContact(ctx context.Context, id uint) (*model.Contact, error)
	UpdateContact(ctx context.Context, id uint, patch model.ContactPatch) (*model.Contact, error)
	DeleteContact(ctx context.Context, id uint) error
	CountUnread(ctx context.Context) (int64, error)
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService builds a ContactService.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) SubmitContact(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	c := in.ToContact()
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.ContactSubmissions.Inc()
	s.refreshUnread(ctx)
	return c, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return s.repo.List(ctx)
}

func (s *contactService) GetContact(ctx context.Context, id uint) (*model.Contact, error) {
	c, err := s.repo.FindByID(ctx, id)
	return c, domainError(err, apperrors.ErrContactNotFound)
}

func (s *contactService) UpdateContact(ctx context.Context, id uint, patch model.ContactPatch) (*model.Contact, error) {
	c, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, domainError(err, apperrors.ErrContactNotFound)
	}
	if patch.IsRead != nil {
		s.refreshUnread(ctx)
	}
	return c, nil
}

func (s *contactService) DeleteContact(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err := deleted(ok, err, apperrors.ErrContactNotFound); err != nil {
		return err
	}
	s.refreshUnread(ctx)
	return nil
}

func (s *contactService) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}

// refreshUnread recounts the inbox after a change. On failure the gauge keeps
// its value until the scheduled job runs.
func (s *contactService) refreshUnread(ctx context.Context) {
	if n, err := s.repo.CountUnread(ctx); err == nil {
		metrics.ContactsUnread.Set(float64(n))
	}
}
