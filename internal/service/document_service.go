package service

import (
	"context"
	"io"
	"time"

	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/model"
	"govsite/internal/repository"
	"govsite/internal/upload"
)

// DocumentService exposes the document repository.
type DocumentService interface {
	ListDocuments(ctx context.Context, category, lang string) ([]model.Document, error)
	// GetDocument returns a public document; private ones read as not found.
	GetDocument(ctx context.Context, id uint) (*model.Document, error)
	CreateDocument(ctx context.Context, in model.DocumentInput) (*model.Document, error)
	// UploadDocument stores the file and creates a document pointing at it.
	// in.FileURL, in.FileType and in.FileSize are taken from the stored object.
	UploadDocument(ctx context.Context, in model.DocumentInput, filename string, r io.Reader) (*model.Document, error)
	UpdateDocument(ctx context.Context, id uint, patch model.DocumentPatch) (*model.Document, error)
	DeleteDocument(ctx context.Context, id uint) error
}

type documentService struct {
	repo     repository.DocumentRepository
	uploader upload.Uploader
	cache    readCache
}

// NewDocumentService builds a DocumentService. uploader may be nil, in which
// case UploadDocument returns ErrUploadDisabled.
func NewDocumentService(repo repository.DocumentRepository, uploader upload.Uploader, c *cache.Client, ttl time.Duration) DocumentService {
	return &documentService{repo: repo, uploader: uploader, cache: newReadCache(c, ttl, "documents")}
}

func (s *documentService) ListDocuments(ctx context.Context, category, lang string) ([]model.Document, error) {
	if lang == "" {
		lang = model.DefaultLanguage
	}
	return cached(ctx, s.cache, s.cache.key("list", lang, category), func() ([]model.Document, error) {
		return s.repo.List(ctx, repository.DocumentFilter{Category: category, Language: lang})
	})
}

func (s *documentService) GetDocument(ctx context.Context, id uint) (*model.Document, error) {
	return cached(ctx, s.cache, s.cache.key("id", id), func() (*model.Document, error) {
		doc, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, domainError(err, apperrors.ErrDocumentNotFound)
		}
		if !doc.IsPublic {
			return nil, apperrors.ErrDocumentNotFound
		}
		return doc, nil
	})
}

func (s *documentService) CreateDocument(ctx context.Context, in model.DocumentInput) (*model.Document, error) {
	doc := in.ToDocument()
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, domainError(err, apperrors.ErrDocumentNotFound)
	}
	s.cache.invalidate(ctx)
	return doc, nil
}

func (s *documentService) UploadDocument(ctx context.Context, in model.DocumentInput, filename string, r io.Reader) (*model.Document, error) {
	if s.uploader == nil {
		return nil, apperrors.ErrUploadDisabled
	}
	obj, err := s.uploader.Upload(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	in.FileURL = obj.URL
	in.FileType = obj.FileType
	in.FileSize = &obj.Size
	return s.CreateDocument(ctx, in)
}

func (s *documentService) UpdateDocument(ctx context.Context, id uint, patch model.DocumentPatch) (*model.Document, error) {
	doc, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, domainError(err, apperrors.ErrDocumentNotFound)
	}
	s.cache.invalidate(ctx)
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err := deleted(ok, err, apperrors.ErrDocumentNotFound); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
