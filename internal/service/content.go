package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"campusdocs/internal/model"
	"campusdocs/internal/pdf"
	"campusdocs/internal/repository"
	"campusdocs/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("content not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrForbidden       = errors.New("forbidden")
	ErrBadApprovalName = errors.New("unknown approval status")
	ErrUploadTooLarge  = errors.New("upload exceeds the size limit")
)

// maxUploadBytes caps a single upload. Matches the server body limit so the
// service rejects oversized files even when fronted by a different transport.
const maxUploadBytes = 64 << 20

// ContentListResult is the service-level DTO for paginated content listings.
type ContentListResult struct {
	Items []model.ContentAsset `json:"data"`
	Total int                  `json:"total"`
}

// UploadInput carries the request-side metadata of a new upload.
type UploadInput struct {
	SubjectID        string
	Title            string
	OriginalFilename string
	ContentType      string
	Size             int64
	Lang             string
}

// ContentService defines the use cases for managing content assets.
type ContentService interface {
	// Upload validates the buffer structurally (PDF uploads only), stores it,
	// saves metadata to the DB, and rolls back storage if the DB save fails.
	// Rejected uploads are never stored. Only professors and admins may upload.
	Upload(ctx context.Context, p model.Principal, r io.Reader, in UploadInput) (*model.ContentAsset, error)

	// List returns content assets using limit/offset and a total count,
	// optionally scoped to a subject.
	List(ctx context.Context, subjectID string, limit, offset int) (*ContentListResult, error)

	// Get returns a single asset by its ID.
	Get(ctx context.Context, id string) (*model.ContentAsset, error)

	// SetApproval transitions an asset's approval status. Admins only.
	SetApproval(ctx context.Context, p model.Principal, id, status string) error

	// Delete removes an asset from both storage and the repository.
	// Allowed for the owner and admins.
	Delete(ctx context.Context, p model.Principal, id string) error
}

// contentService is a concrete implementation of ContentService.
type contentService struct {
	store     storage.Storage
	repo      repository.ContentRepository
	validator *pdf.Validator
}

// NewContentService constructs a new ContentService.
func NewContentService(store storage.Storage, repo repository.ContentRepository, validator *pdf.Validator) ContentService {
	return &contentService{store: store, repo: repo, validator: validator}
}

func (s *contentService) Upload(ctx context.Context, p model.Principal, r io.Reader, in UploadInput) (*model.ContentAsset, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if !p.CanUpload() {
		return nil, ErrForbidden
	}
	if in.Size > maxUploadBytes {
		return nil, ErrUploadTooLarge
	}

	// The whole buffer is needed up front: structural validation must pass
	// before anything touches storage.
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	pageCount, err := s.validator.AssertValid(buf, in.ContentType, in.Lang)
	if err != nil {
		return nil, err
	}

	// Generate storage filename using UUID + extension
	ext := filepath.Ext(in.OriginalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("contents", genName))

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(buf), storage.PutObjectOptions{
		Size:        int64(len(buf)),
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.OriginalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := time.Now().UTC()
	asset := &model.ContentAsset{
		ID:             uuid.New().String(),
		OwnerID:        p.UserID,
		SubjectID:      in.SubjectID,
		Title:          in.Title,
		Filename:       in.OriginalFilename,
		ApprovalStatus: model.ApprovalPending,
		StorageKey:     objInfo.Key,
		MimeType:       in.ContentType,
		ByteSize:       objInfo.Size,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if pageCount > 0 {
		asset.PageCount = &pageCount
	}

	stored, err := s.repo.Create(ctx, asset)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated assets without exposing repository types.
func (s *contentService) List(ctx context.Context, subjectID string, limit, offset int) (*ContentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, subjectID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ContentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns an asset by ID.
func (s *contentService) Get(ctx context.Context, id string) (*model.ContentAsset, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

// SetApproval transitions an asset's approval status.
func (s *contentService) SetApproval(ctx context.Context, p model.Principal, id, status string) error {
	if id == "" {
		return ErrIDRequired
	}
	if !p.Privileged() {
		return ErrForbidden
	}
	switch status {
	case model.ApprovalPending, model.ApprovalApproved, model.ApprovalRejected:
	default:
		return ErrBadApprovalName
	}
	if err := s.repo.UpdateApproval(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes an asset from storage, then deletes its record.
func (s *contentService) Delete(ctx context.Context, p model.Principal, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if !p.Privileged() && p.UserID != asset.OwnerID {
		return ErrForbidden
	}
	// Delete from storage first; if this fails, keep DB row to avoid orphaned storage reference loss
	if err := s.store.Delete(ctx, asset.StorageKey); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	// Delete DB row (repository ignores missing row errors as per contract)
	return s.repo.Delete(ctx, id)
}
