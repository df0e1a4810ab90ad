package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campusdocs/internal/model"
	"campusdocs/internal/pdf"
	"campusdocs/internal/permission"
	"campusdocs/internal/quota"
	"campusdocs/internal/repository"
	"campusdocs/internal/storage"
)

var (
	// ErrNotFoundOrUnreadable deliberately covers missing blobs, storage
	// errors, and read-path parse failures. The gate does not distinguish
	// "file missing" from "file corrupted" to the caller; the true cause is
	// reported server-side only.
	ErrNotFoundOrUnreadable = errors.New("content not found or unreadable")

	// ErrPaginatedOnlyForPDF marks a chunked-page request against a non-PDF
	// asset. Surfaced in the same not-found class.
	ErrPaginatedOnlyForPDF = errors.New("paginated delivery is only supported for pdf content")
)

// signedURLExpiry bounds the lifetime of admin export links.
const signedURLExpiry = 15 * time.Minute

// StreamResult is a full, watermarked document ready for delivery.
type StreamResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// PageChunkResult is one sliced, watermarked page range plus the metadata
// needed for pagination headers.
type PageChunkResult struct {
	Data       []byte
	Filename   string
	TotalPages int
	StartPage  int
	EndPage    int
	HasMore    bool
}

// PageCountResult reports a document's page count and the chunk size clients
// should use for paginated reads.
type PageCountResult struct {
	TotalPages int `json:"totalPages"`
	ChunkSize  int `json:"chunkSize"`
}

// AccessGate orchestrates a read request: permission check, quota admission,
// buffer fetch, watermark/extraction, and asynchronous access logging.
type AccessGate interface {
	// Stream returns the whole document, watermarked per viewer when it is a
	// PDF, passed through unchanged otherwise. Charges one stream quota unit
	// for non-privileged callers.
	Stream(ctx context.Context, p model.Principal, contentID, lang string, client model.ClientInfo) (*StreamResult, error)

	// Pages returns one page chunk. Quota is consulted only on the first
	// chunk (start == 0): one document view session is one quota unit
	// regardless of how many chunks it is paginated into. count <= 0 falls
	// back to the configured chunk size.
	Pages(ctx context.Context, p model.Principal, contentID, lang string, start, count int, client model.ClientInfo) (*PageChunkResult, error)

	// PageCount returns the cached or recomputed page count. No quota.
	PageCount(ctx context.Context, p model.Principal, contentID string) (*PageCountResult, error)

	// Quota reports the caller's remaining budget for the content.
	Quota(ctx context.Context, p model.Principal, contentID string) (*quota.Status, error)

	// DownloadURL returns a short-lived signed URL for the raw object,
	// bypassing the watermark pipeline. Privileged callers only.
	DownloadURL(ctx context.Context, p model.Principal, contentID string, client model.ClientInfo) (string, error)
}

// accessGate is the concrete AccessGate.
type accessGate struct {
	store     storage.Storage
	contents  repository.ContentRepository
	oracle    permission.Oracle
	quota     *quota.Engine
	validator *pdf.Validator
	stamper   *pdf.Stamper
	extractor *pdf.Extractor
	chunkSize int

	// reportErr receives failures that must not fail the user-facing request
	// (access-log writes, lazy page-count write-backs).
	reportErr func(error)
	now       func() time.Time
}

// NewAccessGate wires the gate. reportErr may be nil, in which case swallowed
// failures are silently dropped; production wiring should always supply an
// observability sink.
func NewAccessGate(
	store storage.Storage,
	contents repository.ContentRepository,
	oracle permission.Oracle,
	engine *quota.Engine,
	validator *pdf.Validator,
	stamper *pdf.Stamper,
	extractor *pdf.Extractor,
	chunkSize int,
	reportErr func(error),
) AccessGate {
	if reportErr == nil {
		reportErr = func(error) {}
	}
	if chunkSize < 1 {
		chunkSize = 15
	}
	return &accessGate{
		store:     store,
		contents:  contents,
		oracle:    oracle,
		quota:     engine,
		validator: validator,
		stamper:   stamper,
		extractor: extractor,
		chunkSize: chunkSize,
		reportErr: reportErr,
		now:       time.Now,
	}
}

// loadAccessible fetches the asset and asserts the principal may access it.
func (g *accessGate) loadAccessible(ctx context.Context, p model.Principal, contentID string) (*model.ContentAsset, error) {
	asset, err := g.contents.FindByID(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFoundOrUnreadable, err)
	}
	ok, err := g.oracle.CanAccessContent(ctx, p, asset)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return asset, nil
}

// fetch collapses all storage failures into the coarse not-found class.
func (g *accessGate) fetch(ctx context.Context, asset *model.ContentAsset) ([]byte, error) {
	buf, err := g.store.GetBuffer(ctx, asset.StorageKey)
	if err != nil {
		g.reportErr(fmt.Errorf("fetch %s: %w", asset.StorageKey, err))
		return nil, fmt.Errorf("%w: storage fetch failed", ErrNotFoundOrUnreadable)
	}
	return buf, nil
}

// watermarkSpec builds the per-viewer spec from the principal.
func watermarkSpec(p model.Principal) pdf.WatermarkSpec {
	return pdf.WatermarkSpec{
		DisplayName:       p.DisplayName,
		ContactIdentifier: p.Email,
		ViewerID:          p.UserID,
	}
}

// logAccess appends an access log entry after the response-critical path,
// fire-and-forget with error capture. A lost analytics entry is preferable to
// denying an already-approved read.
func (g *accessGate) logAccess(p model.Principal, asset *model.ContentAsset, action string, client model.ClientInfo) {
	entry := &model.AccessLogEntry{
		ID:         uuid.New().String(),
		ContentID:  asset.ID,
		UserID:     p.UserID,
		Action:     action,
		IPAddress:  client.IPAddress,
		UserAgent:  client.UserAgent,
		OccurredAt: g.now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.quota.LogAccess(ctx, entry); err != nil {
			g.reportErr(fmt.Errorf("access log append: %w", err))
		}
	}()
}

// cachePageCount lazily writes the computed page count back onto the asset row.
func (g *accessGate) cachePageCount(asset *model.ContentAsset, n int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.contents.UpdatePageCount(ctx, asset.ID, n); err != nil {
			g.reportErr(fmt.Errorf("page count write-back: %w", err))
		}
	}()
}

func (g *accessGate) Stream(ctx context.Context, p model.Principal, contentID, lang string, client model.ClientInfo) (*StreamResult, error) {
	asset, err := g.loadAccessible(ctx, p, contentID)
	if err != nil {
		return nil, err
	}

	if !p.Privileged() {
		if err := g.quota.AssertWithinQuota(ctx, p.UserID, asset.ID, lang); err != nil {
			return nil, err
		}
	}

	buf, err := g.fetch(ctx, asset)
	if err != nil {
		return nil, err
	}

	if asset.IsPDF() {
		stamped, err := g.stamper.Stamp(buf, watermarkSpec(p))
		if err != nil {
			// Contract violation from the stamper; collapsed for the caller.
			g.reportErr(fmt.Errorf("stamp %s: %w", asset.ID, err))
			return nil, fmt.Errorf("%w: document processing failed", ErrNotFoundOrUnreadable)
		}
		buf = stamped
	}

	g.logAccess(p, asset, model.ActionStream, client)

	return &StreamResult{
		Data:        buf,
		Filename:    asset.Filename,
		ContentType: asset.MimeType,
	}, nil
}

func (g *accessGate) Pages(ctx context.Context, p model.Principal, contentID, lang string, start, count int, client model.ClientInfo) (*PageChunkResult, error) {
	asset, err := g.loadAccessible(ctx, p, contentID)
	if err != nil {
		return nil, err
	}

	// The extractor clamps negative starts to the first page, so the gate
	// must see the same value or the first chunk would go unmetered.
	if start < 0 {
		start = 0
	}

	// One view session is one quota unit: only the first chunk is gated.
	if start == 0 && !p.Privileged() {
		if err := g.quota.AssertWithinQuota(ctx, p.UserID, asset.ID, lang); err != nil {
			return nil, err
		}
	}

	if !asset.IsPDF() {
		return nil, ErrPaginatedOnlyForPDF
	}

	buf, err := g.fetch(ctx, asset)
	if err != nil {
		return nil, err
	}

	if count < 1 {
		count = g.chunkSize
	}
	spec := watermarkSpec(p)
	res, err := g.extractor.Extract(buf, pdf.PageWindow{StartPage: start, RequestedCount: count}, &spec)
	if err != nil {
		g.reportErr(fmt.Errorf("extract %s: %w", asset.ID, err))
		return nil, fmt.Errorf("%w: document processing failed", ErrNotFoundOrUnreadable)
	}

	if asset.PageCount == nil {
		g.cachePageCount(asset, res.TotalPages)
	}

	// Page-by-page reading is tracked separately from full-file delivery.
	if start == 0 {
		g.logAccess(p, asset, model.ActionView, client)
	}

	return &PageChunkResult{
		Data:       res.Data,
		Filename:   asset.Filename,
		TotalPages: res.TotalPages,
		StartPage:  res.StartPage,
		EndPage:    res.EndPage,
		HasMore:    res.HasMore,
	}, nil
}

func (g *accessGate) PageCount(ctx context.Context, p model.Principal, contentID string) (*PageCountResult, error) {
	asset, err := g.loadAccessible(ctx, p, contentID)
	if err != nil {
		return nil, err
	}
	if !asset.IsPDF() {
		return nil, ErrPaginatedOnlyForPDF
	}

	if asset.PageCount != nil {
		return &PageCountResult{TotalPages: *asset.PageCount, ChunkSize: g.chunkSize}, nil
	}

	// Cache miss: recompute from the bytes and write back.
	buf, err := g.fetch(ctx, asset)
	if err != nil {
		return nil, err
	}
	res := g.validator.Validate(buf)
	if !res.IsValid {
		g.reportErr(fmt.Errorf("page count %s: validation kind %s", asset.ID, res.Kind))
		return nil, fmt.Errorf("%w: document processing failed", ErrNotFoundOrUnreadable)
	}
	g.cachePageCount(asset, res.PageCount)

	return &PageCountResult{TotalPages: res.PageCount, ChunkSize: g.chunkSize}, nil
}

func (g *accessGate) Quota(ctx context.Context, p model.Principal, contentID string) (*quota.Status, error) {
	asset, err := g.loadAccessible(ctx, p, contentID)
	if err != nil {
		return nil, err
	}
	return g.quota.Check(ctx, p.UserID, asset.ID)
}

func (g *accessGate) DownloadURL(ctx context.Context, p model.Principal, contentID string, client model.ClientInfo) (string, error) {
	if !p.Privileged() {
		return "", ErrForbidden
	}
	asset, err := g.loadAccessible(ctx, p, contentID)
	if err != nil {
		return "", err
	}
	u, err := g.store.PresignGet(ctx, asset.StorageKey, signedURLExpiry)
	if err != nil {
		g.reportErr(fmt.Errorf("presign %s: %w", asset.StorageKey, err))
		return "", fmt.Errorf("%w: storage fetch failed", ErrNotFoundOrUnreadable)
	}

	g.logAccess(p, asset, model.ActionDownload, client)
	return u, nil
}
