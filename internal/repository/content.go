package repository

import (
	"context"

	"campusdocs/internal/model"
)

// ContentRepository defines data access for content assets using SQL queries only.
type ContentRepository interface {
	// Create inserts a new content row. Returns the stored asset (may include
	// values set by the DB).
	Create(ctx context.Context, asset *model.ContentAsset) (*model.ContentAsset, error)

	// FindByID returns a content asset by its ID.
	FindByID(ctx context.Context, id string) (*model.ContentAsset, error)

	// List returns a paginated list of assets and the total row count.
	// When subjectID is non-empty the listing is scoped to that subject.
	List(ctx context.Context, subjectID string, pq PageQuery) (*PageResult[model.ContentAsset], error)

	// UpdatePageCount writes the lazily computed page count back onto the row.
	UpdatePageCount(ctx context.Context, id string, pageCount int) error

	// UpdateApproval sets the approval status of an asset.
	UpdateApproval(ctx context.Context, id string, status string) error

	// Delete removes an asset by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
