package label

import (
	"context"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/shared"
)

// Repository defines the interface for label persistence
type Repository interface {
	// FindByID finds a label by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Label, error)

	// FindAll finds all labels with optional filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Label, error)

	// FindByTemplate finds all labels bound to a template
	FindByTemplate(ctx context.Context, templateID uuid.UUID) ([]Label, error)

	// FindByIDs finds labels for a set of IDs. Missing IDs are simply
	// absent from the result; the caller decides whether that is an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Label, error)

	// Save saves a label (insert or update)
	Save(ctx context.Context, label *Label) error

	// Delete deletes a label by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total count of labels matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByTemplate counts the labels bound to a template.
	// Used to reject template deletion while labels still reference it.
	CountByTemplate(ctx context.Context, templateID uuid.UUID) (int64, error)
}
