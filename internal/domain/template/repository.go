package template

import (
	"context"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/shared"
)

// Repository defines the interface for label template persistence
type Repository interface {
	// FindByID finds a template by ID
	FindByID(ctx context.Context, id uuid.UUID) (*LabelTemplate, error)

	// FindByName finds a template by its unique name
	// Returns nil if no template with the name exists
	FindByName(ctx context.Context, name string) (*LabelTemplate, error)

	// FindAll finds all templates with optional filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]LabelTemplate, error)

	// Save saves a template (insert or update)
	Save(ctx context.Context, template *LabelTemplate) error

	// Delete deletes a template by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total count of templates matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a template with the given name exists,
	// optionally excluding one ID (for rename checks)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}
