package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLabelRepository implements label.Repository using GORM
type GormLabelRepository struct {
	db *gorm.DB
}

// NewGormLabelRepository creates a new GormLabelRepository
func NewGormLabelRepository(db *gorm.DB) *GormLabelRepository {
	return &GormLabelRepository{db: db}
}

// FindByID finds a label by its ID
func (r *GormLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*label.Label, error) {
	var model models.LabelModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all labels matching the filter
func (r *GormLabelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]label.Label, error) {
	var rows []models.LabelModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LabelModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLabels(rows), nil
}

// FindByTemplate finds all labels bound to a template
func (r *GormLabelRepository) FindByTemplate(ctx context.Context, templateID uuid.UUID) ([]label.Label, error) {
	var rows []models.LabelModel
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLabels(rows), nil
}

// FindByIDs finds multiple labels by their IDs. Missing IDs are simply
// absent from the result.
func (r *GormLabelRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]label.Label, error) {
	if len(ids) == 0 {
		return []label.Label{}, nil
	}

	var rows []models.LabelModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainLabels(rows), nil
}

// Save creates or updates a label
func (r *GormLabelRepository) Save(ctx context.Context, lbl *label.Label) error {
	return r.db.WithContext(ctx).Save(models.LabelModelFromDomain(lbl)).Error
}

// Delete deletes a label
func (r *GormLabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LabelModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts labels matching the filter
func (r *GormLabelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.LabelModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByTemplate counts labels bound to a template
func (r *GormLabelRepository) CountByTemplate(ctx context.Context, templateID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LabelModel{}).
		Where("template_id = ?", templateID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormLabelRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, LabelSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLabelRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(left_manufacturer) LIKE ? OR LOWER(left_part_number) LIKE ? OR "+
				"LOWER(right_manufacturer) LIKE ? OR LOWER(right_part_number) LIKE ? OR "+
				"LOWER(left_bin_location) LIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "template_id":
			query = query.Where("template_id = ?", value)
		case "bin_location":
			query = query.Where("left_bin_location = ? OR right_bin_location = ?", value, value)
		}
	}

	return query
}

func toDomainLabels(rows []models.LabelModel) []label.Label {
	labels := make([]label.Label, len(rows))
	for i := range rows {
		labels[i] = *rows[i].ToDomain()
	}
	return labels
}

// Ensure GormLabelRepository implements label.Repository
var _ label.Repository = (*GormLabelRepository)(nil)
