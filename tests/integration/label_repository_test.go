package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/domain/template"
	"github.com/labelgen/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLabelRepository_Integration tests the label repository against a
// real PostgreSQL database
func TestLabelRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	templateRepo := persistence.NewGormTemplateRepository(testDB.DB)
	labelRepo := persistence.NewGormLabelRepository(testDB.DB)
	ctx := context.Background()

	tmpl, err := template.NewLabelTemplate("Classic Shelf", "", 1, true)
	require.NoError(t, err)
	require.NoError(t, templateRepo.Save(ctx, tmpl))

	newLabel := func(t *testing.T, partNumber string) *label.Label {
		t.Helper()
		lbl, err := label.NewLabel(tmpl.ID, label.PartDetails{
			Manufacturer:  "Acme",
			PartNumber:    partNumber,
			StockQuantity: "40",
			BinLocation:   "A3-14",
		}, label.PartDetails{}, 2, tmpl.Capabilities())
		require.NoError(t, err)
		return lbl
	}

	t.Run("Save and FindByID", func(t *testing.T) {
		lbl := newLabel(t, "ACM-1")
		require.NoError(t, labelRepo.Save(ctx, lbl))

		found, err := labelRepo.FindByID(ctx, lbl.ID)
		require.NoError(t, err)
		assert.Equal(t, lbl.ID, found.ID)
		assert.Equal(t, tmpl.ID, found.TemplateID)
		assert.Equal(t, "ACM-1", found.Left.PartNumber)
		assert.Equal(t, 2, found.DefaultCopies)
	})

	t.Run("Save as update persists part changes", func(t *testing.T) {
		lbl := newLabel(t, "ACM-2")
		require.NoError(t, labelRepo.Save(ctx, lbl))

		updated := lbl.Left
		updated.BinLocation = "B1-02"
		require.NoError(t, lbl.Update(updated, label.PartDetails{}, 5, tmpl.Capabilities()))
		require.NoError(t, labelRepo.Save(ctx, lbl))

		found, err := labelRepo.FindByID(ctx, lbl.ID)
		require.NoError(t, err)
		assert.Equal(t, "B1-02", found.Left.BinLocation)
		assert.Equal(t, 5, found.DefaultCopies)
	})

	t.Run("FindByIDs skips missing ids", func(t *testing.T) {
		lbl := newLabel(t, "ACM-3")
		require.NoError(t, labelRepo.Save(ctx, lbl))

		found, err := labelRepo.FindByIDs(ctx, []uuid.UUID{lbl.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, lbl.ID, found[0].ID)
	})

	t.Run("FindByTemplate and CountByTemplate", func(t *testing.T) {
		other, err := template.NewLabelTemplate("Other Template", "", 1, true)
		require.NoError(t, err)
		require.NoError(t, templateRepo.Save(ctx, other))

		labels, err := labelRepo.FindByTemplate(ctx, tmpl.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, labels)
		for _, l := range labels {
			assert.Equal(t, tmpl.ID, l.TemplateID)
		}

		count, err := labelRepo.CountByTemplate(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("FindAll filters by template_id", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["template_id"] = tmpl.ID

		labels, err := labelRepo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.NotEmpty(t, labels)
		for _, l := range labels {
			assert.Equal(t, tmpl.ID, l.TemplateID)
		}
	})

	t.Run("template deletion is blocked while labels reference it", func(t *testing.T) {
		assert.Error(t, templateRepo.Delete(ctx, tmpl.ID))
	})

	t.Run("Delete", func(t *testing.T) {
		lbl := newLabel(t, "ACM-9")
		require.NoError(t, labelRepo.Save(ctx, lbl))

		require.NoError(t, labelRepo.Delete(ctx, lbl.ID))
		_, err := labelRepo.FindByID(ctx, lbl.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
