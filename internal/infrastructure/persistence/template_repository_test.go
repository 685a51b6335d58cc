package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/domain/template"
	"github.com/labelgen/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TemplateModel{}, &models.LabelModel{}))
	return db
}

func newTestTemplate(t *testing.T, name string) *template.LabelTemplate {
	t.Helper()
	tmpl, err := template.NewLabelTemplate(name, "test template", 1, true)
	require.NoError(t, err)
	return tmpl
}

func TestGormTemplateRepository_SaveAndFind(t *testing.T) {
	repo := NewGormTemplateRepository(newTestDB(t))
	ctx := context.Background()

	tmpl := newTestTemplate(t, "Classic Shelf")
	require.NoError(t, tmpl.SetAccentColor("#b33939"))
	require.NoError(t, repo.Save(ctx, tmpl))

	t.Run("FindByID round trips the aggregate", func(t *testing.T) {
		found, err := repo.FindByID(ctx, tmpl.ID)
		require.NoError(t, err)

		assert.Equal(t, tmpl.ID, found.ID)
		assert.Equal(t, "Classic Shelf", found.Name)
		assert.Equal(t, "#b33939", found.AccentColor)
		assert.Equal(t, 1, found.PartsPerLabel)
		assert.True(t, found.IncludeDescription)
		assert.Equal(t, tmpl.Layout.Keys(), found.Layout.Keys())
		assert.Equal(t, tmpl.FieldFormats, found.FieldFormats)
	})

	t.Run("FindByName matches exact names", func(t *testing.T) {
		found, err := repo.FindByName(ctx, "Classic Shelf")
		require.NoError(t, err)
		assert.Equal(t, tmpl.ID, found.ID)

		_, err = repo.FindByName(ctx, "No Such Template")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByID returns ErrNotFound for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormTemplateRepository_StoredLayoutIsNormalized(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTemplateRepository(db)
	ctx := context.Background()

	// Simulate a row written by an older build with a stale layout key
	model := models.TemplateModelFromDomain(newTestTemplate(t, "Legacy"))
	model.Layout = `{"version":1,"blocks":[{"key":"manufacturer","width":"full"},{"key":"no_such_key","width":"half"}]}`
	require.NoError(t, db.Save(model).Error)

	found, err := repo.FindByID(ctx, model.ID)
	require.NoError(t, err)

	keys := found.Layout.Keys()
	assert.Contains(t, keys, layout.FieldManufacturer)
	assert.NotContains(t, keys, layout.FieldKey("no_such_key"))
}

func TestGormTemplateRepository_FindAll(t *testing.T) {
	repo := NewGormTemplateRepository(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Classic Shelf", "Poster", "Dual Bin"} {
		require.NoError(t, repo.Save(ctx, newTestTemplate(t, name)))
	}

	t.Run("lists everything", func(t *testing.T) {
		all, err := repo.FindAll(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "poster"

		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Poster", found[0].Name)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 2
		filter.OrderBy = "name"
		filter.OrderDir = "asc"

		page1, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, page1, 2)

		filter.Page = 2
		page2, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, page2, 1)
	})

	t.Run("rejects unknown sort fields", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.OrderBy = "name; DROP TABLE label_templates"

		// falls back to the default sort instead of erroring
		all, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("count honors filters", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["parts_per_label"] = 1

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestGormTemplateRepository_ExistsByName(t *testing.T) {
	repo := NewGormTemplateRepository(newTestDB(t))
	ctx := context.Background()

	tmpl := newTestTemplate(t, "Classic Shelf")
	require.NoError(t, repo.Save(ctx, tmpl))

	exists, err := repo.ExistsByName(ctx, "Classic Shelf", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "Classic Shelf", &tmpl.ID)
	require.NoError(t, err)
	assert.False(t, exists, "excluding the owner id should report no conflict")

	exists, err = repo.ExistsByName(ctx, "Other", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormTemplateRepository_Delete(t *testing.T) {
	repo := NewGormTemplateRepository(newTestDB(t))
	ctx := context.Background()

	tmpl := newTestTemplate(t, "Classic Shelf")
	require.NoError(t, repo.Save(ctx, tmpl))

	require.NoError(t, repo.Delete(ctx, tmpl.ID))
	_, err := repo.FindByID(ctx, tmpl.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, tmpl.ID), shared.ErrNotFound)
}

func TestGormTemplateRepository_Update(t *testing.T) {
	repo := NewGormTemplateRepository(newTestDB(t))
	ctx := context.Background()

	tmpl := newTestTemplate(t, "Classic Shelf")
	require.NoError(t, repo.Save(ctx, tmpl))

	require.NoError(t, tmpl.SetCapabilities(2, true))
	require.NoError(t, repo.Save(ctx, tmpl))

	found, err := repo.FindByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.PartsPerLabel)
	assert.Equal(t, tmpl.Version, found.Version)
	assert.Len(t, found.Layout.Keys(), 12)
}
