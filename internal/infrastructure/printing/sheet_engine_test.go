package printing

import (
	"context"
	"strings"
	"testing"

	domain "github.com/labelgen/backend/internal/domain/printing"
	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/labelgen/backend/internal/domain/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCell() domain.Cell {
	return domain.Cell{
		AccentColor:   "#0a3d62",
		TextAlign:     template.TextAlignLeft,
		ImagePosition: template.ImagePositionLeft,
		Halves: []domain.CellHalf{{
			Title:    "ACM-42",
			Subtitle: "Acme Industries",
			Rows: []domain.CellRow{{
				Fields: []domain.CellField{
					{Key: layout.FieldStockQuantity, Label: "Quantity", Value: "On Hand: 128", Width: layout.WidthHalf},
					{Key: layout.FieldBinLocation, Label: "Bin", Value: "Bin: A3-14", Width: layout.WidthHalf},
				},
			}},
		}},
	}
}

func TestSheetEngine_RenderSheets(t *testing.T) {
	engine, err := NewSheetEngine(nil)
	require.NoError(t, err)

	t.Run("renders a full document", func(t *testing.T) {
		html, err := engine.RenderSheets(context.Background(), &SheetDocument{
			Title: "labels",
			Pages: domain.Paginate([]domain.Cell{sampleCell(), sampleCell()}),
		})
		require.NoError(t, err)

		assert.Contains(t, html, "<!DOCTYPE html>")
		assert.Contains(t, html, "ACM-42")
		assert.Contains(t, html, "Bin: A3-14")
		assert.Contains(t, html, "#0a3d62")
		assert.Contains(t, html, "size: letter")
		// 2 filled cells plus 8 blank slots keep the grid shape
		assert.Equal(t, 8, strings.Count(html, `class="cell blank"`))
	})

	t.Run("pads every page independently", func(t *testing.T) {
		cells := make([]domain.Cell, 13)
		for i := range cells {
			cells[i] = sampleCell()
		}
		html, err := engine.RenderSheets(context.Background(), &SheetDocument{
			Pages: domain.Paginate(cells),
		})
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(html, `class="sheet"`))
		// second page holds 3 cells and 7 blanks
		assert.Equal(t, 7, strings.Count(html, `class="cell blank"`))
	})

	t.Run("empty document is rejected", func(t *testing.T) {
		_, err := engine.RenderSheets(context.Background(), &SheetDocument{})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("escapes label data", func(t *testing.T) {
		cell := sampleCell()
		cell.Halves[0].Title = `<script>alert("x")</script>`
		html, err := engine.RenderSheets(context.Background(), &SheetDocument{
			Pages: domain.Paginate([]domain.Cell{cell}),
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert")
	})
}

func TestSheetEngine_ImageResolution(t *testing.T) {
	engine, err := NewSheetEngine(nil)
	require.NoError(t, err)

	cell := sampleCell()
	cell.Halves[0].ImageURL = "https://example.com/part.png"

	t.Run("resolved image is embedded", func(t *testing.T) {
		html, err := engine.RenderSheets(context.Background(), &SheetDocument{
			Pages:  domain.Paginate([]domain.Cell{cell}),
			Images: map[string]string{"https://example.com/part.png": "data:image/png;base64,AAAA"},
		})
		require.NoError(t, err)
		// data: URIs must survive URL escaping into the src attribute
		assert.Contains(t, html, `src="data:image/png;base64,AAAA"`)
		assert.NotContains(t, html, "ZgotmplZ")
	})

	t.Run("unresolved image falls back to placeholder", func(t *testing.T) {
		html, err := engine.RenderSheets(context.Background(), &SheetDocument{
			Pages: domain.Paginate([]domain.Cell{cell}),
		})
		require.NoError(t, err)
		assert.Contains(t, html, PlaceholderDataURI)
		assert.NotContains(t, html, "ZgotmplZ")
	})
}

func TestSheetEngine_PreviewCell(t *testing.T) {
	engine, err := NewSheetEngine(nil)
	require.NoError(t, err)

	html, err := engine.PreviewCell(context.Background(), sampleCell())
	require.NoError(t, err)

	assert.Contains(t, html, "preview-frame")
	assert.Contains(t, html, "ACM-42")
	assert.Contains(t, html, "Acme Industries")
}
