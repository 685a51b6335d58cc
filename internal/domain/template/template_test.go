package template

import (
	"testing"

	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLabelTemplate(t *testing.T) {
	tests := []struct {
		name          string
		templateName  string
		partsPerLabel int
		wantErr       bool
	}{
		{"valid single part", "Classic Shelf", 1, false},
		{"valid dual part", "Split Bin", 2, false},
		{"empty name", "", 1, true},
		{"whitespace name", "   ", 1, true},
		{"zero parts", "Bad", 0, true},
		{"three parts", "Bad", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := NewLabelTemplate(tt.templateName, "desc", tt.partsPerLabel, true)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, tmpl)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.templateName, tmpl.Name)
			assert.Equal(t, tt.partsPerLabel, tmpl.PartsPerLabel)
			assert.NotEqual(t, "", tmpl.GetID().String())
		})
	}
}

func TestNewLabelTemplate_Defaults(t *testing.T) {
	tmpl, err := NewLabelTemplate("Classic Shelf", "", 1, true)
	require.NoError(t, err)

	assert.Equal(t, DefaultAccentColor, tmpl.AccentColor)
	assert.Equal(t, ImagePositionLeft, tmpl.ImagePosition)
	assert.Equal(t, TextAlignLeft, tmpl.TextAlign)
	assert.True(t, tmpl.IncludeDescription)
	assert.Len(t, tmpl.Layout.Blocks, 6)
	assert.Equal(t, "{value_upper}", tmpl.FieldFormats["part_number"])
	assert.Equal(t, 1, tmpl.GetVersion())
}

func TestLabelTemplate_SetAccentColor(t *testing.T) {
	tests := []struct {
		name     string
		color    string
		expected string
		wantErr  bool
	}{
		{"six digit hex", "#B33939", "#b33939", false},
		{"three digit hex", "#FA0", "#fa0", false},
		{"empty restores default", "", DefaultAccentColor, false},
		{"missing hash", "b33939", "", true},
		{"not hex", "#zzzzzz", "", true},
		{"named color", "red", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := NewLabelTemplate("Poster", "", 1, true)
			require.NoError(t, err)

			err = tmpl.SetAccentColor(tt.color)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, DefaultAccentColor, tmpl.AccentColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tmpl.AccentColor)
		})
	}
}

func TestLabelTemplate_SetImagePosition(t *testing.T) {
	tmpl, err := NewLabelTemplate("Poster", "", 1, true)
	require.NoError(t, err)

	require.NoError(t, tmpl.SetImagePosition(ImagePositionTop))
	assert.Equal(t, ImagePositionTop, tmpl.ImagePosition)

	assert.Error(t, tmpl.SetImagePosition("diagonal"))
	assert.Equal(t, ImagePositionTop, tmpl.ImagePosition)
}

func TestLabelTemplate_SetTextAlign(t *testing.T) {
	tmpl, err := NewLabelTemplate("Poster", "", 1, true)
	require.NoError(t, err)

	require.NoError(t, tmpl.SetTextAlign(TextAlignCenter))
	assert.Equal(t, TextAlignCenter, tmpl.TextAlign)

	assert.Error(t, tmpl.SetTextAlign("justify"))
}

func TestLabelTemplate_SetCapabilities_RenormalizesLayout(t *testing.T) {
	tmpl, err := NewLabelTemplate("Split Bin", "", 2, true)
	require.NoError(t, err)
	assert.Len(t, tmpl.Layout.Blocks, 12)

	// Narrowing to a single part drops every right-side block; the survivors
	// stay in place rather than resetting to defaults.
	require.NoError(t, tmpl.SetCapabilities(1, true))
	assert.Len(t, tmpl.Layout.Blocks, 6)
	for _, block := range tmpl.Layout.Blocks {
		assert.False(t, block.Key.IsRightSide())
	}

	require.NoError(t, tmpl.SetCapabilities(1, false))
	for _, block := range tmpl.Layout.Blocks {
		assert.False(t, block.Key.DependsOnDescription())
	}
	_, hasDescription := tmpl.FieldFormats["description"]
	assert.False(t, hasDescription)
}

func TestLabelTemplate_SetLayout(t *testing.T) {
	tmpl, err := NewLabelTemplate("Classic Shelf", "", 1, true)
	require.NoError(t, err)

	tmpl.SetLayout(layout.Config{Blocks: []layout.Block{
		{Key: layout.FieldPartNumber, Width: layout.WidthFull},
		{Key: layout.FieldManufacturerRight, Width: layout.WidthHalf},
	}})
	require.Len(t, tmpl.Layout.Blocks, 1)
	assert.Equal(t, layout.FieldPartNumber, tmpl.Layout.Blocks[0].Key)

	// rejecting everything falls back to defaults
	tmpl.SetLayout(layout.Config{Blocks: []layout.Block{
		{Key: "bogus", Width: layout.WidthFull},
	}})
	assert.Len(t, tmpl.Layout.Blocks, 6)
}

func TestLabelTemplate_SetFieldFormats(t *testing.T) {
	tmpl, err := NewLabelTemplate("Classic Shelf", "", 1, true)
	require.NoError(t, err)

	tmpl.SetFieldFormats(map[string]string{
		"bin_location":  "Shelf {value}",
		"serial_number": "{value}",
	})
	assert.Equal(t, "Shelf {value}", tmpl.FieldFormats["bin_location"])
	_, ok := tmpl.FieldFormats["serial_number"]
	assert.False(t, ok)
	// untouched keys keep their defaults
	assert.Equal(t, "{value_upper}", tmpl.FieldFormats["part_number"])
}

func TestLabelTemplate_Update(t *testing.T) {
	tmpl, err := NewLabelTemplate("Classic Shelf", "old", 1, true)
	require.NoError(t, err)
	version := tmpl.GetVersion()

	require.NoError(t, tmpl.Update("  Poster  ", " new desc "))
	assert.Equal(t, "Poster", tmpl.Name)
	assert.Equal(t, "new desc", tmpl.Description)
	assert.Equal(t, version+1, tmpl.GetVersion())

	assert.Error(t, tmpl.Update("", "x"))
}

func TestLabelTemplate_IsDual(t *testing.T) {
	single, err := NewLabelTemplate("A", "", 1, true)
	require.NoError(t, err)
	dual, err := NewLabelTemplate("B", "", 2, true)
	require.NoError(t, err)

	assert.False(t, single.IsDual())
	assert.True(t, dual.IsDual())
}
