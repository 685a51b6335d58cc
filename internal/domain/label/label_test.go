package label

import (
	"testing"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	singleCaps = layout.Capabilities{PartsPerLabel: 1, IncludeDescription: true}
	dualCaps   = layout.Capabilities{PartsPerLabel: 2, IncludeDescription: true}
)

func validLeft() PartDetails {
	return PartDetails{Manufacturer: "Acme Industries", PartNumber: "ACM-42-9000"}
}

func validRight() PartDetails {
	return PartDetails{Manufacturer: "Globex Corp", PartNumber: "GBX-77-100"}
}

func TestNewLabel(t *testing.T) {
	templateID := uuid.New()

	tests := []struct {
		name    string
		tmplID  uuid.UUID
		left    PartDetails
		right   PartDetails
		caps    layout.Capabilities
		wantErr bool
	}{
		{"valid single", templateID, validLeft(), PartDetails{}, singleCaps, false},
		{"valid dual", templateID, validLeft(), validRight(), dualCaps, false},
		{"nil template id", uuid.Nil, validLeft(), PartDetails{}, singleCaps, true},
		{"missing manufacturer", templateID, PartDetails{PartNumber: "X"}, PartDetails{}, singleCaps, true},
		{"missing part number", templateID, PartDetails{Manufacturer: "X"}, PartDetails{}, singleCaps, true},
		{"dual missing right part", templateID, validLeft(), PartDetails{}, dualCaps, true},
		{"single ignores right part", templateID, validLeft(), PartDetails{}, singleCaps, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLabel(tt.tmplID, tt.left, tt.right, 1, tt.caps)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tmplID, l.TemplateID)
		})
	}
}

func TestNewLabel_StockQuantity(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty allowed", "", false},
		{"zero", "0", false},
		{"positive integer", "128", false},
		{"negative rejected", "-5", true},
		{"non-numeric rejected", "a few", true},
		{"fractional rejected", "1.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left := validLeft()
			left.StockQuantity = tt.value
			_, err := NewLabel(uuid.New(), left, PartDetails{}, 1, singleCaps)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewLabel_NormalizesCopies(t *testing.T) {
	tests := []struct {
		name     string
		copies   int
		expected int
	}{
		{"zero becomes one", 0, 1},
		{"negative becomes one", -3, 1},
		{"positive kept", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLabel(uuid.New(), validLeft(), PartDetails{}, tt.copies, singleCaps)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, l.DefaultCopies)
		})
	}
}

func TestNewLabel_TrimsFields(t *testing.T) {
	left := PartDetails{
		Manufacturer: "  Acme  ",
		PartNumber:   " ACM-1 ",
		BinLocation:  " A3-14 ",
	}
	l, err := NewLabel(uuid.New(), left, PartDetails{}, 1, singleCaps)
	require.NoError(t, err)
	assert.Equal(t, "Acme", l.Left.Manufacturer)
	assert.Equal(t, "ACM-1", l.Left.PartNumber)
	assert.Equal(t, "A3-14", l.Left.BinLocation)
}

func TestLabel_Update(t *testing.T) {
	l, err := NewLabel(uuid.New(), validLeft(), PartDetails{}, 2, singleCaps)
	require.NoError(t, err)
	version := l.GetVersion()

	updated := validLeft()
	updated.Notes = "fragile"
	require.NoError(t, l.Update(updated, PartDetails{}, 3, singleCaps))
	assert.Equal(t, "fragile", l.Left.Notes)
	assert.Equal(t, 3, l.DefaultCopies)
	assert.Equal(t, version+1, l.GetVersion())

	// a failed update leaves the label untouched
	err = l.Update(PartDetails{}, PartDetails{}, 1, singleCaps)
	assert.Error(t, err)
	assert.Equal(t, "fragile", l.Left.Notes)
	assert.Equal(t, 3, l.DefaultCopies)
}

func TestPartDetails_Value(t *testing.T) {
	part := PartDetails{
		Manufacturer:  "Acme",
		PartNumber:    "ACM-1",
		Description:   "widget",
		StockQuantity: "128",
		BinLocation:   "A3-14",
		Notes:         "n/a",
	}

	tests := []struct {
		key      layout.FieldKey
		expected string
	}{
		{layout.FieldManufacturer, "Acme"},
		{layout.FieldPartNumber, "ACM-1"},
		{layout.FieldDescription, "widget"},
		{layout.FieldStockQuantity, "128"},
		{layout.FieldBinLocation, "A3-14"},
		{layout.FieldNotes, "n/a"},
		{layout.FieldManufacturerRight, ""}, // right keys resolve via BaseKey first
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.expected, part.Value(tt.key))
		})
	}
}

func TestPartDetails_IsEmpty(t *testing.T) {
	assert.True(t, PartDetails{}.IsEmpty())
	assert.True(t, PartDetails{Notes: "   "}.IsEmpty())
	assert.False(t, PartDetails{BinLocation: "A1"}.IsEmpty())
}

func TestLabel_Part(t *testing.T) {
	l, err := NewLabel(uuid.New(), validLeft(), validRight(), 1, dualCaps)
	require.NoError(t, err)
	assert.Equal(t, "Acme Industries", l.Part(false).Manufacturer)
	assert.Equal(t, "Globex Corp", l.Part(true).Manufacturer)
}
