package layout

import "strings"

// FieldKey identifies a printable label field in the fixed catalog.
type FieldKey string

const (
	FieldManufacturer       FieldKey = "manufacturer"
	FieldPartNumber         FieldKey = "part_number"
	FieldDescription        FieldKey = "description"
	FieldStockQuantity      FieldKey = "stock_quantity"
	FieldBinLocation        FieldKey = "bin_location"
	FieldNotes              FieldKey = "notes"
	FieldManufacturerRight  FieldKey = "manufacturer_right"
	FieldPartNumberRight    FieldKey = "part_number_right"
	FieldDescriptionRight   FieldKey = "description_right"
	FieldStockQuantityRight FieldKey = "stock_quantity_right"
	FieldBinLocationRight   FieldKey = "bin_location_right"
	FieldNotesRight         FieldKey = "notes_right"
)

// rightSuffix marks the field keys that read from a label's right half.
const rightSuffix = "_right"

// fieldMeta describes one catalog entry.
type fieldMeta struct {
	Label                string
	Sample               string
	RequiresDual         bool
	DescriptionDependent bool
}

// fieldCatalog is the fixed set of printable fields. Keys outside this
// catalog are never accepted by the normalizer.
var fieldCatalog = map[FieldKey]fieldMeta{
	FieldManufacturer:       {Label: "Manufacturer", Sample: "Acme Industries"},
	FieldPartNumber:         {Label: "Part number", Sample: "ACM-42-9000"},
	FieldDescription:        {Label: "Description", Sample: "Heavy duty fastener", DescriptionDependent: true},
	FieldStockQuantity:      {Label: "Quantity", Sample: "128"},
	FieldBinLocation:        {Label: "Bin", Sample: "A3-14"},
	FieldNotes:              {Label: "Notes", Sample: "Handle with care"},
	FieldManufacturerRight:  {Label: "Manufacturer (right)", Sample: "Globex Corp", RequiresDual: true},
	FieldPartNumberRight:    {Label: "Part number (right)", Sample: "GBX-77-100", RequiresDual: true},
	FieldDescriptionRight:   {Label: "Description (right)", Sample: "Right side description", RequiresDual: true, DescriptionDependent: true},
	FieldStockQuantityRight: {Label: "Quantity (right)", Sample: "64", RequiresDual: true},
	FieldBinLocationRight:   {Label: "Bin (right)", Sample: "B2-07", RequiresDual: true},
	FieldNotesRight:         {Label: "Notes (right)", Sample: "Secondary notes", RequiresDual: true},
}

// fieldOrder is the stable catalog iteration order.
var fieldOrder = []FieldKey{
	FieldManufacturer,
	FieldPartNumber,
	FieldDescription,
	FieldStockQuantity,
	FieldBinLocation,
	FieldNotes,
	FieldManufacturerRight,
	FieldPartNumberRight,
	FieldDescriptionRight,
	FieldStockQuantityRight,
	FieldBinLocationRight,
	FieldNotesRight,
}

// AllFieldKeys returns every catalog key in stable order.
func AllFieldKeys() []FieldKey {
	keys := make([]FieldKey, len(fieldOrder))
	copy(keys, fieldOrder)
	return keys
}

// ParseFieldKey returns the catalog key for s, or false if s is unknown.
func ParseFieldKey(s string) (FieldKey, bool) {
	key := FieldKey(strings.TrimSpace(s))
	_, ok := fieldCatalog[key]
	return key, ok
}

// IsValid reports whether the key belongs to the catalog.
func (k FieldKey) IsValid() bool {
	_, ok := fieldCatalog[k]
	return ok
}

// String returns the string representation of the field key.
func (k FieldKey) String() string {
	return string(k)
}

// RequiresDual reports whether the key only applies to dual-part templates.
func (k FieldKey) RequiresDual() bool {
	return fieldCatalog[k].RequiresDual
}

// DependsOnDescription reports whether the key is gated by the
// include-description capability.
func (k FieldKey) DependsOnDescription() bool {
	return fieldCatalog[k].DescriptionDependent
}

// DisplayLabel returns the human-readable label for the key.
// Right-side keys share the base field's label on a printed cell,
// so callers rendering a half use BaseKey().DisplayLabel().
func (k FieldKey) DisplayLabel() string {
	if meta, ok := fieldCatalog[k]; ok {
		return meta.Label
	}
	return string(k)
}

// SampleValue returns a representative value used by template previews.
func (k FieldKey) SampleValue() string {
	return fieldCatalog[k].Sample
}

// IsRightSide reports whether the key reads from a label's right half.
func (k FieldKey) IsRightSide() bool {
	return strings.HasSuffix(string(k), rightSuffix)
}

// BaseKey strips the right-side suffix, mapping a right-half key onto
// the field it mirrors. Left-side keys are returned unchanged.
func (k FieldKey) BaseKey() FieldKey {
	if k.IsRightSide() {
		return FieldKey(strings.TrimSuffix(string(k), rightSuffix))
	}
	return k
}

// Capabilities are the template flags that gate which catalog keys are legal.
type Capabilities struct {
	PartsPerLabel      int
	IncludeDescription bool
}

// Allows reports whether the key is legal under these capabilities.
func (c Capabilities) Allows(key FieldKey) bool {
	meta, ok := fieldCatalog[key]
	if !ok {
		return false
	}
	if meta.RequiresDual && c.PartsPerLabel != 2 {
		return false
	}
	if meta.DescriptionDependent && !c.IncludeDescription {
		return false
	}
	return true
}

// AllowedKeys returns the catalog keys legal under these capabilities,
// in stable catalog order.
func (c Capabilities) AllowedKeys() []FieldKey {
	keys := make([]FieldKey, 0, len(fieldOrder))
	for _, key := range fieldOrder {
		if c.Allows(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
