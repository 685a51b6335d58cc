package label

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/labelgen/backend/internal/domain/shared"
)

// PartDetails holds the printable data for one part on a label.
type PartDetails struct {
	Manufacturer  string
	PartNumber    string
	Description   string
	StockQuantity string
	BinLocation   string
	ImageURL      string
	Notes         string
}

// IsEmpty returns true if the part carries no printable data at all
func (p PartDetails) IsEmpty() bool {
	return strings.TrimSpace(p.Manufacturer) == "" &&
		strings.TrimSpace(p.PartNumber) == "" &&
		strings.TrimSpace(p.Description) == "" &&
		strings.TrimSpace(p.StockQuantity) == "" &&
		strings.TrimSpace(p.BinLocation) == "" &&
		strings.TrimSpace(p.ImageURL) == "" &&
		strings.TrimSpace(p.Notes) == ""
}

// Value returns the raw value for a base field key. Right-side keys must
// be resolved to their base key by the caller before lookup.
func (p PartDetails) Value(key layout.FieldKey) string {
	switch key {
	case layout.FieldManufacturer:
		return p.Manufacturer
	case layout.FieldPartNumber:
		return p.PartNumber
	case layout.FieldDescription:
		return p.Description
	case layout.FieldStockQuantity:
		return p.StockQuantity
	case layout.FieldBinLocation:
		return p.BinLocation
	case layout.FieldNotes:
		return p.Notes
	default:
		return ""
	}
}

func (p PartDetails) trimmed() PartDetails {
	return PartDetails{
		Manufacturer:  strings.TrimSpace(p.Manufacturer),
		PartNumber:    strings.TrimSpace(p.PartNumber),
		Description:   strings.TrimSpace(p.Description),
		StockQuantity: strings.TrimSpace(p.StockQuantity),
		BinLocation:   strings.TrimSpace(p.BinLocation),
		ImageURL:      strings.TrimSpace(p.ImageURL),
		Notes:         strings.TrimSpace(p.Notes),
	}
}

// Label is one printable part label bound to a template. Dual-part
// templates read both the left and right part details; single-part
// templates only read the left.
type Label struct {
	shared.BaseAggregateRoot
	TemplateID    uuid.UUID   // Template this label renders with
	Left          PartDetails // Primary part data
	Right         PartDetails // Secondary part data (dual templates only)
	DefaultCopies int         // Copies preselected when queued for printing
}

// NewLabel creates a new label for a template. Capabilities come from the
// template the label is bound to.
func NewLabel(templateID uuid.UUID, left, right PartDetails, defaultCopies int, caps layout.Capabilities) (*Label, error) {
	if templateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TEMPLATE_ID", "Label must reference a template")
	}

	l := &Label{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TemplateID:        templateID,
		Left:              left.trimmed(),
		Right:             right.trimmed(),
		DefaultCopies:     normalizeCopies(defaultCopies),
	}

	if err := l.Validate(caps); err != nil {
		return nil, err
	}

	return l, nil
}

// Update replaces the label's part data and default copy count
func (l *Label) Update(left, right PartDetails, defaultCopies int, caps layout.Capabilities) error {
	candidate := *l
	candidate.Left = left.trimmed()
	candidate.Right = right.trimmed()
	candidate.DefaultCopies = normalizeCopies(defaultCopies)

	if err := candidate.Validate(caps); err != nil {
		return err
	}

	l.Left = candidate.Left
	l.Right = candidate.Right
	l.DefaultCopies = candidate.DefaultCopies
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// Validate checks the label's part data against the template capabilities.
// The left part always needs a manufacturer and part number; the right
// part needs them too when the template prints two parts per cell.
func (l *Label) Validate(caps layout.Capabilities) error {
	if err := validatePart("left", l.Left); err != nil {
		return err
	}
	if caps.PartsPerLabel == 2 {
		if err := validatePart("right", l.Right); err != nil {
			return err
		}
	}
	return nil
}

// Part returns the part details for a side. Right-side keys read the
// right part on dual templates.
func (l *Label) Part(rightSide bool) PartDetails {
	if rightSide {
		return l.Right
	}
	return l.Left
}

func normalizeCopies(copies int) int {
	if copies < 1 {
		return 1
	}
	return copies
}

func validatePart(side string, part PartDetails) error {
	if part.Manufacturer == "" {
		return shared.NewDomainError("INVALID_PART", "The "+side+" part requires a manufacturer")
	}
	if part.PartNumber == "" {
		return shared.NewDomainError("INVALID_PART", "The "+side+" part requires a part number")
	}
	if part.StockQuantity != "" && !isNonNegativeInt(part.StockQuantity) {
		return shared.NewDomainError("INVALID_PART",
			"The "+side+" part stock quantity must be a non-negative integer")
	}
	return nil
}

func isNonNegativeInt(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
