package template

import (
	"regexp"
	"strings"
	"time"

	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/labelgen/backend/internal/domain/shared"
)

// DefaultAccentColor is applied when a template does not specify one.
const DefaultAccentColor = "#0a3d62"

var accentColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// LabelTemplate is a reusable visual definition shared by many labels.
// It is the aggregate root for template-related operations.
type LabelTemplate struct {
	shared.BaseAggregateRoot
	Name               string            // Unique template name
	Description        string            // Optional free-form description
	AccentColor        string            // Hex color for label headers
	ImagePosition      ImagePosition     // Where the part image sits within a half
	TextAlign          TextAlign         // Horizontal alignment of field text
	PartsPerLabel      int               // 1 or 2 parts per printed cell
	IncludeDescription bool              // Whether description fields may appear
	Layout             layout.Config     // Normalized ordered block list
	FieldFormats       map[string]string // Normalized per-field format strings
}

// NewLabelTemplate creates a new label template. The layout and field
// formats are normalized against the template's capabilities, so the
// stored aggregate is always canonical.
func NewLabelTemplate(
	name string,
	description string,
	partsPerLabel int,
	includeDescription bool,
) (*LabelTemplate, error) {
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if err := validatePartsPerLabel(partsPerLabel); err != nil {
		return nil, err
	}

	t := &LabelTemplate{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Name:               strings.TrimSpace(name),
		Description:        strings.TrimSpace(description),
		AccentColor:        DefaultAccentColor,
		ImagePosition:      ImagePositionLeft,
		TextAlign:          TextAlignLeft,
		PartsPerLabel:      partsPerLabel,
		IncludeDescription: includeDescription,
	}
	t.Layout = layout.DefaultConfig(t.Capabilities())
	t.FieldFormats = layout.NormalizeFormats(nil, t.Capabilities())

	return t, nil
}

// Capabilities returns the flags that gate which field keys are legal
// on this template.
func (t *LabelTemplate) Capabilities() layout.Capabilities {
	return layout.Capabilities{
		PartsPerLabel:      t.PartsPerLabel,
		IncludeDescription: t.IncludeDescription,
	}
}

// Update updates the template's basic information
func (t *LabelTemplate) Update(name, description string) error {
	if err := validateTemplateName(name); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(name)
	t.Description = strings.TrimSpace(description)
	t.touch()

	return nil
}

// SetAccentColor sets the header accent color. An empty value restores
// the default.
func (t *LabelTemplate) SetAccentColor(color string) error {
	trimmed := strings.TrimSpace(color)
	if trimmed == "" {
		trimmed = DefaultAccentColor
	}
	if !accentColorPattern.MatchString(trimmed) {
		return shared.NewDomainError("INVALID_ACCENT_COLOR", "Accent color must be a hex value like #0a3d62")
	}

	t.AccentColor = strings.ToLower(trimmed)
	t.touch()

	return nil
}

// SetImagePosition sets where the part image sits within a label half
func (t *LabelTemplate) SetImagePosition(position ImagePosition) error {
	if !position.IsValid() {
		return shared.NewDomainError("INVALID_IMAGE_POSITION", "Invalid image position value")
	}

	t.ImagePosition = position
	t.touch()

	return nil
}

// SetTextAlign sets the horizontal alignment of field text
func (t *LabelTemplate) SetTextAlign(align TextAlign) error {
	if !align.IsValid() {
		return shared.NewDomainError("INVALID_TEXT_ALIGN", "Invalid text alignment value")
	}

	t.TextAlign = align
	t.touch()

	return nil
}

// SetCapabilities changes the parts-per-label count and description flag.
// The stored layout and field formats are re-normalized so blocks that
// the new capabilities no longer allow are dropped.
func (t *LabelTemplate) SetCapabilities(partsPerLabel int, includeDescription bool) error {
	if err := validatePartsPerLabel(partsPerLabel); err != nil {
		return err
	}

	t.PartsPerLabel = partsPerLabel
	t.IncludeDescription = includeDescription
	t.Layout = layout.Normalize(t.Layout, t.Capabilities())
	t.FieldFormats = layout.NormalizeFormats(t.FieldFormats, t.Capabilities())
	t.touch()

	return nil
}

// SetLayout replaces the block list. The input is normalized; an empty
// or fully rejected list falls back to the built-in defaults.
func (t *LabelTemplate) SetLayout(cfg layout.Config) {
	t.Layout = layout.Normalize(cfg, t.Capabilities())
	t.touch()
}

// SetFieldFormats replaces the per-field format strings. Unknown keys
// are dropped and missing entries resolve to the built-in defaults.
func (t *LabelTemplate) SetFieldFormats(formats map[string]string) {
	t.FieldFormats = layout.NormalizeFormats(formats, t.Capabilities())
	t.touch()
}

// IsDual returns true if the template prints two parts per cell
func (t *LabelTemplate) IsDual() bool {
	return t.PartsPerLabel == 2
}

func (t *LabelTemplate) touch() {
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Validation functions

func validateTemplateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot exceed 100 characters")
	}
	return nil
}

func validatePartsPerLabel(partsPerLabel int) error {
	if partsPerLabel != 1 && partsPerLabel != 2 {
		return shared.NewDomainError("INVALID_PARTS_PER_LABEL", "Parts per label must be 1 or 2")
	}
	return nil
}
