package template

// ImagePosition controls where the part image sits within a label half.
type ImagePosition string

const (
	ImagePositionLeft  ImagePosition = "left"
	ImagePositionRight ImagePosition = "right"
	ImagePositionTop   ImagePosition = "top"
	ImagePositionNone  ImagePosition = "none"
)

// IsValid checks if the ImagePosition is a valid value
func (p ImagePosition) IsValid() bool {
	switch p {
	case ImagePositionLeft, ImagePositionRight, ImagePositionTop, ImagePositionNone:
		return true
	}
	return false
}

// String returns the string representation of ImagePosition
func (p ImagePosition) String() string {
	return string(p)
}

// ShowsImage returns true if the position renders the part image at all
func (p ImagePosition) ShowsImage() bool {
	return p != ImagePositionNone
}

// AllImagePositions returns all valid ImagePosition values
func AllImagePositions() []ImagePosition {
	return []ImagePosition{ImagePositionLeft, ImagePositionRight, ImagePositionTop, ImagePositionNone}
}

// TextAlign controls the horizontal alignment of field text on a label.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// IsValid checks if the TextAlign is a valid value
func (a TextAlign) IsValid() bool {
	switch a {
	case TextAlignLeft, TextAlignCenter, TextAlignRight:
		return true
	}
	return false
}

// String returns the string representation of TextAlign
func (a TextAlign) String() string {
	return string(a)
}

// AllTextAligns returns all valid TextAlign values
func AllTextAligns() []TextAlign {
	return []TextAlign{TextAlignLeft, TextAlignCenter, TextAlignRight}
}
