package printing

import (
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/labelgen/backend/internal/domain/template"
)

// CellField is one formatted field placed on a label half.
type CellField struct {
	Key   layout.FieldKey
	Label string
	Value string
	Width layout.BlockWidth
}

// CellRow is one horizontal band of fields: either a single full-width
// field or up to two half-width fields side by side.
type CellRow struct {
	Fields []CellField
}

// CellHalf is one part's rendered region within a cell. Single-part
// templates produce one half spanning the whole cell.
type CellHalf struct {
	Title    string    // Part number headline, already formatted
	Subtitle string    // Manufacturer line under the headline
	Rows     []CellRow // Remaining fields in layout order
	ImageURL string    // Raw image reference, resolved later by the image pipeline
}

// Cell is one fully composed grid slot, ready for rendering.
type Cell struct {
	AccentColor   string
	TextAlign     template.TextAlign
	ImagePosition template.ImagePosition
	Dual          bool
	Halves        []CellHalf
}

// ComposeCell lays out one label under its template into a render-ready
// cell. Fields whose formatted value is empty are dropped, so rows never
// carry blank entries.
func ComposeCell(tmpl *template.LabelTemplate, lbl *label.Label) Cell {
	caps := tmpl.Capabilities()
	cfg := layout.Normalize(tmpl.Layout, caps)

	cell := Cell{
		AccentColor:   tmpl.AccentColor,
		TextAlign:     tmpl.TextAlign,
		ImagePosition: tmpl.ImagePosition,
		Dual:          tmpl.IsDual(),
	}

	if !tmpl.IsDual() {
		cell.Halves = []CellHalf{composeHalf(cfg.Blocks, lbl.Left, tmpl, false)}
		return cell
	}

	leftBlocks, rightBlocks := splitBlocks(cfg.Blocks, caps)
	cell.Halves = []CellHalf{
		composeHalf(leftBlocks, lbl.Left, tmpl, false),
		composeHalf(rightBlocks, lbl.Right, tmpl, true),
	}
	return cell
}

// splitBlocks separates a dual layout into per-side block lists. Blocks
// keep their catalog keys so right-side format overrides still apply
// downstream. A side left without any blocks falls back to its side of
// the dual defaults, keeping a half from rendering empty just because
// the layout was edited one-sided.
func splitBlocks(blocks []layout.Block, caps layout.Capabilities) (left, right []layout.Block) {
	for _, block := range blocks {
		if block.Key.IsRightSide() {
			right = append(right, block)
		} else {
			left = append(left, block)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		var fallbackLeft, fallbackRight []layout.Block
		for _, block := range layout.DefaultBlocks(caps) {
			if block.Key.IsRightSide() {
				fallbackRight = append(fallbackRight, block)
			} else {
				fallbackLeft = append(fallbackLeft, block)
			}
		}
		if len(left) == 0 {
			left = fallbackLeft
		}
		if len(right) == 0 {
			right = fallbackRight
		}
	}
	return left, right
}

// composeHalf formats a part's fields against its block list. The part
// number and manufacturer become the headline and subtitle; the rest
// flow into rows, with full-width blocks flushing any pending half and
// half-width blocks pairing up two per row.
func composeHalf(blocks []layout.Block, part label.PartDetails, tmpl *template.LabelTemplate, rightSide bool) CellHalf {
	titleKey, subtitleKey := layout.FieldPartNumber, layout.FieldManufacturer
	if rightSide {
		titleKey, subtitleKey = layout.FieldPartNumberRight, layout.FieldManufacturerRight
	}
	half := CellHalf{
		Title:    layout.FormatField(tmpl.FieldFormats, titleKey, part.PartNumber),
		Subtitle: layout.FormatField(tmpl.FieldFormats, subtitleKey, part.Manufacturer),
	}
	if tmpl.ImagePosition.ShowsImage() {
		half.ImageURL = part.ImageURL
	}

	fields := make([]CellField, 0, len(blocks))
	for _, block := range blocks {
		base := block.Key.BaseKey()
		if base == layout.FieldPartNumber || base == layout.FieldManufacturer {
			continue // already in the headline
		}
		value := layout.FormatField(tmpl.FieldFormats, block.Key, part.Value(base))
		if value == "" {
			continue
		}
		fields = append(fields, CellField{
			Key:   block.Key,
			Label: base.DisplayLabel(),
			Value: value,
			Width: block.Width,
		})
	}

	half.Rows = groupFieldsByRow(fields)
	return half
}

// groupFieldsByRow packs fields into rows: a full-width field flushes
// the pending half-width field and takes a row of its own, while
// half-width fields pair up two per row.
func groupFieldsByRow(fields []CellField) []CellRow {
	var rows []CellRow
	var pending []CellField

	flush := func() {
		if len(pending) > 0 {
			rows = append(rows, CellRow{Fields: pending})
			pending = nil
		}
	}

	for _, field := range fields {
		if field.Width == layout.WidthFull {
			flush()
			rows = append(rows, CellRow{Fields: []CellField{field}})
			continue
		}
		pending = append(pending, field)
		if len(pending) == 2 {
			flush()
		}
	}
	flush()

	return rows
}
