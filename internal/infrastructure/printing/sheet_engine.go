package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	domain "github.com/labelgen/backend/internal/domain/printing"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// SheetDocument is the input to sheet rendering: composed pages plus the
// resolved image map produced by the image resolver.
type SheetDocument struct {
	Title  string
	Pages  []domain.Page
	Images map[string]string // raw reference -> data URI
}

// view models handed to the HTML template

type sheetView struct {
	Title string
	Pages []pageView
}

type pageView struct {
	Cells []cellView
}

type cellView struct {
	Blank         bool
	AccentColor   string
	TextAlign     string
	ImagePosition string
	Dual          bool
	Halves        []halfView
}

// ImageSrc is typed template.URL: resolver output is always a data:
// URI, which the html/template URL sanitizer would otherwise reject.
type halfView struct {
	Title    string
	Subtitle string
	ImageSrc template.URL
	Rows     []rowView
}

type rowView struct {
	Fields []fieldView
}

type fieldView struct {
	Label string
	Value string
	Half  bool
}

// SheetEngine renders composed pages into a print-ready HTML document
type SheetEngine struct {
	tmpl   *template.Template
	logger *zap.Logger
}

// NewSheetEngine creates a sheet engine from the embedded templates
func NewSheetEngine(logger *zap.Logger) (*SheetEngine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.New("sheet").Funcs(template.FuncMap{
		"attr": func(s string) template.HTMLAttr { return template.HTMLAttr(s) },
		"css":  func(s string) template.CSS { return template.CSS(s) },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet templates: %w", err)
	}

	return &SheetEngine{tmpl: tmpl, logger: logger}, nil
}

// RenderSheets renders a full multi-page document. Every page is padded
// to the full grid so partially filled final pages keep their shape.
func (e *SheetEngine) RenderSheets(ctx context.Context, doc *SheetDocument) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if doc == nil || len(doc.Pages) == 0 {
		return "", NewRenderError(ErrCodeInvalidHTML, "document has no pages", nil)
	}

	view := sheetView{Title: doc.Title}
	for _, page := range doc.Pages {
		pv := pageView{Cells: make([]cellView, 0, domain.CellsPerPage)}
		for _, cell := range page.Cells {
			pv.Cells = append(pv.Cells, e.cellToView(cell, doc.Images))
		}
		for i := 0; i < page.BlankSlots(); i++ {
			pv.Cells = append(pv.Cells, cellView{Blank: true})
		}
		view.Pages = append(view.Pages, pv)
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "sheet.html", view); err != nil {
		e.logger.Error("sheet template execution failed", zap.Error(err))
		return "", NewRenderError(ErrCodeRenderFailed, "sheet template execution failed", err)
	}

	return buf.String(), nil
}

// PreviewCell renders a single cell as a standalone document for the
// template preview endpoint. Image references resolve to the placeholder
// since previews never hit the network.
func (e *SheetEngine) PreviewCell(ctx context.Context, cell domain.Cell) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, "preview.html", e.cellToView(cell, nil)); err != nil {
		e.logger.Error("preview template execution failed", zap.Error(err))
		return "", NewRenderError(ErrCodeRenderFailed, "preview template execution failed", err)
	}

	return buf.String(), nil
}

func (e *SheetEngine) cellToView(cell domain.Cell, images map[string]string) cellView {
	cv := cellView{
		AccentColor:   cell.AccentColor,
		TextAlign:     string(cell.TextAlign),
		ImagePosition: string(cell.ImagePosition),
		Dual:          cell.Dual,
	}
	for _, half := range cell.Halves {
		hv := halfView{
			Title:    half.Title,
			Subtitle: half.Subtitle,
		}
		if half.ImageURL != "" {
			if src, ok := images[half.ImageURL]; ok && src != "" {
				hv.ImageSrc = template.URL(src)
			} else {
				hv.ImageSrc = template.URL(PlaceholderDataURI)
			}
		}
		for _, row := range half.Rows {
			rv := rowView{}
			for _, field := range row.Fields {
				rv.Fields = append(rv.Fields, fieldView{
					Label: field.Label,
					Value: field.Value,
					Half:  len(row.Fields) > 1,
				})
			}
			hv.Rows = append(hv.Rows, rv)
		}
		cv.Halves = append(cv.Halves, hv)
	}
	return cv
}
