package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/printing"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/domain/template"
	infra "github.com/labelgen/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

const outputTimeFormat = "20060102-150405"

// PrintService turns print requests into stored label sheet PDFs
type PrintService struct {
	labelRepo     label.Repository
	templateRepo  template.Repository
	sheetEngine   *infra.SheetEngine
	imageResolver infra.ImageResolver
	pdfRenderer   infra.PDFRenderer
	pdfStorage    infra.PDFStorage
	logger        *zap.Logger
	now           func() time.Time
}

// NewPrintService creates a new PrintService
func NewPrintService(
	labelRepo label.Repository,
	templateRepo template.Repository,
	sheetEngine *infra.SheetEngine,
	imageResolver infra.ImageResolver,
	pdfRenderer infra.PDFRenderer,
	pdfStorage infra.PDFStorage,
	logger *zap.Logger,
) *PrintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintService{
		labelRepo:     labelRepo,
		templateRepo:  templateRepo,
		sheetEngine:   sheetEngine,
		imageResolver: imageResolver,
		pdfRenderer:   pdfRenderer,
		pdfStorage:    pdfStorage,
		logger:        logger,
		now:           time.Now,
	}
}

// GeneratePDF renders the requested labels onto letter sheets and stores
// the resulting PDF. The whole request fails when any label ID is
// unknown; a missing part image only degrades to the placeholder.
func (s *PrintService) GeneratePDF(ctx context.Context, req PrintRequest) (*PrintResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Print request has no items")
	}

	queue, err := s.buildQueue(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	labels, err := s.loadLabels(ctx, queue)
	if err != nil {
		return nil, err
	}

	templates, err := s.loadTemplates(ctx, labels)
	if err != nil {
		return nil, err
	}

	// Expand copies, compose every cell in queue order
	order := printing.ExpandQueue(queue)
	cells := make([]printing.Cell, len(order))
	for i, labelID := range order {
		lbl := labels[labelID]
		cells[i] = printing.ComposeCell(templates[lbl.TemplateID], lbl)
	}

	images := s.resolveImages(ctx, cells)

	pages := printing.Paginate(cells)
	html, err := s.sheetEngine.RenderSheets(ctx, &infra.SheetDocument{
		Title:  "Labels",
		Pages:  pages,
		Images: images,
	})
	if err != nil {
		return nil, s.asDomainError(err, "failed to render sheets")
	}

	pdfResult, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:  html,
		Title: "Labels",
	})
	if err != nil {
		s.logger.Error("PDF rendering failed", zap.Error(err), zap.Int("cells", len(cells)))
		return nil, s.asDomainError(err, "failed to render PDF")
	}

	fileName := fmt.Sprintf("labels-%s.pdf", s.now().Format(outputTimeFormat))
	storeResult, err := s.pdfStorage.Store(ctx, &infra.StoreRequest{
		FileName: fileName,
		PDFData:  pdfResult.PDFData,
	})
	if err != nil {
		s.logger.Error("PDF storage failed", zap.Error(err), zap.String("fileName", fileName))
		return nil, s.asDomainError(err, "failed to store PDF")
	}

	s.logger.Info("label sheet generated",
		zap.String("fileName", fileName),
		zap.Int("cells", len(cells)),
		zap.Int("pages", len(pages)),
		zap.Int64("size", storeResult.Size))

	return &PrintResponse{
		FileName:  fileName,
		URL:       storeResult.URL,
		Path:      storeResult.Path,
		PageCount: len(pages),
		CellCount: len(cells),
		Size:      storeResult.Size,
	}, nil
}

// GetPDF opens a previously generated PDF by its storage path
func (s *PrintService) GetPDF(ctx context.Context, path string) (io.ReadCloser, error) {
	reader, err := s.pdfStorage.Get(ctx, path)
	if err != nil {
		return nil, s.asDomainError(err, "failed to read PDF")
	}
	return reader, nil
}

// buildQueue parses the request items into a domain queue. An omitted
// copy count reads the label's default; an explicit count below one is
// coerced to one.
func (s *PrintService) buildQueue(ctx context.Context, items []PrintItemDTO) ([]printing.QueueItem, error) {
	queue := make([]printing.QueueItem, len(items))
	for i, item := range items {
		labelID, err := uuid.Parse(item.LabelID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid label ID: "+item.LabelID)
		}
		queue[i] = printing.QueueItem{LabelID: labelID, Copies: item.Copies}
	}

	// Defaults need the labels themselves
	for i, item := range queue {
		if item.Copies > 0 {
			continue
		}
		if item.Copies < 0 {
			queue[i].Copies = 1
			continue
		}
		lbl, err := s.labelRepo.FindByID(ctx, item.LabelID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, unknownLabelError(item.LabelID)
			}
			return nil, fmt.Errorf("failed to get label: %w", err)
		}
		queue[i].Copies = lbl.DefaultCopies
	}

	return queue, nil
}

// loadLabels fetches every distinct label in the queue. Any unknown ID
// fails the request.
func (s *PrintService) loadLabels(ctx context.Context, queue []printing.QueueItem) (map[uuid.UUID]*label.Label, error) {
	distinct := make([]uuid.UUID, 0, len(queue))
	seen := make(map[uuid.UUID]bool, len(queue))
	for _, item := range queue {
		if !seen[item.LabelID] {
			seen[item.LabelID] = true
			distinct = append(distinct, item.LabelID)
		}
	}

	found, err := s.labelRepo.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	labels := make(map[uuid.UUID]*label.Label, len(found))
	for i := range found {
		labels[found[i].ID] = &found[i]
	}
	for _, id := range distinct {
		if _, ok := labels[id]; !ok {
			return nil, unknownLabelError(id)
		}
	}

	return labels, nil
}

func (s *PrintService) loadTemplates(ctx context.Context, labels map[uuid.UUID]*label.Label) (map[uuid.UUID]*template.LabelTemplate, error) {
	templates := make(map[uuid.UUID]*template.LabelTemplate)
	for _, lbl := range labels {
		if _, ok := templates[lbl.TemplateID]; ok {
			continue
		}
		tmpl, err := s.templateRepo.FindByID(ctx, lbl.TemplateID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND",
					"Template not found: "+lbl.TemplateID.String())
			}
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		templates[lbl.TemplateID] = tmpl
	}
	return templates, nil
}

// resolveImages gathers every image reference across the composed cells
// and resolves them in one concurrent pass.
func (s *PrintService) resolveImages(ctx context.Context, cells []printing.Cell) map[string]string {
	refs := make([]string, 0, len(cells))
	for _, cell := range cells {
		for _, half := range cell.Halves {
			if half.ImageURL != "" {
				refs = append(refs, half.ImageURL)
			}
		}
	}
	if len(refs) == 0 {
		return nil
	}
	return s.imageResolver.Resolve(ctx, refs)
}

// asDomainError maps pipeline errors onto domain errors so handlers can
// translate them to HTTP statuses.
func (s *PrintService) asDomainError(err error, fallback string) error {
	var renderErr *infra.RenderError
	if errors.As(err, &renderErr) {
		return shared.NewDomainError(renderErr.Code, renderErr.Message)
	}
	return fmt.Errorf("%s: %w", fallback, err)
}

func unknownLabelError(id uuid.UUID) error {
	return shared.NewDomainError("NOT_FOUND", "Label not found: "+id.String())
}
