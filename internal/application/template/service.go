package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/labelgen/backend/internal/domain/printing"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/domain/template"
	"go.uber.org/zap"
)

// Previewer renders a single composed cell to standalone HTML for the
// template preview endpoint.
type Previewer interface {
	PreviewCell(ctx context.Context, cell printing.Cell) (string, error)
}

// Service handles label template business operations
type Service struct {
	templateRepo template.Repository
	labelRepo    label.Repository
	previewer    Previewer
	logger       *zap.Logger
}

// NewService creates a new template Service
func NewService(
	templateRepo template.Repository,
	labelRepo label.Repository,
	previewer Previewer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		templateRepo: templateRepo,
		labelRepo:    labelRepo,
		previewer:    previewer,
		logger:       logger,
	}
}

// CreateTemplate creates a new label template
func (s *Service) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	exists, err := s.templateRepo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check template existence: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Template with this name already exists")
	}

	partsPerLabel := req.PartsPerLabel
	if partsPerLabel == 0 {
		partsPerLabel = 1
	}
	includeDescription := true
	if req.IncludeDescription != nil {
		includeDescription = *req.IncludeDescription
	}

	tmpl, err := template.NewLabelTemplate(req.Name, req.Description, partsPerLabel, includeDescription)
	if err != nil {
		return nil, err
	}

	if req.AccentColor != "" {
		if err := tmpl.SetAccentColor(req.AccentColor); err != nil {
			return nil, err
		}
	}
	if req.ImagePosition != "" {
		if err := tmpl.SetImagePosition(template.ImagePosition(req.ImagePosition)); err != nil {
			return nil, err
		}
	}
	if req.TextAlign != "" {
		if err := tmpl.SetTextAlign(template.TextAlign(req.TextAlign)); err != nil {
			return nil, err
		}
	}
	if req.Layout != nil {
		tmpl.SetLayout(layoutFromDTO(*req.Layout))
	}
	if req.FieldFormats != nil {
		tmpl.SetFieldFormats(req.FieldFormats)
	}

	if err := s.templateRepo.Save(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info("label template created",
		zap.String("id", tmpl.ID.String()),
		zap.String("name", tmpl.Name),
		zap.Int("partsPerLabel", tmpl.PartsPerLabel))

	return toTemplateResponse(tmpl, 0), nil
}

// GetTemplate retrieves a template by ID
func (s *Service) GetTemplate(ctx context.Context, templateID uuid.UUID) (*TemplateResponse, error) {
	tmpl, err := s.findTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	count, err := s.labelRepo.CountByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}

	return toTemplateResponse(tmpl, count), nil
}

// ListTemplates retrieves a paginated list of templates
func (s *Service) ListTemplates(ctx context.Context, req ListTemplatesRequest) (*ListTemplatesResponse, error) {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	templates, err := s.templateRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	total, err := s.templateRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count templates: %w", err)
	}

	items := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		count, err := s.labelRepo.CountByTemplate(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count labels: %w", err)
		}
		items[i] = *toTemplateResponse(&t, count)
	}

	return &ListTemplatesResponse{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.PageSize,
	}, nil
}

// UpdateTemplate updates an existing template
func (s *Service) UpdateTemplate(ctx context.Context, templateID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	tmpl, err := s.findTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != tmpl.Name {
		exists, err := s.templateRepo.ExistsByName(ctx, *req.Name, &templateID)
		if err != nil {
			return nil, fmt.Errorf("failed to check template existence: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Template with this name already exists")
		}
	}

	if req.Name != nil || req.Description != nil {
		name := tmpl.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := tmpl.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := tmpl.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.AccentColor != nil {
		if err := tmpl.SetAccentColor(*req.AccentColor); err != nil {
			return nil, err
		}
	}
	if req.ImagePosition != nil {
		if err := tmpl.SetImagePosition(template.ImagePosition(*req.ImagePosition)); err != nil {
			return nil, err
		}
	}
	if req.TextAlign != nil {
		if err := tmpl.SetTextAlign(template.TextAlign(*req.TextAlign)); err != nil {
			return nil, err
		}
	}

	if req.PartsPerLabel != nil || req.IncludeDescription != nil {
		partsPerLabel := tmpl.PartsPerLabel
		if req.PartsPerLabel != nil {
			partsPerLabel = *req.PartsPerLabel
		}
		includeDescription := tmpl.IncludeDescription
		if req.IncludeDescription != nil {
			includeDescription = *req.IncludeDescription
		}
		if err := tmpl.SetCapabilities(partsPerLabel, includeDescription); err != nil {
			return nil, err
		}
	}

	if req.Layout != nil {
		tmpl.SetLayout(layoutFromDTO(*req.Layout))
	}
	if req.FieldFormats != nil {
		tmpl.SetFieldFormats(req.FieldFormats)
	}

	if err := s.templateRepo.Save(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info("label template updated",
		zap.String("id", tmpl.ID.String()),
		zap.String("name", tmpl.Name))

	count, err := s.labelRepo.CountByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}

	return toTemplateResponse(tmpl, count), nil
}

// DeleteTemplate deletes a template. Deletion is rejected while labels
// still reference the template.
func (s *Service) DeleteTemplate(ctx context.Context, templateID uuid.UUID) error {
	if _, err := s.findTemplate(ctx, templateID); err != nil {
		return err
	}

	count, err := s.labelRepo.CountByTemplate(ctx, templateID)
	if err != nil {
		return fmt.Errorf("failed to count labels: %w", err)
	}
	if count > 0 {
		return shared.NewDomainError("REFERENCE_IN_USE",
			fmt.Sprintf("Template is still used by %d label(s)", count))
	}

	if err := s.templateRepo.Delete(ctx, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.logger.Info("label template deleted", zap.String("id", templateID.String()))

	return nil
}

// PreviewTemplate renders a sample cell for a template using the field
// catalog's sample values.
func (s *Service) PreviewTemplate(ctx context.Context, templateID uuid.UUID) (*PreviewResponse, error) {
	tmpl, err := s.findTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	cell := printing.ComposeCell(tmpl, sampleLabel(tmpl))
	html, err := s.previewer.PreviewCell(ctx, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}

	return &PreviewResponse{HTML: html, TemplateID: tmpl.ID.String()}, nil
}

// ListFields returns the printable field catalog
func (s *Service) ListFields() []FieldResponse {
	keys := layout.AllFieldKeys()
	result := make([]FieldResponse, len(keys))
	for i, key := range keys {
		result[i] = FieldResponse{
			Key:                  string(key),
			Label:                key.DisplayLabel(),
			Sample:               key.SampleValue(),
			RequiresDual:         key.RequiresDual(),
			DescriptionDependent: key.DependsOnDescription(),
			DefaultFormat:        layout.DefaultFormat(key),
		}
	}
	return result
}

// SeedDefaults creates the built-in starter templates when the store is
// empty. Safe to call on every startup.
func (s *Service) SeedDefaults(ctx context.Context) error {
	total, err := s.templateRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return fmt.Errorf("failed to count templates: %w", err)
	}
	if total > 0 {
		return nil
	}

	seeds := []struct {
		name        string
		description string
		accentColor string
	}{
		{"Classic Shelf", "Standard shelf label with quantity and bin location", "#0a3d62"},
		{"Poster", "Large-print label for oversized stock", "#b33939"},
	}

	for _, seed := range seeds {
		tmpl, err := template.NewLabelTemplate(seed.name, seed.description, 1, true)
		if err != nil {
			return err
		}
		if err := tmpl.SetAccentColor(seed.accentColor); err != nil {
			return err
		}
		if err := s.templateRepo.Save(ctx, tmpl); err != nil {
			return fmt.Errorf("failed to seed template %q: %w", seed.name, err)
		}
		s.logger.Info("seeded starter template", zap.String("name", seed.name))
	}

	return nil
}

func (s *Service) findTemplate(ctx context.Context, templateID uuid.UUID) (*template.LabelTemplate, error) {
	tmpl, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return tmpl, nil
}

// sampleLabel builds a throwaway label from the catalog's sample values
// so previews show realistic content.
func sampleLabel(tmpl *template.LabelTemplate) *label.Label {
	left := label.PartDetails{
		Manufacturer:  layout.FieldManufacturer.SampleValue(),
		PartNumber:    layout.FieldPartNumber.SampleValue(),
		Description:   layout.FieldDescription.SampleValue(),
		StockQuantity: layout.FieldStockQuantity.SampleValue(),
		BinLocation:   layout.FieldBinLocation.SampleValue(),
		Notes:         layout.FieldNotes.SampleValue(),
	}
	right := label.PartDetails{
		Manufacturer:  layout.FieldManufacturerRight.SampleValue(),
		PartNumber:    layout.FieldPartNumberRight.SampleValue(),
		Description:   layout.FieldDescriptionRight.SampleValue(),
		StockQuantity: layout.FieldStockQuantityRight.SampleValue(),
		BinLocation:   layout.FieldBinLocationRight.SampleValue(),
		Notes:         layout.FieldNotesRight.SampleValue(),
	}

	lbl, err := label.NewLabel(tmpl.ID, left, right, 1, tmpl.Capabilities())
	if err != nil {
		// sample values always satisfy validation
		lbl = &label.Label{TemplateID: tmpl.ID, Left: left, Right: right, DefaultCopies: 1}
	}
	return lbl
}

func layoutFromDTO(dto LayoutDTO) layout.Config {
	blocks := make([]layout.Block, len(dto.Blocks))
	for i, b := range dto.Blocks {
		blocks[i] = layout.Block{
			Key:   layout.FieldKey(b.Key),
			Width: layout.BlockWidth(b.Width),
		}
	}
	return layout.Config{Version: dto.Version, Blocks: blocks}
}

func layoutToDTO(cfg layout.Config) LayoutDTO {
	blocks := make([]BlockDTO, len(cfg.Blocks))
	for i, b := range cfg.Blocks {
		blocks[i] = BlockDTO{Key: string(b.Key), Width: string(b.Width)}
	}
	return LayoutDTO{Version: cfg.Version, Blocks: blocks}
}

func toTemplateResponse(t *template.LabelTemplate, labelCount int64) *TemplateResponse {
	return &TemplateResponse{
		ID:                 t.ID.String(),
		Name:               t.Name,
		Description:        t.Description,
		AccentColor:        t.AccentColor,
		ImagePosition:      string(t.ImagePosition),
		TextAlign:          string(t.TextAlign),
		PartsPerLabel:      t.PartsPerLabel,
		IncludeDescription: t.IncludeDescription,
		Layout:             layoutToDTO(t.Layout),
		FieldFormats:       t.FieldFormats,
		LabelCount:         labelCount,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}
