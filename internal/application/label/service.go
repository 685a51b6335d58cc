package label

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/domain/template"
	"go.uber.org/zap"
)

// Service handles label business operations
type Service struct {
	labelRepo    label.Repository
	templateRepo template.Repository
	logger       *zap.Logger
}

// NewService creates a new label Service
func NewService(labelRepo label.Repository, templateRepo template.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		labelRepo:    labelRepo,
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// CreateLabel creates a new label bound to a template. The part data is
// validated against the template's capabilities.
func (s *Service) CreateLabel(ctx context.Context, req CreateLabelRequest) (*LabelResponse, error) {
	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template ID")
	}

	tmpl, err := s.findTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	lbl, err := label.NewLabel(templateID, partFromDTO(req.Left), partFromDTOPtr(req.Right), req.DefaultCopies, tmpl.Capabilities())
	if err != nil {
		return nil, err
	}

	if err := s.labelRepo.Save(ctx, lbl); err != nil {
		return nil, fmt.Errorf("failed to save label: %w", err)
	}

	s.logger.Info("label created",
		zap.String("id", lbl.ID.String()),
		zap.String("templateId", templateID.String()),
		zap.String("partNumber", lbl.Left.PartNumber))

	return toLabelResponse(lbl, tmpl), nil
}

// GetLabel retrieves a label by ID
func (s *Service) GetLabel(ctx context.Context, labelID uuid.UUID) (*LabelResponse, error) {
	lbl, err := s.findLabel(ctx, labelID)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.findTemplate(ctx, lbl.TemplateID)
	if err != nil {
		return nil, err
	}

	return toLabelResponse(lbl, tmpl), nil
}

// ListLabels retrieves a paginated list of labels with their template names
func (s *Service) ListLabels(ctx context.Context, req ListLabelsRequest) (*ListLabelsResponse, error) {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Filters:  map[string]interface{}{},
	}
	if req.TemplateID != "" {
		templateID, err := uuid.Parse(req.TemplateID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template ID")
		}
		filter.Filters["template_id"] = templateID
	}

	labels, err := s.labelRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	total, err := s.labelRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count labels: %w", err)
	}

	templates, err := s.templatesByID(ctx, labels)
	if err != nil {
		return nil, err
	}

	items := make([]LabelResponse, len(labels))
	for i, l := range labels {
		items[i] = *toLabelResponse(&l, templates[l.TemplateID])
	}

	return &ListLabelsResponse{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.PageSize,
	}, nil
}

// UpdateLabel updates a label's part data, copy count, and optionally
// rebinds it to another template.
func (s *Service) UpdateLabel(ctx context.Context, labelID uuid.UUID, req UpdateLabelRequest) (*LabelResponse, error) {
	lbl, err := s.findLabel(ctx, labelID)
	if err != nil {
		return nil, err
	}

	templateID := lbl.TemplateID
	if req.TemplateID != nil {
		templateID, err = uuid.Parse(*req.TemplateID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid template ID")
		}
	}

	tmpl, err := s.findTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	lbl.TemplateID = templateID
	if err := lbl.Update(partFromDTO(req.Left), partFromDTOPtr(req.Right), req.DefaultCopies, tmpl.Capabilities()); err != nil {
		return nil, err
	}

	if err := s.labelRepo.Save(ctx, lbl); err != nil {
		return nil, fmt.Errorf("failed to save label: %w", err)
	}

	s.logger.Info("label updated", zap.String("id", lbl.ID.String()))

	return toLabelResponse(lbl, tmpl), nil
}

// DeleteLabel deletes a label
func (s *Service) DeleteLabel(ctx context.Context, labelID uuid.UUID) error {
	if _, err := s.findLabel(ctx, labelID); err != nil {
		return err
	}

	if err := s.labelRepo.Delete(ctx, labelID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}

	s.logger.Info("label deleted", zap.String("id", labelID.String()))

	return nil
}

func (s *Service) findLabel(ctx context.Context, labelID uuid.UUID) (*label.Label, error) {
	lbl, err := s.labelRepo.FindByID(ctx, labelID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Label not found")
		}
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return lbl, nil
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

// templatesByID loads the distinct templates referenced by a label batch
func (s *Service) templatesByID(ctx context.Context, labels []label.Label) (map[uuid.UUID]*template.LabelTemplate, error) {
	templates := make(map[uuid.UUID]*template.LabelTemplate)
	for _, l := range labels {
		if _, ok := templates[l.TemplateID]; ok {
			continue
		}
		tmpl, err := s.findTemplate(ctx, l.TemplateID)
		if err != nil {
			return nil, err
		}
		templates[l.TemplateID] = tmpl
	}
	return templates, nil
}

func partFromDTO(dto PartDTO) label.PartDetails {
	return label.PartDetails{
		Manufacturer:  dto.Manufacturer,
		PartNumber:    dto.PartNumber,
		Description:   dto.Description,
		StockQuantity: dto.StockQuantity,
		BinLocation:   dto.BinLocation,
		ImageURL:      dto.ImageURL,
		Notes:         dto.Notes,
	}
}

func partFromDTOPtr(dto *PartDTO) label.PartDetails {
	if dto == nil {
		return label.PartDetails{}
	}
	return partFromDTO(*dto)
}

func partToDTO(part label.PartDetails) PartDTO {
	return PartDTO{
		Manufacturer:  part.Manufacturer,
		PartNumber:    part.PartNumber,
		Description:   part.Description,
		StockQuantity: part.StockQuantity,
		BinLocation:   part.BinLocation,
		ImageURL:      part.ImageURL,
		Notes:         part.Notes,
	}
}

func toLabelResponse(l *label.Label, tmpl *template.LabelTemplate) *LabelResponse {
	resp := &LabelResponse{
		ID:            l.ID.String(),
		TemplateID:    l.TemplateID.String(),
		Left:          partToDTO(l.Left),
		DefaultCopies: l.DefaultCopies,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if tmpl != nil {
		resp.TemplateName = tmpl.Name
		if tmpl.IsDual() {
			right := partToDTO(l.Right)
			resp.Right = &right
		}
	}
	return resp
}
