package template

import "time"

// BlockDTO represents one layout block
type BlockDTO struct {
	Key   string `json:"key" binding:"required"`
	Width string `json:"width"`
}

// LayoutDTO represents a template's ordered block layout
type LayoutDTO struct {
	Version int        `json:"version"`
	Blocks  []BlockDTO `json:"blocks"`
}

// CreateTemplateRequest represents a request to create a new label template
type CreateTemplateRequest struct {
	Name               string            `json:"name" binding:"required,min=1,max=100"`
	Description        string            `json:"description" binding:"max=500"`
	AccentColor        string            `json:"accent_color"`
	ImagePosition      string            `json:"image_position"`
	TextAlign          string            `json:"text_align"`
	PartsPerLabel      int               `json:"parts_per_label" binding:"omitempty,oneof=1 2"`
	IncludeDescription *bool             `json:"include_description"`
	Layout             *LayoutDTO        `json:"layout"`
	FieldFormats       map[string]string `json:"field_formats"`
}

// UpdateTemplateRequest represents a request to update a label template
type UpdateTemplateRequest struct {
	Name               *string           `json:"name" binding:"omitempty,min=1,max=100"`
	Description        *string           `json:"description" binding:"omitempty,max=500"`
	AccentColor        *string           `json:"accent_color"`
	ImagePosition      *string           `json:"image_position"`
	TextAlign          *string           `json:"text_align"`
	PartsPerLabel      *int              `json:"parts_per_label" binding:"omitempty,oneof=1 2"`
	IncludeDescription *bool             `json:"include_description"`
	Layout             *LayoutDTO        `json:"layout"`
	FieldFormats       map[string]string `json:"field_formats"`
}

// ListTemplatesRequest represents a request to list templates
type ListTemplatesRequest struct {
	Page     int    `form:"page" binding:"min=1"`
	PageSize int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
}

// TemplateResponse represents a label template response
type TemplateResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	AccentColor        string            `json:"accent_color"`
	ImagePosition      string            `json:"image_position"`
	TextAlign          string            `json:"text_align"`
	PartsPerLabel      int               `json:"parts_per_label"`
	IncludeDescription bool              `json:"include_description"`
	Layout             LayoutDTO         `json:"layout"`
	FieldFormats       map[string]string `json:"field_formats"`
	LabelCount         int64             `json:"label_count"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ListTemplatesResponse represents a paginated list of templates
type ListTemplatesResponse struct {
	Items []TemplateResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// FieldResponse describes one entry of the printable field catalog
type FieldResponse struct {
	Key                  string `json:"key"`
	Label                string `json:"label"`
	Sample               string `json:"sample"`
	RequiresDual         bool   `json:"requires_dual"`
	DescriptionDependent bool   `json:"description_dependent"`
	DefaultFormat        string `json:"default_format"`
}

// PreviewResponse carries the rendered HTML preview of a template
type PreviewResponse struct {
	HTML       string `json:"html"`
	TemplateID string `json:"template_id"`
}
