package label

import "time"

// PartDTO represents one part's printable data
type PartDTO struct {
	Manufacturer  string `json:"manufacturer"`
	PartNumber    string `json:"part_number"`
	Description   string `json:"description"`
	StockQuantity string `json:"stock_quantity"`
	BinLocation   string `json:"bin_location"`
	ImageURL      string `json:"image_url" binding:"omitempty,max=2048"`
	Notes         string `json:"notes"`
}

// CreateLabelRequest represents a request to create a new label
type CreateLabelRequest struct {
	TemplateID    string   `json:"template_id" binding:"required,uuid"`
	Left          PartDTO  `json:"left" binding:"required"`
	Right         *PartDTO `json:"right"`
	DefaultCopies int      `json:"default_copies" binding:"omitempty,min=1,max=1000"`
}

// UpdateLabelRequest represents a request to update a label
type UpdateLabelRequest struct {
	TemplateID    *string  `json:"template_id" binding:"omitempty,uuid"`
	Left          PartDTO  `json:"left" binding:"required"`
	Right         *PartDTO `json:"right"`
	DefaultCopies int      `json:"default_copies" binding:"omitempty,min=1,max=1000"`
}

// ListLabelsRequest represents a request to list labels
type ListLabelsRequest struct {
	Page       int    `form:"page" binding:"min=1"`
	PageSize   int    `form:"page_size" binding:"min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search     string `form:"search"`
	TemplateID string `form:"template_id" binding:"omitempty,uuid"`
}

// LabelResponse represents a label response
type LabelResponse struct {
	ID            string    `json:"id"`
	TemplateID    string    `json:"template_id"`
	TemplateName  string    `json:"template_name"`
	Left          PartDTO   `json:"left"`
	Right         *PartDTO  `json:"right,omitempty"`
	DefaultCopies int       `json:"default_copies"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListLabelsResponse represents a paginated list of labels
type ListLabelsResponse struct {
	Items []LabelResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}
