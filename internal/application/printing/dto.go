package printing

// PrintItemDTO is one entry of a print request: a label and an optional
// copy count. A zero copy count falls back to the label's default.
type PrintItemDTO struct {
	LabelID string `json:"label_id" binding:"required,uuid"`
	Copies  int    `json:"copies" binding:"omitempty,min=1,max=1000"`
}

// PrintRequest represents a request to generate a label sheet PDF
type PrintRequest struct {
	Items []PrintItemDTO `json:"items" binding:"required,min=1,dive"`
}

// PrintResponse represents the outcome of a PDF generation run
type PrintResponse struct {
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	Path      string `json:"path"`
	PageCount int    `json:"page_count"`
	CellCount int    `json:"cell_count"`
	Size      int64  `json:"size"`
}
