package handler

import (
	"io"
	"regexp"

	"github.com/gin-gonic/gin"
	printingapp "github.com/labelgen/backend/internal/application/printing"
)

// pdfFileNamePattern matches the file names produced by the print service
// (labels-YYYYMMDD-HHMMSS.pdf). Anything else is rejected before it can
// reach the storage layer.
var pdfFileNamePattern = regexp.MustCompile(`^labels-\d{8}-\d{6}\.pdf$`)

// PrintHandler handles PDF generation API endpoints
type PrintHandler struct {
	BaseHandler
	printService *printingapp.PrintService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(printService *printingapp.PrintService) *PrintHandler {
	return &PrintHandler{
		printService: printService,
	}
}

// Generate handles POST /prints. It renders the requested labels into a
// multi-page sheet PDF and returns the download location.
func (h *PrintHandler) Generate(c *gin.Context) {
	var req printingapp.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.printService.GeneratePDF(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Download handles GET /prints/:filename and streams a generated PDF
func (h *PrintHandler) Download(c *gin.Context) {
	fileName := c.Param("filename")
	if !pdfFileNamePattern.MatchString(fileName) {
		h.BadRequest(c, "Invalid file name format")
		return
	}

	file, err := h.printService.GetPDF(c.Request.Context(), fileName)
	if err != nil {
		h.NotFound(c, "PDF file not found")
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "inline; filename=\""+fileName+"\"")

	if _, err := io.Copy(c.Writer, file); err != nil {
		h.InternalError(c, "Failed to serve PDF file")
		return
	}
}
