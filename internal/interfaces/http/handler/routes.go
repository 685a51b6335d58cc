package handler

import (
	"github.com/labelgen/backend/internal/interfaces/http/router"
)

// TemplateRoutes creates the route group for template endpoints
func TemplateRoutes(h *TemplateHandler) *router.DomainGroup {
	group := router.NewDomainGroup("templates", "/templates")

	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/fields", h.ListFields)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.GET("/:id/preview", h.Preview)

	return group
}

// LabelRoutes creates the route group for label endpoints
func LabelRoutes(h *LabelHandler) *router.DomainGroup {
	group := router.NewDomainGroup("labels", "/labels")

	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.GetByID)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)

	return group
}

// PrintRoutes creates the route group for PDF generation endpoints
func PrintRoutes(h *PrintHandler) *router.DomainGroup {
	group := router.NewDomainGroup("prints", "/prints")

	group.POST("", h.Generate)
	group.GET("/:filename", h.Download)

	return group
}

// UploadRoutes creates the route group for image upload endpoints
func UploadRoutes(h *UploadHandler) *router.DomainGroup {
	group := router.NewDomainGroup("uploads", "/uploads")

	group.POST("", h.Upload)
	group.GET("/:key", h.Get)
	group.DELETE("/:key", h.Delete)

	return group
}

// SystemRoutes creates the route group for system endpoints
func SystemRoutes(h *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "/system")

	group.GET("/info", h.GetSystemInfo)
	group.GET("/ping", h.Ping)
	group.GET("/health", h.Health)

	return group
}
