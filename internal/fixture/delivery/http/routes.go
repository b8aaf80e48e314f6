package http

import (
	"github.com/gin-gonic/gin"

	"admin-datagrid/internal/model"
)

// RegisterRoutes mounts every collection under rg. Read-only collections
// only get the list route; side actions are mounted per descriptor.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	for _, d := range h.descs {
		g := rg.Group(d.Route)
		g.GET("", h.List(d))

		if !d.ReadOnly {
			g.POST("", h.Create(d))
			g.PUT("/:id", h.Update(d))
			g.DELETE("/:id", h.Delete(d))
		}

		for _, a := range d.Actions {
			switch a.Kind {
			case model.KindToggleStatus:
				g.PATCH("/:id/toggle-status", h.ToggleStatus)
			case model.KindDeleteImage:
				g.DELETE("/:id/image", h.DeleteImage)
			case model.KindExport:
				g.GET("/export", h.Export(d))
			case model.KindCleanup:
				g.DELETE("/cleanup", h.Cleanup)
			}
		}
	}
}
