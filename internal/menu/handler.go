package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// GetMenu returns the full catalog grouped by category.
func (h *Handler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog)
}
