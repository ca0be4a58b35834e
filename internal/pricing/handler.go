package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/metrics"
)

type Handler struct {
	catalog menu.Catalog
	metrics *metrics.Registry
}

func NewHandler(catalog menu.Catalog, m *metrics.Registry) *Handler {
	return &Handler{catalog: catalog, metrics: m}
}

// Quote prices a single line without creating an order.
func (h *Handler) Quote(c *gin.Context) {
	var req struct {
		Item    string       `json:"item"`
		Details *LineRequest `json:"details"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Item == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item required"})
		return
	}

	details := BareQuantity(1)
	if req.Details != nil {
		details = *req.Details
	}

	lineTotal, perUnit, breakdown := Quote(h.catalog, req.Item, details)
	h.metrics.QuotesServed.Inc()
	c.JSON(http.StatusOK, gin.H{
		"price":     lineTotal,
		"per_unit":  perUnit,
		"breakdown": breakdown,
	})
}
