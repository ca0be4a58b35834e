package costs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Get returns the current override mapping.
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Load())
}

// Put replaces the override mapping, normalizing values to numbers where
// possible.
func (h *Handler) Put(c *gin.Context) {
	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.store.Save(Normalize(req)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
