package drivers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	store  *Store
	logger *logrus.Logger
}

func NewHandler(store *Store, logger *logrus.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List returns the sanitized roster, persisting the cleanup when the
// stored file differed.
func (h *Handler) List(c *gin.Context) {
	raw := h.store.LoadRaw()
	cleaned, changed := Sanitize(raw)
	if changed {
		if err := h.store.Save(cleaned); err != nil {
			h.logger.WithError(err).Warn("persisting sanitized driver roster failed")
		}
	}
	c.JSON(http.StatusOK, cleaned)
}

// Add registers a new courier name, deduplicating against the existing
// roster.
func (h *Handler) Add(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	cleaned, _ := Sanitize(h.store.LoadRaw())
	exists := false
	for _, d := range cleaned {
		if d.Name == name {
			exists = true
			break
		}
	}
	if !exists {
		cleaned = append(cleaned, Driver{Name: name})
		if err := h.store.Save(cleaned); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save drivers"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "drivers": cleaned})
}

// Delete removes the roster entry at the given index.
func (h *Handler) Delete(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid index"})
		return
	}

	raw := h.store.LoadRaw()
	if idx < 0 || idx >= len(raw) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid index"})
		return
	}

	raw = append(raw[:idx], raw[idx+1:]...)
	if err := h.store.Save(raw); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
