package orders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Goblincake/delicatessenV8/internal/metrics"
)

type Handler struct {
	service *Service
	metrics *metrics.Registry
}

func NewHandler(service *Service, m *metrics.Registry) *Handler {
	return &Handler{service: service, metrics: m}
}

// Create validates, prices and stores a new order.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmptyOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save order"})
		return
	}

	h.metrics.OrdersCreated.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// History returns the full order log.
func (h *Handler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List())
}

// ClearHistory empties the order log, resetting the id counter.
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.service.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateStatus moves an order between pending and finished.
func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// Complete marks an order completed.
func (h *Handler) Complete(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := h.service.Complete(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.metrics.OrdersCompleted.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// AssignDriver puts a courier on the order and starts its delivery timer.
func (h *Handler) AssignDriver(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Driver string `json:"driver"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.AssignDriver(c.Request.Context(), orderID, req.Driver); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UnassignDriver removes the courier from the order.
func (h *Handler) UnassignDriver(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	if err := h.service.UnassignDriver(c.Request.Context(), orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ExtendAssignment lengthens or replaces the delivery timer TTL.
func (h *Handler) ExtendAssignment(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req struct {
		AddMinutes any `json:"add_minutes"`
		NewTTL     any `json:"new_ttl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ttl, err := h.service.ExtendAssignment(c.Request.Context(), orderID, req.AddMinutes, req.NewTTL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "assigned_ttl": ttl})
}

func orderIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrDriverRequired),
		errors.Is(err, ErrTTLRequired),
		errors.Is(err, ErrInvalidTTL):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
