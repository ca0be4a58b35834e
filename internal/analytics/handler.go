package analytics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Goblincake/delicatessenV8/internal/costs"
	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/metrics"
	"github.com/Goblincake/delicatessenV8/internal/numeric"
	"github.com/Goblincake/delicatessenV8/internal/orders"
)

type Handler struct {
	orders  *orders.Service
	costs   *costs.Store
	catalog menu.Catalog
	metrics *metrics.Registry
}

func NewHandler(orderSvc *orders.Service, costStore *costs.Store, catalog menu.Catalog, m *metrics.Registry) *Handler {
	return &Handler{orders: orderSvc, costs: costStore, catalog: catalog, metrics: m}
}

// Report aggregates the order log into the financial summary. Cost
// settings arrive as optional query parameters; anything missing or
// unparsable counts as 0.
func (h *Handler) Report(c *gin.Context) {
	cfg := Config{
		MonthlyRent:         numeric.Float(c.Query("monthly_rent"), 0),
		CourierCostPerOrder: numeric.Float(c.Query("courier_cost"), 0),
		HourlyWage:          numeric.Float(c.Query("hourly_wage"), 0),
		DailyHours:          numeric.Float(c.Query("daily_hours"), 0),
	}

	start := time.Now()
	report := Aggregate(h.orders.List(), h.catalog, h.costs.Load(), cfg)
	h.metrics.AnalyticsRuns.Inc()
	h.metrics.AnalyticsSec.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, report)
}
