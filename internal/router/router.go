package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Goblincake/delicatessenV8/internal/analytics"
	"github.com/Goblincake/delicatessenV8/internal/costs"
	"github.com/Goblincake/delicatessenV8/internal/drivers"
	"github.com/Goblincake/delicatessenV8/internal/menu"
	"github.com/Goblincake/delicatessenV8/internal/metrics"
	"github.com/Goblincake/delicatessenV8/internal/middleware"
	"github.com/Goblincake/delicatessenV8/internal/orders"
	"github.com/Goblincake/delicatessenV8/internal/pricing"
)

type Deps struct {
	Logger       *logrus.Logger
	Metrics      *metrics.Registry
	Menu         *menu.Handler
	Pricing      *pricing.Handler
	Orders       *orders.Handler
	Drivers      *drivers.Handler
	Costs        *costs.Handler
	Analytics    *analytics.Handler
	AllowOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/menu", deps.Menu.GetMenu)
		api.POST("/quote", deps.Pricing.Quote)

		api.GET("/history", deps.Orders.History)
		api.POST("/history/clear", deps.Orders.ClearHistory)

		api.POST("/order", deps.Orders.Create)
		api.POST("/order/:id/status", deps.Orders.UpdateStatus)
		api.POST("/order/:id/assign_driver", deps.Orders.AssignDriver)
		api.POST("/order/:id/unassign", deps.Orders.UnassignDriver)
		api.POST("/order/:id/extend_assignment", deps.Orders.ExtendAssignment)
		api.POST("/order/:id/complete", deps.Orders.Complete)

		api.GET("/drivers", deps.Drivers.List)
		api.POST("/drivers", deps.Drivers.Add)
		api.DELETE("/drivers/:idx", deps.Drivers.Delete)

		api.GET("/product_costs", deps.Costs.Get)
		api.POST("/product_costs", deps.Costs.Put)

		api.GET("/analytics", deps.Analytics.Report)
	}

	return r
}
