package main

import (
	"warehouse-platform/internal/httpapi"
	"warehouse-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// Route classes:
// - public: health, registration, login, refresh
// - everything else: requires a valid, non-revoked access token whose role
//   grants the endpoint's permission.
//
// The auth guard never rejects by itself; the rbac middlewares below do.
var publicPrefixes = []string{
	"/v1/auth/register",
	"/v1/auth/login",
	"/v1/auth/refresh",
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, guard gin.HandlerFunc, h httpapi.Handlers, inv httpapi.InventoryHandlers, rep httpapi.ReportHandlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	v1.Use(guard)
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/refresh", h.Refresh)
			authGroup.POST("/logout", h.Logout)
		}

		v1.GET("/me", h.Me)

		users := v1.Group("/users")
		{
			users.GET("", rbac.RequirePermission(rbac.PermUserRead), h.ListUsers)
			users.GET("/:identity", rbac.RequirePermission(rbac.PermUserRead), h.GetUser)
			users.PUT("/:identity/role", rbac.RequirePermission(rbac.PermUserManage), h.ChangeUserRole)
			users.DELETE("/:identity", rbac.RequirePermission(rbac.PermUserManage), h.DeleteUser)
		}

		items := v1.Group("/items")
		{
			items.GET("", rbac.RequirePermission(rbac.PermItemRead), inv.ListItems)
			items.GET("/:id", rbac.RequirePermission(rbac.PermItemRead), inv.GetItem)
			items.POST("", rbac.RequirePermission(rbac.PermItemWrite), inv.CreateItem)
			items.PUT("/:id", rbac.RequirePermission(rbac.PermItemWrite), inv.UpdateItem)
			items.POST("/:id/adjust", rbac.RequirePermission(rbac.PermItemWrite), inv.AdjustItemQuantity)
			items.DELETE("/:id", rbac.RequirePermission(rbac.PermItemWrite), inv.DeleteItem)
		}

		warehouses := v1.Group("/warehouses")
		{
			warehouses.GET("", rbac.RequirePermission(rbac.PermWarehouseRead), inv.ListWarehouses)
			warehouses.GET("/:id", rbac.RequirePermission(rbac.PermWarehouseRead), inv.GetWarehouse)
			warehouses.POST("", rbac.RequirePermission(rbac.PermWarehouseWrite), inv.CreateWarehouse)
			warehouses.PUT("/:id", rbac.RequirePermission(rbac.PermWarehouseWrite), inv.UpdateWarehouse)
			warehouses.DELETE("/:id", rbac.RequirePermission(rbac.PermWarehouseWrite), inv.DeleteWarehouse)
		}

		deliveries := v1.Group("/deliveries")
		{
			deliveries.GET("", rbac.RequirePermission(rbac.PermDeliveryRead), inv.ListDeliveries)
			deliveries.GET("/:id", rbac.RequirePermission(rbac.PermDeliveryRead), inv.GetDelivery)
			deliveries.POST("", rbac.RequirePermission(rbac.PermDeliveryWrite), inv.CreateDelivery)
			deliveries.PUT("/:id/driver", rbac.RequirePermission(rbac.PermDeliveryWrite), inv.AssignDriver)
			deliveries.PUT("/:id/status", rbac.RequirePermission(rbac.PermDeliveryDrive), inv.TransitionDelivery)
			deliveries.DELETE("/:id", rbac.RequirePermission(rbac.PermDeliveryWrite), inv.DeleteDelivery)
		}

		reports := v1.Group("/reports", rbac.RequireAnyRole(rbac.RoleManager))
		{
			reports.GET("/deliveries", rep.DeliverySummary)
			reports.GET("/stock", rep.StockSummary)
		}
	}
}
