package httpapi

import (
	"errors"
	"net/http"

	"warehouse-platform/internal/delivery"
	"warehouse-platform/internal/item"
	"warehouse-platform/internal/rbac"
	"warehouse-platform/internal/warehouse"

	"github.com/gin-gonic/gin"
)

// InventoryHandlers groups item/warehouse/delivery CRUD endpoints.
type InventoryHandlers struct {
	Items      *item.Service
	Warehouses *warehouse.Service
	Deliveries *delivery.Service
}

/* ===================== ITEMS ===================== */

func (h InventoryHandlers) CreateItem(c *gin.Context) {
	var req item.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	it, err := h.Items.Create(c.Request.Context(), req)
	if err != nil {
		abortItemErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

func (h InventoryHandlers) GetItem(c *gin.Context) {
	it, err := h.Items.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortItemErr(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h InventoryHandlers) ListItems(c *gin.Context) {
	items, err := h.Items.List(c.Request.Context(), c.Query("warehouse_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "item listing failed"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h InventoryHandlers) UpdateItem(c *gin.Context) {
	var req item.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	it, err := h.Items.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortItemErr(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

type adjustQuantityRequest struct {
	Delta int64 `json:"delta"`
}

func (h InventoryHandlers) AdjustItemQuantity(c *gin.Context) {
	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	it, err := h.Items.AdjustQuantity(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		abortItemErr(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h InventoryHandlers) DeleteItem(c *gin.Context) {
	if err := h.Items.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortItemErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortItemErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, item.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, item.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid item"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "item operation failed"})
	}
}

/* ===================== WAREHOUSES ===================== */

func (h InventoryHandlers) CreateWarehouse(c *gin.Context) {
	var req warehouse.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	w, err := h.Warehouses.Create(c.Request.Context(), req)
	if err != nil {
		abortWarehouseErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h InventoryHandlers) GetWarehouse(c *gin.Context) {
	w, err := h.Warehouses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWarehouseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h InventoryHandlers) ListWarehouses(c *gin.Context) {
	ws, err := h.Warehouses.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "warehouse listing failed"})
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h InventoryHandlers) UpdateWarehouse(c *gin.Context) {
	var req warehouse.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	w, err := h.Warehouses.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWarehouseErr(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h InventoryHandlers) DeleteWarehouse(c *gin.Context) {
	if err := h.Warehouses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortWarehouseErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortWarehouseErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, warehouse.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "warehouse not found"})
	case errors.Is(err, warehouse.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid warehouse"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "warehouse operation failed"})
	}
}

/* ===================== DELIVERIES ===================== */

func (h InventoryHandlers) CreateDelivery(c *gin.Context) {
	var req delivery.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := h.Deliveries.Create(c.Request.Context(), req)
	if err != nil {
		abortDeliveryErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h InventoryHandlers) GetDelivery(c *gin.Context) {
	d, err := h.Deliveries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDeliveryErr(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListDeliveries shows all deliveries to staff; drivers only see their own.
func (h InventoryHandlers) ListDeliveries(c *gin.Context) {
	filter := c.Query("driver")
	if p, ok := rbac.PrincipalFrom(c.Request.Context()); ok && p.Role == rbac.RoleDriver {
		filter = p.Identity
	}
	ds, err := h.Deliveries.List(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "delivery listing failed"})
		return
	}
	c.JSON(http.StatusOK, ds)
}

type assignDriverRequest struct {
	Driver string `json:"driver"`
}

func (h InventoryHandlers) AssignDriver(c *gin.Context) {
	var req assignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := h.Deliveries.AssignDriver(c.Request.Context(), c.Param("id"), req.Driver)
	if err != nil {
		abortDeliveryErr(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

type transitionRequest struct {
	Status delivery.Status `json:"status"`
}

func (h InventoryHandlers) TransitionDelivery(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d, err := h.Deliveries.Transition(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		abortDeliveryErr(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h InventoryHandlers) DeleteDelivery(c *gin.Context) {
	if err := h.Deliveries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortDeliveryErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func abortDeliveryErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, delivery.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "delivery not found"})
	case errors.Is(err, delivery.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
	case errors.Is(err, delivery.ErrNotADriver):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "assignee is not a driver"})
	case errors.Is(err, delivery.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid delivery"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "delivery operation failed"})
	}
}
