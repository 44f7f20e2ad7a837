package reporting

import "time"

// Common filtering inputs.

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DeliverySummaryRequest requests aggregated delivery metrics.

type DeliverySummaryRequest struct {
	Range       TimeRange `json:"range"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	Driver      string    `json:"driver,omitempty"`
}

type DeliverySummary struct {
	WarehouseID string `json:"warehouse_id,omitempty"`
	Driver      string `json:"driver,omitempty"`

	TotalDeliveries      int `json:"total_deliveries"`
	CreatedDeliveries    int `json:"created_deliveries"`
	InProgressDeliveries int `json:"in_progress_deliveries"`
	DeliveredDeliveries  int `json:"delivered_deliveries"`
	CancelledDeliveries  int `json:"cancelled_deliveries"`

	CompletionRate float64 `json:"completion_rate"`
}

// StockSummaryRequest requests aggregated stock levels, optionally scoped to
// one warehouse.

type StockSummaryRequest struct {
	WarehouseID string `json:"warehouse_id,omitempty"`
}

type StockSummary struct {
	WarehouseID string `json:"warehouse_id,omitempty"`

	DistinctItems   int   `json:"distinct_items"`
	TotalQuantity   int64 `json:"total_quantity"`
	OutOfStockItems int   `json:"out_of_stock_items"`
}
