package httpapi

import (
	"errors"
	"net/http"
	"time"

	"warehouse-platform/internal/reporting"

	"github.com/gin-gonic/gin"
)

// ReportHandlers serves read-only aggregate views.
type ReportHandlers struct {
	Reports *reporting.Service
}

func (h ReportHandlers) DeliverySummary(c *gin.Context) {
	from, okFrom := parseTime(c.Query("from"))
	to, okTo := parseTime(c.Query("to"))
	if !okFrom || !okTo {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from and to must be RFC3339 timestamps"})
		return
	}

	sum, err := h.Reports.DeliverySummary(c.Request.Context(), reporting.DeliverySummaryRequest{
		Range:       reporting.TimeRange{From: from, To: to},
		WarehouseID: c.Query("warehouse_id"),
		Driver:      c.Query("driver"),
	})
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid report range"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h ReportHandlers) StockSummary(c *gin.Context) {
	sum, err := h.Reports.StockSummary(c.Request.Context(), reporting.StockSummaryRequest{
		WarehouseID: c.Query("warehouse_id"),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func parseTime(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
