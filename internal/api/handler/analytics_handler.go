package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chiesa14/pvms-ne/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(as *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as}
}

// GET /api/v1/analytics/dashboard (admin)
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	stats, err := h.analyticsService.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lỗi khi tổng hợp số liệu", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
