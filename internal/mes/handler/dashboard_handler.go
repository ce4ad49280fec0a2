package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modplast83/modern-mps/internal/mes/service"
)

// DashboardHandler 看板处理器
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetRollStats 卷材统计卡片
// GET /api/v1/dashboard/roll-stats
func (h *DashboardHandler) GetRollStats(c *gin.Context) {
	f, err := parseRollFilter(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	stats, err := h.svc.GetRollStats(c.Request.Context(), f)
	if err != nil {
		InternalError(c, "获取卷材统计失败: "+err.Error())
		return
	}
	Success(c, stats)
}

// GetOrderHealth 订单交期健康度
// GET /api/v1/dashboard/order-health
func (h *DashboardHandler) GetOrderHealth(c *gin.Context) {
	health, err := h.svc.GetOrderHealth(c.Request.Context())
	if err != nil {
		InternalError(c, "获取订单健康度失败: "+err.Error())
		return
	}
	Success(c, health)
}
