package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/modplast83/modern-mps/internal/mes/repository"
	"github.com/modplast83/modern-mps/internal/mes/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, order)
}

// Get 订单详情，附带交期和加权完成率
func (h *OrderHandler) Get(c *gin.Context) {
	detail, err := h.svc.GetDetail(c.Param("id"))
	if err != nil {
		NotFound(c, "订单不存在")
		return
	}
	Success(c, detail)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.OrderListParams{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Keyword:    c.Query("keyword"),
		Page:       page,
		Size:       size,
	}
	orders, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": orders, "total": total, "page": page, "size": size})
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, order)
}

// UpdateStatus 手动状态流转。未识别的目标状态是校验失败，
// 写库失败单独报 50000
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.svc.TransitionStatus(c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrUnknownStatus) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrOrderHasProduction) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
