package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modplast83/modern-mps/internal/mes/service"
)

type RollHandler struct {
	svc *service.RollService
}

func NewRollHandler(svc *service.RollService) *RollHandler {
	return &RollHandler{svc: svc}
}

func (h *RollHandler) Create(c *gin.Context) {
	var req service.CreateRollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	roll, err := h.svc.Create(req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, roll)
}

func (h *RollHandler) Get(c *gin.Context) {
	roll, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		NotFound(c, "卷材不存在")
		return
	}
	Success(c, roll)
}

// List 多条件筛选，条件全部可选，组合为逻辑与
func (h *RollHandler) List(c *gin.Context) {
	f, err := parseRollFilter(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	rolls, stats, err := h.svc.Filter(f)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": rolls, "stats": stats})
}

func (h *RollHandler) ListByProductionOrder(c *gin.Context) {
	rolls, err := h.svc.ListByProductionOrder(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": rolls})
}

// Advance 阶段前进
func (h *RollHandler) Advance(c *gin.Context) {
	var req service.AdvanceRollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	roll, err := h.svc.Advance(c.Param("id"), req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, roll)
}

func parseRollFilter(c *gin.Context) (service.RollFilter, error) {
	f := service.RollFilter{
		Search:            c.Query("search"),
		Stage:             c.Query("stage"),
		CustomerID:        c.Query("customer_id"),
		ProductionOrderID: c.Query("production_order_id"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return f, errors.New("from 日期格式应为 YYYY-MM-DD")
		}
		f.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return f, errors.New("to 日期格式应为 YYYY-MM-DD")
		}
		// 上界含当天
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.To = &end
	}
	return f, nil
}
