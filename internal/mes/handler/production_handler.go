package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modplast83/modern-mps/internal/mes/repository"
	"github.com/modplast83/modern-mps/internal/mes/service"
)

type ProductionHandler struct {
	svc *service.ProductionService
}

func NewProductionHandler(svc *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

func (h *ProductionHandler) Create(c *gin.Context) {
	var req service.CreateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	po, err := h.svc.Create(req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, po)
}

func (h *ProductionHandler) Get(c *gin.Context) {
	po, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		NotFound(c, "生产单不存在")
		return
	}
	Success(c, po)
}

func (h *ProductionHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.POListParams{
		OrderID: c.Query("order_id"),
		Status:  c.Query("status"),
		Keyword: c.Query("keyword"),
		Page:    page,
		Size:    size,
	}
	pos, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": pos, "total": total, "page": page, "size": size})
}

func (h *ProductionHandler) Update(c *gin.Context) {
	var req service.UpdateProductionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	po, err := h.svc.Update(c.Param("id"), req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, po)
}

// UpdateProgress 录入阶段完成率
func (h *ProductionHandler) UpdateProgress(c *gin.Context) {
	var req service.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	po, err := h.svc.UpdateProgress(c.Param("id"), req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, po)
}
