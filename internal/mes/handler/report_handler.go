package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/modplast83/modern-mps/internal/mes/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ExportRolls GET /api/v1/reports/rolls/export
// 按与卷材列表相同的筛选条件导出 Excel；archive=1 时同步归档到对象存储
func (h *ReportHandler) ExportRolls(c *gin.Context) {
	f, err := parseRollFilter(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	file, filename, err := h.svc.ExportRolls(c.Request.Context(), f)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer file.Close()

	if c.Query("archive") == "1" {
		if _, err := h.svc.ArchiveReport(c.Request.Context(), file, filename); err != nil {
			InternalError(c, err.Error())
			return
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := file.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
