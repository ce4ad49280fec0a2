package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/modplast83/modern-mps/internal/mes/repository"
)

var rollReportHeaders = []string{
	"卷号", "订单号", "生产单号", "客户", "品名", "阶段",
	"卷重(kg)", "切后重量(kg)", "废料(kg)", "机台", "操作员", "创建时间",
}

type ReportService struct {
	rollRepo    *repository.RollRepository
	minioClient *minio.Client
	bucketName  string
	logger      *zap.Logger
}

func NewReportService(rollRepo *repository.RollRepository, minioClient *minio.Client, bucketName string, logger *zap.Logger) *ReportService {
	return &ReportService{
		rollRepo:    rollRepo,
		minioClient: minioClient,
		bucketName:  bucketName,
		logger:      logger,
	}
}

// ExportRolls 导出筛选后的卷材清单，末行附汇总
func (s *ReportService) ExportRolls(ctx context.Context, f RollFilter) (*excelize.File, string, error) {
	rolls, err := s.rollRepo.ListAll()
	if err != nil {
		return nil, "", fmt.Errorf("读取卷材失败: %w", err)
	}
	matched := FilterRolls(rolls, f)
	stats := SummarizeRolls(matched)

	file := excelize.NewFile()
	sheet := "Rolls"
	file.SetSheetName("Sheet1", sheet)

	boldStyle, _ := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range rollReportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		file.SetCellValue(sheet, cell, h)
		file.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, r := range matched {
		row := rowIdx + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.RollNo)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.OrderNo)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.PONo)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.CustomerName)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.ItemName)
		file.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Stage)
		file.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.WeightValue())
		file.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.CutWeightValue())
		file.SetCellValue(sheet, fmt.Sprintf("I%d", row), r.WasteValue())
		file.SetCellValue(sheet, fmt.Sprintf("J%d", row), r.MachineName)
		file.SetCellValue(sheet, fmt.Sprintf("K%d", row), r.OperatorName)
		file.SetCellValue(sheet, fmt.Sprintf("L%d", row), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	totalRow := len(matched) + 2
	file.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("合计 %d 卷", stats.Total))
	file.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), stats.TotalWeightKg)
	file.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("A%d", totalRow), boldStyle)

	filename := fmt.Sprintf("rolls_%s.xlsx", time.Now().Format("20060102_150405"))
	return file, filename, nil
}

// ArchiveReport 把生成的报表归档到对象存储。未配置 MinIO 时跳过
func (s *ReportService) ArchiveReport(ctx context.Context, file *excelize.File, filename string) (string, error) {
	if s.minioClient == nil {
		return "", nil
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return "", fmt.Errorf("序列化报表失败: %w", err)
	}

	objectName := fmt.Sprintf("reports/%s/%s", time.Now().Format("2006/01"), filename)
	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	})
	if err != nil {
		return "", fmt.Errorf("上传报表失败: %w", err)
	}

	s.logger.Info("报表已归档", zap.String("object", objectName))
	return objectName, nil
}
