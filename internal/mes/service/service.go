package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/modplast83/modern-mps/internal/mes/repository"
)

// Services 生产跟踪服务集合
type Services struct {
	Order      *OrderService
	Production *ProductionService
	Roll       *RollService
	Dashboard  *DashboardService
	Report     *ReportService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, minioClient *minio.Client, bucketName string, logger *zap.Logger) *Services {
	return &Services{
		Order:      NewOrderService(repos.Order, repos.ProductionOrder, logger),
		Production: NewProductionService(repos.ProductionOrder, repos.Order),
		Roll:       NewRollService(repos.Roll, repos.ProductionOrder, repos.Order),
		Dashboard:  NewDashboardService(repos.Roll, repos.Order, rdb, logger),
		Report:     NewReportService(repos.Roll, minioClient, bucketName, logger),
	}
}
