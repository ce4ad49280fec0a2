package repository

import "gorm.io/gorm"

// Repositories 生产跟踪仓库集合
type Repositories struct {
	Order           *OrderRepository
	ProductionOrder *ProductionOrderRepository
	Roll            *RollRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:           NewOrderRepository(db),
		ProductionOrder: NewProductionOrderRepository(db),
		Roll:            NewRollRepository(db),
	}
}
