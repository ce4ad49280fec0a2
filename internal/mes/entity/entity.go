package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有生产跟踪表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Order{},
		&ProductionOrder{},
		&Roll{},
	)
}
