package repository

import (
	"github.com/modplast83/modern-mps/internal/mes/entity"
	"gorm.io/gorm"
)

type RollRepository struct {
	db *gorm.DB
}

func NewRollRepository(db *gorm.DB) *RollRepository {
	return &RollRepository{db: db}
}

func (r *RollRepository) Create(roll *entity.Roll) error {
	return r.db.Create(roll).Error
}

func (r *RollRepository) GetByID(id string) (*entity.Roll, error) {
	var roll entity.Roll
	err := r.db.Where("id = ?", id).First(&roll).Error
	return &roll, err
}

func (r *RollRepository) Update(roll *entity.Roll) error {
	return r.db.Save(roll).Error
}

// ListAll 全量卷材，按创建时间升序。筛选引擎在内存中执行，
// 保证同一条件反复套用结果稳定
func (r *RollRepository) ListAll() ([]entity.Roll, error) {
	var rolls []entity.Roll
	err := r.db.Order("created_at ASC").Find(&rolls).Error
	return rolls, err
}

func (r *RollRepository) ListByProductionOrder(poID string) ([]entity.Roll, error) {
	var rolls []entity.Roll
	err := r.db.Where("production_order_id = ?", poID).
		Order("seq ASC").Find(&rolls).Error
	return rolls, err
}

// NextSeq 生产单内下一个卷序号
func (r *RollRepository) NextSeq(poID string) (int, error) {
	var result struct{ MaxSeq int }
	err := r.db.Model(&entity.Roll{}).
		Select("COALESCE(MAX(seq), 0) as max_seq").
		Where("production_order_id = ?", poID).Scan(&result).Error
	return result.MaxSeq + 1, err
}
