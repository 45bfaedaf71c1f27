package repository

import (
	"tiku_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SystemConfigRepository struct {
	DB *gorm.DB
}

func NewSystemConfigRepository(db *gorm.DB) *SystemConfigRepository {
	return &SystemConfigRepository{DB: db}
}

func (r *SystemConfigRepository) FindByKey(key string) (*model.SystemConfig, error) {
	var cfg model.SystemConfig
	err := r.DB.Where("config_key = ?", key).First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *SystemConfigRepository) FindAll() ([]model.SystemConfig, error) {
	var configs []model.SystemConfig
	err := r.DB.Order("config_key asc").Find(&configs).Error
	return configs, err
}

// Upsert 按config_key插入或更新
func (r *SystemConfigRepository) Upsert(cfg *model.SystemConfig) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value", "description", "updated_at"}),
	}).Create(cfg).Error
}
