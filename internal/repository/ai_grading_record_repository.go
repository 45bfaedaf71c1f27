package repository

import (
	"tiku_backend/internal/model"

	"gorm.io/gorm"
)

type AIGradingRecordRepository struct {
	DB *gorm.DB
}

func NewAIGradingRecordRepository(db *gorm.DB) *AIGradingRecordRepository {
	return &AIGradingRecordRepository{DB: db}
}

func (r *AIGradingRecordRepository) Create(tx *gorm.DB, record *model.AIGradingRecord) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.Create(record).Error
}

func (r *AIGradingRecordRepository) FindByID(id uint) (*model.AIGradingRecord, error) {
	var record model.AIGradingRecord
	err := r.DB.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AIGradingRecordRepository) Update(record *model.AIGradingRecord) error {
	return r.DB.Save(record).Error
}

// FindPendingReview 待人工复核的AI判题记录（低置信度且尚未复核）
func (r *AIGradingRecordRepository) FindPendingReview(page, limit int) ([]model.AIGradingRecord, int64, error) {
	var records []model.AIGradingRecord
	var total int64

	db := r.DB.Model(&model.AIGradingRecord{}).
		Where("manual_review = ? AND final_score IS NULL", true)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Order("created_at asc").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}

// GradingStats AI判题统计
type GradingStats struct {
	Total          int64   `json:"total"`
	PendingReview  int64   `json:"pendingReview"`
	Reviewed       int64   `json:"reviewed"`
	HighConfidence int64   `json:"highConfidence"` // 置信度≥0.9
	AvgConfidence  float64 `json:"avgConfidence"`
	AvgGradingTime float64 `json:"avgGradingTime"` // 毫秒
}

func (r *AIGradingRecordRepository) Stats() (*GradingStats, error) {
	var stats GradingStats
	if err := r.DB.Model(&model.AIGradingRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.AIGradingRecord{}).
		Where("manual_review = ? AND final_score IS NULL", true).
		Count(&stats.PendingReview).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.AIGradingRecord{}).
		Where("final_score IS NOT NULL").
		Count(&stats.Reviewed).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.AIGradingRecord{}).
		Where("ai_confidence >= ?", 0.9).
		Count(&stats.HighConfidence).Error; err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		if err := r.DB.Model(&model.AIGradingRecord{}).
			Select("COALESCE(AVG(ai_confidence), 0)").Scan(&stats.AvgConfidence).Error; err != nil {
			return nil, err
		}
		if err := r.DB.Model(&model.AIGradingRecord{}).
			Select("COALESCE(AVG(grading_time), 0)").Scan(&stats.AvgGradingTime).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}
