package repository

import (
	"time"

	"tiku_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRecordRepository struct {
	DB *gorm.DB
}

func NewAnswerRecordRepository(db *gorm.DB) *AnswerRecordRepository {
	return &AnswerRecordRepository{DB: db}
}

func (r *AnswerRecordRepository) Create(tx *gorm.DB, record *model.AnswerRecord) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.Create(record).Error
}

func (r *AnswerRecordRepository) FindByID(id uint) (*model.AnswerRecord, error) {
	var record model.AnswerRecord
	err := r.DB.First(&record, id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AnswerRecordRepository) Update(tx *gorm.DB, record *model.AnswerRecord) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.Save(record).Error
}

// FindByUserWithPagination 用户答题记录，按时间倒序
func (r *AnswerRecordRepository) FindByUserWithPagination(userID uint, page, limit int) ([]model.AnswerRecord, int64, error) {
	var records []model.AnswerRecord
	var total int64

	db := r.DB.Model(&model.AnswerRecord{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Order("answered_at desc").Offset(offset).Limit(limit).Find(&records).Error
	return records, total, err
}

// FindRecentByUser 用户最近n条答题记录，智能推荐分析薄弱章节用
func (r *AnswerRecordRepository) FindRecentByUser(userID uint, limit int) ([]model.AnswerRecord, error) {
	var records []model.AnswerRecord
	err := r.DB.Where("user_id = ?", userID).
		Order("answered_at desc").Limit(limit).Find(&records).Error
	return records, err
}

// CountSince 用户某时刻之后的答题总数，顺序刷题续答进度估算用
func (r *AnswerRecordRepository) CountSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AnswerRecord{}).
		Where("user_id = ? AND answered_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

// FindWrongRecords 用户在某题上最近的错误作答
func (r *AnswerRecordRepository) FindWrongRecords(userID, questionID uint, limit int) ([]model.AnswerRecord, error) {
	var records []model.AnswerRecord
	err := r.DB.Where("user_id = ? AND question_id = ? AND is_correct = ?", userID, questionID, false).
		Order("answered_at desc").Limit(limit).Find(&records).Error
	return records, err
}
