package repository

import (
	"tiku_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WrongQuestionRepository struct {
	DB *gorm.DB
}

func NewWrongQuestionRepository(db *gorm.DB) *WrongQuestionRepository {
	return &WrongQuestionRepository{DB: db}
}

func (r *WrongQuestionRepository) Create(tx *gorm.DB, wq *model.WrongQuestion) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.Create(wq).Error
}

// FindByUserAndQuestionForUpdate 行锁读取，同一题并发提交时串行更新错题状态
func (r *WrongQuestionRepository) FindByUserAndQuestionForUpdate(tx *gorm.DB, userID, questionID uint) (*model.WrongQuestion, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var wq model.WrongQuestion
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&wq).Error
	if err != nil {
		return nil, err
	}
	return &wq, nil
}

func (r *WrongQuestionRepository) FindByUserAndQuestion(userID, questionID uint) (*model.WrongQuestion, error) {
	var wq model.WrongQuestion
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&wq).Error
	if err != nil {
		return nil, err
	}
	return &wq, nil
}

func (r *WrongQuestionRepository) Update(tx *gorm.DB, wq *model.WrongQuestion) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.Save(wq).Error
}

// FindByUserWithPagination 错题本列表，可按状态过滤，已移除的不展示
func (r *WrongQuestionRepository) FindByUserWithPagination(userID uint, status model.WrongStatus, page, limit int) ([]model.WrongQuestion, int64, error) {
	var items []model.WrongQuestion
	var total int64

	db := r.DB.Model(&model.WrongQuestion{}).
		Where("user_id = ? AND removed = ?", userID, false)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Order("updated_at desc").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// FindByUserAndStatus 错题强化取题：按错误次数从多到少排序
func (r *WrongQuestionRepository) FindByUserAndStatus(userID uint, status model.WrongStatus) ([]model.WrongQuestion, error) {
	var items []model.WrongQuestion
	err := r.DB.Where("user_id = ? AND status = ? AND removed = ?", userID, status, false).
		Order("wrong_count desc").Find(&items).Error
	return items, err
}

// CountByStatus 错题本各状态数量统计
func (r *WrongQuestionRepository) CountByStatus(userID uint) (map[model.WrongStatus]int64, error) {
	type row struct {
		Status model.WrongStatus
		Cnt    int64
	}
	var rows []row
	err := r.DB.Model(&model.WrongQuestion{}).
		Select("status, COUNT(*) as cnt").
		Where("user_id = ? AND removed = ?", userID, false).
		Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[model.WrongStatus]int64, len(rows))
	for _, r := range rows {
		result[r.Status] = r.Cnt
	}
	return result, nil
}
