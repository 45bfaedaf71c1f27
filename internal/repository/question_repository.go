package repository

import (
	"tiku_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// QuestionFilter 题目查询条件
type QuestionFilter struct {
	SubjectID  uint
	ChapterID  uint
	Type       model.QuestionType
	Difficulty model.Difficulty
	Keyword    string
	Status     *int
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Model(question).Updates(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func (r *QuestionRepository) applyFilter(db *gorm.DB, f QuestionFilter) *gorm.DB {
	if f.SubjectID > 0 {
		db = db.Where("subject_id = ?", f.SubjectID)
	}
	if f.ChapterID > 0 {
		db = db.Where("chapter_id = ?", f.ChapterID)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Difficulty != "" {
		db = db.Where("difficulty = ?", f.Difficulty)
	}
	if f.Keyword != "" {
		db = db.Where("title LIKE ?", "%"+f.Keyword+"%")
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	} else {
		db = db.Where("status = ?", 1)
	}
	return db
}

// FindWithPagination 按条件分页查询题目
func (r *QuestionRepository) FindWithPagination(f QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	db := r.applyFilter(r.DB.Model(&model.Question{}), f)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Order("id asc").Offset(offset).Limit(limit).Find(&questions).Error
	return questions, total, err
}

// FindRandom 按条件随机抽取count道题目
func (r *QuestionRepository) FindRandom(f QuestionFilter, count int) ([]model.Question, error) {
	var questions []model.Question
	db := r.applyFilter(r.DB.Model(&model.Question{}), f)
	err := db.Order("RAND()").Limit(count).Find(&questions).Error
	return questions, err
}

// FindSequentialPage 顺序刷题：按学科内顺序号排序，从offset处开始取count道
func (r *QuestionRepository) FindSequentialPage(f QuestionFilter, offset, count int) ([]model.Question, error) {
	var questions []model.Question
	db := r.applyFilter(r.DB.Model(&model.Question{}), f)
	err := db.Order("serial_number asc, id asc").Offset(offset).Limit(count).Find(&questions).Error
	return questions, err
}

// FindFirst 按条件取前count道（闯关、限时挑战用固定题序）
func (r *QuestionRepository) FindFirst(f QuestionFilter, count int) ([]model.Question, error) {
	var questions []model.Question
	db := r.applyFilter(r.DB.Model(&model.Question{}), f)
	err := db.Order("id asc").Limit(count).Find(&questions).Error
	return questions, err
}

// MaxSerialNumber 学科内当前最大顺序号，新题入库时+1
func (r *QuestionRepository) MaxSerialNumber(subjectID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Question{}).Where("subject_id = ?", subjectID).
		Select("COALESCE(MAX(serial_number), 0)").Scan(&max).Error
	return max, err
}

// IncrementUsage 累加题目使用统计
func (r *QuestionRepository) IncrementUsage(tx *gorm.DB, questionID uint, correct bool) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	updates := map[string]interface{}{
		"use_count": gorm.Expr("use_count + 1"),
	}
	if correct {
		updates["correct_count"] = gorm.Expr("correct_count + 1")
	} else {
		updates["wrong_count"] = gorm.Expr("wrong_count + 1")
	}
	return db.Model(&model.Question{}).Where("id = ?", questionID).Updates(updates).Error
}
