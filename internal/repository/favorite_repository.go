package repository

import (
	"tiku_backend/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

func (r *FavoriteRepository) Create(fav *model.Favorite) error {
	return r.DB.Create(fav).Error
}

func (r *FavoriteRepository) FindByUserAndQuestion(userID, questionID uint) (*model.Favorite, error) {
	var fav model.Favorite
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&fav).Error
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

func (r *FavoriteRepository) Delete(userID, questionID uint) error {
	return r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).
		Delete(&model.Favorite{}).Error
}

func (r *FavoriteRepository) FindByUserWithPagination(userID uint, page, limit int) ([]model.Favorite, int64, error) {
	var items []model.Favorite
	var total int64

	db := r.DB.Model(&model.Favorite{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// QuestionIDsByUser 收藏练习取题：最近收藏的在前
func (r *FavoriteRepository) QuestionIDsByUser(userID uint, subjectID uint) ([]uint, error) {
	var ids []uint
	db := r.DB.Model(&model.Favorite{}).
		Where("favorites.user_id = ?", userID)
	if subjectID > 0 {
		db = db.Joins("JOIN questions q ON q.id = favorites.question_id").
			Where("q.subject_id = ?", subjectID)
	}
	err := db.Order("favorites.created_at desc").Pluck("favorites.question_id", &ids).Error
	return ids, err
}
