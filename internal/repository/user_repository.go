package repository

import (
	"tiku_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// IncrementAnswerStats 累加用户答题统计，correct为true时同时累加答对数
// 使用表达式更新避免并发提交时丢失计数
func (r *UserRepository) IncrementAnswerStats(tx *gorm.DB, userID uint, correct bool) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	updates := map[string]interface{}{
		"total_answer_count": gorm.Expr("total_answer_count + 1"),
	}
	if correct {
		updates["total_correct_count"] = gorm.Expr("total_correct_count + 1")
	}
	return db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}
