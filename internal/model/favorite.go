package model

// swagger:model Favorite
type Favorite struct {
	BaseModel
	UserID     uint   `gorm:"uniqueIndex:uk_user_fav_question;not null" json:"userId"`
	QuestionID uint   `gorm:"uniqueIndex:uk_user_fav_question;not null" json:"questionId"`
	Note       string `gorm:"size:500" json:"note"`
}

func (Favorite) TableName() string {
	return "favorites"
}
