package model

// WrongStatus 错题状态
type WrongStatus string

const (
	WrongStatusWrong         WrongStatus = "WRONG"          // 易错
	WrongStatusRepeatedWrong WrongStatus = "REPEATED_WRONG" // 反复错（3次及以上）
	WrongStatusMastered      WrongStatus = "MASTERED"       // 已掌握
)

// swagger:model WrongQuestion
type WrongQuestion struct {
	BaseModel
	UserID     uint `gorm:"uniqueIndex:uk_user_question;not null" json:"userId"`
	QuestionID uint `gorm:"uniqueIndex:uk_user_question;not null" json:"questionId"`

	WrongCount         int         `gorm:"default:1" json:"wrongCount"`
	LastAnswerRecordID uint        `json:"lastAnswerRecordId"` // 最后一次答错的答题记录
	Status             WrongStatus `gorm:"size:20;index;default:'WRONG'" json:"status"`
	Removed            bool        `gorm:"default:false" json:"removed"` // 软删除，新错误会重新进入错题本
}

func (WrongQuestion) TableName() string {
	return "wrong_questions"
}
