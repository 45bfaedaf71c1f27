package model

import "time"

// GradingType 判题方式
type GradingType string

const (
	GradingAuto   GradingType = "AUTO"   // 自动判题（客观题）
	GradingAI     GradingType = "AI"     // AI判题
	GradingManual GradingType = "MANUAL" // 人工判题
)

// GradingStatus 判题状态
type GradingStatus string

const (
	GradingPending   GradingStatus = "PENDING"   // 待判题
	GradingGraded    GradingStatus = "GRADED"    // 已判题
	GradingReviewing GradingStatus = "REVIEWING" // 复核中
)

// swagger:model AnswerRecord
type AnswerRecord struct {
	BaseModel
	UserID       uint   `gorm:"index;not null" json:"userId"`
	QuestionID   uint   `gorm:"index;not null" json:"questionId"`
	PracticeMode string `gorm:"size:50" json:"practiceMode"`
	ExamID       uint   `gorm:"index" json:"examId"`

	UserAnswer string `gorm:"type:json;not null" json:"userAnswer"`

	IsCorrect *bool   `json:"isCorrect"` // 客观题结论；主观题按得分率折算
	Score     float64 `gorm:"type:decimal(5,2)" json:"score"`

	GradingType   GradingType   `gorm:"size:20" json:"gradingType"`
	GradingStatus GradingStatus `gorm:"size:20;index;default:'PENDING'" json:"gradingStatus"`

	TimeSpent  int        `json:"timeSpent"` // 答题用时（秒）
	IsMarked   bool       `gorm:"default:false" json:"isMarked"`
	Note       string     `gorm:"type:text" json:"note"`
	AnsweredAt time.Time  `json:"answeredAt"`
	GradedAt   *time.Time `json:"gradedAt"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
