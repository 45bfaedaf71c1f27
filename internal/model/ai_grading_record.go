package model

// swagger:model AIGradingRecord
type AIGradingRecord struct {
	BaseModel
	AnswerRecordID uint `gorm:"index;not null" json:"answerRecordId"`
	QuestionID     uint `gorm:"index;not null" json:"questionId"`
	UserID         uint `gorm:"index;not null" json:"userId"`

	StudentAnswer string  `gorm:"type:text" json:"studentAnswer"`
	AIModel       string  `gorm:"size:50" json:"aiModel"`
	AIScore       float64 `gorm:"type:decimal(5,2)" json:"aiScore"`
	AIConfidence  float64 `gorm:"type:decimal(3,2)" json:"aiConfidence"` // 0-1

	// AIFeedback AI反馈（JSON）：{"scoreDetails":[...],"strengths":[...],"weaknesses":[...],"suggestions":"...","comment":"..."}
	AIFeedback string `gorm:"type:json" json:"aiFeedback"`

	ManualReview  bool     `gorm:"default:false" json:"manualReview"`
	ManualScore   *float64 `gorm:"type:decimal(5,2)" json:"manualScore"`
	ReviewerID    uint     `json:"reviewerId"`
	ReviewComment string   `gorm:"type:text" json:"reviewComment"`
	FinalScore    *float64 `gorm:"type:decimal(5,2)" json:"finalScore"`

	GradingTime int `json:"gradingTime"` // 判题耗时（毫秒）
}

func (AIGradingRecord) TableName() string {
	return "ai_grading_records"
}
