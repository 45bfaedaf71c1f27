package model

// QuestionType 题型（13种）
type QuestionType string

const (
	TypeSingle           QuestionType = "SINGLE"            // 单选题
	TypeMultiple         QuestionType = "MULTIPLE"          // 多选题
	TypeJudge            QuestionType = "JUDGE"             // 判断题
	TypeFill             QuestionType = "FILL"              // 填空题
	TypeShortAnswer      QuestionType = "SHORT_ANSWER"      // 简答题
	TypeEssay            QuestionType = "ESSAY"             // 论述题
	TypeCaseAnalysis     QuestionType = "CASE_ANALYSIS"     // 案例分析题
	TypeMaterialAnalysis QuestionType = "MATERIAL_ANALYSIS" // 材料分析题
	TypeCalculation      QuestionType = "CALCULATION"       // 计算题
	TypeOrdering         QuestionType = "ORDERING"          // 排序题
	TypeMatching         QuestionType = "MATCHING"          // 匹配题
	TypeComposite        QuestionType = "COMPOSITE"         // 组合题
	TypeProgramming      QuestionType = "PROGRAMMING"       // 编程题
)

// Difficulty 难度等级
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// swagger:model Question
type Question struct {
	BaseModel
	SubjectID  uint         `gorm:"index;not null" json:"subjectId"`
	ChapterID  uint         `gorm:"index" json:"chapterId"`
	Type       QuestionType `gorm:"size:30;index;not null" json:"type"`
	Title      string       `gorm:"type:text;not null" json:"title"`
	Content    string       `gorm:"type:text" json:"content"` // 题目内容/材料（富文本）
	Difficulty Difficulty   `gorm:"size:20;index;default:'MEDIUM'" json:"difficulty"`
	Score      float64      `gorm:"type:decimal(5,2);default:5" json:"score"`

	// Options 选项（JSON数组，适用于单选、多选、匹配等题型）
	Options string `gorm:"type:json" json:"options"`

	// Answer 标准答案（JSON）
	// 单选：{"answer": "A"}
	// 多选：{"answer": ["A", "B", "C"]}
	// 判断：{"answer": true}
	// 填空：{"answer": ["答案1", "答案2"]}（每空可用|分隔多个可接受答案）
	// 排序：{"answer": ["步骤1", "步骤2"]}
	// 匹配：{"answer": {"左1": "右A", "左2": "右B"}}
	// 主观题：{"answer": "参考答案", "keywords": ["关键词1"]}
	Answer string `gorm:"type:json;not null" json:"answer"`

	AnswerAnalysis string `gorm:"type:text" json:"answerAnalysis"` // 答案解析

	AIGradingEnabled bool   `gorm:"default:false" json:"aiGradingEnabled"`
	AIGradingConfig  string `gorm:"type:json" json:"aiGradingConfig"` // {"model":..., "temperature":...}

	// ScoringCriteria 评分标准（主观题）：[{"dimension":"要点完整性","score":40,"description":"..."}]
	ScoringCriteria   string `gorm:"type:json" json:"scoringCriteria"`
	ReferenceKeywords string `gorm:"type:json" json:"referenceKeywords"`

	UseCount     int `gorm:"default:0" json:"useCount"`     // 使用次数
	CorrectCount int `gorm:"default:0" json:"correctCount"` // 答对次数
	WrongCount   int `gorm:"default:0" json:"wrongCount"`   // 答错次数

	SerialNumber    int    `gorm:"index" json:"serialNumber"` // 学科内顺序号，顺序刷题按此排序
	Tags            string `gorm:"size:500" json:"tags"`
	KnowledgePoints string `gorm:"size:500" json:"knowledgePoints"`
	CreatorID       uint   `json:"creatorId"`
	Status          int    `gorm:"default:1" json:"status"` // 1-启用 0-禁用
}

func (Question) TableName() string {
	return "questions"
}

// IsObjective 是否为可自动判题的客观题型
func (t QuestionType) IsObjective() bool {
	switch t {
	case TypeSingle, TypeMultiple, TypeJudge, TypeFill, TypeOrdering, TypeMatching:
		return true
	}
	return false
}

// IsSubjective 是否为需要AI判题的主观题型
func (t QuestionType) IsSubjective() bool {
	switch t {
	case TypeShortAnswer, TypeEssay, TypeCaseAnalysis, TypeMaterialAnalysis:
		return true
	}
	return false
}
