package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/util"
	"tiku_backend/pkg/logger"
	"tiku_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScoreDetail 分项得分
type ScoreDetail struct {
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"maxScore"`
	Reason    string  `json:"reason"`
}

// AIFeedback AI判题反馈
type AIFeedback struct {
	Model        string        `json:"model,omitempty"`
	Confidence   float64       `json:"confidence"`
	ScoreDetails []ScoreDetail `json:"scoreDetails,omitempty"`
	Strengths    []string      `json:"strengths,omitempty"`
	Weaknesses   []string      `json:"weaknesses,omitempty"`
	Suggestions  string        `json:"suggestions,omitempty"`
	Comment      string        `json:"comment,omitempty"`
}

// GradingResult 判题结果
type GradingResult struct {
	AnswerRecordID   uint              `json:"answerRecordId"`
	IsCorrect        bool              `json:"isCorrect"`
	Score            float64           `json:"score"`
	TotalScore       float64           `json:"totalScore"`
	GradingType      model.GradingType `json:"gradingType"`
	CorrectAnswer    string            `json:"correctAnswer"`
	AnswerAnalysis   string            `json:"answerAnalysis"`
	AIFeedback       *AIFeedback       `json:"aiFeedback,omitempty"`
	NeedManualReview bool              `json:"needManualReview"`
	GradingTimeMs    int               `json:"-"`
}

// SubmitAnswerRequest 提交答案请求
type SubmitAnswerRequest struct {
	QuestionID   uint            `json:"questionId" binding:"required"`
	UserAnswer   json.RawMessage `json:"userAnswer" binding:"required"`
	PracticeMode string          `json:"practiceMode"`
	ExamID       uint            `json:"examId"`
	TimeSpent    int             `json:"timeSpent"`
}

// GradingService 判题调度：按题型和题目配置选择判题策略，
// 落库答题记录并联动题目/用户统计与错题本
type GradingService struct {
	QuestionRepo        *repository.QuestionRepository
	AnswerRecordRepo    *repository.AnswerRecordRepository
	AIGradingRecordRepo *repository.AIGradingRecordRepository
	WrongQuestionRepo   *repository.WrongQuestionRepository
	UserRepo            *repository.UserRepository
	Auto                *AutoGradingStrategy
	AI                  *AIGradingStrategy
	DB                  *gorm.DB
}

func NewGradingService(
	questionRepo *repository.QuestionRepository,
	answerRecordRepo *repository.AnswerRecordRepository,
	aiGradingRecordRepo *repository.AIGradingRecordRepository,
	wrongQuestionRepo *repository.WrongQuestionRepository,
	userRepo *repository.UserRepository,
	auto *AutoGradingStrategy,
	ai *AIGradingStrategy,
	db *gorm.DB,
) *GradingService {
	return &GradingService{
		QuestionRepo:        questionRepo,
		AnswerRecordRepo:    answerRecordRepo,
		AIGradingRecordRepo: aiGradingRecordRepo,
		WrongQuestionRepo:   wrongQuestionRepo,
		UserRepo:            userRepo,
		Auto:                auto,
		AI:                  ai,
		DB:                  db,
	}
}

// selectGradingType 判题策略选择：
// 1. 只能AI判的主观题 -> AI
// 2. 题目显式启用AI判题且题型支持 -> AI
// 3. 客观题 -> 自动判题
// 4. 其余题型（组合、计算、编程）暂不支持在线判题
func selectGradingType(t model.QuestionType, aiGradingEnabled bool) (model.GradingType, error) {
	aiSupported := t.IsSubjective()
	autoSupported := t.IsObjective()

	if aiSupported && !autoSupported {
		return model.GradingAI, nil
	}
	if aiGradingEnabled && aiSupported {
		return model.GradingAI, nil
	}
	if autoSupported {
		return model.GradingAuto, nil
	}
	return "", util.ErrQuestionTypeNotSupported
}

// SubmitAndGrade 提交答案并判题
// AI调用在事务外执行，避免长时间占用数据库连接；落库、统计、错题本在同一事务内完成
func (s *GradingService) SubmitAndGrade(ctx context.Context, req *SubmitAnswerRequest, userID uint) (*GradingResult, error) {
	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.Status != 1 {
		return nil, util.ErrQuestionDisabled
	}

	gradingType, err := selectGradingType(question.Type, question.AIGradingEnabled)
	if err != nil {
		return nil, err
	}

	userAnswer := string(req.UserAnswer)

	var result *GradingResult
	switch gradingType {
	case model.GradingAI:
		// 调用AI前调用方已断开则直接放弃，落库之后不再受取消影响
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err = s.AI.Grade(ctx, question, userAnswer)
	default:
		result, err = s.Auto.Grade(question, userAnswer)
		if errors.Is(err, util.ErrMalformedAnswer) {
			// 答案格式不合法按答错0分记录，不中断提交
			logger.Log.Warn("Malformed answer graded as wrong",
				zap.Uint("questionID", question.ID), zap.Uint("userID", userID), zap.Error(err))
			result = &GradingResult{
				IsCorrect:      false,
				Score:          0,
				TotalScore:     question.Score,
				GradingType:    model.GradingAuto,
				CorrectAnswer:  question.Answer,
				AnswerAnalysis: question.AnswerAnalysis,
			}
			err = nil
		}
	}
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		record, err := s.saveAnswerRecord(tx, req, userID, userAnswer, result)
		if err != nil {
			return err
		}
		result.AnswerRecordID = record.ID

		if result.GradingType == model.GradingAI && result.AIFeedback != nil {
			if err := s.saveAIGradingRecord(tx, record, question, result); err != nil {
				// AI记录落库失败不阻断主流程
				logger.Log.Error("Failed to save AI grading record",
					zap.Uint("answerRecordID", record.ID), zap.Error(err))
			}
		}

		if err := s.QuestionRepo.IncrementUsage(tx, question.ID, result.IsCorrect); err != nil {
			return err
		}
		if err := s.UserRepo.IncrementAnswerStats(tx, userID, result.IsCorrect); err != nil {
			return err
		}
		return s.updateWrongQuestion(tx, userID, question.ID, record.ID, result.IsCorrect)
	})
	if err != nil {
		return nil, err
	}

	outcome := "wrong"
	if result.IsCorrect {
		outcome = "correct"
	}
	monitoring.GradingCounter.WithLabelValues(string(result.GradingType), outcome).Inc()

	return result, nil
}

// BatchSubmitAndGrade 批量提交（交卷场景），逐题判分
func (s *GradingService) BatchSubmitAndGrade(ctx context.Context, reqs []SubmitAnswerRequest, userID uint) ([]GradingResult, error) {
	results := make([]GradingResult, 0, len(reqs))
	for i := range reqs {
		result, err := s.SubmitAndGrade(ctx, &reqs[i], userID)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *GradingService) saveAnswerRecord(tx *gorm.DB, req *SubmitAnswerRequest, userID uint, userAnswer string, result *GradingResult) (*model.AnswerRecord, error) {
	now := time.Now()
	record := &model.AnswerRecord{
		UserID:       userID,
		QuestionID:   req.QuestionID,
		PracticeMode: req.PracticeMode,
		ExamID:       req.ExamID,
		UserAnswer:   userAnswer,
		IsCorrect:    &result.IsCorrect,
		Score:        result.Score,
		GradingType:  result.GradingType,
		TimeSpent:    req.TimeSpent,
		AnsweredAt:   now,
	}

	if result.GradingType == model.GradingAI && result.NeedManualReview {
		record.GradingStatus = model.GradingReviewing
	} else {
		record.GradingStatus = model.GradingGraded
		record.GradedAt = &now
	}

	if err := s.AnswerRecordRepo.Create(tx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *GradingService) saveAIGradingRecord(tx *gorm.DB, record *model.AnswerRecord, question *model.Question, result *GradingResult) error {
	feedbackJSON, err := json.Marshal(result.AIFeedback)
	if err != nil {
		return err
	}

	aiRecord := &model.AIGradingRecord{
		AnswerRecordID: record.ID,
		QuestionID:     question.ID,
		UserID:         record.UserID,
		StudentAnswer:  extractAnswerText(record.UserAnswer),
		AIModel:        result.AIFeedback.Model,
		AIScore:        result.Score,
		AIConfidence:   result.AIFeedback.Confidence,
		AIFeedback:     string(feedbackJSON),
		ManualReview:   result.NeedManualReview,
		GradingTime:    result.GradingTimeMs,
	}

	// 无需复核时最终分数即AI分数
	if !result.NeedManualReview {
		score := result.Score
		aiRecord.FinalScore = &score
	}

	return s.AIGradingRecordRepo.Create(tx, aiRecord)
}

// nextWrongState 错题状态机：答错计数+1，累计3次升级为反复错；答对标记已掌握（计数保留）
func nextWrongState(wrongCount int, correct bool) (int, model.WrongStatus) {
	if correct {
		return wrongCount, model.WrongStatusMastered
	}
	wrongCount++
	if wrongCount >= 3 {
		return wrongCount, model.WrongStatusRepeatedWrong
	}
	return wrongCount, model.WrongStatusWrong
}

// updateWrongQuestion 同一用户同一题的并发提交通过行锁串行化
func (s *GradingService) updateWrongQuestion(tx *gorm.DB, userID, questionID, answerRecordID uint, correct bool) error {
	wq, err := s.WrongQuestionRepo.FindByUserAndQuestionForUpdate(tx, userID, questionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if correct {
			// 不在错题本里，答对无需处理
			return nil
		}
		return s.WrongQuestionRepo.Create(tx, &model.WrongQuestion{
			UserID:             userID,
			QuestionID:         questionID,
			WrongCount:         1,
			LastAnswerRecordID: answerRecordID,
			Status:             model.WrongStatusWrong,
		})
	}

	count, status := nextWrongState(wq.WrongCount, correct)
	wq.WrongCount = count
	wq.Status = status
	if !correct {
		// 已移除的错题再次答错时重新进入错题本
		wq.Removed = false
		wq.LastAnswerRecordID = answerRecordID
	}
	return s.WrongQuestionRepo.Update(tx, wq)
}
