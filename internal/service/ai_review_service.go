package service

import (
	"encoding/json"
	"errors"
	"time"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/util"
	"tiku_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AIGradingRecordDTO AI判题记录，附带用户名和题目内容
type AIGradingRecordDTO struct {
	ID              uint                   `json:"id"`
	AnswerRecordID  uint                   `json:"answerRecordId"`
	QuestionID      uint                   `json:"questionId"`
	QuestionContent string                 `json:"questionContent,omitempty"`
	UserID          uint                   `json:"userId"`
	Username        string                 `json:"username,omitempty"`
	UserAnswer      string                 `json:"userAnswer"`
	Score           float64                `json:"score"`
	Confidence      float64                `json:"confidence"`
	AIModel         string                 `json:"aiModel"`
	AIFeedback      map[string]interface{} `json:"aiFeedback,omitempty"`
	Feedback        string                 `json:"feedback,omitempty"`
	ManualReview    bool                   `json:"manualReview"`
	ManualScore     *float64               `json:"manualScore"`
	ReviewerID      uint                   `json:"reviewerId,omitempty"`
	ReviewComment   string                 `json:"reviewComment,omitempty"`
	FinalScore      *float64               `json:"finalScore"`
	GradingTime     int                    `json:"gradingTime"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// AIReviewService AI判题记录的人工复核
type AIReviewService struct {
	AIGradingRecordRepo *repository.AIGradingRecordRepository
	AnswerRecordRepo    *repository.AnswerRecordRepository
	QuestionRepo        *repository.QuestionRepository
	UserRepo            *repository.UserRepository
	DB                  *gorm.DB
}

func NewAIReviewService(
	aiGradingRecordRepo *repository.AIGradingRecordRepository,
	answerRecordRepo *repository.AnswerRecordRepository,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	db *gorm.DB,
) *AIReviewService {
	return &AIReviewService{
		AIGradingRecordRepo: aiGradingRecordRepo,
		AnswerRecordRepo:    answerRecordRepo,
		QuestionRepo:        questionRepo,
		UserRepo:            userRepo,
		DB:                  db,
	}
}

// ListPending 待人工复核的记录
func (s *AIReviewService) ListPending(page, limit int) ([]AIGradingRecordDTO, int64, error) {
	records, total, err := s.AIGradingRecordRepo.FindPendingReview(page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]AIGradingRecordDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, s.toDTO(&records[i]))
	}
	return dtos, total, nil
}

func (s *AIReviewService) Stats() (*repository.GradingStats, error) {
	return s.AIGradingRecordRepo.Stats()
}

// Review 人工复核：采用人工评分作为最终分数，并同步更新答题记录
// 重复复核时直接以新评分覆盖
func (s *AIReviewService) Review(recordID, reviewerID uint, score float64, comment string) error {
	record, err := s.AIGradingRecordRepo.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrGradingRecordNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		record.ManualReview = true
		record.ManualScore = &score
		record.ReviewerID = reviewerID
		record.ReviewComment = comment
		record.FinalScore = &score
		if err := tx.Save(record).Error; err != nil {
			return err
		}

		if err := s.finalizeAnswerRecord(tx, record.AnswerRecordID, score); err != nil {
			return err
		}

		logger.Log.Info("AI grading reviewed",
			zap.Uint("recordID", recordID), zap.Float64("finalScore", score))
		return nil
	})
}

// reviewFinalized 是否已定分；批量通过只处理未定分的记录
func reviewFinalized(record *model.AIGradingRecord) bool {
	return record.FinalScore != nil
}

// applyApproval 批量通过定分：采用AI评分作为最终分数
func applyApproval(record *model.AIGradingRecord) {
	record.ManualReview = true
	score := record.AIScore
	record.FinalScore = &score
}

// BatchApprove 批量通过：直接采用AI评分作为最终分数
// 已定分的记录跳过，重复调用不改变结果，也不会覆盖人工复核分
func (s *AIReviewService) BatchApprove(ids []uint) error {
	for _, id := range ids {
		record, err := s.AIGradingRecordRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if reviewFinalized(record) {
			continue
		}

		err = s.DB.Transaction(func(tx *gorm.DB) error {
			applyApproval(record)
			if err := tx.Save(record).Error; err != nil {
				return err
			}
			return s.finalizeAnswerRecord(tx, record.AnswerRecordID, *record.FinalScore)
		})
		if err != nil {
			return err
		}
	}
	logger.Log.Info("AI grading batch approved", zap.Int("count", len(ids)))
	return nil
}

// finalizeAnswerRecord 复核定分后回写答题记录：分数、状态、正确性（得分率50%线）
func (s *AIReviewService) finalizeAnswerRecord(tx *gorm.DB, answerRecordID uint, finalScore float64) error {
	record, err := s.AnswerRecordRepo.FindByID(answerRecordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	question, err := s.QuestionRepo.FindByID(record.QuestionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now()
	record.Score = finalScore
	record.GradingStatus = model.GradingGraded
	record.GradedAt = &now
	if question != nil && question.Score > 0 {
		correct := finalScore/question.Score >= 0.5
		record.IsCorrect = &correct
	}
	return tx.Save(record).Error
}

func (s *AIReviewService) Delete(id uint) error {
	return s.AIGradingRecordRepo.DB.Delete(&model.AIGradingRecord{}, id).Error
}

func (s *AIReviewService) toDTO(record *model.AIGradingRecord) AIGradingRecordDTO {
	dto := AIGradingRecordDTO{
		ID:             record.ID,
		AnswerRecordID: record.AnswerRecordID,
		QuestionID:     record.QuestionID,
		UserID:         record.UserID,
		UserAnswer:     record.StudentAnswer,
		Score:          record.AIScore,
		Confidence:     record.AIConfidence,
		AIModel:        record.AIModel,
		ManualReview:   record.ManualReview,
		ManualScore:    record.ManualScore,
		ReviewerID:     record.ReviewerID,
		ReviewComment:  record.ReviewComment,
		FinalScore:     record.FinalScore,
		GradingTime:    record.GradingTime,
		CreatedAt:      record.CreatedAt,
	}

	if record.AIFeedback != "" {
		var feedback map[string]interface{}
		if err := json.Unmarshal([]byte(record.AIFeedback), &feedback); err == nil {
			dto.AIFeedback = feedback
			if comment, ok := feedback["comment"].(string); ok && comment != "" {
				dto.Feedback = comment
			} else if suggestions, ok := feedback["suggestions"].(string); ok {
				dto.Feedback = suggestions
			}
		} else {
			logger.Log.Warn("AI feedback unparseable", zap.Uint("recordID", record.ID), zap.Error(err))
		}
	}

	if user, err := s.UserRepo.FindByID(record.UserID); err == nil {
		dto.Username = user.Username
	}
	if question, err := s.QuestionRepo.FindByID(record.QuestionID); err == nil {
		content := question.Content
		if content == "" {
			content = question.Title
		}
		dto.QuestionContent = content
	}

	return dto
}
