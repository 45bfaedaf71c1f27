package service

import (
	"errors"
	"time"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WrongRecord 单次错误作答
type WrongRecord struct {
	WrongAt    time.Time `json:"wrongAt"`
	UserAnswer string    `json:"userAnswer"`
}

// WrongQuestionDTO 错题本条目，附带题目信息和近几次错误作答
type WrongQuestionDTO struct {
	WrongQuestionID uint               `json:"wrongQuestionId"`
	QuestionID      uint               `json:"questionId"`
	SubjectID       uint               `json:"subjectId"`
	SubjectName     string             `json:"subjectName,omitempty"`
	ChapterID       uint               `json:"chapterId,omitempty"`
	ChapterName     string             `json:"chapterName,omitempty"`
	Type            model.QuestionType `json:"type"`
	Difficulty      model.Difficulty   `json:"difficulty"`
	Title           string             `json:"title"`
	Content         string             `json:"content"`
	Options         string             `json:"options,omitempty"`
	CorrectAnswer   string             `json:"correctAnswer"`
	Explanation     string             `json:"explanation,omitempty"`
	UserAnswer      string             `json:"userAnswer,omitempty"`
	WrongCount      int                `json:"wrongCount"`
	Status          model.WrongStatus  `json:"status"`
	LastWrongAt     time.Time          `json:"lastWrongAt"`
	WrongRecords    []WrongRecord      `json:"wrongRecords"`
}

// WrongQuestionStats 错题本统计
type WrongQuestionStats struct {
	Total      int64 `json:"total"`
	NeedReview int64 `json:"needReview"`
	Mastered   int64 `json:"mastered"`
}

// WrongQuestionService 错题本管理
type WrongQuestionService struct {
	WrongQuestionRepo *repository.WrongQuestionRepository
	QuestionRepo      *repository.QuestionRepository
	SubjectRepo       *repository.SubjectRepository
	ChapterRepo       *repository.ChapterRepository
	AnswerRecordRepo  *repository.AnswerRecordRepository
}

func NewWrongQuestionService(
	wrongQuestionRepo *repository.WrongQuestionRepository,
	questionRepo *repository.QuestionRepository,
	subjectRepo *repository.SubjectRepository,
	chapterRepo *repository.ChapterRepository,
	answerRecordRepo *repository.AnswerRecordRepository,
) *WrongQuestionService {
	return &WrongQuestionService{
		WrongQuestionRepo: wrongQuestionRepo,
		QuestionRepo:      questionRepo,
		SubjectRepo:       subjectRepo,
		ChapterRepo:       chapterRepo,
		AnswerRecordRepo:  answerRecordRepo,
	}
}

// WrongQuestionQuery 错题列表筛选条件
type WrongQuestionQuery struct {
	SubjectID uint
	ChapterID uint
	Type      model.QuestionType
	Status    model.WrongStatus
	Page      int
	Limit     int
}

// List 错题列表。状态在数据库层过滤，学科/章节/题型在题目关联后过滤
func (s *WrongQuestionService) List(userID uint, q WrongQuestionQuery) ([]WrongQuestionDTO, int64, error) {
	items, total, err := s.WrongQuestionRepo.FindByUserWithPagination(userID, q.Status, q.Page, q.Limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]WrongQuestionDTO, 0, len(items))
	for _, wq := range items {
		dto, err := s.toDTO(&wq, q)
		if err != nil {
			return nil, 0, err
		}
		if dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos, total, nil
}

// Stats 错题统计：待复习 = 未移除总数 - 已掌握
func (s *WrongQuestionService) Stats(userID uint) (*WrongQuestionStats, error) {
	counts, err := s.WrongQuestionRepo.CountByStatus(userID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	mastered := counts[model.WrongStatusMastered]

	return &WrongQuestionStats{
		Total:      total,
		NeedReview: total - mastered,
		Mastered:   mastered,
	}, nil
}

// MarkMastered 手动标记已掌握
func (s *WrongQuestionService) MarkMastered(userID, questionID uint) error {
	wq, err := s.WrongQuestionRepo.FindByUserAndQuestion(userID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	wq.Status = model.WrongStatusMastered
	if err := s.WrongQuestionRepo.Update(nil, wq); err != nil {
		return err
	}
	logger.Log.Info("Wrong question marked as mastered",
		zap.Uint("userID", userID), zap.Uint("questionID", questionID))
	return nil
}

// Remove 从错题本移除（软删除，再次答错会重新进入）
func (s *WrongQuestionService) Remove(userID, questionID uint) error {
	wq, err := s.WrongQuestionRepo.FindByUserAndQuestion(userID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	wq.Removed = true
	return s.WrongQuestionRepo.Update(nil, wq)
}

func (s *WrongQuestionService) BatchRemove(userID uint, questionIDs []uint) error {
	for _, id := range questionIDs {
		if err := s.Remove(userID, id); err != nil {
			return err
		}
	}
	return nil
}

// toDTO 组装错题详情；题目已删除或不符合筛选条件时返回nil
func (s *WrongQuestionService) toDTO(wq *model.WrongQuestion, q WrongQuestionQuery) (*WrongQuestionDTO, error) {
	question, err := s.QuestionRepo.FindByID(wq.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if q.SubjectID > 0 && question.SubjectID != q.SubjectID {
		return nil, nil
	}
	if q.ChapterID > 0 && question.ChapterID != q.ChapterID {
		return nil, nil
	}
	if q.Type != "" && question.Type != q.Type {
		return nil, nil
	}

	content := question.Content
	if content == "" {
		content = question.Title
	}

	dto := &WrongQuestionDTO{
		WrongQuestionID: wq.ID,
		QuestionID:      wq.QuestionID,
		SubjectID:       question.SubjectID,
		ChapterID:       question.ChapterID,
		Type:            question.Type,
		Difficulty:      question.Difficulty,
		Title:           question.Title,
		Content:         content,
		Options:         question.Options,
		CorrectAnswer:   question.Answer,
		Explanation:     question.AnswerAnalysis,
		WrongCount:      wq.WrongCount,
		Status:          wq.Status,
		LastWrongAt:     wq.UpdatedAt,
	}

	if subject, err := s.SubjectRepo.FindByID(question.SubjectID); err == nil {
		dto.SubjectName = subject.Name
	}
	if question.ChapterID > 0 {
		if chapter, err := s.ChapterRepo.FindByID(question.ChapterID); err == nil {
			dto.ChapterName = chapter.Name
		}
	}

	if wq.LastAnswerRecordID > 0 {
		if record, err := s.AnswerRecordRepo.FindByID(wq.LastAnswerRecordID); err == nil {
			dto.UserAnswer = record.UserAnswer
		}
	}

	// 最近5次错误作答
	wrongRecords, err := s.AnswerRecordRepo.FindWrongRecords(wq.UserID, wq.QuestionID, 5)
	if err != nil {
		return nil, err
	}
	for _, r := range wrongRecords {
		dto.WrongRecords = append(dto.WrongRecords, WrongRecord{
			WrongAt:    r.AnsweredAt,
			UserAnswer: r.UserAnswer,
		})
	}

	return dto, nil
}
