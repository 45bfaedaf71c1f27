package service

import (
	"errors"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/util"
	"tiku_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionService 题目管理
type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	SubjectRepo  *repository.SubjectRepository
	ChapterRepo  *repository.ChapterRepository
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	subjectRepo *repository.SubjectRepository,
	chapterRepo *repository.ChapterRepository,
) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		SubjectRepo:  subjectRepo,
		ChapterRepo:  chapterRepo,
	}
}

// validateAnswerFormat 入库前校验答案JSON能按题型解码，避免判题时才发现脏数据
func validateAnswerFormat(t model.QuestionType, answer string) error {
	v, err := decodeAnswerPayload(answer)
	if err != nil {
		return err
	}

	switch t {
	case model.TypeSingle:
		_, err = answerAsString(v)
	case model.TypeMultiple, model.TypeFill, model.TypeOrdering:
		_, err = answerAsStringSlice(v)
	case model.TypeJudge:
		_, err = answerAsBool(v)
	case model.TypeMatching:
		_, err = answerAsStringMap(v)
	default:
		// 主观题等其他题型只要求answer字段可提取为文本
		_, err = answerAsString(v)
	}
	return err
}

func (s *QuestionService) Create(question *model.Question, creatorID uint) error {
	if _, err := s.SubjectRepo.FindByID(question.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSubjectNotFound
		}
		return err
	}
	if question.ChapterID > 0 {
		if _, err := s.ChapterRepo.FindByID(question.ChapterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrChapterNotFound
			}
			return err
		}
	}

	if err := validateAnswerFormat(question.Type, question.Answer); err != nil {
		return err
	}

	// 学科内顺序号递增分配，顺序刷题按此排序
	maxSerial, err := s.QuestionRepo.MaxSerialNumber(question.SubjectID)
	if err != nil {
		return err
	}
	question.SerialNumber = maxSerial + 1
	question.CreatorID = creatorID
	if question.Status == 0 {
		question.Status = 1
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return err
	}
	logger.Log.Info("Question created",
		zap.Uint("questionID", question.ID), zap.String("type", string(question.Type)))
	return nil
}

func (s *QuestionService) Update(question *model.Question) error {
	existing, err := s.QuestionRepo.FindByID(question.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}

	if question.Answer != "" {
		t := question.Type
		if t == "" {
			t = existing.Type
		}
		if err := validateAnswerFormat(t, question.Answer); err != nil {
			return err
		}
	}

	return s.QuestionRepo.Update(question)
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) List(filter repository.QuestionFilter, page, limit int) ([]model.Question, int64, error) {
	return s.QuestionRepo.FindWithPagination(filter, page, limit)
}
