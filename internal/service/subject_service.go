package service

import (
	"errors"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/util"

	"gorm.io/gorm"
)

// SubjectService 学科与章节管理
type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
	ChapterRepo *repository.ChapterRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, chapterRepo *repository.ChapterRepository) *SubjectService {
	return &SubjectService{
		SubjectRepo: subjectRepo,
		ChapterRepo: chapterRepo,
	}
}

func (s *SubjectService) Create(subject *model.Subject) error {
	if subject.Status == 0 {
		subject.Status = 1
	}
	return s.SubjectRepo.Create(subject)
}

func (s *SubjectService) List() ([]model.Subject, error) {
	return s.SubjectRepo.FindAll()
}

func (s *SubjectService) Get(id uint) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Update(subject *model.Subject) error {
	if _, err := s.Get(subject.ID); err != nil {
		return err
	}
	return s.SubjectRepo.Update(subject)
}

func (s *SubjectService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.SubjectRepo.Delete(id)
}

func (s *SubjectService) CreateChapter(chapter *model.Chapter) error {
	if _, err := s.Get(chapter.SubjectID); err != nil {
		return err
	}
	return s.ChapterRepo.Create(chapter)
}

func (s *SubjectService) ListChapters(subjectID uint) ([]model.Chapter, error) {
	if _, err := s.Get(subjectID); err != nil {
		return nil, err
	}
	return s.ChapterRepo.FindBySubjectID(subjectID)
}

func (s *SubjectService) UpdateChapter(chapter *model.Chapter) error {
	if _, err := s.ChapterRepo.FindByID(chapter.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChapterNotFound
		}
		return err
	}
	return s.ChapterRepo.Update(chapter)
}

func (s *SubjectService) DeleteChapter(id uint) error {
	if _, err := s.ChapterRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChapterNotFound
		}
		return err
	}
	return s.ChapterRepo.Delete(id)
}
