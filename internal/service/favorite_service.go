package service

import (
	"errors"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/util"

	"gorm.io/gorm"
)

// FavoriteDTO 收藏条目，附带题目摘要
type FavoriteDTO struct {
	QuestionID uint               `json:"questionId"`
	Title      string             `json:"title"`
	Type       model.QuestionType `json:"type"`
	Difficulty model.Difficulty   `json:"difficulty"`
	Note       string             `json:"note,omitempty"`
}

// FavoriteService 题目收藏
type FavoriteService struct {
	FavoriteRepo *repository.FavoriteRepository
	QuestionRepo *repository.QuestionRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, questionRepo *repository.QuestionRepository) *FavoriteService {
	return &FavoriteService{
		FavoriteRepo: favoriteRepo,
		QuestionRepo: questionRepo,
	}
}

func (s *FavoriteService) Add(userID, questionID uint, note string) error {
	if _, err := s.QuestionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}

	if _, err := s.FavoriteRepo.FindByUserAndQuestion(userID, questionID); err == nil {
		return util.ErrAlreadyFavorited
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.FavoriteRepo.Create(&model.Favorite{
		UserID:     userID,
		QuestionID: questionID,
		Note:       note,
	})
}

func (s *FavoriteService) Remove(userID, questionID uint) error {
	if _, err := s.FavoriteRepo.FindByUserAndQuestion(userID, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrFavoriteNotFound
		}
		return err
	}
	return s.FavoriteRepo.Delete(userID, questionID)
}

func (s *FavoriteService) List(userID uint, page, limit int) ([]FavoriteDTO, int64, error) {
	favorites, total, err := s.FavoriteRepo.FindByUserWithPagination(userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]FavoriteDTO, 0, len(favorites))
	for _, f := range favorites {
		dto := FavoriteDTO{QuestionID: f.QuestionID, Note: f.Note}
		if question, err := s.QuestionRepo.FindByID(f.QuestionID); err == nil {
			dto.Title = question.Title
			dto.Type = question.Type
			dto.Difficulty = question.Difficulty
		}
		dtos = append(dtos, dto)
	}
	return dtos, total, nil
}
