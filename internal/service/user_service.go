package service

import (
	"errors"

	"tiku_backend/internal/config"
	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/internal/util"
	"tiku_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=50"`
	Nickname string `json:"nickname"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserProfile 个人信息与答题统计
type UserProfile struct {
	ID                uint           `json:"id"`
	Username          string         `json:"username"`
	Nickname          string         `json:"nickname"`
	Email             string         `json:"email"`
	Avatar            string         `json:"avatar"`
	Role              model.UserRole `json:"role"`
	TotalAnswerCount  int            `json:"totalAnswerCount"`
	TotalCorrectCount int            `json:"totalCorrectCount"`
	AccuracyRate      float64        `json:"accuracyRate"`
}

// UserService 用户注册、登录、个人信息
type UserService struct {
	UserRepo         *repository.UserRepository
	AnswerRecordRepo *repository.AnswerRecordRepository
	JWTConfig        config.JWTConfig
}

func NewUserService(userRepo *repository.UserRepository, answerRecordRepo *repository.AnswerRecordRepository, jwtConfig config.JWTConfig) *UserService {
	return &UserService{
		UserRepo:         userRepo,
		AnswerRecordRepo: answerRecordRepo,
		JWTConfig:        jwtConfig,
	}
}

func (s *UserService) Register(req *RegisterRequest) (*model.User, error) {
	if _, err := s.UserRepo.FindByUsername(req.Username); err == nil {
		return nil, util.ErrUsernameRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hashed),
		Nickname: nickname,
		Email:    req.Email,
		Role:     model.Student,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("User registered", zap.Uint("userID", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login 校验凭证并签发JWT
func (s *UserService) Login(req *LoginRequest) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.JWTConfig.Secret, s.JWTConfig.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AnswerHistory 用户答题记录，按作答时间倒序分页
func (s *UserService) AnswerHistory(userID uint, page, limit int) ([]model.AnswerRecord, int64, error) {
	return s.AnswerRecordRepo.FindByUserWithPagination(userID, page, limit)
}

func (s *UserService) GetProfile(userID uint) (*UserProfile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	profile := &UserProfile{
		ID:                user.ID,
		Username:          user.Username,
		Nickname:          user.Nickname,
		Email:             user.Email,
		Avatar:            user.Avatar,
		Role:              user.Role,
		TotalAnswerCount:  user.TotalAnswerCount,
		TotalCorrectCount: user.TotalCorrectCount,
	}
	if user.TotalAnswerCount > 0 {
		profile.AccuracyRate = float64(user.TotalCorrectCount) / float64(user.TotalAnswerCount)
	}
	return profile, nil
}
