package service

import (
	"context"
	"errors"
	"time"

	"tiku_backend/internal/model"
	"tiku_backend/internal/repository"
	"tiku_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configCacheTTL = 5 * time.Minute

// SystemConfigService 系统配置读写，带Redis读穿缓存
// AI接口地址、密钥等可在后台动态修改，判题时优先取这里的值
type SystemConfigService struct {
	ConfigRepo *repository.SystemConfigRepository
	Redis      *redis.Client
}

func NewSystemConfigService(configRepo *repository.SystemConfigRepository, rdb *redis.Client) *SystemConfigService {
	return &SystemConfigService{
		ConfigRepo: configRepo,
		Redis:      rdb,
	}
}

func (s *SystemConfigService) cacheKey(key string) string {
	return "sysconfig:" + key
}

// Get 读取配置项，未配置时返回空串
func (s *SystemConfigService) Get(ctx context.Context, key string) string {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, s.cacheKey(key)).Result()
		if err == nil {
			return val
		}
		if err != redis.Nil {
			logger.Log.Warn("Config cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	cfg, err := s.ConfigRepo.FindByKey(key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("Config read failed", zap.String("key", key), zap.Error(err))
		}
		return ""
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, s.cacheKey(key), cfg.ConfigValue, configCacheTTL).Err(); err != nil {
			logger.Log.Warn("Config cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return cfg.ConfigValue
}

// GetOrDefault 读取配置项，未配置时返回默认值
func (s *SystemConfigService) GetOrDefault(ctx context.Context, key, def string) string {
	if val := s.Get(ctx, key); val != "" {
		return val
	}
	return def
}

// Set 写入配置项并使缓存失效
func (s *SystemConfigService) Set(ctx context.Context, key, value, description string) error {
	cfg := &model.SystemConfig{
		ConfigKey:   key,
		ConfigValue: value,
		Description: description,
	}
	if err := s.ConfigRepo.Upsert(cfg); err != nil {
		return err
	}
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, s.cacheKey(key)).Err(); err != nil {
			logger.Log.Warn("Config cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (s *SystemConfigService) List() ([]model.SystemConfig, error) {
	return s.ConfigRepo.FindAll()
}
