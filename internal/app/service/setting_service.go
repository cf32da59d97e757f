package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"github.com/arteliving/arteliving-backend/pkg/redis"
	"gorm.io/gorm"
)

var ErrSettingNotFound = errors.New("setting not found")

const (
	settingsCacheKey = "settings:all"
	settingsCacheTTL = 5 * time.Minute
)

type SettingService interface {
	GetSettings(ctx context.Context) (map[string]string, error)
	GetSetting(key string) (*model.Setting, error)
	UpdateSetting(ctx context.Context, key, value string) (*model.Setting, error)
}

type settingService struct {
	settingRepo repository.SettingRepository
}

func NewSettingService(settingRepo repository.SettingRepository) SettingService {
	return &settingService{settingRepo: settingRepo}
}

// GetSettings returns all settings as a key/value map, served from the Redis
// cache when warm.
func (s *settingService) GetSettings(ctx context.Context) (map[string]string, error) {
	if cached, ok, err := redis.CacheGet(ctx, settingsCacheKey); err == nil && ok {
		var settings map[string]string
		if err := json.Unmarshal([]byte(cached), &settings); err == nil {
			return settings, nil
		}
	}

	rows, err := s.settingRepo.FindAll()
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	if payload, err := json.Marshal(settings); err == nil {
		if err := redis.CacheSet(ctx, settingsCacheKey, string(payload), settingsCacheTTL); err != nil {
			logger.Warn("Failed to cache settings", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return settings, nil
}

func (s *settingService) GetSetting(key string) (*model.Setting, error) {
	setting, err := s.settingRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return setting, nil
}

func (s *settingService) UpdateSetting(ctx context.Context, key, value string) (*model.Setting, error) {
	setting, err := s.settingRepo.Upsert(key, value)
	if err != nil {
		return nil, err
	}

	if err := redis.CacheDelete(ctx, settingsCacheKey); err != nil {
		logger.Warn("Failed to invalidate settings cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Setting updated", map[string]interface{}{
		"key": key,
	})
	return setting, nil
}
