package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drhenri-ux/octorlink/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	settingsCacheKey = "site_settings:main"
	settingsCacheTTL = 5 * time.Minute
)

type SettingsStore interface {
	GetSiteSettings(ctx context.Context) (*models.SiteSettings, error)
	UpdateSiteSettings(ctx context.Context, s *models.SiteSettings) error
}

// SettingsManager reads the singleton settings row through an optional
// Redis cache. Cache failures fall back to the store.
type SettingsManager struct {
	settings SettingsStore
	cache    *redis.Client // nil reads straight through
	logger   *zap.Logger
}

func NewSettingsManager(settings SettingsStore, cache *redis.Client, logger *zap.Logger) *SettingsManager {
	return &SettingsManager{settings: settings, cache: cache, logger: logger}
}

func (m *SettingsManager) Get(ctx context.Context) (*models.SiteSettings, error) {
	if m.cache != nil {
		data, err := m.cache.Get(ctx, settingsCacheKey).Bytes()
		if err == nil {
			var s models.SiteSettings
			if err := json.Unmarshal(data, &s); err == nil {
				return &s, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			m.logger.Warn("settings cache read failed", zap.Error(err))
		}
	}

	s, err := m.settings.GetSiteSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}

	if m.cache != nil {
		if data, err := json.Marshal(s); err == nil {
			if err := m.cache.Set(ctx, settingsCacheKey, data, settingsCacheTTL).Err(); err != nil {
				m.logger.Warn("settings cache write failed", zap.Error(err))
			}
		}
	}
	return s, nil
}

// Update applies the given toggles, writes them and drops the cached copy
func (m *SettingsManager) Update(ctx context.Context, req models.SiteSettingsUpdateRequest) (*models.SiteSettings, error) {
	current, err := m.settings.GetSiteSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get site settings: %w", err)
	}
	if req.ReferralMenuVisible != nil {
		current.ReferralMenuVisible = *req.ReferralMenuVisible
	}

	if err := m.settings.UpdateSiteSettings(ctx, current); err != nil {
		return nil, fmt.Errorf("update site settings: %w", err)
	}

	if m.cache != nil {
		if err := m.cache.Del(ctx, settingsCacheKey).Err(); err != nil {
			m.logger.Warn("settings cache invalidation failed", zap.Error(err))
		}
	}
	return current, nil
}
