package services

import (
	"context"
	"fmt"

	"github.com/rushali2005/studentpp/models"
)

// SettingsStore keeps display preferences in redis, one key per user.
type SettingsStore struct {
	cache *CacheService
}

func NewSettingsStore(cache *CacheService) *SettingsStore {
	return &SettingsStore{cache: cache}
}

func settingsKey(ownerID string) string { return "settings:" + ownerID }

// Get returns the saved settings or the defaults when none were saved.
func (s *SettingsStore) Get(ctx context.Context, ownerID string) (models.Settings, error) {
	if !s.cache.Available() {
		return models.Settings{}, ErrCacheUnavailable
	}
	settings := models.DefaultSettings()
	if _, err := s.cache.Get(ctx, settingsKey(ownerID), &settings); err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if settings.TipsFrequency == "" {
		settings.TipsFrequency = models.TipsDaily
	}
	return settings, nil
}

func (s *SettingsStore) Save(ctx context.Context, ownerID string, settings models.Settings) (models.Settings, error) {
	if !s.cache.Available() {
		return models.Settings{}, ErrCacheUnavailable
	}
	if settings.TipsFrequency == "" {
		settings.TipsFrequency = models.TipsDaily
	}
	if err := s.cache.Set(ctx, settingsKey(ownerID), settings, 0); err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// Reset forgets saved settings and returns the defaults.
func (s *SettingsStore) Reset(ctx context.Context, ownerID string) (models.Settings, error) {
	if !s.cache.Available() {
		return models.Settings{}, ErrCacheUnavailable
	}
	if err := s.cache.Delete(ctx, settingsKey(ownerID)); err != nil {
		return models.Settings{}, fmt.Errorf("reset settings: %w", err)
	}
	return models.DefaultSettings(), nil
}
