package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/educonnect/educonnect-backend/internal/model"
)

// publicSettingKeys are exposed without authentication.
var publicSettingKeys = []string{model.SettingSchoolName, model.SettingCurrentAcademicYear}

// SettingService handles the school key/value settings.
type SettingService struct {
	settings SettingStore
	log      zerolog.Logger
}

// NewSettingService creates a new SettingService.
func NewSettingService(settings SettingStore, log zerolog.Logger) *SettingService {
	return &SettingService{
		settings: settings,
		log:      log.With().Str("component", "setting_service").Logger(),
	}
}

// GetAllSettings returns every setting as a map.
func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settingsList, err := s.settings.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	settingsMap := make(map[string]string, len(settingsList))
	for _, setting := range settingsList {
		settingsMap[setting.Key] = setting.Value
	}
	return settingsMap, nil
}

// PublicSettings returns the subset readable without a token.
func (s *SettingService) PublicSettings(ctx context.Context) (map[string]string, error) {
	all, err := s.GetAllSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(publicSettingKeys))
	for _, key := range publicSettingKeys {
		out[key] = all[key]
	}
	return out, nil
}

// UpdateSettings checks every value first, then upserts each key in turn;
// a write error stops the loop. It returns the settings after the update.
func (s *SettingService) UpdateSettings(ctx context.Context, settingsMap map[string]string) (map[string]string, error) {
	clean := make(map[string]string, len(settingsMap))
	for key, value := range settingsMap {
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" {
			continue
		}
		if key == model.SettingCurrentAcademicYear && !model.ValidAcademicYear(value) {
			return nil, fmt.Errorf("%s %q: %w", key, value, ErrInvalidSetting)
		}
		clean[key] = value
	}

	for key, value := range clean {
		if err := s.settings.Upsert(ctx, key, value); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to update setting")
			return nil, err
		}
	}
	s.log.Info().Int("keys", len(clean)).Msg("settings updated")
	return s.GetAllSettings(ctx)
}

// GetSettingByKey returns one setting's value.
func (s *SettingService) GetSettingByKey(ctx context.Context, key string) (string, error) {
	setting, err := s.settings.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}
