package services

import (
	"context"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

type SettingsService struct {
	settingsRepo domain.SettingsRepository
	logRepo      domain.LogRepository
}

func NewSettingsService(settingsRepo domain.SettingsRepository, logRepo domain.LogRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logRepo:      logRepo,
	}
}

// State is the full client-facing snapshot: every log newest-first plus the
// merged goals and theme.
type State struct {
	Logs  []domain.DailyLog `json:"logs"`
	Goals domain.Goals      `json:"goals"`
	Theme string            `json:"theme"`
}

func (s *SettingsService) GetState(ctx context.Context) (*State, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListDescending(ctx, 0)
	if err != nil {
		return nil, err
	}

	return &State{
		Logs:  logs,
		Goals: settings.Goals,
		Theme: settings.Theme,
	}, nil
}

// Save merges the submitted goals over the defaults field by field (bad
// values fall back rather than erroring) and normalizes the theme.
func (s *SettingsService) Save(ctx context.Context, rawGoals map[string]any, theme string) (*domain.Settings, error) {
	settings := &domain.Settings{
		Goals: domain.MergeGoals(rawGoals),
		Theme: domain.NormalizeTheme(theme),
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
