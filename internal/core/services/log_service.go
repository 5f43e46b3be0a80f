package services

import (
	"context"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

type LogService struct {
	repo domain.LogRepository
}

func NewLogService(repo domain.LogRepository) *LogService {
	return &LogService{repo: repo}
}

type UpsertLogInput struct {
	Date      string
	Sleep     float64
	SleepQual int
	Trained   bool
	TrainMin  int
	TrainType string
	FoodScore int
	Water     bool
	Meals     bool
	Mood      int
	Anxiety   int
	Notes     string
}

// Upsert validates and writes the log for its date. Validation happens
// before any store access, so a rejected payload leaves the store unchanged.
func (s *LogService) Upsert(ctx context.Context, input UpsertLogInput) (*domain.DailyLog, error) {
	log := &domain.DailyLog{
		Date:      input.Date,
		Sleep:     input.Sleep,
		SleepQual: input.SleepQual,
		Trained:   input.Trained,
		TrainMin:  input.TrainMin,
		TrainType: input.TrainType,
		FoodScore: input.FoodScore,
		Water:     input.Water,
		Meals:     input.Meals,
		Mood:      input.Mood,
		Anxiety:   input.Anxiety,
		Notes:     input.Notes,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *LogService) Delete(ctx context.Context, date string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return err
	}
	return s.repo.Delete(ctx, date)
}
