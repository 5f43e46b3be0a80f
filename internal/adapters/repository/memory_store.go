package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

// MemoryStore is a map-backed stand-in for SQLiteStore, used by service and
// handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	logs     map[string]domain.DailyLog
	settings domain.Settings
}

var _ domain.LogRepository = (*MemoryStore)(nil)
var _ domain.SettingsRepository = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs: make(map[string]domain.DailyLog),
		settings: domain.Settings{
			Goals: domain.DefaultGoals(),
			Theme: domain.ThemeDark,
		},
	}
}

func (m *MemoryStore) Upsert(ctx context.Context, log *domain.DailyLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logs[log.Date] = *log
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.logs, date)
	return nil
}

func (m *MemoryStore) ListDescending(ctx context.Context, limit int) ([]domain.DailyLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logs := make([]domain.DailyLog, 0, len(m.logs))
	for _, l := range m.logs {
		logs = append(logs, l)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date > logs[j].Date })

	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (m *MemoryStore) Get(ctx context.Context) (*domain.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	settings := m.settings
	return &settings, nil
}

func (m *MemoryStore) Save(ctx context.Context, settings *domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = *settings
	return nil
}
