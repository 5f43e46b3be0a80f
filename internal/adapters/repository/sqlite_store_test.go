package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snixlabs/lifeops/internal/adapters/repository"
	"github.com/snixlabs/lifeops/internal/core/domain"
)

func newTestStore(t *testing.T) *repository.SQLiteStore {
	t.Helper()

	store, err := repository.NewSQLiteStore(filepath.Join(t.TempDir(), "lifeops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.InitSchema(context.Background()))
	return store
}

func sampleLog(date string) *domain.DailyLog {
	return &domain.DailyLog{
		Date:      date,
		Sleep:     7.5,
		SleepQual: 4,
		Trained:   true,
		TrainMin:  30,
		TrainType: "corrida",
		FoodScore: 4,
		Water:     true,
		Meals:     false,
		Mood:      7,
		Anxiety:   3,
		Notes:     "ok",
	}
}

func TestSQLiteStore_Logs(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: roundtrip preserves every field", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Upsert(ctx, sampleLog("2024-01-10")))

		logs, err := store.ListDescending(ctx, 0)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, *sampleLog("2024-01-10"), logs[0])
	})

	t.Run("Upsert is idempotent per date, second write wins", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Upsert(ctx, sampleLog("2024-01-10")))

		second := sampleLog("2024-01-10")
		second.Sleep = 5
		second.Anxiety = 9
		second.Trained = false
		require.NoError(t, store.Upsert(ctx, second))

		logs, err := store.ListDescending(ctx, 0)
		require.NoError(t, err)
		require.Len(t, logs, 1, "same date stays one record")
		assert.Equal(t, 5.0, logs[0].Sleep)
		assert.Equal(t, 9, logs[0].Anxiety)
		assert.False(t, logs[0].Trained)
	})

	t.Run("ListDescending orders newest first and honors limit", func(t *testing.T) {
		store := newTestStore(t)
		for _, d := range []string{"2024-01-10", "2024-01-12", "2024-01-11"} {
			require.NoError(t, store.Upsert(ctx, sampleLog(d)))
		}

		logs, err := store.ListDescending(ctx, 2)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "2024-01-12", logs[0].Date)
		assert.Equal(t, "2024-01-11", logs[1].Date)
	})

	t.Run("Delete removes the record; missing date is fine", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Upsert(ctx, sampleLog("2024-01-10")))

		require.NoError(t, store.Delete(ctx, "2024-01-10"))
		require.NoError(t, store.Delete(ctx, "2024-01-10"))

		logs, err := store.ListDescending(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}

func TestSQLiteStore_Settings(t *testing.T) {
	ctx := context.Background()

	t.Run("Fresh store is seeded with defaults", func(t *testing.T) {
		store := newTestStore(t)

		settings, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultGoals(), settings.Goals)
		assert.Equal(t, domain.ThemeDark, settings.Theme)
	})

	t.Run("Save then Get roundtrips", func(t *testing.T) {
		store := newTestStore(t)

		want := &domain.Settings{
			Goals: domain.Goals{SleepMin: 8, WorkoutsPerWeek: 4, FoodTarget: 5, AnxietyMax: 5},
			Theme: domain.ThemeLight,
		}
		require.NoError(t, store.Save(ctx, want))

		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("InitSchema is safe to run twice and keeps saved state", func(t *testing.T) {
		store := newTestStore(t)

		want := &domain.Settings{Goals: domain.DefaultGoals(), Theme: domain.ThemeLight}
		require.NoError(t, store.Save(ctx, want))
		require.NoError(t, store.InitSchema(ctx))

		got, err := store.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.ThemeLight, got.Theme)
	})
}
