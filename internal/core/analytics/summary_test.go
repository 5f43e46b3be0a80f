package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snixlabs/lifeops/internal/core/analytics"
	"github.com/snixlabs/lifeops/internal/core/domain"
)

func weekOfLogs() []domain.DailyLog {
	// 7 consecutive days; anxiety peaks at 9 on the 6th date.
	anxiety := []int{4, 5, 8, 7, 3, 9, 6}
	sleep := []float64{7, 6, 5, 6, 8, 5, 7}
	mood := []int{5, 6, 4, 5, 7, 3, 6}
	food := []int{3, 4, 4, 5, 3, 2, 4}
	trained := []bool{false, false, true, true, false, true, false}
	dates := []string{
		"2024-03-14", "2024-03-15", "2024-03-16", "2024-03-17",
		"2024-03-18", "2024-03-19", "2024-03-20",
	}

	logs := make([]domain.DailyLog, 7)
	for i := range logs {
		logs[i] = domain.DailyLog{
			Date:      dates[i],
			Sleep:     sleep[i],
			SleepQual: 3,
			Trained:   trained[i],
			FoodScore: food[i],
			Mood:      mood[i],
			Anxiety:   anxiety[i],
		}
	}
	return logs
}

func TestSummarize(t *testing.T) {
	goals := domain.DefaultGoals()

	t.Run("Success: full week of logs", func(t *testing.T) {
		s := analytics.Summarize(goals, weekOfLogs())

		assert.Equal(t, 7, s.N)
		assert.Equal(t, "2024-03-14", s.WindowStart)
		assert.Equal(t, "2024-03-20", s.WindowEnd)
		assert.Equal(t, 0, s.MissingDaysInRange)
		assert.Equal(t, 6, s.AnxietyLimit)

		assert.Equal(t, 6.0, s.AvgAnxiety)
		assert.Equal(t, 6.29, s.AvgSleep)
		assert.Equal(t, 5.14, s.AvgMood)
		assert.Equal(t, 3.57, s.AvgFood)

		assert.Equal(t, 3, s.Workouts)
		// Strictly greater than the limit of 6: values 8, 7 and 9.
		assert.Equal(t, 3, s.HighAnxietyDays)
		assert.Equal(t, 9, s.PeakAnxiety)
		assert.Equal(t, "2024-03-19", s.PeakDate)

		require.NotNil(t, s.TrainEffect)
		assert.Equal(t, -3.5, *s.TrainEffect)

		require.NotNil(t, s.CorrSleepAnxiety)
		assert.Equal(t, -0.901, *s.CorrSleepAnxiety)

		require.NotNil(t, s.Trend)
		assert.Equal(t, -0.67, s.Trend.AnxietyDelta)
		assert.Equal(t, 1.0, s.Trend.SleepDelta)
		assert.Equal(t, 0.33, s.Trend.MoodDelta)
	})

	t.Run("Correlation stays within [-1, 1]", func(t *testing.T) {
		logs := weekOfLogs()
		s := analytics.Summarize(goals, logs)

		require.NotNil(t, s.CorrSleepAnxiety)
		assert.GreaterOrEqual(t, *s.CorrSleepAnxiety, -1.0)
		assert.LessOrEqual(t, *s.CorrSleepAnxiety, 1.0)
	})

	t.Run("Edge Case: correlation undefined for fewer than 4 points", func(t *testing.T) {
		logs := weekOfLogs()[:3]
		s := analytics.Summarize(goals, logs)

		assert.Nil(t, s.CorrSleepAnxiety)
		assert.Nil(t, s.Trend, "trend needs at least 6 entries")
	})

	t.Run("Edge Case: correlation undefined for zero-variance series", func(t *testing.T) {
		logs := weekOfLogs()
		for i := range logs {
			logs[i].Sleep = 7
		}
		s := analytics.Summarize(goals, logs)

		assert.Nil(t, s.CorrSleepAnxiety)
	})

	t.Run("Edge Case: train effect absent when all days share trained", func(t *testing.T) {
		logs := weekOfLogs()
		for i := range logs {
			logs[i].Trained = true
		}
		s := analytics.Summarize(goals, logs)

		assert.Nil(t, s.TrainEffect)
		assert.Equal(t, 7, s.Workouts)
	})

	t.Run("Peak ties break to the first occurrence", func(t *testing.T) {
		logs := weekOfLogs()
		logs[1].Anxiety = 9 // same as the later peak
		s := analytics.Summarize(goals, logs)

		assert.Equal(t, 9, s.PeakAnxiety)
		assert.Equal(t, "2024-03-15", s.PeakDate)
	})

	t.Run("Counts missing calendar days inside the range", func(t *testing.T) {
		logs := weekOfLogs()
		// Drop two middle days; range endpoints stay.
		logs = append(logs[:2], logs[4:]...)
		s := analytics.Summarize(goals, logs)

		assert.Equal(t, 2, s.MissingDaysInRange)
	})

	t.Run("Edge Case: empty window yields zero summary", func(t *testing.T) {
		s := analytics.Summarize(goals, nil)

		assert.Equal(t, 0, s.N)
		assert.Equal(t, 6, s.AnxietyLimit)
		assert.Nil(t, s.CorrSleepAnxiety)
		assert.Nil(t, s.TrainEffect)
	})
}
