package analytics

import (
	"math"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

// Summarize computes the descriptive statistics over an ordered log window.
// Rounding is half-away-from-zero (math.Round): averages to 2 decimals,
// correlation and train effect to 3.
func Summarize(goals domain.Goals, window []domain.DailyLog) domain.Summary {
	n := len(window)
	out := domain.Summary{N: n, AnxietyLimit: goals.AnxietyMax}
	if n == 0 {
		return out
	}

	sleep := make([]float64, n)
	mood := make([]float64, n)
	anx := make([]float64, n)
	food := make([]float64, n)

	peakAnxiety := window[0].Anxiety
	peakDate := window[0].Date

	var workouts, highAnxDays int
	var anxTrained, anxRest []float64

	for i, l := range window {
		sleep[i] = l.Sleep
		mood[i] = float64(l.Mood)
		anx[i] = float64(l.Anxiety)
		food[i] = float64(l.FoodScore)

		if l.Trained {
			workouts++
			anxTrained = append(anxTrained, float64(l.Anxiety))
		} else {
			anxRest = append(anxRest, float64(l.Anxiety))
		}
		if l.Anxiety > goals.AnxietyMax {
			highAnxDays++
		}
		// Ties keep the first occurrence in window order.
		if l.Anxiety > peakAnxiety {
			peakAnxiety = l.Anxiety
			peakDate = l.Date
		}
	}

	out.AvgSleep = round2(mean(sleep))
	out.AvgMood = round2(mean(mood))
	out.AvgAnxiety = round2(mean(anx))
	out.AvgFood = round2(mean(food))
	out.Workouts = workouts
	out.HighAnxietyDays = highAnxDays
	out.PeakAnxiety = peakAnxiety
	out.PeakDate = peakDate

	if len(anxTrained) > 0 && len(anxRest) > 0 {
		effect := round3(mean(anxRest) - mean(anxTrained))
		out.TrainEffect = &effect
	}

	if corr, ok := pearson(sleep, anx); ok {
		rounded := round3(corr)
		out.CorrSleepAnxiety = &rounded
	}

	out.WindowStart, out.WindowEnd, out.MissingDaysInRange = calendarCoverage(window)

	if n >= 6 {
		last3 := window[n-3:]
		prev3 := window[n-6 : n-3]
		out.Trend = &domain.Trend{
			AnxietyDelta: round2(meanOf(last3, anxietyOf) - meanOf(prev3, anxietyOf)),
			SleepDelta:   round2(meanOf(last3, sleepOf) - meanOf(prev3, sleepOf)),
			MoodDelta:    round2(meanOf(last3, moodOf) - meanOf(prev3, moodOf)),
		}
	}

	return out
}

// pearson returns the correlation coefficient between two equal-length
// series. It is undefined for fewer than 4 paired points or when either
// series has zero variance.
func pearson(xs, ys []float64) (float64, bool) {
	if len(xs) != len(ys) || len(xs) < 4 {
		return 0, false
	}
	mx := mean(xs)
	my := mean(ys)

	var num, denX, denY float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}
	if denX == 0 || denY == 0 {
		return 0, false
	}
	return num / (math.Sqrt(denX) * math.Sqrt(denY)), true
}

// calendarCoverage returns the earliest and latest dates in the window and
// how many calendar days inside that range have no log.
func calendarCoverage(window []domain.DailyLog) (start, end string, missing int) {
	have := make(map[string]bool, len(window))
	var first, last string
	for _, l := range window {
		if _, err := domain.ParseDate(l.Date); err != nil {
			continue
		}
		have[l.Date] = true
		if first == "" || l.Date < first {
			first = l.Date
		}
		if l.Date > last {
			last = l.Date
		}
	}
	if first == "" {
		return "", "", 0
	}

	cur, _ := domain.ParseDate(first)
	until, _ := domain.ParseDate(last)
	for !cur.After(until) {
		if !have[cur.Format(domain.DateLayout)] {
			missing++
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return first, last, missing
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func meanOf(logs []domain.DailyLog, field func(domain.DailyLog) float64) float64 {
	var sum float64
	for _, l := range logs {
		sum += field(l)
	}
	return sum / float64(len(logs))
}

func anxietyOf(l domain.DailyLog) float64 { return float64(l.Anxiety) }
func sleepOf(l domain.DailyLog) float64   { return l.Sleep }
func moodOf(l domain.DailyLog) float64    { return float64(l.Mood) }

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round3(x float64) float64 { return math.Round(x*1000) / 1000 }
