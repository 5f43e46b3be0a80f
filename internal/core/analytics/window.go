package analytics

import (
	"sort"
	"time"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

// WindowSelection is the resolved contiguous analysis range over log history.
type WindowSelection struct {
	Window        []domain.DailyLog
	FutureCount   int
	UsedStartDate string
	UsedEndDate   string
	UsedPastOnly  bool
}

// SelectWindow picks the logs to analyze from the full history (descending by
// date) and a requested window length in days.
//
// Future-dated entries are excluded from the base as long as at least 3
// past-or-today entries exist; otherwise the whole history is used so a
// sparse or forward-filled log still yields something to analyze. The window
// is every base entry within [end-(days-1), end], where end is the latest
// base date.
func SelectWindow(logsDesc []domain.DailyLog, days int, today time.Time) WindowSelection {
	var pastOrToday, future []domain.DailyLog
	for _, l := range logsDesc {
		d, err := domain.ParseDate(l.Date)
		if err != nil {
			continue
		}
		if d.After(today) {
			future = append(future, l)
		} else {
			pastOrToday = append(pastOrToday, l)
		}
	}

	usedPastOnly := len(pastOrToday) >= 3
	base := logsDesc
	if usedPastOnly {
		base = pastOrToday
	}

	sorted := make([]domain.DailyLog, len(base))
	copy(sorted, base)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	end, ok := latestDate(sorted)
	if !ok {
		return WindowSelection{FutureCount: len(future), UsedPastOnly: usedPastOnly}
	}
	start := end.AddDate(0, 0, -(days - 1))

	var window []domain.DailyLog
	for _, l := range sorted {
		d, err := domain.ParseDate(l.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			window = append(window, l)
		}
	}

	return WindowSelection{
		Window:        window,
		FutureCount:   len(future),
		UsedStartDate: start.Format(domain.DateLayout),
		UsedEndDate:   end.Format(domain.DateLayout),
		UsedPastOnly:  usedPastOnly,
	}
}

func latestDate(ascending []domain.DailyLog) (time.Time, bool) {
	for i := len(ascending) - 1; i >= 0; i-- {
		if d, err := domain.ParseDate(ascending[i].Date); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
