package domain

// Summary is the descriptive-statistics record computed over a log window.
// Field names match the wire format consumed by the frontend.
type Summary struct {
	N                  int      `json:"n"`
	WindowStart        string   `json:"window_start"`
	WindowEnd          string   `json:"window_end"`
	MissingDaysInRange int      `json:"missing_days_in_range"`
	AnxietyLimit       int      `json:"anxiety_limit"`
	AvgSleep           float64  `json:"avg_sleep"`
	AvgMood            float64  `json:"avg_mood"`
	AvgAnxiety         float64  `json:"avg_anxiety"`
	AvgFood            float64  `json:"avg_food"`
	Workouts           int      `json:"workouts"`
	HighAnxietyDays    int      `json:"high_anxiety_days"`
	PeakAnxiety        int      `json:"peak_anxiety"`
	PeakDate           string   `json:"peak_date"`
	TrainEffect        *float64 `json:"train_effect"`
	CorrSleepAnxiety   *float64 `json:"corr_sleep_vs_anxiety"`
	Trend              *Trend   `json:"trend,omitempty"`
}

// Trend holds last-3 minus previous-3 mean deltas. Only present when the
// window has at least 6 entries.
type Trend struct {
	AnxietyDelta float64 `json:"anxiety_delta"`
	SleepDelta   float64 `json:"sleep_delta"`
	MoodDelta    float64 `json:"mood_delta"`
}

// CoachStats is the Summary enriched with window-selection context and the
// upstream call metadata, as returned to the coach caller.
type CoachStats struct {
	Summary
	SleepMin            float64 `json:"sleepMin"`
	WindowStartSelected string  `json:"window_start_selected"`
	WindowEndSelected   string  `json:"window_end_selected"`
	UsedPastOnly        bool    `json:"used_past_only"`
	FutureCount         int     `json:"future_count"`
	LLMMeta             any     `json:"llm_meta"`
	CacheKey            string  `json:"cache_key"`
}

// FallbackModel marks a CoachResult produced by the deterministic offline
// reporter instead of the language model.
const FallbackModel = "offline-fallback"

type CoachResult struct {
	OK        bool       `json:"ok"`
	Coach     string     `json:"coach"`
	Model     string     `json:"model"`
	Days      int        `json:"days"`
	NLogsUsed int        `json:"n_logs_used"`
	Report    string     `json:"report"`
	Stats     CoachStats `json:"stats"`
}
