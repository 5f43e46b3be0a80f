package domain

import (
	"errors"
	"time"
)

// DateLayout is the canonical calendar-date format used as the log identity.
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
	ErrSleepOutOfRange     = errors.New("sleep must be between 0 and 24")
	ErrSleepQualOutOfRange = errors.New("sleepQual must be between 1 and 5")
	ErrFoodOutOfRange      = errors.New("foodScore must be between 1 and 5")
	ErrMoodOutOfRange      = errors.New("mood must be between 0 and 10")
	ErrAnxietyOutOfRange   = errors.New("anxiety must be between 0 and 10")
	ErrTrainMinOutOfRange  = errors.New("trainMin must be between 0 and 600")
)

// DailyLog is a single day's wellness record. Identity is the date: at most
// one record per calendar day, writes replace the existing record.
type DailyLog struct {
	Date      string  `json:"date" db:"date"`
	Sleep     float64 `json:"sleep" db:"sleep"`
	SleepQual int     `json:"sleepQual" db:"sleepQual"`
	Trained   bool    `json:"trained" db:"trained"`
	TrainMin  int     `json:"trainMin" db:"trainMin"`
	TrainType string  `json:"trainType" db:"trainType"`
	FoodScore int     `json:"foodScore" db:"foodScore"`
	Water     bool    `json:"water" db:"water"`
	Meals     bool    `json:"meals" db:"meals"`
	Mood      int     `json:"mood" db:"mood"`
	Anxiety   int     `json:"anxiety" db:"anxiety"`
	Notes     string  `json:"notes" db:"notes"`
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func (l *DailyLog) Validate() error {
	if _, err := ParseDate(l.Date); err != nil {
		return err
	}
	if l.Sleep < 0 || l.Sleep > 24 {
		return ErrSleepOutOfRange
	}
	if l.SleepQual < 1 || l.SleepQual > 5 {
		return ErrSleepQualOutOfRange
	}
	if l.FoodScore < 1 || l.FoodScore > 5 {
		return ErrFoodOutOfRange
	}
	if l.Mood < 0 || l.Mood > 10 {
		return ErrMoodOutOfRange
	}
	if l.Anxiety < 0 || l.Anxiety > 10 {
		return ErrAnxietyOutOfRange
	}
	if l.TrainMin < 0 || l.TrainMin > 600 {
		return ErrTrainMinOutOfRange
	}
	return nil
}

// IsValidationError reports whether err comes from user input that is
// malformed or out of its numeric domain.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidDate,
		ErrSleepOutOfRange,
		ErrSleepQualOutOfRange,
		ErrFoodOutOfRange,
		ErrMoodOutOfRange,
		ErrAnxietyOutOfRange,
		ErrTrainMinOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
