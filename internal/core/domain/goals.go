package domain

import "strconv"

// Goals is the singleton targets record. It is always present: reads merge
// whatever is stored over the defaults, field by field.
type Goals struct {
	SleepMin        float64 `json:"sleepMin"`
	WorkoutsPerWeek int     `json:"workoutsPerWeek"`
	FoodTarget      int     `json:"foodTarget"`
	AnxietyMax      int     `json:"anxietyMax"`
}

func DefaultGoals() Goals {
	return Goals{
		SleepMin:        7.0,
		WorkoutsPerWeek: 3,
		FoodTarget:      4,
		AnxietyMax:      6,
	}
}

// MergeGoals overlays raw values on the defaults. A field that is missing or
// fails coercion falls back to its default, never to null.
func MergeGoals(raw map[string]any) Goals {
	defaults := DefaultGoals()
	if raw == nil {
		return defaults
	}
	return Goals{
		SleepMin:        asFloat(raw["sleepMin"], defaults.SleepMin),
		WorkoutsPerWeek: asInt(raw["workoutsPerWeek"], defaults.WorkoutsPerWeek),
		FoodTarget:      asInt(raw["foodTarget"], defaults.FoodTarget),
		AnxietyMax:      asInt(raw["anxietyMax"], defaults.AnxietyMax),
	}
}

func asFloat(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f
		}
	}
	return def
}

func asInt(v any, def int) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case float32:
		return int(x)
	case int:
		return x
	case int64:
		return int(x)
	case string:
		if i, err := strconv.Atoi(x); err == nil {
			return i
		}
	}
	return def
}
