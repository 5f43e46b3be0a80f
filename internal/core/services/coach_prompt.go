package services

import (
	"encoding/json"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

const (
	maxNotesLen     = 200
	maxTrainTypeLen = 20
)

const snixSystemPrompt = `Você é o Snix, coach de hábitos guiado pelos dados do LifeOps.
Missão: reduzir ansiedade e estabilizar humor com intervenções pequenas, realistas e mensuráveis.
Regras:
- Não faça diagnóstico médico/psicológico.
- Não use linguagem alarmista.
- Se perceber ansiedade alta e persistente, recomende conversar com um adulto de confiança e, se possível, um profissional.
- Use linguagem direta, objetiva e prática em PT-BR.
- Baseie recomendações em stats/padrões e proponha experimentos simples.
- Inclua no máximo 1 linha curta de humor sagaz, sem banalizar o tema.
`

// promptLog is the compacted per-day projection sent to the model. Notes are
// capped at 200 chars and omitted entirely when include_notes is off.
type promptLog struct {
	Date         string  `json:"date"`
	SleepH       float64 `json:"sleep_h"`
	SleepQual    int     `json:"sleep_qual_1to5"`
	Trained      bool    `json:"trained"`
	TrainMin     int     `json:"train_min"`
	TrainType    string  `json:"train_type"`
	Food         int     `json:"food_1to5"`
	WaterOK      bool    `json:"water_ok"`
	MealsOK      bool    `json:"meals_ok"`
	Mood0to10    int     `json:"mood_0to10"`
	Anxiety0to10 int     `json:"anxiety_0to10"`
	Notes        string  `json:"notes"`
}

type promptPayload struct {
	Focus       string         `json:"focus"`
	Goals       domain.Goals   `json:"goals"`
	Stats       domain.Summary `json:"stats"`
	Logs        []promptLog    `json:"logs"`
	Tasks       []string       `json:"tarefas"`
	Constraints []string       `json:"restricoes"`
	Format      string         `json:"formato"`
}

// buildCoachPrompt renders the system instruction and the serialized user
// payload for one coach request.
func buildCoachPrompt(goals domain.Goals, summary domain.Summary, window []domain.DailyLog, focus string, includeNotes bool) (systemText, userText string) {
	compact := make([]promptLog, 0, len(window))
	for _, l := range window {
		entry := promptLog{
			Date:         l.Date,
			SleepH:       l.Sleep,
			SleepQual:    l.SleepQual,
			Trained:      l.Trained,
			TrainMin:     l.TrainMin,
			TrainType:    truncateRunes(l.TrainType, maxTrainTypeLen),
			Food:         l.FoodScore,
			WaterOK:      l.Water,
			MealsOK:      l.Meals,
			Mood0to10:    l.Mood,
			Anxiety0to10: l.Anxiety,
		}
		if includeNotes {
			entry.Notes = truncateRunes(l.Notes, maxNotesLen)
		}
		compact = append(compact, entry)
	}

	payload := promptPayload{
		Focus: truncateRunes(focus, maxFocusLen),
		Goals: goals,
		Stats: summary,
		Logs:  compact,
		Tasks: []string{
			"1) Leitura objetiva dos dados (sem floreio).",
			"2) Padrões e relações prováveis (sono vs ansiedade; treino vs ansiedade).",
			"3) Hipóteses testáveis (máx. 4): 'se eu fizer X, espero Y'.",
			"4) Plano de 7 dias (10–20 min/dia).",
			"5) Protocolo anti-ansiedade (2–4 técnicas; 1–5 min).",
			"6) 3 métricas para amanhã (simples).",
			"7) Se houver gaps, como corrigir o registro.",
		},
		Constraints: []string{"Sem misticismo.", "Sem promessas absolutas.", "Nada perigoso."},
		Format:      "Markdown com títulos curtos e listas.",
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		// The payload is plain data, so this only fires on a programming
		// mistake; an empty user text still produces a valid request.
		return snixSystemPrompt, "{}"
	}
	return snixSystemPrompt, string(encoded)
}
