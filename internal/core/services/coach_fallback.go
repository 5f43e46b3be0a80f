package services

import (
	"fmt"
	"strings"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

// fallbackReport is the deterministic, offline substitute for a model
// answer: a restatement of the window statistics plus a fixed minimal plan.
// Pure function of its inputs, no randomness, no network.
func fallbackReport(stats domain.CoachStats, focus string) string {
	focus = strings.TrimSpace(focus)
	if focus == "" {
		focus = defaultFocus
	}

	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# Snix (modo offline) — foco: %s", focus)
	add("")
	add("## Leitura objetiva")
	add("- Janela: %s → %s (%d registros)", stats.WindowStart, stats.WindowEnd, stats.N)
	add("- Sono médio: %vh (meta: %vh)", stats.AvgSleep, stats.SleepMin)
	add("- Humor médio: %v/10", stats.AvgMood)
	add("- Ansiedade média: %v/10 (limite: %d)", stats.AvgAnxiety, stats.AnxietyLimit)
	add("- Dias acima do limite: %d", stats.HighAnxietyDays)
	add("- Pico de ansiedade: %d/10 em %s", stats.PeakAnxiety, stats.PeakDate)
	add("- Treinos na janela: %d", stats.Workouts)
	if stats.CorrSleepAnxiety != nil {
		add("- Correlação sono×ansiedade: %v (sinal, não causalidade)", *stats.CorrSleepAnxiety)
	}
	if stats.TrainEffect != nil {
		add("- Efeito treino (heurístico): %v (positivo sugere treino associado a menor ansiedade)", *stats.TrainEffect)
	}

	add("")
	add("## Plano mínimo (7 dias)")
	add("- 1) Sono: manter horário fixo de dormir/acordar (±30 min).")
	add("- 2) Treino: 10–20 min em dias alternados (caminhada/força leve).")
	add("- 3) Registro: preencher todos os dias (reduz viés e melhora a análise).")

	add("")
	add("## Protocolo rápido (1–5 min)")
	add("- Respiração 4-6 (inspirar 4s, expirar 6s) por 2 min.")
	add("- Descarrego mental: anotar 3 preocupações + 1 próxima ação possível (2 min).")
	add("- Alongamento leve de pescoço/ombros (1–2 min).")

	add("")
	add("## 3 métricas para amanhã")
	add("- Horário de dormir e acordar (objetivo: consistência).")
	add("- Ansiedade (0–10) antes de dormir.")
	add("- Treino (sim/não + minutos).")

	add("")
	add("> Nota: sem quota do Gemini, eu viro estatístico. Quando a cota voltar, eu viro coach de novo.")

	return strings.Join(lines, "\n")
}
