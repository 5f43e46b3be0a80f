package services

import (
	"context"
	"strings"
	"time"

	"github.com/snixlabs/lifeops/internal/adapters/cache"
	"github.com/snixlabs/lifeops/internal/adapters/llm"
	"github.com/snixlabs/lifeops/internal/core/analytics"
	"github.com/snixlabs/lifeops/internal/core/domain"
)

const (
	coachName    = "Snix"
	defaultFocus = "ansiedade"

	minWindowDays = 3
	maxWindowDays = 60
	minMaxItems   = 10
	maxMaxItems   = 240
	maxFocusLen   = 40

	coachTemperature = 0.35
	coachTopP        = 0.95
)

// Generator is the LLM gateway surface the coach depends on.
type Generator interface {
	Generate(ctx context.Context, systemText, userText string, opts llm.GenerateOptions) (*llm.Result, error)
}

// CoachService runs the end-to-end coach flow: window selection, statistics,
// cache lookup, prompt, LLM call, and the quota fallback.
type CoachService struct {
	logRepo      domain.LogRepository
	settingsRepo domain.SettingsRepository
	gateway      Generator
	cache        *cache.CoachCache
	maxTokens    int
	now          func() time.Time
}

func NewCoachService(
	logRepo domain.LogRepository,
	settingsRepo domain.SettingsRepository,
	gateway Generator,
	coachCache *cache.CoachCache,
	maxTokens int,
) *CoachService {
	return &CoachService{
		logRepo:      logRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		cache:        coachCache,
		maxTokens:    maxTokens,
		now:          time.Now,
	}
}

type CoachInput struct {
	Days         int
	MaxItems     int
	Focus        string
	IncludeNotes bool
}

func (s *CoachService) Generate(ctx context.Context, input CoachInput) (*domain.CoachResult, error) {
	// Out-of-range inputs are clamped, not rejected.
	days := clamp(input.Days, minWindowDays, maxWindowDays)
	maxItems := clamp(input.MaxItems, minMaxItems, maxMaxItems)
	focus := strings.TrimSpace(input.Focus)
	if focus == "" {
		focus = defaultFocus
	}
	focus = truncateRunes(focus, maxFocusLen)

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	goals := settings.Goals

	logsDesc, err := s.logRepo.ListDescending(ctx, maxItems)
	if err != nil {
		return nil, err
	}
	if len(logsDesc) == 0 {
		return nil, domain.ErrInsufficientLogs
	}

	today := dateOnly(s.now())
	sel := analytics.SelectWindow(logsDesc, days, today)
	if len(sel.Window) < minWindowDays {
		return nil, domain.ErrInsufficientLogs
	}

	summary := analytics.Summarize(goals, sel.Window)

	key := cache.CoachKey(days, focus, input.IncludeNotes, sel.UsedEndDate, len(sel.Window))
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	systemText, userText := buildCoachPrompt(goals, summary, sel.Window, focus, input.IncludeNotes)

	out, err := s.gateway.Generate(ctx, systemText, userText, llm.GenerateOptions{
		Temperature:     coachTemperature,
		MaxOutputTokens: s.maxTokens,
		TopP:            coachTopP,
	})
	if err != nil {
		if !llm.IsQuotaExhausted(err) {
			return nil, err
		}

		// Quota exhaustion resolves to the deterministic offline report.
		// The model field tells the caller which path answered.
		stats := buildCoachStats(summary, goals, sel, map[string]string{"error": "quota_exhausted"}, key)
		result := &domain.CoachResult{
			OK:        true,
			Coach:     coachName,
			Model:     domain.FallbackModel,
			Days:      days,
			NLogsUsed: len(sel.Window),
			Report:    fallbackReport(stats, focus),
			Stats:     stats,
		}
		s.cache.Set(key, result)
		return result, nil
	}

	report := strings.TrimSpace(out.Text)
	if out.Meta.BlockReason != "" {
		report = "Sem resposta do Snix: a API bloqueou o conteúdo desta solicitação.\n" +
			"Tente um foco diferente (ex.: 'sono', 'rotina') ou desative include_notes."
	}
	if report == "" {
		report = "Sem resposta do Snix (texto vazio).\n" +
			"Aumente a janela (ex.: 21 dias) ou reduza as notas (include_notes=false)."
	}
	if sel.FutureCount > 0 {
		report += "\n\nNota técnica: detectei registros em datas futuras. " +
			"A análise prioriza dados até a data atual; o futuro serve melhor como planejamento."
	}

	stats := buildCoachStats(summary, goals, sel, out.Meta, key)
	result := &domain.CoachResult{
		OK:        true,
		Coach:     coachName,
		Model:     out.Model,
		Days:      days,
		NLogsUsed: len(sel.Window),
		Report:    report,
		Stats:     stats,
	}
	s.cache.Set(key, result)
	return result, nil
}

func buildCoachStats(summary domain.Summary, goals domain.Goals, sel analytics.WindowSelection, meta any, key string) domain.CoachStats {
	return domain.CoachStats{
		Summary:             summary,
		SleepMin:            goals.SleepMin,
		WindowStartSelected: sel.UsedStartDate,
		WindowEndSelected:   sel.UsedEndDate,
		UsedPastOnly:        sel.UsedPastOnly,
		FutureCount:         sel.FutureCount,
		LLMMeta:             meta,
		CacheKey:            key,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
