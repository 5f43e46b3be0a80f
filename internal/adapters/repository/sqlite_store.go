package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

// SQLiteStore is the durable single-file store for logs and settings. All
// access is serialized under one coarse store-level mutex; cache lookups and
// LLM calls never wait on it.
type SQLiteStore struct {
	db *sqlx.DB
	mu sync.Mutex
}

var _ domain.LogRepository = (*SQLiteStore)(nil)
var _ domain.SettingsRepository = (*SQLiteStore)(nil)

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Single connection: sqlite allows one writer, and the store mutex
	// already serializes callers.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS logs (
			date      TEXT PRIMARY KEY,
			sleep     REAL NOT NULL,
			sleepQual INTEGER NOT NULL,
			trained   INTEGER NOT NULL,
			trainMin  INTEGER NOT NULL,
			trainType TEXT,
			foodScore INTEGER NOT NULL,
			water     INTEGER NOT NULL,
			meals     INTEGER NOT NULL,
			mood      INTEGER NOT NULL,
			anxiety   INTEGER NOT NULL,
			notes     TEXT
		)`); err != nil {
		return fmt.Errorf("creating logs table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS state (
			id         INTEGER PRIMARY KEY CHECK(id = 1),
			goals_json TEXT NOT NULL,
			theme      TEXT NOT NULL
		)`); err != nil {
		return fmt.Errorf("creating state table: %w", err)
	}

	goalsJSON, err := json.Marshal(domain.DefaultGoals())
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO state (id, goals_json, theme) VALUES (1, ?, ?)`,
		string(goalsJSON), domain.ThemeDark); err != nil {
		return fmt.Errorf("seeding state row: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Ping() error {
	return s.db.Ping()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Upsert(ctx context.Context, log *domain.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO logs (date, sleep, sleepQual, trained, trainMin, trainType,
		                  foodScore, water, meals, mood, anxiety, notes)
		VALUES (:date, :sleep, :sleepQual, :trained, :trainMin, :trainType,
		        :foodScore, :water, :meals, :mood, :anxiety, :notes)
		ON CONFLICT(date) DO UPDATE SET
			sleep     = excluded.sleep,
			sleepQual = excluded.sleepQual,
			trained   = excluded.trained,
			trainMin  = excluded.trainMin,
			trainType = excluded.trainType,
			foodScore = excluded.foodScore,
			water     = excluded.water,
			meals     = excluded.meals,
			mood      = excluded.mood,
			anxiety   = excluded.anxiety,
			notes     = excluded.notes`, log)
	if err != nil {
		return fmt.Errorf("upserting log %s: %w", log.Date, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE date = ?`, date); err != nil {
		return fmt.Errorf("deleting log %s: %w", date, err)
	}
	return nil
}

func (s *SQLiteStore) ListDescending(ctx context.Context, limit int) ([]domain.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT date, sleep, sleepQual, trained, trainMin,
		       COALESCE(trainType, '') AS trainType,
		       foodScore, water, meals, mood, anxiety,
		       COALESCE(notes, '') AS notes
		FROM logs
		ORDER BY date DESC`

	logs := []domain.DailyLog{}
	var err error
	if limit > 0 {
		err = s.db.SelectContext(ctx, &logs, query+` LIMIT ?`, limit)
	} else {
		err = s.db.SelectContext(ctx, &logs, query)
	}
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	return logs, nil
}

type stateRow struct {
	GoalsJSON string `db:"goals_json"`
	Theme     string `db:"theme"`
}

func (s *SQLiteStore) Get(ctx context.Context) (*domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row stateRow
	err := s.db.GetContext(ctx, &row, `SELECT goals_json, theme FROM state WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	// Whatever is stored merges over the defaults; a corrupt or legacy
	// goals payload degrades to defaults instead of failing the read.
	var raw map[string]any
	_ = json.Unmarshal([]byte(row.GoalsJSON), &raw)

	return &domain.Settings{
		Goals: domain.MergeGoals(raw),
		Theme: domain.NormalizeTheme(row.Theme),
	}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, settings *domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goalsJSON, err := json.Marshal(settings.Goals)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE state SET goals_json = ?, theme = ? WHERE id = 1`,
		string(goalsJSON), settings.Theme)
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrStateNotFound
	}
	return nil
}
