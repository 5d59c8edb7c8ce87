package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

const (
	itemUseCase = "use_case"
	itemDataset = "dataset"
)

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Storage run history backed by postgres or sqlite
type Storage struct {
	db     *sql.DB
	driver string
}

// NewStorage opens the database named by cfg and creates the schema.
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	if cfg.Driver != DriverPostgres && cfg.Driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported db driver: %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db, driver: cfg.Driver}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// q adapts $N placeholders to the driver.
func (s *Storage) q(query string) string {
	if s.driver == DriverSQLite {
		return placeholder.ReplaceAllString(query, "?$1")
	}
	return query
}

func (s *Storage) initSchema() error {
	pk := "SERIAL PRIMARY KEY"
	if s.driver == DriverSQLite {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id ` + pk + `,
			industry TEXT NOT NULL,
			file TEXT,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_items (
			id ` + pk + `,
			run_id INTEGER REFERENCES runs(id),
			kind TEXT NOT NULL,
			position INTEGER NOT NULL,
			content TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveRun stores one finished run and returns its id.
func (s *Storage) SaveRun(ctx context.Context, report *model.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRowContext(ctx, s.q(`
		INSERT INTO runs (industry, file, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`),
		report.Industry, report.File, time.Now().UTC()).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	insert := func(kind string, items []string) error {
		for i, content := range items {
			_, err := tx.ExecContext(ctx, s.q(`
				INSERT INTO run_items (run_id, kind, position, content)
				VALUES ($1, $2, $3, $4)`),
				runID, kind, i, removeNullBytes(content))
			if err != nil {
				return fmt.Errorf("failed to insert %s: %w", kind, err)
			}
		}
		return nil
	}
	if err := insert(itemUseCase, report.UseCases); err != nil {
		return 0, err
	}
	if err := insert(itemDataset, report.Datasets); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Storage) ListRuns(ctx context.Context, limit int) ([]*model.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, s.q(`
		SELECT id, industry, file, created_at
		FROM runs
		ORDER BY id DESC
		LIMIT $1`), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	var records []*model.RunRecord
	byID := make(map[int64]*model.RunRecord)
	for rows.Next() {
		r := &model.RunRecord{UseCases: []string{}, Datasets: []string{}}
		var file sql.NullString
		if err := rows.Scan(&r.ID, &r.Industry, &file, &r.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.File = file.String
		records = append(records, r)
		byID[r.ID] = r
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	ids := make([]any, 0, len(records))
	marks := make([]string, 0, len(records))
	for i, r := range records {
		ids = append(ids, r.ID)
		marks = append(marks, fmt.Sprintf("$%d", i+1))
	}
	itemRows, err := s.db.QueryContext(ctx, s.q(`
		SELECT run_id, kind, content
		FROM run_items
		WHERE run_id IN (`+strings.Join(marks, ", ")+`)
		ORDER BY run_id, position`), ids...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			runID   int64
			kind    string
			content sql.NullString
		)
		if err := itemRows.Scan(&runID, &kind, &content); err != nil {
			return nil, fmt.Errorf("failed to scan run item: %w", err)
		}
		r, ok := byID[runID]
		if !ok {
			continue
		}
		switch kind {
		case itemUseCase:
			r.UseCases = append(r.UseCases, content.String)
		case itemDataset:
			r.Datasets = append(r.Datasets, content.String)
		}
	}
	return records, itemRows.Err()
}

// PostgreSQL text columns reject NUL bytes.
func removeNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
