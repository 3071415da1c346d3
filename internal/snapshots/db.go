package snapshots

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Run identifies one pipeline execution over one snapshot.
type Run struct {
	ID          string
	GeneratedAt time.Time
	Events      int
	Groups      int
}

// BestPriceRecord is one row of the best-price/fair-price table.
type BestPriceRecord struct {
	EventID   string
	HomeTeam  string
	AwayTeam  string
	Market    string
	Line      float64
	Side      string
	Price     float64
	Bookmaker string
	FairPrice float64 // 0 when the group had no usable consensus
	EdgePct   float64
}

// ArbRecord is one stored arbitrage opportunity. Legs are kept as a JSON
// blob; the store is read by an external renderer, not queried per leg.
type ArbRecord struct {
	EventID    string
	HomeTeam   string
	AwayTeam   string
	Market     string
	Line       float64
	SumImplied float64
	ROIPct     float64
	Legs       []LegRecord
}

// LegRecord is one side of a stored opportunity.
type LegRecord struct {
	Side      string  `json:"side"`
	Price     float64 `json:"price"`
	Bookmaker string  `json:"bookmaker"`
	Stake     float64 `json:"stake"`
	Payout    float64 `json:"payout"`
}

// Store persists the latest run's derived artifacts. Each run replaces
// the previous one wholesale; there is no odds history.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the snapshot database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		generated_at DATETIME NOT NULL,
		events INTEGER NOT NULL,
		groups_scanned INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS best_prices (
		run_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		market TEXT NOT NULL,
		line REAL NOT NULL,
		side TEXT NOT NULL,
		price REAL NOT NULL,
		bookmaker TEXT NOT NULL,
		fair_price REAL NOT NULL,
		edge_pct REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS arbs (
		run_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		market TEXT NOT NULL,
		line REAL NOT NULL,
		sum_implied REAL NOT NULL,
		roi_pct REAL NOT NULL,
		legs TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_best_prices_run ON best_prices(run_id);
	CREATE INDEX IF NOT EXISTS idx_arbs_run ON arbs(run_id);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceLatest atomically swaps in a new run: previous runs and their
// rows are deleted, the new run and its artifacts inserted.
func (s *Store) ReplaceLatest(run Run, best []BestPriceRecord, arbs []ArbRecord) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.GeneratedAt.IsZero() {
		run.GeneratedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{"DELETE FROM best_prices", "DELETE FROM arbs", "DELETE FROM runs"} {
		if _, err := tx.Exec(stmt); err != nil {
			return "", fmt.Errorf("clearing previous run: %w", err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO runs (id, generated_at, events, groups_scanned)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.GeneratedAt, run.Events, run.Groups); err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, r := range best {
		if _, err := tx.Exec(`
			INSERT INTO best_prices (run_id, event_id, home_team, away_team, market, line, side, price, bookmaker, fair_price, edge_pct)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, r.EventID, r.HomeTeam, r.AwayTeam, r.Market, r.Line, r.Side, r.Price, r.Bookmaker, r.FairPrice, r.EdgePct); err != nil {
			return "", fmt.Errorf("inserting best price: %w", err)
		}
	}

	for _, a := range arbs {
		legs, err := json.Marshal(a.Legs)
		if err != nil {
			return "", fmt.Errorf("encoding legs: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO arbs (run_id, event_id, home_team, away_team, market, line, sum_implied, roi_pct, legs)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, a.EventID, a.HomeTeam, a.AwayTeam, a.Market, a.Line, a.SumImplied, a.ROIPct, string(legs)); err != nil {
			return "", fmt.Errorf("inserting arb: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}

	return run.ID, nil
}

// LatestRun returns the stored run, or nil when no run exists yet.
func (s *Store) LatestRun() (*Run, error) {
	row := s.db.QueryRow(`SELECT id, generated_at, events, groups_scanned FROM runs LIMIT 1`)

	var run Run
	err := row.Scan(&run.ID, &run.GeneratedAt, &run.Events, &run.Groups)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	return &run, nil
}

// BestPrices returns the stored best-price table for a run.
func (s *Store) BestPrices(runID string) ([]BestPriceRecord, error) {
	rows, err := s.db.Query(`
		SELECT event_id, home_team, away_team, market, line, side, price, bookmaker, fair_price, edge_pct
		FROM best_prices WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying best prices: %w", err)
	}
	defer rows.Close()

	var out []BestPriceRecord
	for rows.Next() {
		var r BestPriceRecord
		if err := rows.Scan(&r.EventID, &r.HomeTeam, &r.AwayTeam, &r.Market, &r.Line,
			&r.Side, &r.Price, &r.Bookmaker, &r.FairPrice, &r.EdgePct); err != nil {
			return nil, fmt.Errorf("scanning best price row: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Arbs returns the stored arbitrage opportunities for a run.
func (s *Store) Arbs(runID string) ([]ArbRecord, error) {
	rows, err := s.db.Query(`
		SELECT event_id, home_team, away_team, market, line, sum_implied, roi_pct, legs
		FROM arbs WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying arbs: %w", err)
	}
	defer rows.Close()

	var out []ArbRecord
	for rows.Next() {
		var a ArbRecord
		var legs string
		if err := rows.Scan(&a.EventID, &a.HomeTeam, &a.AwayTeam, &a.Market, &a.Line,
			&a.SumImplied, &a.ROIPct, &legs); err != nil {
			return nil, fmt.Errorf("scanning arb row: %w", err)
		}
		if err := json.Unmarshal([]byte(legs), &a.Legs); err != nil {
			return nil, fmt.Errorf("decoding legs: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
