// Package results provides SQLite-based storage for finished games: the
// final standings of every session, queryable as an all-time leaderboard.
package results

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/prosperville/internal/game"
	"github.com/talgya/prosperville/internal/player"
)

// DB wraps a SQLite connection for game result storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		finished_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		n_players INTEGER NOT NULL,
		survivors INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS standings (
		game_id TEXT NOT NULL REFERENCES games(id),
		seat INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		name TEXT NOT NULL,
		is_ai INTEGER NOT NULL,
		score REAL NOT NULL,
		happiness REAL NOT NULL,
		wealth REAL NOT NULL,
		debt REAL NOT NULL,
		bankrupt INTEGER NOT NULL,
		scores_json TEXT NOT NULL,
		PRIMARY KEY (game_id, seat)
	);

	CREATE INDEX IF NOT EXISTS idx_standings_score ON standings(score);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Standing is one player's final row in a finished game.
type Standing struct {
	GameID    string  `db:"game_id" json:"game_id"`
	Seat      int     `db:"seat" json:"seat"`
	Rank      int     `db:"rank" json:"rank"`
	Name      string  `db:"name" json:"name"`
	IsAI      bool    `db:"is_ai" json:"is_ai"`
	Score     float64 `db:"score" json:"score"`
	Happiness float64 `db:"happiness" json:"happiness"`
	Wealth    float64 `db:"wealth" json:"wealth"`
	Debt      float64 `db:"debt" json:"debt"`
	Bankrupt  bool    `db:"bankrupt" json:"bankrupt"`
	// ScoresJSON is the player's full period-by-period score history,
	// stored as a JSON array of score rows.
	ScoresJSON string `db:"scores_json" json:"-"`
}

// ScoreHistory decodes the archived score rows.
func (st *Standing) ScoreHistory() ([]player.ScoreRow, error) {
	var rows []player.ScoreRow
	if err := json.Unmarshal([]byte(st.ScoresJSON), &rows); err != nil {
		return nil, fmt.Errorf("decode score history: %w", err)
	}
	return rows, nil
}

// SaveGame records a finished session's standings. Saving a session
// twice replaces the earlier record.
func (db *DB) SaveGame(s *game.Session) error {
	if !s.End {
		return fmt.Errorf("results: session %s has not finished", s.ID)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := s.ID.String()
	if _, err := tx.Exec(`DELETE FROM standings WHERE game_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM games WHERE id = ?`, id); err != nil {
		return err
	}

	sums := s.Summaries()
	if _, err := tx.Exec(
		`INSERT INTO games (id, finished_at, seed, n_players, survivors) VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), s.Seed, len(sums)-1, s.SurvivorCount(),
	); err != nil {
		return err
	}

	// Humans rank by final score; the AI is recorded last, unranked
	// against them.
	rankBySeat := make(map[int]int, len(s.Ranked))
	for pos, seat := range s.Ranked {
		rankBySeat[seat] = pos + 1
	}
	initAge := s.Catalog().Stages[0].InitAge
	for seat, sum := range sums {
		rank, ok := rankBySeat[seat]
		if !ok {
			rank = 0
		}
		p := s.Players()[seat]
		history, err := json.Marshal(p.ScoreRows(initAge, p.SimulatedPeriods()))
		if err != nil {
			return fmt.Errorf("encode score history: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO standings
			 (game_id, seat, rank, name, is_ai, score, happiness, wealth, debt, bankrupt, scores_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, seat, rank, sum.Name, sum.IsAI,
			sum.Score, sum.Happiness, sum.Wealth, sum.Debt, sum.Bankrupt,
			string(history),
		); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game archived", "game", id, "players", len(sums)-1)
	return nil
}

// Standings returns a finished game's rows in seat order.
func (db *DB) Standings(gameID uuid.UUID) ([]Standing, error) {
	var rows []Standing
	err := db.conn.Select(&rows,
		`SELECT * FROM standings WHERE game_id = ? ORDER BY seat`, gameID.String())
	if err != nil {
		return nil, fmt.Errorf("load standings: %w", err)
	}
	return rows, nil
}

// Leaderboard returns the best human scores across all archived games.
func (db *DB) Leaderboard(limit int) ([]Standing, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []Standing
	err := db.conn.Select(&rows,
		`SELECT * FROM standings WHERE is_ai = 0 ORDER BY score DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return rows, nil
}

// GameCount reports how many finished games are archived.
func (db *DB) GameCount() (int, error) {
	var n int
	if err := db.conn.Get(&n, `SELECT COUNT(*) FROM games`); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}
