package storage

import (
	"fmt"
	"time"
)

// Run records one valuation run. Only the summary is kept; valued players are
// recomputed from cached payloads on demand.
type Run struct {
	RunID     string
	LeagueID  string
	Season    string
	StartedAt time.Time
	Players   int
	Removed   int
	Budget    float64
	TeamTotal float64
}

// InsertRun records a run summary.
func (db *DB) InsertRun(r Run) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO runs(run_id, league_id, season, started_at, players, removed, budget, team_total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LeagueID, r.Season, r.StartedAt.Unix(),
		r.Players, r.Removed, r.Budget, r.TeamTotal,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.RunID, err)
	}
	return nil
}

// ListRuns returns the most recent runs first, at most limit (0 = all).
func (db *DB) ListRuns(limit int) ([]Run, error) {
	q := `SELECT run_id, league_id, season, started_at, players, removed, budget, team_total
		FROM runs ORDER BY started_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.conn.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			started int64
		)
		if err := rows.Scan(&r.RunID, &r.LeagueID, &r.Season, &started,
			&r.Players, &r.Removed, &r.Budget, &r.TeamTotal); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(started, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}
