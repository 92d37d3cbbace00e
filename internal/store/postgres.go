package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pitchside/live-engine/internal/model"
	"github.com/pitchside/live-engine/internal/standings"
)

//go:embed schema.sql
var schemaSQL string

// PostgresStore implements ReferenceStore using PostgreSQL as the source of
// truth. Overs and NRR are stored as NUMERIC and read back as text.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed reference store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the reference tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// SeedIfEmpty loads seed when the teams table is empty. Returns whether
// anything was written.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context, seed Seed) (bool, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return false, fmt.Errorf("count teams: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	teams := make(map[string]model.Team)
	for _, m := range seed.Fixtures {
		teams[m.Team1.ShortName] = m.Team1
		teams[m.Team2.ShortName] = m.Team2
	}
	for _, e := range seed.PointsTable {
		teams[e.Team.ShortName] = e.Team
	}
	for _, m := range seed.Schedule {
		teams[m.Team1.ShortName] = m.Team1
		teams[m.Team2.ShortName] = m.Team2
	}
	for _, t := range teams {
		if _, err := tx.Exec(ctx,
			`INSERT INTO teams (short_name, name) VALUES ($1, $2)`,
			t.ShortName, t.Name); err != nil {
			return false, fmt.Errorf("insert team %s: %w", t.ShortName, err)
		}
	}

	for _, m := range seed.Fixtures {
		var t1r, t1w, t2r, t2w *int
		var t1o, t2o *string
		if m.Score != nil {
			t1r, t1w = &m.Score.Team1.Runs, &m.Score.Team1.Wickets
			t2r, t2w = &m.Score.Team2.Runs, &m.Score.Team2.Wickets
			o1 := decimal.NewFromFloat(m.Score.Team1.Overs).StringFixed(1)
			o2 := decimal.NewFromFloat(m.Score.Team2.Overs).StringFixed(1)
			t1o, t2o = &o1, &o2
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO fixtures (id, team1, team2, status, venue, match_date, match_time,
			                       team1_runs, team1_wickets, team1_overs,
			                       team2_runs, team2_wickets, team2_overs, result)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::NUMERIC, $11, $12, $13::NUMERIC, NULLIF($14, ''))`,
			m.ID, m.Team1.ShortName, m.Team2.ShortName, string(m.Status), m.Venue, m.Date, m.Time,
			t1r, t1w, t1o, t2r, t2w, t2o, m.Result,
		); err != nil {
			return false, fmt.Errorf("insert fixture %d: %w", m.ID, err)
		}
	}

	for _, e := range seed.PointsTable {
		if _, err := tx.Exec(ctx,
			`INSERT INTO points_table (short_name, matches, won, lost, points, nrr, form)
			 VALUES ($1, $2, $3, $4, $5, $6::NUMERIC, $7)`,
			e.Team.ShortName, e.Matches, e.Won, e.Lost, e.Points,
			standings.ParseNRR(e.NRR).String(), e.Form,
		); err != nil {
			return false, fmt.Errorf("insert standings %s: %w", e.Team.ShortName, err)
		}
	}

	for _, m := range seed.Schedule {
		if _, err := tx.Exec(ctx,
			`INSERT INTO schedule (id, match_number, team1, team2, match_date, match_time, venue, status, result)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))`,
			m.ID, m.MatchNumber, m.Team1.ShortName, m.Team2.ShortName,
			m.Date, m.Time, m.Venue, string(m.Status), m.Result,
		); err != nil {
			return false, fmt.Errorf("insert schedule %d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) Fixtures(ctx context.Context) ([]model.Match, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT f.id, t1.name, t1.short_name, t2.name, t2.short_name,
		        f.status, f.venue, f.match_date, f.match_time,
		        f.team1_runs, f.team1_wickets, f.team1_overs::TEXT,
		        f.team2_runs, f.team2_wickets, f.team2_overs::TEXT,
		        COALESCE(f.result, '')
		 FROM fixtures f
		 JOIN teams t1 ON t1.short_name = f.team1
		 JOIN teams t2 ON t2.short_name = f.team2
		 ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var m model.Match
		var status string
		var t1r, t1w, t2r, t2w *int
		var t1o, t2o *string

		if err := rows.Scan(&m.ID, &m.Team1.Name, &m.Team1.ShortName, &m.Team2.Name, &m.Team2.ShortName,
			&status, &m.Venue, &m.Date, &m.Time,
			&t1r, &t1w, &t1o,
			&t2r, &t2w, &t2o,
			&m.Result); err != nil {
			return nil, err
		}
		m.Status = model.Status(status)

		if m.Status != model.StatusUpcoming && t1r != nil && t2r != nil {
			m.Score = &model.Scorecard{
				Team1: scanScore(t1r, t1w, t1o),
				Team2: scanScore(t2r, t2w, t2o),
			}
		}
		if m.Status != model.StatusCompleted {
			m.Result = ""
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("fixtures: %w", ErrNotFound)
	}
	return matches, nil
}

func (s *PostgresStore) PointsTable(ctx context.Context) ([]model.PointsTableEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT t.name, t.short_name, p.matches, p.won, p.lost, p.points, p.nrr::TEXT, p.form
		 FROM points_table p
		 JOIN teams t ON t.short_name = p.short_name
		 ORDER BY p.points DESC, p.nrr DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PointsTableEntry, error) {
		var e model.PointsTableEntry
		var nrr string
		err := row.Scan(&e.Team.Name, &e.Team.ShortName, &e.Matches, &e.Won, &e.Lost, &e.Points, &nrr, &e.Form)
		e.NRR = standings.FormatNRR(standings.ParseNRR(nrr))
		return e, err
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *PostgresStore) Schedule(ctx context.Context) ([]model.ScheduleMatch, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT sc.id, sc.match_number, t1.name, t1.short_name, t2.name, t2.short_name,
		        sc.match_date, sc.match_time, sc.venue, sc.status, COALESCE(sc.result, '')
		 FROM schedule sc
		 JOIN teams t1 ON t1.short_name = sc.team1
		 JOIN teams t2 ON t2.short_name = sc.team2
		 ORDER BY sc.match_date, sc.match_time, sc.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ScheduleMatch
	for rows.Next() {
		var m model.ScheduleMatch
		var status string
		if err := rows.Scan(&m.ID, &m.MatchNumber, &m.Team1.Name, &m.Team1.ShortName,
			&m.Team2.Name, &m.Team2.ShortName, &m.Date, &m.Time, &m.Venue, &status, &m.Result); err != nil {
			return nil, err
		}
		m.Status = model.Status(status)
		out = append(out, m)
	}
	return out, rows.Err()
}

// scanScore builds a MatchScore from nullable columns; missing values read
// as zero.
func scanScore(runs, wickets *int, overs *string) model.MatchScore {
	var sc model.MatchScore
	if runs != nil {
		sc.Runs = *runs
	}
	if wickets != nil {
		sc.Wickets = *wickets
	}
	if overs != nil {
		if d, err := decimal.NewFromString(*overs); err == nil {
			sc.Overs = d.InexactFloat64()
		}
	}
	return sc
}

// InvalidateTag is a no-op: every read goes to the database.
func (s *PostgresStore) InvalidateTag(_ context.Context, _ string) error {
	return nil
}
