package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/esimov/colortrack"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	fps        REAL NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS track_points (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	frame  INTEGER NOT NULL,
	x      REAL,
	y      REAL,
	vx     REAL NOT NULL,
	vy     REAL NOT NULL,
	PRIMARY KEY (run_id, frame)
);`

// Run is a stored tracking run.
type Run struct {
	ID        string
	Source    string
	FPS       float64
	CreatedAt time.Time
	Points    []colortrack.TrackPoint
}

// Store keeps the trajectories of several runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens, and creates if missing, the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the trajectory in a single transaction and returns the new run id.
func (s *Store) SaveRun(ctx context.Context, source string, traj *colortrack.Trajectory) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, fps, created_at) VALUES (?, ?, ?, ?)`,
		id, source, traj.FPS(), time.Now().UnixNano(),
	); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO track_points (run_id, frame, x, y, vx, vy) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < traj.Len(); i++ {
		tp := traj.At(i)
		var x, y sql.NullFloat64
		if tp.Position != nil {
			x = sql.NullFloat64{Float64: tp.Position.X, Valid: true}
			y = sql.NullFloat64{Float64: tp.Position.Y, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, id, i, x, y, tp.VelocityX, tp.VelocityY); err != nil {
			return "", fmt.Errorf("failed to insert frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// LoadRun reads back a stored run with its track points ordered by frame.
func (s *Store) LoadRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{ID: id}
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT source, fps, created_at FROM runs WHERE id = ?`, id,
	).Scan(&run.Source, &run.FPS, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	run.CreatedAt = time.Unix(0, created)

	rows, err := s.db.QueryContext(ctx,
		`SELECT x, y, vx, vy FROM track_points WHERE run_id = ? ORDER BY frame`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query track points: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			x, y sql.NullFloat64
			tp   colortrack.TrackPoint
		)
		if err := rows.Scan(&x, &y, &tp.VelocityX, &tp.VelocityY); err != nil {
			return nil, fmt.Errorf("failed to scan track point: %w", err)
		}
		if x.Valid && y.Valid {
			tp.Position = &colortrack.Point{X: x.Float64, Y: y.Float64}
		}
		run.Points = append(run.Points, tp)
	}
	return run, rows.Err()
}

// Runs lists the stored run ids, most recent first.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
