package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Run is a saved worksheet: the inputs as submitted, re-evaluated on read.
type Run struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	Title     string          `json:"title"`
	Inputs    json.RawMessage `json:"inputs"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	SaveRun(ctx context.Context, userID int, title string, inputs []byte) (int, error)
	ListRuns(ctx context.Context, userID int) ([]Run, error)
	GetRun(ctx context.Context, userID, id int) (Run, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id       SERIAL PRIMARY KEY,
	login    TEXT UNIQUE NOT NULL,
	email    TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS runs (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	inputs     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS runs_user_id_idx ON runs (user_id, created_at DESC);
`

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveRun(ctx context.Context, userID int, title string, inputs []byte) (int, error) {
	var id int
	query := "INSERT INTO runs (user_id, title, inputs) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, title, string(inputs)).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListRuns(ctx context.Context, userID int) ([]Run, error) {
	query := "SELECT id, user_id, title, inputs, created_at FROM runs WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.UserID, &run.Title, &run.Inputs, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *PostgresRepository) GetRun(ctx context.Context, userID, id int) (Run, error) {
	var run Run
	query := "SELECT id, user_id, title, inputs, created_at FROM runs WHERE id=$1 AND user_id=$2"
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&run.ID, &run.UserID, &run.Title, &run.Inputs, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	return run, err
}
