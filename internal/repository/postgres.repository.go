package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"portfoliobias/internal/domain"

	_ "github.com/lib/pq"
)

const createObjectTable = `
CREATE TABLE IF NOT EXISTS bias_object (
	object_key TEXT PRIMARY KEY,
	body JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

type postgresRepositoryHandler struct {
	Db *sql.DB
}

func NewPostgresDb(connStr string) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return dbConn, nil
}

// NewPostgresResultRepository keeps objects in a single bias_object table,
// creating it if needed.
func NewPostgresResultRepository(ctx context.Context, db *sql.DB) (ObjectRepository, error) {
	_, err := db.ExecContext(ctx, createObjectTable)
	if err != nil {
		return nil, fmt.Errorf("failed to create bias_object table: %w", err)
	}
	return postgresRepositoryHandler{Db: db}, nil
}

func (h postgresRepositoryHandler) Put(ctx context.Context, key string, body []byte) error {
	query := `INSERT INTO bias_object (object_key, body) VALUES ($1, $2)
	ON CONFLICT (object_key) DO UPDATE SET body = EXCLUDED.body, created_at = now()`

	_, err := h.Db.ExecContext(ctx, query, key, string(body))
	if err != nil {
		return fmt.Errorf("failed to insert object %s: %w", key, err)
	}
	return nil
}

func (h postgresRepositoryHandler) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT body FROM bias_object WHERE object_key = $1`

	var body []byte
	err := h.Db.QueryRowContext(ctx, query, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s: %w", key, domain.ErrResultNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return body, nil
}

func (h postgresRepositoryHandler) List(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT object_key FROM bias_object WHERE starts_with(object_key, $1) ORDER BY object_key`

	rows, err := h.Db.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects with prefix %s: %w", prefix, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
