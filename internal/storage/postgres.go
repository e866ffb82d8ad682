package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresSlot stores the payload as one row keyed by (session_id,
// slot_key) in the cart_slots table.
type PostgresSlot struct {
	db        *sql.DB
	sessionID string
	key       string
}

func NewPostgresSlot(db *sql.DB, sessionID, key string) *PostgresSlot {
	return &PostgresSlot{db: db, sessionID: sessionID, key: key}
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM cart_slots WHERE session_id = $1 AND slot_key = $2",
		s.sessionID, s.key,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_slots (session_id, slot_key, payload, updated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, slot_key)
		 DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		s.sessionID, s.key, data, time.Now(),
	)
	return err
}

func (s *PostgresSlot) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_slots WHERE session_id = $1 AND slot_key = $2",
		s.sessionID, s.key,
	)
	return err
}

// EnsureSchema creates the cart_slots table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cart_slots (
			session_id TEXT NOT NULL,
			slot_key   TEXT NOT NULL,
			payload    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (session_id, slot_key)
		)`)
	return err
}

// ConnectPostgres establishes a pooled connection to PostgreSQL.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
