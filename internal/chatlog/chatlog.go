// Package chatlog persists answered chat exchanges.
package chatlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/go-sql-driver/mysql"
)

// mysqlTimeLayout is how the driver sends DATETIME and TIMESTAMP values
// when parseTime is off
const mysqlTimeLayout = "2006-01-02 15:04:05.999999999"

// Entry is one answered exchange
type Entry struct {
	RequestID   string
	UserQuery   string
	BotResponse string
	CreatedAt   time.Time
}

// Store records chat exchanges
type Store interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// Reader lists recorded entries
type Reader interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// Nop is the store used when no database is configured
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }
func (Nop) Close() error                        { return nil }

// MySQLStore writes entries to the chat_logs table
type MySQLStore struct {
	db *sql.DB
}

// OpenMySQL connects to dsn and verifies the connection. parseTime is
// always enabled so created_at scans into time.Time.
func OpenMySQL(ctx context.Context, dsn string) (*MySQLStore, error) {
	dsn, err := withParseTime(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("chat log database connected")

	return NewMySQLStore(db), nil
}

// withParseTime returns dsn with parseTime=true set
func withParseTime(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// NewMySQLStore wraps an open database handle
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the chat_logs table if it doesn't exist
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS chat_logs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			request_id VARCHAR(64) NOT NULL DEFAULT '',
			user_query TEXT NOT NULL,
			bot_response TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_created_at (created_at)
		)
	`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create chat_logs table: %w", err)
	}
	return nil
}

// Record inserts one entry. A zero CreatedAt is stamped with the current time.
func (s *MySQLStore) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chat_logs (request_id, user_query, bot_response, created_at) VALUES (?, ?, ?, ?)",
		e.RequestID, e.UserQuery, e.BotResponse, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat log: %w", err)
	}
	return nil
}

// Recent returns the newest entries, newest first
func (s *MySQLStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT request_id, user_query, bot_response, created_at FROM chat_logs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat logs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RequestID, &e.UserQuery, &e.BotResponse, timestamp{&e.CreatedAt}); err != nil {
			return nil, fmt.Errorf("failed to scan chat log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// timestamp scans a TIMESTAMP column whether or not the connection has
// parseTime set. Text values are read as UTC.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*ts.t = time.Time{}
	case time.Time:
		*ts.t = v
	case []byte:
		return ts.parse(string(v))
	case string:
		return ts.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp type %T", value)
	}
	return nil
}

func (ts timestamp) parse(s string) error {
	if strings.HasPrefix(s, "0000-00-00") {
		*ts.t = time.Time{}
		return nil
	}
	t, err := time.ParseInLocation(mysqlTimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	*ts.t = t
	return nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
