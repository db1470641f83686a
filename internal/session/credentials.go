package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Credentials persists the bearer token and login email across restarts.
// The two values are always written and cleared together; there is no state
// where one survives without the other.
type Credentials struct {
	mu    sync.RWMutex
	db    *sql.DB
	token string
	email string
}

// OpenCredentials opens (or creates) the credential store at dbPath.
func OpenCredentials(dbPath string) (*Credentials, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create credentials directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open credentials store: %w", err)
	}
	// Single-row store; one connection serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping credentials store: %w", err)
	}

	c := &Credentials{db: db}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := c.load(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Credentials) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS credentials (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		email TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (c *Credentials) load() error {
	row := c.db.QueryRow(`SELECT token, email FROM credentials WHERE id = 1`)

	var token, email string
	err := row.Scan(&token, &email)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan credentials row: %w", err)
	}

	c.token, c.email = token, email
	return nil
}

// Token implements api.TokenSource.
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Email returns the persisted login email, empty when logged out.
func (c *Credentials) Email() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.email
}

// Save stores the token/email pair, replacing whatever was there.
func (c *Credentials) Save(token, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
		INSERT INTO credentials (id, token, email, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			email = excluded.email,
			updated_at = excluded.updated_at`,
		token, email, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	c.token, c.email = token, email
	return nil
}

// Clear wipes both values. Safe to call repeatedly.
func (c *Credentials) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(`DELETE FROM credentials WHERE id = 1`); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}

	c.token, c.email = "", ""
	return nil
}

// Close releases the underlying database.
func (c *Credentials) Close() error {
	return c.db.Close()
}
