package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to Postgres and verifies the connection. The caller owns the
// returned handle and injects it where needed.
func Open(url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL not configured")
	}

	conn, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}
	return conn, nil
}
