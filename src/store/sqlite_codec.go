package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/username/networth/src/model"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteCodec stores the registry in a SQLite database file. Each save
// rewrites the users table inside one transaction; portfolios are kept as JSON.
type SQLiteCodec struct{}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	age INTEGER NOT NULL,
	email TEXT NOT NULL UNIQUE,
	portfolio TEXT
);

CREATE TABLE IF NOT EXISTS snapshot_meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

func (SQLiteCodec) Encode(path string, users []model.User) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open snapshot database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create snapshot tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM users"); err != nil {
		return fmt.Errorf("clear users table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO users (position, id, first_name, last_name, age, email, portfolio) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, u := range users {
		var portfolio sql.NullString
		if u.Portfolio != nil {
			data, err := json.Marshal(u.Portfolio)
			if err != nil {
				return fmt.Errorf("marshal portfolio for %s: %w", u.Email, err)
			}
			portfolio = sql.NullString{String: string(data), Valid: true}
		}
		if _, err := stmt.Exec(i, u.ID.String(), u.FirstName, u.LastName, u.Age, u.Email, portfolio); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Email, err)
		}
	}

	meta := map[string]string{
		"version":  fmt.Sprint(snapshotVersion),
		"saved_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	for key, value := range meta {
		if _, err := tx.Exec(`INSERT INTO snapshot_meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			return fmt.Errorf("write snapshot metadata: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func (SQLiteCodec) Decode(path string) ([]model.User, error) {
	// sql.Open would create an empty database; a missing snapshot must stay an error.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat snapshot database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, first_name, last_name, age, email, portfolio FROM users ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var (
			u         model.User
			id        string
			portfolio sql.NullString
		)
		if err := rows.Scan(&id, &u.FirstName, &u.LastName, &u.Age, &u.Email, &portfolio); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		if u.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse id of %s: %w", u.Email, err)
		}
		if portfolio.Valid {
			var p model.Portfolio
			if err := json.Unmarshal([]byte(portfolio.String), &p); err != nil {
				return nil, fmt.Errorf("parse portfolio of %s: %w", u.Email, err)
			}
			u.Portfolio = &p
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
