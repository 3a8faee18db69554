package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite"
)

var db *sql.DB

// initDB opens the sqlite store and creates the tables the site writes to.
func initDB(path string) error {
	conn, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	// sqlite serialises writers; one connection also keeps ":memory:" a single database
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("ping %s: %w", path, err)
	}

	createMessagesTable := `
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		hashed_ip TEXT,
		delivered INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := conn.Exec(createMessagesTable); err != nil {
		conn.Close()
		return fmt.Errorf("create messages table: %w", err)
	}

	db = conn
	log.Printf("Database ready at %s", path)
	return nil
}

// dsn stores times in a layout sqlite's date functions understand.
func dsn(path string) string {
	if strings.Contains(path, "_time_format=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_time_format=sqlite"
}
