package database

import (
	"database/sql"
	"log"

	"campuspay/config"

	_ "modernc.org/sqlite"
)

// SQLiteDB is the global handle to the terminal-local database.
var SQLiteDB *sql.DB

// InitDB opens (and creates if missing) the local SQLite database that
// backs the offline payment queue.
func InitDB() {
	db, err := sql.Open("sqlite", config.AppConfig.QueueDBPath)
	if err != nil {
		log.Fatalf("failed to open local database: %v", err)
	}
	// SQLite allows a single writer; serializing through one connection
	// keeps Save's read-modify-write atomic.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping local database: %v", err)
	}
	SQLiteDB = db
	log.Println("Connected to local queue database")
}
