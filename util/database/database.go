package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"elibrary/model"
	"elibrary/util/hash"
)

// New opens (or creates) the library database at path, applies the schema
// and seeds the default admin account plus the starter catalog on first run.
// adminPassword is only used when the admin table is empty; pass "" to skip
// admin seeding entirely.
func New(path string, adminPassword string) (*sql.DB, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := seed(db, adminPassword); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS admin (
            username      TEXT PRIMARY KEY,
            password_hash TEXT NOT NULL,
            created_at    TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS users (
            username      TEXT PRIMARY KEY,
            password_hash TEXT NOT NULL,
            email         TEXT NOT NULL,
            created_at    TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            book_id    INTEGER PRIMARY KEY,
            title      TEXT NOT NULL,
            author     TEXT NOT NULL,
            year       INTEGER NOT NULL,
            category   TEXT NOT NULL,
            isbn       TEXT NOT NULL DEFAULT '',
            available  INTEGER NOT NULL DEFAULT 1,
            added_date TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS transactions (
            transaction_id INTEGER PRIMARY KEY,
            username       TEXT NOT NULL,
            book_id        INTEGER NOT NULL REFERENCES books(book_id),
            book_title     TEXT NOT NULL,
            borrow_date    TEXT NOT NULL,
            due_date       TEXT NOT NULL,
            return_date    TEXT NOT NULL DEFAULT '',
            status         TEXT NOT NULL,
            fine           INTEGER NOT NULL DEFAULT 0
        );`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

type seedBook struct {
	title, author, category, isbn, added string
	year                                 int
}

var seedBooks = []seedBook{
	{"Python Programming for Beginners", "John Smith", "Programming", "978-1234567890", "2024-01-15", 2023},
	{"Data Science Handbook", "Jane Doe", "Data Science", "978-0987654321", "2024-01-10", 2022},
	{"Machine Learning Basics", "Robert Johnson", "Artificial Intelligence", "978-1122334455", "2024-01-20", 2023},
	{"Web Development with Streamlit", "Sarah Wilson", "Web Development", "978-5566778899", "2024-01-25", 2024},
	{"Database System Concepts", "Michael Brown", "Database", "978-9988776655", "2024-01-05", 2021},
}

func seed(db *sql.DB, adminPassword string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var admins int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM admin`).Scan(&admins); err != nil {
		return err
	}
	if admins == 0 && adminPassword != "" {
		hashed, err := hash.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO admin(username, password_hash, created_at) VALUES(?,?,?)`,
			"admin", hashed, time.Now().Format(model.TimestampLayout),
		); err != nil {
			return err
		}
	}

	var books int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&books); err != nil {
		return err
	}
	if books == 0 {
		for _, b := range seedBooks {
			if _, err := tx.Exec(
				`INSERT INTO books(title, author, year, category, isbn, available, added_date)
                 VALUES(?,?,?,?,?,1,?)`,
				b.title, b.author, b.year, b.category, b.isbn, b.added,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
