package universe

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists the scraped constituents universe to SQLite so the
// sp500 source keeps working when the scrape is unreachable.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenStore opens (or creates) the SQLite database and runs migrations.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] constituents store opened: %s", dbPath)
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS constituents (
			symbol     TEXT PRIMARY KEY,
			name       TEXT,
			sector     TEXT,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_constituents_sector ON constituents(sector)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Replace swaps the stored universe for the given constituents.
func (s *Store) Replace(cons []Constituent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM constituents`); err != nil {
		tx.Rollback()
		return err
	}
	now := time.Now().Unix()
	for _, c := range cons {
		if _, err := tx.Exec(
			`INSERT INTO constituents (symbol, name, sector, fetched_at) VALUES (?,?,?,?)`,
			c.Symbol, c.Name, c.Sector, now,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Constituents returns the stored universe ordered by symbol.
func (s *Store) Constituents() ([]Constituent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol, name, sector FROM constituents ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cons []Constituent
	for rows.Next() {
		var c Constituent
		if err := rows.Scan(&c.Symbol, &c.Name, &c.Sector); err != nil {
			return nil, err
		}
		cons = append(cons, c)
	}
	return cons, rows.Err()
}

// BySector returns the stored symbols in the given GICS sector.
func (s *Store) BySector(sector string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT symbol FROM constituents WHERE sector = ? COLLATE NOCASE ORDER BY symbol`, sector)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

func (s *Store) Close() error {
	log.Println("[INFO] closing constituents store")
	return s.db.Close()
}
