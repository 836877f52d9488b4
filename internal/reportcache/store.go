// Package reportcache caches computed reports in DuckDB, keyed by a
// fingerprint of the source they were computed from, so re-running the
// same file does not repeat the streaming pass.
package reportcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding cached reports.
type Store struct {
	db *sql.DB
}

// Open opens or creates a DuckDB database at path. An empty path opens
// an in-memory database, useful for tests.
func Open(path string) (*Store, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS reports (
		fingerprint VARCHAR PRIMARY KEY,
		location    VARCHAR,
		computed_at BIGINT,
		report_json VARCHAR
	)`)
	return err
}

// Put stores reportJSON under fingerprint, overwriting any prior entry
// for the same fingerprint.
func (s *Store) Put(fingerprint, location string, reportJSON []byte) error {
	_, err := s.db.Exec(`INSERT INTO reports (fingerprint, location, computed_at, report_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO UPDATE SET
			location = excluded.location,
			computed_at = excluded.computed_at,
			report_json = excluded.report_json`,
		fingerprint, location, time.Now().Unix(), string(reportJSON))
	if err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}

// Get returns the cached report JSON for fingerprint, if present.
func (s *Store) Get(fingerprint string) (reportJSON []byte, found bool, err error) {
	row := s.db.QueryRow(`SELECT report_json FROM reports WHERE fingerprint = ?`, fingerprint)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lookup report: %w", err)
	}
	return []byte(payload), true, nil
}

// Fingerprint derives a cache key from a source location and the gzip
// flag plus, for local files, their size and modification time, so an
// edited file misses the cache even when its path is unchanged. Remote
// locations are fingerprinted on their URL and the gzip flag only.
func Fingerprint(location string, gzipped bool) string {
	h := sha256.New()
	fmt.Fprintf(h, "location=%s;gzipped=%t", location, gzipped)

	if info, err := os.Stat(location); err == nil {
		fmt.Fprintf(h, ";size=%d;mtime=%d", info.Size(), info.ModTime().UnixNano())
	}

	return hex.EncodeToString(h.Sum(nil))
}
