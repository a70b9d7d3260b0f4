// Package sqlitestore persists the counts of an lm.Memory in SQLite.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/iw2rmb/learnspan/lm"
)

const schema = `
CREATE TABLE IF NOT EXISTS unigrams (
	word TEXT PRIMARY KEY,
	count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS bigrams (
	prev TEXT NOT NULL,
	word TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (prev, word)
);

CREATE INDEX IF NOT EXISTS idx_unigrams_count ON unigrams(count DESC);
`

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save replaces the stored counts with the persistent counts of m.
func (s *Store) Save(ctx context.Context, m *lm.Memory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{"DELETE FROM unigrams", "DELETE FROM bigrams"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}

	uniStmt, err := tx.PrepareContext(ctx, "INSERT INTO unigrams (word, count) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer uniStmt.Close()
	for w, n := range m.Unigrams() {
		if _, err := uniStmt.ExecContext(ctx, w, n); err != nil {
			return fmt.Errorf("save unigram %q: %w", w, err)
		}
	}

	biStmt, err := tx.PrepareContext(ctx, "INSERT INTO bigrams (prev, word, count) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer biStmt.Close()
	for k, n := range m.Bigrams() {
		if _, err := biStmt.ExecContext(ctx, k.Prev, k.Word, n); err != nil {
			return fmt.Errorf("save bigram %q %q: %w", k.Prev, k.Word, err)
		}
	}

	return tx.Commit()
}

// Load adds the stored counts to m.
func (s *Store) Load(ctx context.Context, m *lm.Memory) error {
	unigrams := make(map[string]int)
	rows, err := s.db.QueryContext(ctx, "SELECT word, count FROM unigrams")
	if err != nil {
		return fmt.Errorf("load unigrams: %w", err)
	}
	for rows.Next() {
		var w string
		var n int
		if err := rows.Scan(&w, &n); err != nil {
			rows.Close()
			return err
		}
		unigrams[w] = n
	}
	if err := rows.Close(); err != nil {
		return err
	}

	bigrams := make(map[lm.Bigram]int)
	rows, err = s.db.QueryContext(ctx, "SELECT prev, word, count FROM bigrams")
	if err != nil {
		return fmt.Errorf("load bigrams: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k lm.Bigram
		var n int
		if err := rows.Scan(&k.Prev, &k.Word, &n); err != nil {
			return err
		}
		bigrams[k] = n
	}
	if err := rows.Err(); err != nil {
		return err
	}

	m.AddCounts(unigrams, bigrams)
	return nil
}

// WordCount is one row of TopWords.
type WordCount struct {
	Word  string
	Count int
}

// TopWords returns the n most frequent words.
func (s *Store) TopWords(ctx context.Context, n int) ([]WordCount, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT word, count FROM unigrams ORDER BY count DESC, word ASC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WordCount
	for rows.Next() {
		var wc WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, err
		}
		out = append(out, wc)
	}
	return out, rows.Err()
}

// Stats returns the number of distinct words and word pairs.
func (s *Store) Stats(ctx context.Context) (words, pairs int, err error) {
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM unigrams").Scan(&words); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bigrams").Scan(&pairs); err != nil {
		return 0, 0, err
	}
	return words, pairs, nil
}
