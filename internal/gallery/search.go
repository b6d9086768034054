/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	applog "studyjournal/internal/log"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// SearchIndex is a full-text index over titles and content of the session's
// records. It lives in an in-memory SQLite database and is gone when the
// process exits.
type SearchIndex struct {
	db *sql.DB
}

// Hit is one search match. Snippet marks matched terms with [ ].
type Hit struct {
	ID      string
	Kind    string
	Title   string
	Snippet string
}

// OpenSearchIndex creates the in-memory FTS5 index.
func OpenSearchIndex(ctx context.Context) (*SearchIndex, error) {
	l := applog.WithOperation(applog.WithComponent("gallery"), "search_open")
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: every new connection would see a fresh empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ddl := `CREATE VIRTUAL TABLE IF NOT EXISTS fts_entries USING fts5(
		id UNINDEXED,
		kind UNINDEXED,
		title,
		content,
		tokenize = 'unicode61 remove_diacritics 2'
	);`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		l.Error("create fts table failed", slog.Any("err", err))
		return nil, fmt.Errorf("create fts table: %w", err)
	}
	return &SearchIndex{db: db}, nil
}

func (s *SearchIndex) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Upsert replaces the indexed text of r.
func (s *SearchIndex) Upsert(ctx context.Context, r Record) error {
	if r.ID == "" {
		return errors.New("record id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM fts_entries WHERE id = ?`, r.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete old row: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO fts_entries(id, kind, title, content) VALUES(?, ?, ?, ?)`,
		r.ID, r.Kind.String(), r.Title, r.Content); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert row: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SearchIndex) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fts_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete row: %w", err)
	}
	return nil
}

// Search matches every word of text as a prefix, best matches first. Blank
// text returns nothing.
func (s *SearchIndex) Search(ctx context.Context, text string, limit int) ([]Hit, error) {
	q := ftsQuery(text)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, kind, title, snippet(fts_entries, -1, '[', ']', '…', 10)
		FROM fts_entries WHERE fts_entries MATCH ? ORDER BY rank LIMIT ?`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []Hit
	for rows.Next() {
		var h Hit
		var sn sql.NullString
		if err := rows.Scan(&h.ID, &h.Kind, &h.Title, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		h.Snippet = sn.String
		out = append(out, h)
	}
	return out, rows.Err()
}

// ftsQuery keeps letters and digits only and quotes each word, so user input
// never reaches FTS syntax.
func ftsQuery(text string) string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, `"`+w+`"*`)
	}
	return strings.Join(terms, " ")
}
