// Package duckdb persists answers in a single-file DuckDB database so runs
// can resume across process restarts without re-asking cached questions.
package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"surveyor/internal/question"
	"surveyor/internal/storage"
)

// Store is a storage.Provider backed by DuckDB.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the file and the answers table
// when absent. The DSN ":memory:" opens an ephemeral database.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("duckdb: path is required")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", path, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema to %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Exists reports whether an answer for the id has been persisted.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM answers WHERE question_id = ?`, id,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &storage.StorageError{Op: "exists", QuestionID: id, Err: err}
	}
	return true, nil
}

// Get returns the stored answer, or storage.ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, id string) (question.Answer, error) {
	var (
		structured sql.NullString
		citations  sql.NullString
		raw        sql.NullString
		fetchedAt  time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT structured_data, citations, raw_response, fetched_at
		 FROM answers WHERE question_id = ?`, id,
	).Scan(&structured, &citations, &raw, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Answer{}, storage.ErrNotFound
	}
	if err != nil {
		return question.Answer{}, &storage.StorageError{Op: "get", QuestionID: id, Err: err}
	}
	ans := question.Answer{
		QuestionID:  id,
		RawResponse: raw.String,
		FetchedAt:   fetchedAt.UTC(),
	}
	if structured.Valid && structured.String != "" {
		ans.StructuredData = json.RawMessage(structured.String)
	}
	if citations.Valid && citations.String != "" {
		if err := json.Unmarshal([]byte(citations.String), &ans.Citations); err != nil {
			return question.Answer{}, &storage.StorageError{
				Op:         "get",
				QuestionID: id,
				Err:        fmt.Errorf("decode citations: %w", err),
			}
		}
	}
	return ans, nil
}

// Put persists the answer. First write wins: a conflicting question id is a
// no-op, so concurrent writers and resumed runs never overwrite an answer.
func (s *Store) Put(ctx context.Context, ans question.Answer) error {
	if ans.QuestionID == "" {
		return &storage.StorageError{Op: "put", Err: errors.New("question id is required")}
	}
	var structured interface{}
	if len(ans.StructuredData) > 0 {
		structured = string(ans.StructuredData)
	}
	var citations interface{}
	if len(ans.Citations) > 0 {
		encoded, err := json.Marshal(ans.Citations)
		if err != nil {
			return &storage.StorageError{Op: "put", QuestionID: ans.QuestionID, Err: err}
		}
		citations = string(encoded)
	}
	fetched := ans.FetchedAt
	if fetched.IsZero() {
		fetched = time.Now()
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (answer_id, question_id, structured_data, citations, raw_response, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (question_id) DO NOTHING`,
		uuid.NewString(),
		ans.QuestionID,
		structured,
		citations,
		ans.RawResponse,
		fetched.UTC(),
	); err != nil {
		return &storage.StorageError{Op: "put", QuestionID: ans.QuestionID, Err: err}
	}
	return nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
