// Package store persists notes in a single SQLite table.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("note not found")

type Note struct {
	ID   int64
	Date string
	Body string
	Type string
}

// Filter restricts List. Zero fields do not filter.
type Filter struct {
	// Day matches the calendar day of the stored timestamp (YYYY-MM-DD).
	Day  string
	Type string
}

type OpenOptions struct {
	BusyTimeout time.Duration
	LockTimeout time.Duration
}

type Store struct {
	db          *sql.DB
	lockTimeout time.Duration
}

func Open(path string) (*Store, error) {
	return OpenWithOptions(path, OpenOptions{})
}

func OpenWithOptions(path string, opts OpenOptions) (*Store, error) {
	dsn := path
	if opts.BusyTimeout > 0 {
		dsn = fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, opts.BusyTimeout.Milliseconds())
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db, lockTimeout: opts.LockTimeout}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) SetLockTimeout(timeout time.Duration) {
	s.lockTimeout = timeout
}

// Init creates the notes table if it is missing.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.execContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Seed inserts the sample note stamped at ts.
func (s *Store) Seed(ctx context.Context, ts string) (Note, error) {
	return s.Insert(ctx, SampleNote, TypeNote, ts)
}
