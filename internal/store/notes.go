package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// NewNoteID marks a submission that should create a note instead of
// replacing one.
const NewNoteID int64 = -1

func (s *Store) List(ctx context.Context, f Filter) ([]Note, error) {
	q := buildListQuery(f)
	rows, err := s.queryContext(ctx, q.sql(), q.args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Get returns the note with id. A miss is reported with ok=false, not an error.
func (s *Store) Get(ctx context.Context, id int64) (Note, bool, error) {
	row := s.queryRowContext(ctx, selectNotes+" WHERE id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Note{}, false, nil
	}
	if err != nil {
		return Note{}, false, fmt.Errorf("get note %d: %w", id, err)
	}
	return note, true, nil
}

// GetByID is Get with a miss reported as ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (Note, error) {
	note, ok, err := s.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if !ok {
		return Note{}, fmt.Errorf("get note %d: %w", id, ErrNotFound)
	}
	return note, nil
}

func (s *Store) Insert(ctx context.Context, body, noteType, ts string) (Note, error) {
	res, err := s.execContext(ctx, "INSERT INTO notes(date, note, type) VALUES (?, ?, ?)", ts, body, noteType)
	if err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}
	slog.Debug("note inserted", "id", id, "type", noteType)
	return Note{ID: id, Date: ts, Body: body, Type: noteType}, nil
}

// Update replaces date, body and type of the note with id. An unknown id
// affects no rows and is not an error.
func (s *Store) Update(ctx context.Context, id int64, body, noteType, ts string) (int64, error) {
	res, err := s.execContext(ctx, "UPDATE notes SET date = ?, note = ?, type = ? WHERE id = ?", ts, body, noteType, id)
	if err != nil {
		return 0, fmt.Errorf("update note %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update note %d: %w", id, err)
	}
	slog.Debug("note updated", "id", id, "rows", n)
	return n, nil
}

// Save inserts when id is NewNoteID and updates otherwise.
func (s *Store) Save(ctx context.Context, id int64, body, noteType, ts string) error {
	if id == NewNoteID {
		_, err := s.Insert(ctx, body, noteType, ts)
		return err
	}
	_, err := s.Update(ctx, id, body, noteType, ts)
	return err
}

// Delete removes the note with id if present.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.execContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil {
		slog.Debug("note deleted", "id", id, "rows", n)
	}
	return nil
}

func scanNote(row rowScanner) (Note, error) {
	var (
		note                 Note
		date, body, noteType sql.NullString
	)
	if err := row.Scan(&note.ID, &date, &body, &noteType); err != nil {
		return Note{}, err
	}
	note.Date = date.String
	note.Body = body.String
	note.Type = noteType.String
	return note, nil
}

type DayCount struct {
	Day   string
	Count int
}

// CountByDay returns the number of notes per calendar day between from and
// to inclusive, both YYYY-MM-DD.
func (s *Store) CountByDay(ctx context.Context, from, to string) ([]DayCount, error) {
	rows, err := s.queryContext(ctx, `SELECT DATE(date) AS day, COUNT(*) FROM notes
		WHERE DATE(date) BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("count notes by day: %w", err)
	}
	defer rows.Close()

	counts := []DayCount{}
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count notes by day: %w", err)
	}
	return counts, nil
}
