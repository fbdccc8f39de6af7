// Package digest builds the daily Markdown digest of prose notes.
package digest

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"

	"bnote/internal/dates"
	"bnote/internal/store"
)

var mdRenderer = goldmark.New()

type Lister interface {
	List(ctx context.Context, f store.Filter) ([]store.Note, error)
}

// Build loads the "note" typed notes for day and formats them.
func Build(ctx context.Context, l Lister, day string) (string, error) {
	notes, err := l.List(ctx, store.Filter{Day: day, Type: store.TypeNote})
	if err != nil {
		return "", err
	}
	return Markdown(day, notes), nil
}

// Markdown renders a "# YYYY.MM.DD" heading followed by one block per note.
func Markdown(day string, notes []store.Note) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(dates.Dotted(day))
	b.WriteString("\n")
	for _, note := range notes {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(note.Body, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
