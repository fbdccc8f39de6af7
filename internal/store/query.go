package store

import "strings"

const selectNotes = "SELECT id, date, note, type FROM notes"

// query is a SELECT with bound arguments. Values never enter the SQL text.
type query struct {
	where []string
	args  []any
}

func (q *query) add(clause string, arg any) {
	q.where = append(q.where, clause)
	q.args = append(q.args, arg)
}

func (q query) sql() string {
	var b strings.Builder
	b.WriteString(selectNotes)
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.where, " AND "))
	}
	b.WriteString(" ORDER BY id ASC")
	return b.String()
}

func buildListQuery(f Filter) query {
	var q query
	if f.Day != "" {
		q.add("DATE(date) = ?", f.Day)
	}
	if f.Type != "" {
		q.add("type = ?", f.Type)
	}
	return q
}
