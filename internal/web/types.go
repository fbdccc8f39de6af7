package web

import (
	"html/template"
)

type ViewData struct {
	Title           string
	ContentTemplate string
	ContentHTML     template.HTML
	BaseURL         string
	NoteID          int64
	NoteBody        string
	NoteType        string
	Notes           []NoteCard
	Day             string
	PrevLink        string
	NextLink        string
	CalendarMonth   *CalendarMonth
	DigestHTML      template.HTML
}

type NoteCard struct {
	ID       int64
	Date     string
	Type     string
	BodyHTML template.HTML
}
