package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"bnote/internal/dates"
	"bnote/internal/digest"
	"bnote/internal/linkify"
	"bnote/internal/store"
)

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	s.renderEditor(w, store.NewNoteID, "", store.TypeNote)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(r.PostForm.Get("note_id")), 10, 64)
	if err != nil {
		http.Error(w, "invalid note_id", http.StatusBadRequest)
		return
	}
	body := strings.ReplaceAll(r.PostForm.Get("note"), "\r", "")
	noteType := strings.TrimSpace(r.PostForm.Get("note_type"))
	if noteType == "" {
		noteType = store.TypeNote
	}
	ts := dates.Timestamp(s.now(), s.cfg.Location)
	if err := s.notes.Save(r.Context(), id, body, noteType, ts); err != nil {
		s.serverError(w, "save note", err)
		return
	}
	s.renderEditor(w, store.NewNoteID, "", store.TypeNote)
}

func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.List(r.Context(), store.Filter{})
	if err != nil {
		s.serverError(w, "list notes", err)
		return
	}
	s.views.RenderPage(w, ViewData{
		Title:           "All notes",
		ContentTemplate: "list",
		BaseURL:         s.cfg.BaseURL,
		Notes:           noteCards(notes),
	})
}

func (s *Server) handleListToday(w http.ResponseWriter, r *http.Request) {
	s.renderDay(w, r, dates.Today(s.now(), s.cfg.Location))
}

func (s *Server) handleListByDate(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "date")
	if !dates.Valid(day) {
		s.handleNotFound(w, r)
		return
	}
	s.renderDay(w, r, day)
}

func (s *Server) renderDay(w http.ResponseWriter, r *http.Request, day string) {
	notes, err := s.notes.List(r.Context(), store.Filter{Day: day})
	if err != nil {
		s.serverError(w, "list notes", err)
		return
	}
	data := ViewData{
		Title:           day,
		ContentTemplate: "list",
		BaseURL:         s.cfg.BaseURL,
		Notes:           noteCards(notes),
		Day:             day,
	}
	if prev, next, ok := dates.Adjacent(day); ok {
		data.PrevLink = prev
		data.NextLink = next
	}
	active, _ := time.Parse(dates.DayLayout, day)
	from, to := monthRange(active)
	counts, err := s.notes.CountByDay(r.Context(), from.Format(dates.DayLayout), to.Format(dates.DayLayout))
	if err != nil {
		s.serverError(w, "count notes", err)
		return
	}
	calendar := buildCalendarMonth(active, counts, s.cfg.BaseURL)
	data.CalendarMonth = &calendar
	s.views.RenderPage(w, data)
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	note, found, err := s.notes.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, "get note", err)
		return
	}
	if !found {
		s.handleNotFound(w, r)
		return
	}
	s.renderEditor(w, note.ID, note.Body, note.Type)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if err := s.notes.Delete(r.Context(), id); err != nil {
		s.serverError(w, "delete note", err)
		return
	}
	http.Redirect(w, r, s.link("/list"), http.StatusSeeOther)
}

func (s *Server) handleDigestToday(w http.ResponseWriter, r *http.Request) {
	s.renderDigest(w, r, dates.Today(s.now(), s.cfg.Location))
}

func (s *Server) handleDigestByDate(w http.ResponseWriter, r *http.Request) {
	day, ok := dates.Normalize(chi.URLParam(r, "date"))
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	s.renderDigest(w, r, day)
}

func (s *Server) renderDigest(w http.ResponseWriter, r *http.Request, day string) {
	md, err := digest.Build(r.Context(), s.notes, day)
	if err != nil {
		s.serverError(w, "build digest", err)
		return
	}
	htmlStr, err := digest.RenderHTML(md)
	if err != nil {
		s.serverError(w, "render digest", err)
		return
	}
	data := ViewData{
		Title:           "Digest " + dates.Dotted(day),
		ContentTemplate: "digest",
		BaseURL:         s.cfg.BaseURL,
		Day:             day,
		DigestHTML:      template.HTML(htmlStr),
	}
	if prev, next, ok := dates.Adjacent(day); ok {
		data.PrevLink = prev
		data.NextLink = next
	}
	s.views.RenderPage(w, data)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.views.RenderPageStatus(w, http.StatusNotFound, ViewData{
		Title:           "Not found",
		ContentTemplate: "notfound",
		BaseURL:         s.cfg.BaseURL,
	})
}

func (s *Server) renderEditor(w http.ResponseWriter, id int64, body, noteType string) {
	title := "New note"
	if id != store.NewNoteID {
		title = "Edit note"
	}
	s.views.RenderPage(w, ViewData{
		Title:           title,
		ContentTemplate: "editor",
		BaseURL:         s.cfg.BaseURL,
		NoteID:          id,
		NoteBody:        body,
		NoteType:        noteType,
	})
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func noteCards(notes []store.Note) []NoteCard {
	cards := make([]NoteCard, 0, len(notes))
	for _, n := range notes {
		cards = append(cards, NoteCard{
			ID:       n.ID,
			Date:     n.Date,
			Type:     n.Type,
			BodyHTML: linkify.HTML(n.Body),
		})
	}
	return cards
}
