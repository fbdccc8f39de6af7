package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bnote/internal/config"
	"bnote/internal/store"
)

// NoteStore is the persistence the handlers need.
type NoteStore interface {
	List(ctx context.Context, f store.Filter) ([]store.Note, error)
	Get(ctx context.Context, id int64) (store.Note, bool, error)
	Save(ctx context.Context, id int64, body, noteType, ts string) error
	Delete(ctx context.Context, id int64) error
	CountByDay(ctx context.Context, from, to string) ([]store.DayCount, error)
}

type Server struct {
	cfg    config.Config
	notes  NoteStore
	router chi.Router
	views  *Templates
	now    func() time.Time
}

func NewServer(cfg config.Config, notes NoteStore) (*Server, error) {
	views, err := ParseTemplates()
	if err != nil {
		return nil, err
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	s := &Server{
		cfg:    cfg,
		notes:  notes,
		router: chi.NewRouter(),
		views:  views,
		now:    time.Now,
	}
	s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", s.staticHandler())

	r.Get("/", s.handleNew)
	r.Get("/new", s.handleNew)
	r.Post("/add", s.handleAdd)
	r.Get("/list-all", s.handleListAll)
	r.Get("/list", s.handleListToday)
	r.Get("/list/{date}", s.handleListByDate)
	r.Get("/edit/{id}", s.handleEdit)
	r.Get("/delete/{id}", s.handleDelete)
	r.Get("/md", s.handleDigestToday)
	r.Get("/md/{date}", s.handleDigestByDate)

	r.NotFound(s.handleNotFound)
}

func (s *Server) link(path string) string {
	return s.cfg.BaseURL + path
}
