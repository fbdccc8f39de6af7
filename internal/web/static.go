package web

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

var ErrUnsafePath = errors.New("unsafe path")

// NormalizeStaticPath cleans a URL path relative to the static root and
// rejects anything that would leave it.
func NormalizeStaticPath(p string) (string, error) {
	if strings.ContainsRune(p, 0) {
		return "", ErrUnsafePath
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return "", ErrUnsafePath
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrUnsafePath
	}
	return clean, nil
}

func StaticFilePath(root, p string) (string, error) {
	rel, err := NormalizeStaticPath(p)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	check, err := filepath.Rel(root, full)
	if err != nil || check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}
	return full, nil
}

func (s *Server) staticHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		full, err := StaticFilePath(s.cfg.StaticDir, chi.URLParam(r, "*"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, full)
	}
}
