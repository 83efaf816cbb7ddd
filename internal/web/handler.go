// Package web serves the browser shell: index.html, the wasm binary and its
// loader script.
package web

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"
)

// Handler serves files from dir.
type Handler struct {
	dir string
}

func NewHandler(dir string) *Handler {
	if _, err := os.Stat(dir); err != nil {
		slog.Warn("static dir unavailable", "error", err, "dir", dir)
	}
	return &Handler{dir: dir}
}

// Serve returns an http.Handler for the shell with caching headers: pages are
// revalidated on every load, the wasm binary is cached for an hour.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch ext := path.Ext(r.URL.Path); {
		case ext == ".wasm":
			w.Header().Set("Content-Type", "application/wasm")
			w.Header().Set("Cache-Control", "public, max-age=3600")
		case ext == ".html" || strings.HasSuffix(r.URL.Path, "/"):
			w.Header().Set("Cache-Control", "no-cache")
		}
		fs.ServeHTTP(w, r)
	})
}
