package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/doodlepad/doodlepad/internal/document"
	"github.com/doodlepad/doodlepad/internal/engine"
	"github.com/doodlepad/doodlepad/internal/raster"
)

const maxBodySize = 4 << 20 // 4MB

// Handler serves export endpoints.
type Handler struct {
	defaultScale float64
	maxScale     float64
	fonts        *raster.Fonts
}

// HandlerConfig sets export scaling limits and the sticker font.
type HandlerConfig struct {
	DefaultScale float64
	MaxScale     float64
	Fonts        *raster.Fonts
}

func NewHandler(cfg HandlerConfig) *Handler {
	if !(cfg.DefaultScale > 0) {
		cfg.DefaultScale = 1
	}
	if cfg.MaxScale < cfg.DefaultScale {
		cfg.MaxScale = cfg.DefaultScale
	}
	return &Handler{defaultScale: cfg.DefaultScale, maxScale: cfg.MaxScale, fonts: cfg.Fonts}
}

// ExportDrawing handles POST /export/{format}. The body is a drawing as JSON;
// the optional scale query parameter overrides the default scale.
func (h *Handler) ExportDrawing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	format, err := ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	var d document.Drawing
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	e := engine.NewEngine()
	if err := e.LoadDrawing(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	h.Send(w, r, format, d.Name, e, d.Width, d.Height)
}

// Send renders src as a file attachment. width and height are the drawing's
// on-screen size.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request, format Format, name string, src Renderer, width, height int) {
	scale, err := h.parseScale(r.URL.Query().Get("scale"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	name = sanitizeName(name)

	slog.Info("export started", "format", format, "scale", scale, "width", width, "height", height)

	var buf bytes.Buffer
	opts := Options{Width: width, Height: height, Scale: scale, Fonts: h.fonts}
	if err := Write(&buf, format, src, opts); err != nil {
		if errors.Is(err, ErrInvalidOptions) || errors.Is(err, ErrUnknownFormat) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		slog.Error("export failed", "format", format, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())

	slog.Info("export complete", "format", format, "size", buf.Len())
}

func (h *Handler) parseScale(raw string) (float64, error) {
	if raw == "" {
		return h.defaultScale, nil
	}
	scale, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(scale > 0) || scale > h.maxScale {
		return 0, fmt.Errorf("%w: scale must be in (0, %g], got %q", ErrInvalidOptions, h.maxScale, raw)
	}
	return scale, nil
}

// sanitizeName keeps the name safe to put in a Content-Disposition header.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "doodle"
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
