package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/doodlepad/doodlepad/internal/export"
	"github.com/doodlepad/doodlepad/internal/typeid"
)

// Handler serves the session endpoints.
type Handler struct {
	hub            *Hub
	exporter       *export.Handler
	cfg            Config
	originPatterns []string
}

func NewHandler(hub *Hub, exporter *export.Handler, cfg Config, originPatterns []string) *Handler {
	return &Handler{hub: hub, exporter: exporter, cfg: cfg, originPatterns: originPatterns}
}

// ServeWS handles GET /ws/session: it upgrades the connection and runs a fresh
// session until the client goes away.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	sess := New(typeid.NewSessionID(), h.cfg)
	client := NewClient(h.hub, conn, sess, uuid.New().String(), h.cfg.Timing)
	if !h.hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// Export handles GET /sessions/{id}/export.{format}.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if err := typeid.Validate(id, typeid.PrefixSession); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return
	}

	format, err := export.ParseFormat(vars["format"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	sess, err := h.hub.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	h.exporter.Send(w, r, format, "doodle", sess, sess.Width(), sess.Height())
}

// Drawing handles GET /sessions/{id}/drawing, returning the committed commands.
func (h *Handler) Drawing(w http.ResponseWriter, r *http.Request) {
	sess, err := h.hub.Get(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
