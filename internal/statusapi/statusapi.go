// Package statusapi exposes a small read-only HTTP surface for
// operators: a liveness probe and a snapshot of map/session counters.
// It never touches the map directly - every read goes through the
// session's lock so a snapshot is always consistent with the command
// protocol's view of the world.
package statusapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"mapedit/internal/mapstate"
	"mapedit/internal/session"
)

// Server wraps the session whose counters it reports.
type Server struct {
	sess *session.Session
	log  *logrus.Logger
}

// New builds the status HTTP handler for sess.
func New(sess *session.Session, log *logrus.Logger) *Server {
	return &Server{sess: sess, log: log}
}

// Router builds the chi router exposing /healthz and /stats.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/stats", s.handleStats)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statsSnapshot mirrors the map state's countable collections. The map
// counters are read together in one hold of the session lock; the client
// count is read in a separate hold just before, so it can differ from the
// map counters' instant by clients that connect or leave in between.
type statsSnapshot struct {
	Clients     int `json:"clients"`
	Blocks      int `json:"blocks"`
	Units       int `json:"units"`
	GhostBlocks int `json:"ghost_blocks"`
	FreeBlocks  int `json:"free_blocks"`
	Items       int `json:"items"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var snap statsSnapshot
	snap.Clients = s.sess.ClientCount()
	s.sess.WithMapLock(func(m *mapstate.Map) {
		snap.Blocks = m.BlockCount()
		snap.Units = m.UnitCount()
		snap.GhostBlocks = m.GhostBlockCount()
		snap.FreeBlocks = m.FreeBlockCount()
		snap.Items = m.ItemCount()
	})
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
