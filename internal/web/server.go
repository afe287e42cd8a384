// Package web exposes the engine over HTTP: a command endpoint for play,
// plus relocate and reinitialize endpoints used by tests and operations.
package web

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"groundtruth/internal/config"
	"groundtruth/internal/debug"
	"groundtruth/internal/game"
	"groundtruth/internal/logging"
)

type Server struct {
	cfg    config.Config
	oracle game.Oracle
	log    *debug.Logger
	turns  *logging.TurnLogger

	mu sync.RWMutex
	gm *game.GameMaster
}

// NewServer builds the world from the configured data directories and wires
// a game master around it.
func NewServer(cfg config.Config, oracle game.Oracle, log *debug.Logger, turns *logging.TurnLogger) (*Server, error) {
	if log == nil {
		log = debug.NewNopLogger()
	}
	s := &Server{cfg: cfg, oracle: oracle, log: log, turns: turns}
	if err := s.rebuild(cfg.DataDirs); err != nil {
		return nil, err
	}
	return s, nil
}

// rebuild constructs a fresh world and swaps it in atomically. An in-flight
// command finishes against the old world.
func (s *Server) rebuild(dataDirs []string) error {
	cfg := s.cfg
	cfg.DataDirs = dataDirs

	w, err := game.SetupWorld(cfg, s.log)
	if err != nil {
		return err
	}
	gm := game.NewGameMaster(s.oracle, w, uuid.NewString(), s.log, s.turns)

	s.mu.Lock()
	s.gm = gm
	s.mu.Unlock()
	return nil
}

func (s *Server) master() *game.GameMaster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gm
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /command", s.handleCommand)
	mux.HandleFunc("POST /location", s.handleLocation)
	mux.HandleFunc("POST /reinit", s.handleReinit)
	mux.HandleFunc("GET /portrait/{id}", s.handlePortrait)
	return mux
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "missing prompt")
		return
	}

	response := s.master().ProcessCommand(r.Context(), req.Prompt)
	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

func (s *Server) handleLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LocationID string `json:"location_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.LocationID) == "" {
		writeError(w, http.StatusBadRequest, "missing location_id")
		return
	}

	if !s.master().State().SetLocation(req.LocationID) {
		writeError(w, http.StatusBadRequest, "unknown location: "+req.LocationID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "location_id": req.LocationID})
}

func (s *Server) handleReinit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DataDirs []string `json:"data_dirs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.DataDirs) == 0 {
		writeError(w, http.StatusBadRequest, "missing data_dirs")
		return
	}

	if err := s.rebuild(req.DataDirs); err != nil {
		s.log.Printf("Reinitialization failed: %v", err)
		writeError(w, http.StatusInternalServerError, "reinitialization failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handlePortrait(w http.ResponseWriter, r *http.Request) {
	entity := s.master().Store().Get(r.PathValue("id"))
	if entity == nil || entity.PortraitPath == "" {
		writeError(w, http.StatusNotFound, "no portrait")
		return
	}
	http.ServeFile(w, r, entity.PortraitPath)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
