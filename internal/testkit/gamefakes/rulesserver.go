// Package gamefakes holds lightweight fakes for the remote rules server and
// its gateway, used by client tests.
package gamefakes

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RequestRecord captures one request the fake rules server handled.
type RequestRecord struct {
	Method string
	Path   string
}

// RulesServer is an in-process stand-in for the rules server HTTP API with
// scripted responses. Zero status values mean 200; SnapshotBodies are raw
// JSON payloads served in order, last one repeating.
type RulesServer struct {
	GameID string

	CreateStatus   int
	SnapshotStatus int
	SnapshotBodies []string
	PlayStatus     int
	PlayReason     string
	SkipStatus     int
	SkipReason     string

	mu          sync.Mutex
	snapshotIdx int
	Requests    []RequestRecord
}

// NewRulesServer constructs a fake with a generated game id.
func NewRulesServer(snapshotBodies ...string) *RulesServer {
	return &RulesServer{
		GameID:         uuid.New().String(),
		SnapshotBodies: snapshotBodies,
	}
}

// Handler returns the HTTP routes of the fake rules server.
func (s *RulesServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/games", s.createGame)
	r.Get("/api/games/{id}", s.gameState)
	r.Post("/api/games/{id}/play/{index}", s.playCard)
	r.Post("/api/games/{id}/play-without-weapon/{index}", s.playCard)
	r.Post("/api/games/{id}/skip", s.skipRoom)
	return r
}

func (s *RulesServer) record(r *http.Request) {
	s.mu.Lock()
	s.Requests = append(s.Requests, RequestRecord{Method: r.Method, Path: r.URL.Path})
	s.mu.Unlock()
}

func (s *RulesServer) createGame(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if s.CreateStatus != 0 && s.CreateStatus != http.StatusOK {
		http.Error(w, "cannot create game", s.CreateStatus)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"game_id": s.GameID})
}

func (s *RulesServer) gameState(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if chi.URLParam(r, "id") != s.GameID {
		http.Error(w, "Game session not found", http.StatusNotFound)
		return
	}
	if s.SnapshotStatus != 0 && s.SnapshotStatus != http.StatusOK {
		http.Error(w, "cannot fetch game", s.SnapshotStatus)
		return
	}

	s.mu.Lock()
	body := "{}"
	if len(s.SnapshotBodies) > 0 {
		body = s.SnapshotBodies[s.snapshotIdx]
		if s.snapshotIdx < len(s.SnapshotBodies)-1 {
			s.snapshotIdx++
		}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (s *RulesServer) playCard(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if chi.URLParam(r, "id") != s.GameID {
		http.Error(w, "Game session not found", http.StatusNotFound)
		return
	}
	if s.PlayStatus != 0 && s.PlayStatus != http.StatusOK {
		reason := s.PlayReason
		if reason == "" {
			reason = "invalid card index"
		}
		http.Error(w, reason, s.PlayStatus)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *RulesServer) skipRoom(w http.ResponseWriter, r *http.Request) {
	s.record(r)
	if chi.URLParam(r, "id") != s.GameID {
		http.Error(w, "Game session not found", http.StatusNotFound)
		return
	}
	if s.SkipStatus != 0 && s.SkipStatus != http.StatusOK {
		reason := s.SkipReason
		if reason == "" {
			reason = "cannot skip two rooms in a row"
		}
		http.Error(w, reason, s.SkipStatus)
		return
	}
	w.WriteHeader(http.StatusOK)
}
