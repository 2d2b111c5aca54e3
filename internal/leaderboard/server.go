// Package leaderboard serves best times over HTTP and streams finished
// runs to websocket clients.
package leaderboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/gravity-maze/internal/levels"
	"github.com/vovakirdan/gravity-maze/internal/live"
	"github.com/vovakirdan/gravity-maze/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100

	writeWait  = 5 * time.Second
	pingPeriod = 30 * time.Second
	pongWait   = pingPeriod + 10*time.Second
)

// Times is the part of the run store the leaderboard reads.
type Times interface {
	TopTimes(levelID string, limit int) ([]storage.Run, error)
	BestTime(levelID string) (ms int, ok bool, err error)
}

// LevelInfo describes a level in the /api/levels listing.
type LevelInfo struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Order  int    `json:"order"`
	BestMS *int   `json:"best_ms,omitempty"`
}

// TimesResponse is the body of /api/levels/:level/times.
type TimesResponse struct {
	Level string        `json:"level"`
	Times []storage.Run `json:"times"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server routes the leaderboard API.
type Server struct {
	router   *way.Router
	levels   []*levels.Level
	byID     map[string]*levels.Level
	times    Times
	hub      *live.Hub
	upgrader websocket.Upgrader
	logger   *log.Logger
}

// NewServer builds the API. times may be nil, in which case every level
// reports no runs.
func NewServer(all []*levels.Level, times Times, hub *live.Hub, logger *log.Logger) *Server {
	s := &Server{
		levels: all,
		byID:   make(map[string]*levels.Level, len(all)),
		times:  times,
		hub:    hub,
		logger: logger,
	}
	for _, l := range all {
		s.byID[l.ID] = l
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/api/levels", s.handleLevels)
	s.router.HandleFunc("GET", "/api/levels/:level/times", s.handleTimes)
	s.router.HandleFunc("GET", "/api/live", s.handleLive)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	out := make([]LevelInfo, 0, len(s.levels))
	for _, l := range s.levels {
		info := LevelInfo{ID: l.ID, Title: l.Title, Order: l.Order}
		if s.times != nil {
			ms, ok, err := s.times.BestTime(l.ID)
			if err != nil {
				s.logger.Error("best time query failed", "level", l.ID, "error", err)
				writeJSON(w, http.StatusInternalServerError, errorResponse{"storage unavailable"})
				return
			}
			if ok {
				info.BestMS = &ms
			}
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTimes(w http.ResponseWriter, r *http.Request) {
	id := way.Param(r.Context(), "level")
	if _, ok := s.byID[id]; !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{"unknown level " + strconv.Quote(id)})
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	resp := TimesResponse{Level: id, Times: []storage.Run{}}
	if s.times != nil {
		runs, err := s.times.TopTimes(id, limit)
		if err != nil {
			s.logger.Error("top times query failed", "level", id, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{"storage unavailable"})
			return
		}
		if runs != nil {
			resp.Times = runs
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

var errBadLimit = errors.New("limit must be between 1 and 100")

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		return 0, errBadLimit
	}
	return n, nil
}

// handleLive streams finished runs as JSON text messages until the client
// goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	sub := s.hub.Subscribe(live.DefaultBuffer)
	defer s.hub.Unsubscribe(sub.ID())
	s.logger.Info("live client connected", "remote", r.RemoteAddr)

	// Reads only detect close; clients send nothing.
	gone := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case evt := <-sub.Events():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(evt); err != nil {
				s.logger.Debug("live write failed", "remote", r.RemoteAddr, "error", err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-sub.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
			return
		case <-gone:
			s.logger.Info("live client disconnected", "remote", r.RemoteAddr)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
