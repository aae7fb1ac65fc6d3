/*
Package api
File: handlers.go
Description:
    Contains the HTTP handlers of the action/command layer and the read
    endpoints for presentation clients.

    Key Responsibilities:
    - Input Validation (Is the JSON valid? Does the staff role exist?)
    - State Modification (submitting actions to the game Session, which
      applies them on its own loop)
    - Read Models (state view, venue chain, ordered scene draw list)
*/

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/everforgeworks/congregation/internal/game"
	"github.com/everforgeworks/congregation/internal/scene"
)

// actionTimeout bounds how long a request waits for the session loop.
const actionTimeout = 5 * time.Second

// Request DTOs

type HireRequest struct {
	StaffKey string `json:"staff_key"`
}

// Response DTOs

type OutreachResponse struct {
	Joined int            `json:"joined"`
	State  game.StateView `json:"state"`
}

// Pulse is the payload of a "state" websocket message. Frame is set on
// the first message a viewer receives after joining and afterwards only
// when the draw list changed since the previous pulse.
type Pulse struct {
	State game.StateView `json:"state"`
	Frame *scene.Frame   `json:"frame,omitempty"`
}

// Server wires the HTTP layer to one session and its scene.
type Server struct {
	session  *game.Session
	composer *scene.Composer
	hub      *Hub

	pulseMu   sync.Mutex
	lastScene [2]int // composer regenerations, resamples at the last pulse
}

// NewServer creates the HTTP layer. hub may be nil when no websocket
// clients are served.
func NewServer(session *game.Session, composer *scene.Composer, hub *Hub) *Server {
	s := &Server{session: session, composer: composer, hub: hub, lastScene: [2]int{-1, -1}}
	if hub != nil {
		hub.OnJoin(s.Greeting)
	}
	return s
}

// Greeting is the full pulse, frame included, sent to a joining viewer.
func (s *Server) Greeting() (Message, error) {
	u, st := s.session.Universe(), s.session.Snapshot()
	frame, err := s.composer.Compose(u, st)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Type:    "state",
		Sender:  s.session.ID,
		Payload: Pulse{State: game.NewStateView(u, st), Frame: &frame},
	}, nil
}

// Routes registers every endpoint on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Information Endpoints
	mux.HandleFunc("GET /api/state", s.HandleGetState)
	mux.HandleFunc("GET /api/venues", s.HandleGetVenues)
	mux.HandleFunc("GET /api/staff", s.HandleGetStaff)
	mux.HandleFunc("GET /api/scene", s.HandleGetScene)

	// Action Endpoints
	mux.HandleFunc("POST /api/actions/service", s.HandleHoldService)
	mux.HandleFunc("POST /api/actions/outreach", s.HandleOutreach)
	mux.HandleFunc("POST /api/venue/upgrade", s.HandleUpgradeVenue)
	mux.HandleFunc("POST /api/staff/hire", s.HandleHire)

	// Real-Time WebSocket Endpoint
	if s.hub != nil {
		mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWs(s.hub, w, r)
		})
	}
	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("API: encode response: %v", err)
	}
}

// writeActionError maps action-layer sentinels onto status codes.
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusPaymentRequired)
	case errors.Is(err, game.ErrInsufficientSpirit):
		http.Error(w, "Insufficient spirit", http.StatusConflict)
	case errors.Is(err, game.ErrNoNextVenue):
		http.Error(w, "Already at the final venue", http.StatusConflict)
	case errors.Is(err, game.ErrUnknownStaff):
		http.Error(w, "Staff role not found", http.StatusNotFound)
	case errors.Is(err, game.ErrSessionClosed),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		http.Error(w, "Session unavailable", http.StatusServiceUnavailable)
	default:
		log.Printf("API: action failed: %v", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (s *Server) view() game.StateView {
	return game.NewStateView(s.session.Universe(), s.session.Snapshot())
}

// HandleGetState returns the HUD view of the economy.
func (s *Server) HandleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.view())
}

// HandleGetVenues returns the static venue chain.
func (s *Server) HandleGetVenues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.session.Universe().Venues)
}

// HandleGetStaff returns the staff table with owned counts.
func (s *Server) HandleGetStaff(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.view().Staff)
}

// HandleGetScene returns the ordered draw list of the current venue.
func (s *Server) HandleGetScene(w http.ResponseWriter, r *http.Request) {
	frame, err := s.composer.Compose(s.session.Universe(), s.session.Snapshot())
	if err != nil {
		log.Printf("API: compose scene: %v", err)
		http.Error(w, "Scene unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, frame)
}

// HandleHoldService spends spirit to collect tithes.
func (s *Server) HandleHoldService(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), actionTimeout)
	defer cancel()

	if err := s.session.HoldService(ctx); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, s.view())
}

// HandleOutreach spends money to recruit members.
func (s *Server) HandleOutreach(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), actionTimeout)
	defer cancel()

	joined, err := s.session.Outreach(ctx)
	if err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, OutreachResponse{Joined: joined, State: s.view()})
}

// HandleUpgradeVenue moves to the next venue in the chain.
func (s *Server) HandleUpgradeVenue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), actionTimeout)
	defer cancel()

	if err := s.session.UpgradeVenue(ctx); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, s.view())
}

// HandleHire hires one member of staff.
func (s *Server) HandleHire(w http.ResponseWriter, r *http.Request) {
	var req HireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), actionTimeout)
	defer cancel()

	if err := s.session.Hire(ctx, req.StaffKey); err != nil {
		writeActionError(w, err)
		return
	}
	writeJSON(w, s.view())
}

// PulseFor builds the websocket payload for a state snapshot. It runs on
// the session loop via OnChange, so it must not call back into the
// session.
func (s *Server) PulseFor(u *game.Universe, st game.State) Pulse {
	p := Pulse{State: game.NewStateView(u, st)}

	frame, err := s.composer.Compose(u, st)
	if err != nil {
		log.Printf("API: compose pulse: %v", err)
		return p
	}

	s.pulseMu.Lock()
	defer s.pulseMu.Unlock()
	version := [2]int{s.composer.Regenerations(), s.composer.Resamples()}
	if version != s.lastScene {
		s.lastScene = version
		p.Frame = &frame
	}
	return p
}

// Broadcast publishes a pulse for st to every websocket client.
func (s *Server) Broadcast(u *game.Universe, st game.State) {
	if s.hub == nil {
		return
	}
	if err := s.hub.Publish("state", s.session.ID, s.PulseFor(u, st)); err != nil {
		log.Printf("WS: publish: %v", err)
	}
}
