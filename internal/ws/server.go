// Package ws serves the board to browsers over HTTP and WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/idilsaglam/board/internal/auth"
	"github.com/idilsaglam/board/internal/model"
	"github.com/idilsaglam/board/internal/state"
	"github.com/idilsaglam/board/internal/validate"
)

const maxBody = 64 << 10

type Server struct {
	board          *state.Projects
	broadcaster    *Broadcaster
	rules          validate.Rules
	allowedOrigins map[string]bool
	allowedHosts   map[string]bool
	authToken      string
}

func NewServer(board *state.Projects, broadcaster *Broadcaster, rules validate.Rules, allowedOrigins []string, authToken string) *Server {
	s := &Server{
		board:          board,
		broadcaster:    broadcaster,
		rules:          rules,
		allowedOrigins: make(map[string]bool),
		allowedHosts:   make(map[string]bool),
		authToken:      authToken,
	}

	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			s.allowedHosts[parsed.Host] = true
		}
	}

	return s
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /api/projects", s.handleList)
	mux.HandleFunc("POST /api/projects", s.handleAdd)
	mux.HandleFunc("POST /api/projects/{id}/move", s.handleMove)
}

func (s *Server) authorize(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}
	if auth.CheckBearer(r.Header.Get("Authorization"), s.authToken) {
		return true
	}
	// browsers cannot set headers on websocket upgrades
	return r.URL.Path == "/ws" && auth.CheckBearer(r.URL.Query().Get("token"), s.authToken)
}

// checkOrigin allows same-host requests, configured origins, and clients
// that send no Origin header at all (non-browser tools).
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if s.allowedOrigins[origin] {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host || s.allowedHosts[u.Host]
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	conn.SetReadLimit(maxBody)

	log.Printf("WebSocket client connected: %s", r.RemoteAddr)
	c := s.broadcaster.AddClient(conn)

	go func() {
		defer func() {
			s.broadcaster.RemoveClient(c)
			log.Printf("WebSocket client disconnected: %s", r.RemoteAddr)
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := s.handleCommand(data); err != nil {
				s.broadcaster.sendTo(c, errorMessage(err))
			}
		}
	}()
}

// handleCommand applies an add or move frame sent by a browser board.
func (s *Server) handleCommand(data []byte) error {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return fmt.Errorf("decode command: %w", err)
	}
	switch cmd.Type {
	case MsgAdd:
		var req AddRequest
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return fmt.Errorf("decode add: %w", err)
		}
		return s.add(req)
	case MsgMove:
		var req MoveRequest
		if err := json.Unmarshal(cmd.Payload, &req); err != nil {
			return fmt.Errorf("decode move: %w", err)
		}
		return s.move(req.ID, req.Status)
	}
	return fmt.Errorf("unknown command type %q", cmd.Type)
}

func (s *Server) add(req AddRequest) error {
	title := strings.TrimSpace(req.Title)
	desc := strings.TrimSpace(req.Description)
	if err := validate.ProjectInput(title, desc, req.People, s.rules); err != nil {
		return err
	}
	s.board.AddProject(title, desc, req.People)
	return nil
}

// move ignores unknown ids, like the board does.
func (s *Server) move(id, status string) error {
	st, err := model.ParseStatus(status)
	if err != nil {
		return err
	}
	s.board.MoveProject(id, st)
	return nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	items := s.board.Snapshot()
	if q := r.URL.Query().Get("status"); q != "" {
		st, err := model.ParseStatus(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		items = state.Filter(items, st)
	}
	writeJSON(w, http.StatusOK, SnapshotPayload{Projects: items})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	if err := s.add(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if !s.authorize(r) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	if err := s.move(r.PathValue("id"), req.Status); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func errorMessage(err error) WSMessage {
	p := ErrorPayload{Message: err.Error()}
	if errors.Is(err, validate.ErrInvalid) {
		p.Message = "invalid input"
		p.Details = validate.Messages(err)
	}
	return WSMessage{Type: MsgError, Payload: p}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorMessage(err).Payload)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// ListenAndServe serves handler on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler)
}

// Serve is ListenAndServe on an existing listener.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
