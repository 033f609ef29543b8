// Package control exposes the viewer's actions over HTTP.
package control

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"imageviewer/internal/diag"
	"imageviewer/internal/input"
)

// Server provides HTTP endpoints for remote control
type Server struct {
	queue  input.Poster
	addr   string
	log    *diag.Logger
	server *http.Server
	ln     net.Listener
}

// NewServer creates a new control server
func NewServer(queue input.Poster, addr string, log *diag.Logger) *Server {
	return &Server{
		queue: queue,
		addr:  addr,
		log:   log,
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/action/", s.handleAction)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("control server listen on %s: %w", s.addr, err)
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.log.Printf("Control server listening on %s", ln.Addr())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Printf("Warning: control server stopped: %v", err)
		}
	}()
	return nil
}

// Addr returns the listening address once started
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Stop stops the control server
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// handleAction queues an action: POST /action/{name}
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/action/"), "/")
	a, ok := input.ParseAction(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown action %q", name), http.StatusBadRequest)
		return
	}

	if !s.queue.Post(input.ActionEvent(a)) {
		http.Error(w, "Event queue full", http.StatusServiceUnavailable)
		return
	}
	s.log.Debugf("remote action: %s", a)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	fmt.Fprintf(w, `{"action":%q}`, a.String())
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
