// Package web provides the HTTP configuration interface and status pages for
// the ayaled daemon.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/sweeney/ayaled/internal/status"
	"github.com/sweeney/ayaled/internal/theme"
)

// DefaultAddr is the loopback address the server binds by default.
const DefaultAddr = "127.0.0.1:21371"

// Server serves theme configuration and status over HTTP.
type Server struct {
	httpServer *http.Server
	store      *theme.Store
	tracker    *status.Tracker
}

// New creates a Server that edits store and reads state from tracker.
func New(addr string, store *theme.Store, tracker *status.Tracker) *Server {
	s := &Server{store: store, tracker: tracker}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /set/{slot}/{r}/{g}/{b}", s.handleSet)
	mux.HandleFunc("GET /get/{slot}", s.handleGet)
	mux.HandleFunc("GET /index.json", s.handleJSON)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /index.html", s.handleIndex)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	return s
}

// ListenAndServe starts listening. It blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on the given listener. Useful for tests.
func (s *Server) Serve(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	slot := r.PathValue("slot")
	c, err := theme.ParseColor(r.PathValue("r"), r.PathValue("g"), r.PathValue("b"))
	if err != nil {
		log.Printf("web: set %s: %v", slot, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := s.store.Set(slot, c); err != nil {
		log.Printf("web: set: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	log.Printf("web: theme %s = %v", slot, c)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Get(r.PathValue("slot"))
	if errors.Is(err, theme.ErrUnknownSlot) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s\n", c)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderHTML(w, snap, s.store.Theme())
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	w.Write(status.FormatJSON(snap))
}
