// Package linecfg serves a line-oriented theme configuration protocol over
// TCP. Each line is "<slot> <r> <g> <b>".
package linecfg

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	"github.com/sweeney/ayaled/internal/logic"
	"github.com/sweeney/ayaled/internal/theme"
)

// DefaultAddr is the loopback address the server binds by default.
const DefaultAddr = "127.0.0.1:21372"

// Setter stores a theme slot. Implemented by *theme.Store.
type Setter interface {
	Set(slot string, c logic.Color) error
}

// Server accepts connections and applies theme lines from each one.
type Server struct {
	addr  string
	store Setter

	mu     sync.Mutex
	ln     net.Listener
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// New creates a Server for addr.
func New(addr string, store Setter) *Server {
	return &Server{addr: addr, store: store, conns: make(map[net.Conn]struct{})}
}

// ListenAndServe listens on the configured address and serves until Close.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln, one goroutine per connection. It returns
// nil after Close.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.ln = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return nil
		}
		s.conns[conn] = struct{}{}
		s.wg.Add(1)
		s.mu.Unlock()

		go func() {
			defer s.wg.Done()
			defer s.forget(conn)
			s.Handle(conn)
		}()
	}
}

// Close stops accepting, closes open connections and waits for handlers.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}

func (s *Server) forget(conn net.Conn) {
	conn.Close()
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// Handle applies every line read from r until EOF.
func (s *Server) Handle(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s.apply(sc.Text())
	}
	if err := sc.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("linecfg: read: %v", err)
	}
}

// apply handles one line. Malformed channels become 0; unknown slots and
// short lines are logged and ignored.
func (s *Server) apply(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	if len(fields) != 4 {
		log.Printf("linecfg: ignoring %q: want \"<slot> <r> <g> <b>\"", line)
		return
	}

	var ch [3]uint8
	for i, f := range fields[1:] {
		v, err := theme.ParseChannel(f)
		if err != nil {
			log.Printf("linecfg: %s: %v, using 0", fields[0], err)
			v = 0
		}
		ch[i] = v
	}
	c := logic.Color{R: ch[0], G: ch[1], B: ch[2]}

	if err := s.store.Set(fields[0], c); err != nil {
		log.Printf("linecfg: ignoring line: %v", err)
		return
	}
	log.Printf("linecfg: theme %s = %v", fields[0], c)
}
