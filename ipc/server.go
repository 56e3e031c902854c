package ipc

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
)

// Server accepts host connections and runs Handle for each one on its own
// goroutine.
type Server struct {
	Listener net.Listener
	Handle   func(net.Conn)

	mu     sync.Mutex
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// Serve accepts until ctx is done or the listener fails. It then closes the
// listener and every open connection and returns once all handlers have.
func (s *Server) Serve(ctx context.Context) {
	stop := context.AfterFunc(ctx, s.shutdown)
	defer stop()

	for {
		conn, err := s.Listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			slog.Error("failed to accept connection", "error", err)
			continue
		}
		if !s.track(conn) {
			_ = conn.Close()
			break
		}
		slog.Info("new connection accepted")
		go func() {
			defer s.untrack(conn)
			s.Handle(conn)
		}()
	}

	s.shutdown()
	s.wg.Wait()
}

func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	if s.conns == nil {
		s.conns = make(map[net.Conn]struct{})
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	s.wg.Done()
}

// shutdown stops accepting and closes open connections so their read loops
// return. Safe to call more than once.
func (s *Server) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	slog.Info("shutting down", "open", len(s.conns))
	_ = s.Listener.Close()
	for c := range s.conns {
		_ = c.Close()
	}
}
