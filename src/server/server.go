package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/username/networth/src/logger"
	"golang.org/x/net/netutil"
)

var ErrShutdownTimeout = errors.New("server did not shut down within the grace period")

// Server runs an http.Server on its own goroutine so the caller controls when it stops.
type Server struct {
	httpServer *http.Server
	maxConns   int

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
	serveErr error
}

func New(addr string, handler http.Handler, maxConns int) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		maxConns: maxConns,
	}
}

// Start binds the listening socket and serves in the background. Bind errors
// are returned directly.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return fmt.Errorf("server already started on %s", s.listener.Addr())
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	if s.maxConns > 0 {
		ln = netutil.LimitListener(ln, s.maxConns)
	}
	s.listener = ln
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("HTTP server stopped unexpectedly", "error", err)
			s.mu.Lock()
			s.serveErr = err
			s.mu.Unlock()
		}
	}()

	logger.L.Info("Server started", "address", ln.Addr().String(), "maxConnections", s.maxConns)
	return nil
}

// Addr is the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Done is closed once the server stops serving, whether through Stop or a
// serve error. It is nil before Start.
func (s *Server) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Err is the error that ended serving, if it was not a requested shutdown.
func (s *Server) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serveErr
}

// Stop drains in-flight requests for up to timeout, then closes every
// remaining connection and reports ErrShutdownTimeout.
func (s *Server) Stop(timeout time.Duration) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		logger.L.Info("Server is not running")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.httpServer.Close()
		<-done
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w (%s)", ErrShutdownTimeout, timeout)
		}
		return fmt.Errorf("shutdown: %w", err)
	}
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	logger.L.Info("Server stopped gracefully")
	return s.serveErr
}
