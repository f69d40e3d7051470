// Package reactor wires together the RESP wire codec, the command
// registry, and the storage engine into a running TCP server.
//
// One goroutine per accepted connection handles that connection's I/O
// and RESP parsing. Command execution is funneled through a single
// Engine goroutine (engine.go) rather than called directly from each
// connection goroutine, since the storage engine assumes
// single-goroutine access rather than taking locks of its own.
package reactor

import (
	"context"
	"log"
	"net"
	"sync"

	"github.com/emberkv/ember/config"
)

// Server listens for TCP connections and serves the RESP protocol over
// each one against a shared Engine.
type Server struct {
	config    config.Config
	engine    *Engine
	arenaPool *ArenaPool

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// New builds a Server from cfg. It does not start listening.
func New(cfg config.Config) *Server {
	return &Server{
		config: cfg,
		engine: NewEngine(cfg.SweepMaxChecks, cfg.SweepThreshold),
	}
}

// ListenAndServe binds cfg's address and serves until ctx is cancelled
// or a fatal accept error occurs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve runs the accept loop over an already-bound listener, and the
// Engine's dispatch loop alongside it. It blocks until ctx is done or
// Accept fails for a reason other than the listener having been closed.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	s.arenaPool = NewArenaPool(ctx, s.config.ArenaCapacity)

	engineDone := make(chan struct{})
	go func() {
		s.engine.Run(ctx)
		close(engineDone)
	}()

	go func() {
		<-ctx.Done()
		s.closeListener()
	}()

	log.Printf("reactor: listening on %s", l.Addr())
	for {
		rwc, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				<-engineDone
				return nil
			default:
			}
			return err
		}
		a, err := s.arenaPool.Borrow(ctx)
		if err != nil {
			log.Printf("reactor: failed to borrow arena for %s: %v", rwc.RemoteAddr(), err)
			rwc.Close()
			continue
		}
		go s.newConn(rwc, a).serve(ctx)
	}
}

func (s *Server) closeListener() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.listener == nil {
		return
	}
	s.closed = true
	_ = s.listener.Close()
}
