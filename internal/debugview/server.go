// Package debugview streams bot decision snapshots over websocket for visualization.
package debugview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/udisondev/fragbots/internal/ai"
)

const (
	writeTimeout      = 2 * time.Second
	shutdownTimeout   = 5 * time.Second
	defaultPushPeriod = 250 * time.Millisecond
)

// SnapshotSource returns the current snapshots of all bots.
type SnapshotSource func() []ai.DebugSnapshot

// Frame is one message of the stream.
type Frame struct {
	Seq  uint64            `json:"seq"`
	Time time.Time         `json:"time"`
	Bots []ai.DebugSnapshot `json:"bots"`
}

// Options configure a Server.
type Options struct {
	Secret       []byte
	Issuer       string
	PushInterval time.Duration
}

// Server serves the debug stream.
type Server struct {
	source   SnapshotSource
	secret   []byte
	issuer   string
	interval time.Duration

	clients atomic.Int32
	seq     atomic.Uint64
}

// New creates a debug view server.
func New(source SnapshotSource, opts Options) (*Server, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("debug view secret must be set")
	}
	interval := opts.PushInterval
	if interval <= 0 {
		interval = defaultPushPeriod
	}
	return &Server{
		source:   source,
		secret:   opts.Secret,
		issuer:   opts.Issuer,
		interval: interval,
	}, nil
}

// Clients returns number of connected stream clients.
func (s *Server) Clients() int {
	return int(s.clients.Load())
}

// Handler returns the HTTP routes of the debug view.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /bots", s.handleBots)
	mux.HandleFunc("GET /stream", s.handleStream)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("debug view shutdown", "error", err)
		}
	}()

	slog.Info("debug view listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) frame() Frame {
	return Frame{
		Seq:  s.seq.Add(1),
		Time: time.Now().UTC(),
		Bots: s.source(),
	}
}

func (s *Server) handleBots(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authenticate(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.frame()); err != nil {
		slog.Error("encoding bot snapshots", "error", err)
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	subject, err := s.authenticate(r)
	if err != nil {
		slog.Debug("debug stream rejected", "remote", r.RemoteAddr, "error", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to accept debug stream", "error", err)
		return
	}
	defer conn.CloseNow()

	s.clients.Add(1)
	defer s.clients.Add(-1)
	slog.Info("debug stream connected", "subject", subject, "remote", r.RemoteAddr)

	// clients only listen; CloseRead handles control frames and cancels ctx on close
	ctx := conn.CloseRead(r.Context())
	err = s.push(ctx, conn)

	status := websocket.CloseStatus(err)
	if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
		slog.Info("debug stream closed", "subject", subject)
		return
	}
	slog.Warn("debug stream failed", "subject", subject, "error", err)
}

func (s *Server) push(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.writeFrame(ctx, conn); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Server) writeFrame(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, s.frame())
}
