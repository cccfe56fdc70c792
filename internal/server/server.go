// Package server mounts the generator component on a chi router and runs it
// with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/EthanThatOneKid/border-tube-code-generator/components/generator"
	"github.com/EthanThatOneKid/border-tube-code-generator/internal/logging"
)

const defaultGrace = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr          string
	ShutdownGrace time.Duration
	Logger        zerolog.Logger
}

// Server is the HTTP front of the generator.
type Server struct {
	opts   Options
	router chi.Router
}

// New builds the router: request ids, access logs, panic recovery and
// compression in front of the component, plus a health check.
func New(component *generator.Component, opts Options) (*Server, error) {
	if component == nil {
		return nil, fmt.Errorf("server: missing component")
	}
	if opts.ShutdownGrace <= 0 {
		opts.ShutdownGrace = defaultGrace
	}

	h, err := component.Handler()
	if err != nil {
		return nil, fmt.Errorf("server: build handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	base := component.Options().BasePath
	if base != "/" {
		r.Handle(base, h)
	}
	r.Handle(generator.MountPath(base)+"*", h)

	return &Server{opts: opts, router: r}, nil
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe listens on the configured address and serves until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends, then drains in-flight
// requests for up to the shutdown grace period.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.opts.Logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		errs <- srv.Serve(ln)
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownGrace)
	defer cancel()
	s.opts.Logger.Info().Dur("grace", s.opts.ShutdownGrace).Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
