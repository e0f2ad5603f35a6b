// Package server renders screens on demand over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/AnyUserName/pitboard/internal/display"
	"github.com/AnyUserName/pitboard/internal/encoder"
	"github.com/AnyUserName/pitboard/internal/hasher"
	"github.com/AnyUserName/pitboard/internal/profile"
	"github.com/AnyUserName/pitboard/internal/screen"
)

const (
	defaultShutdownTimeout = 5 * time.Second
	maxScale               = 8
)

// Config holds the server parameters.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Metrics         bool // expose /metrics
	Profile         profile.Profile
	Rotation        display.Rotation
}

// Server renders a fresh display for every request.
type Server struct {
	cfg      Config
	src      screen.Source
	registry *encoder.Registry
	log      zerolog.Logger
	gatherer prometheus.Gatherer
	metrics  *metrics

	// now is the clock used to pick the next race.
	now func() time.Time
}

// New creates a server drawing data from src.
func New(cfg Config, src screen.Source, registry *encoder.Registry, log zerolog.Logger) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	s := &Server{
		cfg:      cfg,
		src:      src,
		registry: registry,
		log:      log,
		now:      time.Now,
	}

	var registerer prometheus.Registerer
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		registerer, s.gatherer = reg, reg
	}
	s.metrics = newMetrics(registerer)
	return s
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /screens", s.handleList)
	mux.HandleFunc("GET /screens/{name}", func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "raw"
		}
		s.serveScreen(w, r, r.PathValue("name"), format)
	})

	// Fixed routes polled by the panel firmware.
	legacy := map[string][2]string{
		"/next_race":        {screen.NextRaceName, "raw"},
		"/next_race_header": {screen.NextRaceName, "header"},
		"/quali_results":    {screen.QualifyingName, "raw"},
		"/race_results":     {screen.RaceResultsName, "raw"},
	}
	for path, target := range legacy {
		name, format := target[0], target[1]
		mux.HandleFunc("GET "+path, func(w http.ResponseWriter, r *http.Request) {
			s.serveScreen(w, r, name, format)
		})
	}

	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return s.accessLog(mux)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Profile string   `json:"profile"`
		Screens []string `json:"screens"`
		Formats []string `json:"formats"`
	}{
		Profile: s.cfg.Profile.Name,
		Screens: screen.Names(),
		Formats: s.registry.Available(),
	})
}

func (s *Server) serveScreen(w http.ResponseWriter, r *http.Request, name, format string) {
	if !screen.Exists(name) {
		http.Error(w, fmt.Sprintf("unknown screen %q", name), http.StatusNotFound)
		return
	}
	enc, err := s.encoderFor(format, r.URL.Query().Get("scale"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	d := s.cfg.Profile.NewDisplay(s.cfg.Rotation)
	rc, err := screen.Render(r.Context(), name, d, s.src, s.now())
	if err != nil {
		s.metrics.renderErrors.WithLabelValues(name).Inc()
		internalError(w, fmt.Sprintf("Failed to render %s!", name), err)
		return
	}

	var body bytes.Buffer
	if err := enc.Encode(&body, d); err != nil {
		s.metrics.renderErrors.WithLabelValues(name).Inc()
		internalError(w, fmt.Sprintf("Failed to encode %s!", enc.Format()), err)
		return
	}

	s.metrics.renders.WithLabelValues(name, enc.Format()).Inc()
	s.metrics.renderDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	s.metrics.encodedBytes.WithLabelValues(enc.Format()).Add(float64(body.Len()))
	s.log.Debug().
		Str("screen", name).
		Str("format", enc.Format()).
		Str("race", rc.Name).
		Int("bytes", body.Len()).
		Msg("rendered")

	etag := hasher.ETag(body.Bytes())
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", enc.ContentType())
	if etagMatch(r.Header.Values("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.Write(body.Bytes())
}

// encoderFor resolves the format and, for PNG, the preview scale.
func (s *Server) encoderFor(format, scale string) (encoder.Encoder, error) {
	enc, err := s.registry.Get(format)
	if err != nil {
		return nil, err
	}
	if scale == "" || enc.Format() != "png" {
		return enc, nil
	}
	n, err := strconv.Atoi(scale)
	if err != nil || n < 1 || n > maxScale {
		return nil, fmt.Errorf("scale must be between 1 and %d, got %q", maxScale, scale)
	}
	return &encoder.PNGEncoder{Scale: n}, nil
}

// etagMatch reports whether any If-None-Match value matches etag using
// weak comparison. Values may be comma-separated lists or "*".
func etagMatch(values []string, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "*" || strings.TrimPrefix(tag, "W/") == want {
				return true
			}
		}
	}
	return false
}

// internalError reports a failure with its cause in the body.
func internalError(w http.ResponseWriter, msg string, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "%s Err=%v\n", msg, err)
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().
			Str("addr", ln.Addr().String()).
			Str("profile", s.cfg.Profile.Name).
			Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
