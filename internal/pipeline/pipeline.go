package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/AnyUserName/pitboard/internal/display"
	"github.com/AnyUserName/pitboard/internal/encoder"
	"github.com/AnyUserName/pitboard/internal/manifest"
	"github.com/AnyUserName/pitboard/internal/profile"
	"github.com/AnyUserName/pitboard/internal/screen"
)

// Config holds all parameters for a render pipeline run.
type Config struct {
	OutputDir string
	Profile   profile.Profile
	Rotation  display.Rotation
	Screens   []string // empty renders every screen
	Formats   []string // empty uses the profile formats
	ArrayName string
	Workers   int
	Now       func() time.Time
}

// Pipeline renders screens and writes every encoding to disk.
type Pipeline struct {
	cfg      Config
	src      screen.Source
	registry *encoder.Registry
	log      zerolog.Logger
}

// New creates a configured pipeline.
func New(cfg Config, src screen.Source, log zerolog.Logger) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if len(cfg.Screens) == 0 {
		cfg.Screens = screen.Names()
	}
	if cfg.ArrayName == "" {
		cfg.ArrayName = encoder.DefaultArrayName
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Pipeline{
		cfg:      cfg,
		src:      src,
		registry: encoder.NewRegistry(cfg.ArrayName),
		log:      log,
	}
}

// Run executes the full render pipeline and returns the manifest.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	p.log.Debug().Msg(p.registry.String())

	for _, name := range p.cfg.Screens {
		if !screen.Exists(name) {
			return nil, fmt.Errorf("%w: %q", screen.ErrUnknownScreen, name)
		}
	}

	formats := p.cfg.Formats
	if len(formats) == 0 {
		formats = p.cfg.Profile.Formats
	}
	formats = p.registry.ResolveFormats(formats)

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	now := p.cfg.Now()
	results := make([]renderResult, len(p.cfg.Screens))

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i, name := range p.cfg.Screens {
		g.Go(func() error {
			p.log.Debug().Str("screen", name).Msg("rendering")
			results[i] = p.renderScreen(ctx, name, formats, now)
			if results[i].err == nil {
				p.log.Debug().
					Str("screen", name).
					Int("outputs", len(results[i].screen.Outputs)).
					Msg("done")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := manifest.New(p.cfg.Profile.Name)

	var failed int
	for _, r := range results {
		if r.err != nil {
			p.log.Error().Err(r.err).Str("screen", r.name).Msg("render failed")
			failed++
			continue
		}
		m.Screens[r.name] = r.screen
	}

	// Partial failures are reported, not fatal.
	if failed == len(results) {
		return nil, fmt.Errorf("all %d screens failed to render", failed)
	}
	if failed > 0 {
		p.log.Warn().Msgf("%d of %d screens had errors", failed, len(results))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:    p.cfg.Workers,
		FrameBytes: p.cfg.Profile.FrameBytes(),
		Rotation:   int(p.cfg.Rotation),
	}
	m.Stats.Failed = failed
	m.ComputeStats()
	return m, nil
}
