package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pitboard/internal/encoder"
	"github.com/AnyUserName/pitboard/internal/profile"
	"github.com/AnyUserName/pitboard/internal/server"
)

var (
	serveAddr    string
	serveMetrics bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve freshly rendered screens over HTTP",
	Long: `Starts an HTTP server that renders a screen on every request.

Routes:
  GET /next_race            raw panel memory
  GET /next_race_header     C header array
  GET /quali_results        raw panel memory
  GET /race_results         raw panel memory
  GET /screens              available screens and formats
  GET /screens/{name}       ?format=raw|header|ppm|png&scale=N
  GET /healthz
  GET /metrics              when enabled`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", false, "expose Prometheus metrics")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	sc := cfg.Server
	if serveAddr != "" {
		sc.Addr = serveAddr
	}
	if serveMetrics {
		sc.Metrics = true
	}

	prof := profile.Get(cfg.Display.Profile)
	log.Debug().
		Str("profile", prof.Name).
		Int("width", prof.Width).
		Int("height", prof.Height).
		Str("ergast", cfg.Ergast.BaseURL).
		Msg("config")

	srv := server.New(server.Config{
		Addr:            sc.Addr,
		ReadTimeout:     sc.ReadTimeout,
		WriteTimeout:    sc.WriteTimeout,
		ShutdownTimeout: sc.ShutdownTimeout,
		Metrics:         sc.Metrics,
		Profile:         prof,
		Rotation:        rotation(),
	}, newSource(), encoder.NewRegistry(cfg.Output.ArrayName), log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
