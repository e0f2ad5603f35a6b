package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/pitboard/internal/config"
	"github.com/AnyUserName/pitboard/internal/display"
	"github.com/AnyUserName/pitboard/internal/logger"
	"github.com/AnyUserName/pitboard/internal/race"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string

	// Set by loadConfig before any subcommand runs.
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pitboard",
	Short: "Formula 1 race boards for 1-bit e-paper panels",
	Long: `pitboard draws the next race, the last qualifying and the last race
results on a monochrome panel buffer and encodes it for microcontrollers.

Outputs are raw panel memory, a C header array, a plain PPM preview or PNG.
Serve them over HTTP with "serve" or write them to disk with "render".`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search for "+config.FileName+")")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pitboard %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func loadConfig(*cobra.Command, []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		c.Log.Debug = true
	}
	cfg = c
	log = logger.New(os.Stderr, cfg.Log.Debug, !cfg.Log.JSON)
	return nil
}

// newSource returns the race data client for the loaded config.
func newSource() *race.Client {
	return race.NewClient(cfg.Ergast.BaseURL, nil, cfg.Ergast.Timeout)
}

// rotation returns the configured panel rotation. Config validation
// already rejected invalid values.
func rotation() display.Rotation {
	r, _ := display.ParseRotation(cfg.Display.Rotation)
	return r
}
