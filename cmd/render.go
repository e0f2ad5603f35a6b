package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pitboard/internal/encoder"
	"github.com/AnyUserName/pitboard/internal/manifest"
	"github.com/AnyUserName/pitboard/internal/pipeline"
	"github.com/AnyUserName/pitboard/internal/profile"
	"github.com/AnyUserName/pitboard/internal/screen"
)

var (
	renderOutDir  string
	renderProfile string
	renderWorkers int
	renderScreens []string
	renderFormats []string
	renderFile    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render screens to files and write a manifest",
	Long: `Fetches race data, renders every screen (or those given with --screens)
and writes each one in the profile formats (or those given with --formats).

Output filenames are content-addressed: <screen>.<w>.<h>.<hash>.ext

With --file a single screen is written in a single format to that path,
e.g. render --file board.h --screens next_race --formats header`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "./pitboard_out", "output directory")
	renderCmd.Flags().StringVarP(&renderProfile, "profile", "p", "", "panel profile (default from config)")
	renderCmd.Flags().IntVarP(&renderWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	renderCmd.Flags().StringSliceVarP(&renderScreens, "screens", "s", nil, "screens to render (default all)")
	renderCmd.Flags().StringSliceVarP(&renderFormats, "formats", "f", nil, "output formats (overrides profile)")
	renderCmd.Flags().StringVar(&renderFile, "file", "", "write one screen in one format to this path")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	start := time.Now()

	name := renderProfile
	if name == "" {
		name = cfg.Display.Profile
	}
	prof := profile.Get(name)

	if renderFile != "" {
		return renderSingleFile(cmd, prof)
	}

	absOutput, err := filepath.Abs(renderOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	log.Debug().
		Str("output", absOutput).
		Str("profile", prof.Name).
		Strs("formats", prof.Formats).
		Msg("render")

	p := pipeline.New(pipeline.Config{
		OutputDir: absOutput,
		Profile:   prof,
		Rotation:  rotation(),
		Screens:   renderScreens,
		Formats:   renderFormats,
		ArrayName: cfg.Output.ArrayName,
		Workers:   renderWorkers,
	}, newSource(), log)

	m, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	if err := manifest.WriteJSON(m, filepath.Join(absOutput, manifest.FileName)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printRenderReport(m, time.Since(start))
	return nil
}

// renderSingleFile draws one screen and streams one encoding of it to
// renderFile.
func renderSingleFile(cmd *cobra.Command, prof profile.Profile) error {
	name := screen.NextRaceName
	if len(renderScreens) > 0 {
		name = renderScreens[0]
	}
	format := "header"
	if len(renderFormats) > 0 {
		format = renderFormats[0]
	}
	if len(renderScreens) > 1 || len(renderFormats) > 1 {
		return fmt.Errorf("--file takes one screen and one format")
	}

	enc, err := encoder.NewRegistry(cfg.Output.ArrayName).Get(format)
	if err != nil {
		return err
	}

	d := prof.NewDisplay(rotation())
	r, err := screen.Render(cmd.Context(), name, d, newSource(), time.Now())
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	if err := d.SaveFile(renderFile, enc, cfg.Output.BufferSize); err != nil {
		return fmt.Errorf("write %s: %w", renderFile, err)
	}

	log.Info().
		Str("screen", name).
		Str("race", r.Name).
		Str("format", format).
		Str("path", renderFile).
		Msg("written")
	return nil
}

func printRenderReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║            pitboard render complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Screens:     %d\n", stats.TotalScreens)
	fmt.Printf("  Outputs:     %d\n", stats.TotalOutputs)
	fmt.Printf("  Output size: %s\n", formatBytes(stats.TotalOutputBytes))
	if stats.Failed > 0 {
		fmt.Printf("  Failed:      %d screens\n", stats.Failed)
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))

	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d  (panel %s per screen)\n",
			m.BuildInfo.Workers, formatBytes(int64(m.BuildInfo.FrameBytes)))
	}
	fmt.Println()

	names := make([]string, 0, len(m.Screens))
	for name := range m.Screens {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sc := m.Screens[name]
		fmt.Printf("  %-14s %s\n", name, truncKey(sc.Race, 34))
		for _, o := range sc.Outputs {
			fmt.Printf("    %-6s  %8s  %s\n", o.Format, formatBytes(o.Size), o.Path)
		}
	}
	fmt.Println()

	fmt.Printf("  Formats:     %s\n", strings.Join(detectOutputFormats(m), ", "))
	fmt.Println()

	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifest.FileName, formatBytes(int64(len(data))))
	fmt.Println()
}

func detectOutputFormats(m *manifest.Manifest) []string {
	set := map[string]bool{}
	for _, sc := range m.Screens {
		for _, o := range sc.Outputs {
			set[o.Format] = true
		}
	}
	var out []string
	for _, f := range encoder.NewRegistry("").Available() {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
