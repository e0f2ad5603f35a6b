package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pitboard/internal/manifest"
	"github.com/AnyUserName/pitboard/internal/profile"
	"github.com/AnyUserName/pitboard/internal/screen"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a rendered output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// manifestPath resolves a directory to the manifest inside it.
func manifestPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}
	return path, nil
}

func runStats(_ *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		fmt.Printf("  Panel memory:     %s per screen\n", formatBytes(int64(m.BuildInfo.FrameBytes)))
		fmt.Printf("  Rotation:         %d°\n", m.BuildInfo.Rotation)
	} else {
		prof := profile.Get(m.Profile)
		fmt.Printf("  Panel memory (est): %s per screen\n", formatBytes(int64(prof.FrameBytes())))
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total screens:    %d\n", s.TotalScreens)
	fmt.Printf("  Total outputs:    %d\n", s.TotalOutputs)
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.Failed > 0 {
		fmt.Printf("  Failed screens:   %d\n", s.Failed)
	}
	fmt.Println()

	// Per-format breakdown.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, sc := range m.Screens {
		for _, o := range sc.Outputs {
			fs := formatStats[o.Format]
			fs.count++
			fs.bytes += o.Size
			formatStats[o.Format] = fs
		}
	}

	fmt.Println("  Format breakdown:")
	for _, f := range detectOutputFormats(m) {
		fs := formatStats[f]
		fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
	}
	fmt.Println()

	// Per-size breakdown.
	sizeStats := map[string]int{}
	for _, sc := range m.Screens {
		sizeStats[fmt.Sprintf("%dx%d", sc.Width, sc.Height)]++
	}
	var sizes []string
	for size := range sizeStats {
		sizes = append(sizes, size)
	}
	sort.Strings(sizes)
	fmt.Println("  Panel sizes:")
	for _, size := range sizes {
		fmt.Printf("    %9s  %4d screens\n", size, sizeStats[size])
	}
	fmt.Println()

	fmt.Printf("  Screen coverage: %d / %d screens\n", len(m.Screens), len(screen.Names()))

	// Warnings.
	var warnings []string
	for _, name := range screen.Names() {
		sc, ok := m.Screens[name]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("screen %q not rendered", name))
			continue
		}
		if len(sc.Outputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("screen %q has no outputs", name))
		}
	}
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
