package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/pitboard/internal/hasher"
	"github.com/AnyUserName/pitboard/internal/manifest"
	"github.com/AnyUserName/pitboard/internal/pipeline"
	"github.com/AnyUserName/pitboard/internal/screen"
)

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_manifest>",
	Short: "Validate a pitboard manifest and check referenced files match it",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path, err := manifestPath(args[0])
	if err != nil {
		return err
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(path)
	errs := validateManifest(m, baseDir)

	if len(errs) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d screens, %d outputs, all files present\n", m.Stats.TotalScreens, m.Stats.TotalOutputs)
		for _, orphan := range orphanFiles(m, baseDir) {
			fmt.Printf("  ⚠ not in manifest: %s\n", orphan)
		}
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]bool{}
	for name, sc := range m.Screens {
		if !screen.Exists(name) {
			errs = append(errs, fmt.Sprintf("screen %q: unknown screen", name))
		}
		if sc.Width <= 0 || sc.Height <= 0 {
			errs = append(errs, fmt.Sprintf("screen %q: invalid dimensions %dx%d", name, sc.Width, sc.Height))
		}
		if len(sc.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("screen %q: no outputs", name))
		}

		for i, o := range sc.Outputs {
			if o.Format == "" {
				errs = append(errs, fmt.Sprintf("screen %q output[%d]: empty format", name, i))
			}
			if o.Hash == "" {
				errs = append(errs, fmt.Sprintf("screen %q output[%d]: missing hash", name, i))
			}
			if o.Path == "" {
				errs = append(errs, fmt.Sprintf("screen %q output[%d]: missing path", name, i))
				continue
			}

			if seenPaths[o.Path] {
				errs = append(errs, fmt.Sprintf("screen %q output[%d]: duplicate path %q", name, i, o.Path))
			}
			seenPaths[o.Path] = true

			if err := checkOutputFile(filepath.Join(baseDir, o.Path), o); err != nil {
				errs = append(errs, fmt.Sprintf("screen %q output[%d]: %v", name, i, err))
			}
		}
	}

	// Verify stats consistency.
	outputCount := 0
	for _, sc := range m.Screens {
		outputCount += len(sc.Outputs)
	}
	if m.Stats.TotalScreens != len(m.Screens) {
		errs = append(errs, fmt.Sprintf("stats.total_screens mismatch: %d != %d", m.Stats.TotalScreens, len(m.Screens)))
	}
	if m.Stats.TotalOutputs != outputCount {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", m.Stats.TotalOutputs, outputCount))
	}

	return errs
}

// checkOutputFile compares a file on disk with its manifest entry.
func checkOutputFile(path string, o manifest.Output) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", o.Path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if o.Size > 0 && info.Size() != o.Size {
		return fmt.Errorf("size mismatch: manifest=%d, disk=%d", o.Size, info.Size())
	}

	if o.Hash == "" {
		return nil
	}
	sum, err := hasher.ContentHashReader(f, len(o.Hash))
	if err != nil {
		return fmt.Errorf("hash %s: %w", o.Path, err)
	}
	if sum != o.Hash {
		return fmt.Errorf("hash mismatch: manifest=%s, disk=%s", o.Hash, sum)
	}
	return nil
}

// orphanFiles lists encoded files in baseDir the manifest does not
// reference, typically left over from earlier renders.
func orphanFiles(m *manifest.Manifest, baseDir string) []string {
	files, err := pipeline.ScanOutputs(baseDir)
	if err != nil {
		return nil
	}
	known := map[string]bool{}
	for _, sc := range m.Screens {
		for _, o := range sc.Outputs {
			known[o.Path] = true
		}
	}
	var orphans []string
	for _, f := range files {
		if !known[f.RelPath] {
			orphans = append(orphans, f.RelPath)
		}
	}
	return orphans
}
