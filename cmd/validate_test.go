package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/pitboard/internal/hasher"
	"github.com/AnyUserName/pitboard/internal/manifest"
)

// writeOutput writes data into dir and returns its manifest entry.
func writeOutput(t *testing.T, dir, name string, data []byte) manifest.Output {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
	return manifest.Output{
		Format: "raw",
		Size:   int64(len(data)),
		Hash:   hasher.ContentHash(data, 16),
		Path:   name,
	}
}

func validManifest(t *testing.T, dir string) *manifest.Manifest {
	t.Helper()
	m := manifest.New("waveshare-4in2")
	m.Screens["next_race"] = manifest.Screen{
		Race:    "Monaco Grand Prix",
		Width:   400,
		Height:  300,
		Outputs: []manifest.Output{writeOutput(t, dir, "next_race.400.300.aaaaaaaa.bin", make([]byte, 15000))},
	}
	m.ComputeStats()
	return m
}

func TestValidateManifest_Valid(t *testing.T) {
	dir := t.TempDir()
	m := validManifest(t, dir)
	if errs := validateManifest(m, dir); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateManifest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *manifest.Manifest, dir string)
		want   string
	}{
		{"version", func(m *manifest.Manifest, _ string) { m.Version = 9 }, "unsupported manifest version"},
		{"unknown screen", func(m *manifest.Manifest, _ string) {
			m.Screens["podium"] = m.Screens["next_race"]
			delete(m.Screens, "next_race")
		}, `screen "podium": unknown screen`},
		{"missing file", func(m *manifest.Manifest, dir string) {
			os.Remove(filepath.Join(dir, m.Screens["next_race"].Outputs[0].Path))
		}, "file not found"},
		{"hash", func(m *manifest.Manifest, dir string) {
			data := make([]byte, 15000)
			data[0] = 1
			os.WriteFile(filepath.Join(dir, m.Screens["next_race"].Outputs[0].Path), data, 0o644)
		}, "hash mismatch"},
		{"size", func(m *manifest.Manifest, dir string) {
			os.WriteFile(filepath.Join(dir, m.Screens["next_race"].Outputs[0].Path), []byte("short"), 0o644)
		}, "size mismatch"},
		{"stats", func(m *manifest.Manifest, _ string) { m.Stats.TotalOutputs = 5 }, "stats.total_outputs mismatch"},
		{"dimensions", func(m *manifest.Manifest, _ string) {
			sc := m.Screens["next_race"]
			sc.Width = 0
			m.Screens["next_race"] = sc
		}, "invalid dimensions 0x300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			m := validManifest(t, dir)
			tt.mutate(m, dir)

			errs := validateManifest(m, dir)
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v: want one containing %q", errs, tt.want)
			}
		})
	}
}

func TestOrphanFiles(t *testing.T) {
	dir := t.TempDir()
	m := validManifest(t, dir)
	writeOutput(t, dir, "next_race.400.300.bbbbbbbb.bin", []byte{1})

	orphans := orphanFiles(m, dir)
	if len(orphans) != 1 || orphans[0] != "next_race.400.300.bbbbbbbb.bin" {
		t.Errorf("orphans: got %v", orphans)
	}
}
