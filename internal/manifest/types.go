package manifest

// Manifest is the top-level output of a pitboard render run.
type Manifest struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generated_at"`
	Profile     string            `json:"profile"`
	BasePath    string            `json:"base_path"`
	BuildInfo   *BuildInfo        `json:"build_info,omitempty"`
	Screens     map[string]Screen `json:"screens"`
	Stats       Stats             `json:"stats"`
}

// BuildInfo captures render-time parameters for diagnostics.
type BuildInfo struct {
	Workers    int `json:"workers"`
	FrameBytes int `json:"frame_bytes"` // packed panel memory per screen
	Rotation   int `json:"rotation"`
}

// Screen describes one rendered screen and all its encoded outputs.
type Screen struct {
	Race    string   `json:"race"`            // race shown on the screen
	Round   string   `json:"round,omitempty"` // season round of that race
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Outputs []Output `json:"outputs"`
}

// Output is one encoding of a screen.
type Output struct {
	Format string `json:"format"` // "raw", "header", "ppm", "png"
	Size   int64  `json:"size"`   // bytes on disk
	Hash   string `json:"hash"`   // 16 hex chars of xxhash64
	Path   string `json:"path"`   // relative to base_path
}

// Stats aggregates run metrics.
type Stats struct {
	TotalScreens     int   `json:"total_screens"`
	TotalOutputs     int   `json:"total_outputs"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	Failed           int   `json:"failed,omitempty"` // screens that could not be rendered
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
