package encoder

import (
	"fmt"
	"strings"
)

// formatOrder is the priority order used for listings and fallbacks.
var formatOrder = []string{"raw", "header", "ppm", "png"}

// Registry holds all encoders keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with every built-in encoder. arrayName
// names the C array written by the header encoder.
func NewRegistry(arrayName string) *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&RawEncoder{},
		&HeaderEncoder{Name: arrayName},
		&PPMEncoder{},
		&PNGEncoder{},
	}
	for _, enc := range all {
		r.encoders[enc.Format()] = enc
	}

	return r
}

// Get returns the encoder for the given format, or ErrUnknownFormat.
func (r *Registry) Get(format string) (Encoder, error) {
	enc, ok := r.encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return enc, nil
}

// Available returns all format names in priority order.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range formatOrder {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// ResolveFormats filters requested formats to registered ones, dropping
// duplicates, and falls back to raw when nothing usable is left.
func (r *Registry) ResolveFormats(requested []string) []string {
	var resolved []string
	seen := map[string]bool{}

	for _, f := range requested {
		f = strings.ToLower(strings.TrimSpace(f))
		if _, ok := r.encoders[f]; ok && !seen[f] {
			resolved = append(resolved, f)
			seen[f] = true
		}
	}

	if len(resolved) == 0 {
		resolved = append(resolved, "raw")
	}
	return resolved
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
