package profile

import (
	"sort"

	"github.com/AnyUserName/pitboard/internal/display"
)

// DefaultName is the profile used for unknown names.
const DefaultName = "waveshare-4in2"

// Profile describes a target panel and the formats rendered for it.
type Profile struct {
	Name    string
	Width   int      // panel width in pixels
	Height  int      // panel height in pixels
	Formats []string // output formats in priority order
}

// Built-in profiles.
var profiles = map[string]Profile{
	"waveshare-4in2": {
		Name:    "waveshare-4in2",
		Width:   400,
		Height:  300,
		Formats: []string{"header", "ppm"},
	},
	"waveshare-7in5": {
		Name:    "waveshare-7in5",
		Width:   800,
		Height:  480,
		Formats: []string{"header", "ppm"},
	},
	"preview": {
		Name:    "preview",
		Width:   400,
		Height:  300,
		Formats: []string{"png", "ppm"},
	},
}

// Get returns a profile by name. Falls back to waveshare-4in2 if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Names returns the built-in profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FrameBytes returns the size of the packed panel memory.
func (p Profile) FrameBytes() int {
	return (p.Width + 7) / 8 * p.Height
}

// NewDisplay returns a cleared display of the profile's panel size.
func (p Profile) NewDisplay(rotation display.Rotation) *display.Display {
	return display.New(p.Width, p.Height, rotation)
}
