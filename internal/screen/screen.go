// Package screen lays out race information on a display.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/AnyUserName/pitboard/internal/display"
	"github.com/AnyUserName/pitboard/internal/race"
)

// ErrUnknownScreen is returned for screen names without a layout.
var ErrUnknownScreen = errors.New("unknown screen")

// Source provides the race data screens draw.
type Source interface {
	Schedule(ctx context.Context) ([]race.Race, error)
	LastQualifying(ctx context.Context) (*race.Race, error)
	LastResults(ctx context.Context) (*race.Race, error)
}

// Screen names.
const (
	NextRaceName    = "next_race"
	QualifyingName  = "quali_results"
	RaceResultsName = "race_results"
)

type renderFunc func(ctx context.Context, d *display.Display, src Source, now time.Time) (*race.Race, error)

var screens = map[string]renderFunc{
	NextRaceName:    renderNextRace,
	QualifyingName:  renderQualifying,
	RaceResultsName: renderRaceResults,
}

// Names returns every screen name in sorted order.
func Names() []string {
	names := make([]string, 0, len(screens))
	for name := range screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether name is a known screen.
func Exists(name string) bool {
	_, ok := screens[name]
	return ok
}

// Render clears d, fetches the data for the named screen from src and
// draws it. It returns the race that was drawn.
func Render(ctx context.Context, name string, d *display.Display, src Source, now time.Time) (*race.Race, error) {
	render, ok := screens[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	d.Clear()
	return render(ctx, d, src, now)
}

func renderNextRace(ctx context.Context, d *display.Display, src Source, now time.Time) (*race.Race, error) {
	schedule, err := src.Schedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	r, err := race.NextRace(schedule, now)
	if err != nil {
		return nil, err
	}
	return r, DrawNextRace(d, r)
}

func renderQualifying(ctx context.Context, d *display.Display, src Source, _ time.Time) (*race.Race, error) {
	r, err := src.LastQualifying(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch qualifying: %w", err)
	}
	return r, DrawQualifying(d, r)
}

func renderRaceResults(ctx context.Context, d *display.Display, src Source, _ time.Time) (*race.Race, error) {
	r, err := src.LastResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}
	return r, DrawRaceResults(d, r)
}
