package screen

import (
	"fmt"
	"strings"

	"github.com/AnyUserName/pitboard/internal/display"
	"github.com/AnyUserName/pitboard/internal/race"
)

// Start lights across the top of the next race screen.
const (
	lightCount    = 5
	lightGap      = 60
	lightDiameter = 48
	lightSquare   = 34
	lightX        = 67
	lightY        = 48
)

// bigPositions is how many qualifying places get the big font.
const bigPositions = 3

// DrawNextRace draws five start lights with the race and circuit names
// centered below them.
func DrawNextRace(d *display.Display, r *race.Race) error {
	for i := 0; i < lightCount; i++ {
		x := lightX + i*lightGap
		d.StrokeCircle(x, lightY, lightDiameter, 1)
		d.StrokeRect(x+7, lightY+7, lightSquare, lightSquare, 1)
	}

	title := fmt.Sprintf("Next race:\n%s", race.ASCII(r.Name))
	venue := fmt.Sprintf("%s\n%s", race.ASCII(r.Circuit.Name), race.ASCII(r.Circuit.Location.Locality))

	if err := d.DrawBigText(title, 200, 140, true); err != nil {
		return err
	}
	return d.DrawSmallText(venue, 200, 190, true)
}

// DrawQualifying draws the top three qualifiers large and the rest of the
// grid below them.
func DrawQualifying(d *display.Display, r *race.Race) error {
	if len(r.QualifyingResults) == 0 {
		return fmt.Errorf("%s: missing qualifying results: %w", r.Name, race.ErrNoResults)
	}

	top, rest := r.QualifyingResults, []race.QualifyingResult(nil)
	if len(top) > bigPositions {
		top, rest = top[:bigPositions], top[bigPositions:]
	}

	y := 20
	if err := d.DrawBigText(qualifyingLines(top), 0, y, false); err != nil {
		return err
	}
	y += 60 // three big lines

	return d.DrawMediumText(qualifyingLines(rest), 5, y, false)
}

// DrawRaceResults draws the race name and every classified position.
func DrawRaceResults(d *display.Display, r *race.Race) error {
	if len(r.Results) == 0 {
		return fmt.Errorf("%s: missing race results: %w", r.Name, race.ErrNoResults)
	}

	y := 20
	header := fmt.Sprintf(" %-20s Race Results", race.ASCII(r.Name))
	if err := d.DrawBigText(header, 0, y, false); err != nil {
		return err
	}
	y += 20

	var b strings.Builder
	for _, res := range r.Results {
		b.WriteString(race.ResultLine(res))
	}
	return d.DrawMediumText(b.String(), 5, y, false)
}

func qualifyingLines(results []race.QualifyingResult) string {
	var b strings.Builder
	for _, q := range results {
		b.WriteString(race.QualifyingLine(q))
	}
	return b.String()
}
