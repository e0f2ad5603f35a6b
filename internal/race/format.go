package race

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pitLaneGrid is the grid slot counted for a pit lane start (grid "0").
const pitLaneGrid = 20

// foldSpecial covers letters that do not decompose into ASCII + accent.
var foldSpecial = map[rune]string{
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'ł': "l", 'Ł': "L",
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'þ': "th", 'Þ': "Th",
	'ı': "i",
}

// ASCII folds s to the closest ASCII text, since the display fonts only
// carry ASCII glyphs. Unknown letters become '?'.
func ASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r <= unicode.MaxASCII:
			b.WriteRune(r)
		case foldSpecial[r] != "":
			b.WriteString(foldSpecial[r])
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// DriverName returns "Given Family" in ASCII.
func DriverName(d Driver) string {
	return ASCII(d.GivenName) + " " + ASCII(d.FamilyName)
}

// ConstructorName returns the first word of the team name.
func ConstructorName(c Constructor) string {
	first, _, _ := strings.Cut(c.Name, " ")
	return first
}

// BestQualifyingTime returns the time of the last session the driver
// took part in, or "N/A".
func BestQualifyingTime(q QualifyingResult) string {
	for _, t := range []string{q.Q3, q.Q2, q.Q1} {
		if t != "" {
			return t
		}
	}
	return "N/A"
}

// QualifyingLine formats one qualifying position as a display line.
func QualifyingLine(q QualifyingResult) string {
	return fmt.Sprintf("%2d. %-16s %-8s  %s\n",
		q.Position, DriverName(q.Driver), BestQualifyingTime(q), q.Constructor.Name)
}

// Finished reports whether a result status counts as a classified finish.
func Finished(status string) bool {
	return status == "Finished" || strings.Contains(status, "Lap")
}

// PositionsGained returns "+n" for places gained from the grid, "-n" for
// places lost and " " when unchanged.
func PositionsGained(r RaceResult) string {
	started := StartingPosition(r)
	switch {
	case started < r.Position:
		return fmt.Sprintf("-%d", r.Position-started)
	case started > r.Position:
		return fmt.Sprintf("+%d", started-r.Position)
	}
	return " "
}

// StartingPosition returns the grid slot, counting a pit lane start as last.
func StartingPosition(r RaceResult) int {
	if r.Grid == 0 {
		return pitLaneGrid
	}
	return r.Grid
}

// ResultLine formats one race position as a display line.
func ResultLine(r RaceResult) string {
	points := "DNF"
	if Finished(r.Status) {
		points = fmt.Sprintf("%-3s", r.Points)
	}
	return fmt.Sprintf("%2d. %-18s %-10s %2d(%-3s) %s\n",
		r.Position, DriverName(r.Driver), ConstructorName(r.Constructor),
		StartingPosition(r), PositionsGained(r), points)
}
