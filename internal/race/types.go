package race

// Race is one round of a season, with results when they are known.
type Race struct {
	Season            string             `json:"season"`
	Round             string             `json:"round"`
	Name              string             `json:"raceName"`
	Circuit           Circuit            `json:"Circuit"`
	Date              string             `json:"date"`           // YYYY-MM-DD
	Time              string             `json:"time,omitempty"` // HH:MM:SSZ, may be missing
	QualifyingResults []QualifyingResult `json:"QualifyingResults,omitempty"`
	Results           []RaceResult       `json:"Results,omitempty"`
}

// Circuit is the venue of a race.
type Circuit struct {
	ID       string   `json:"circuitId"`
	Name     string   `json:"circuitName"`
	Location Location `json:"Location"`
}

// Location is where a circuit is.
type Location struct {
	Locality string `json:"locality"`
	Country  string `json:"country"`
}

// Driver identifies a driver. Names may contain non-ASCII letters.
type Driver struct {
	ID         string `json:"driverId"`
	Code       string `json:"code,omitempty"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// Constructor is a team.
type Constructor struct {
	ID   string `json:"constructorId"`
	Name string `json:"name"`
}

// QualifyingResult is one line of a qualifying classification.
type QualifyingResult struct {
	Number      string      `json:"number"`
	Position    int         `json:"position,string"`
	Driver      Driver      `json:"Driver"`
	Constructor Constructor `json:"Constructor"`
	Q1          string      `json:"Q1,omitempty"`
	Q2          string      `json:"Q2,omitempty"`
	Q3          string      `json:"Q3,omitempty"`
}

// RaceResult is one line of a race classification.
type RaceResult struct {
	Number      string      `json:"number"`
	Position    int         `json:"position,string"`
	Points      string      `json:"points"`
	Driver      Driver      `json:"Driver"`
	Constructor Constructor `json:"Constructor"`
	Grid        int         `json:"grid,string"`
	Laps        string      `json:"laps"`
	Status      string      `json:"status"`
}

// response is the envelope of every Ergast API reply.
type response struct {
	MRData struct {
		Total     string `json:"total"`
		RaceTable struct {
			Season string `json:"season"`
			Races  []Race `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}
