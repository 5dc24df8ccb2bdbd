package cricapi

// Typed views of the CricAPI payloads. List endpoints are passed through to
// the frontend as raw JSON; these structs exist for the normalization layer,
// which only ever reads a subset of the fields.

// Score is one innings score tuple, index-aligned with the match team list.
type Score struct {
	Runs    float64 `json:"r"`
	Wickets float64 `json:"w"`
	Overs   float64 `json:"o"`
	Inning  string  `json:"inning,omitempty"`
}

// Match is a single match entry from /matches or a series match list.
type Match struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MatchType      string   `json:"matchType"`
	Status         string   `json:"status"`
	Venue          string   `json:"venue"`
	Date           string   `json:"date"`
	DateTimeGMT    string   `json:"dateTimeGMT"`
	Teams          []string `json:"teams"`
	Score          []Score  `json:"score,omitempty"`
	FantasyEnabled bool     `json:"fantasyEnabled,omitempty"`
}

// Player is a single player entry from /players.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Role    string `json:"role,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

// Country is a single entry from /countries.
type Country struct {
	Name        string `json:"name"`
	GenericFlag string `json:"genericFlag"`
}

// SeriesMatchList is the relevant slice of a /series_matches payload.
type SeriesMatchList struct {
	MatchList []Match `json:"matchList"`
}
