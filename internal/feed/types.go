package feed

// Raw snapshot records in the shape the odds aggregator returns them.
// Timestamps stay as strings here; parsing (and tolerance for missing or
// malformed values) happens at ingestion.

// Outcome is one raw price quote for one outcome label.
type Outcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Market is one raw market offered by a bookmaker.
// Key is the provider market key: "h2h", "totals", "spreads", "btts".
type Market struct {
	Key        string    `json:"key"`
	LastUpdate string    `json:"last_update,omitempty"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Bookmaker is one book's set of markets for an event.
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update,omitempty"`
	Markets    []Market `json:"markets"`
}

// Event is one fixture with all bookmaker quotes attached.
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key,omitempty"`
	CommenceTime string      `json:"commence_time,omitempty"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}
