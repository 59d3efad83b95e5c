package weather

import "time"

// Bundle aggregates everything one provider fetch returns: the resolved
// location, current conditions and the forecast days (empty for a
// current-only provider).
type Bundle struct {
	Location  Location      `json:"location"`
	Current   Snapshot      `json:"current"`
	Days      []ForecastDay `json:"days,omitempty"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Location identifies the place the provider resolved the query to.
type Location struct {
	Name    string  `json:"name"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Snapshot holds current conditions. Temperatures are carried in both units
// so the unit toggle never refetches.
type Snapshot struct {
	Condition  string  `json:"condition"`
	TempC      float64 `json:"temp_c"`
	TempF      float64 `json:"temp_f"`
	FeelsC     float64 `json:"feels_c"`
	MinC       float64 `json:"min_c"`
	MaxC       float64 `json:"max_c"`
	Humidity   int     `json:"humidity"`
	WindKph    float64 `json:"wind_kph"`
	WindDegree int     `json:"wind_degree"`
	WindDir    string  `json:"wind_dir"`
}

// ForecastDay is one calendar day's aggregate.
type ForecastDay struct {
	Date       string      `json:"date"` // YYYY-MM-DD
	MinC       float64     `json:"min_c"`
	MaxC       float64     `json:"max_c"`
	MinF       float64     `json:"min_f"`
	MaxF       float64     `json:"max_f"`
	Condition  string      `json:"condition"`
	RainChance int         `json:"rain_chance"`
	SnowChance int         `json:"snow_chance"`
	Sunrise    string      `json:"sunrise"`
	Sunset     string      `json:"sunset"`
	Hours      []HourEntry `json:"hours"`
}

// HourEntry is one hourly sample within a forecast day, ordered by time.
type HourEntry struct {
	Time      string  `json:"time"` // "2006-01-02 15:04"
	TempC     float64 `json:"temp_c"`
	TempF     float64 `json:"temp_f"`
	Condition string  `json:"condition"`
}
