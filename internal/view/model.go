package view

import (
	"time"

	"skycast/internal/format"
	"skycast/internal/theme"
	"skycast/internal/weather"
)

// Options are the view policies that differ between deployments.
type Options struct {
	DefaultCity string
	// ExcludeToday drops the current calendar day from the daily forecast
	// list, leaving only future days.
	ExcludeToday bool
	// Debounce is the quiet period for search-input fetches; zero means
	// the 600ms default.
	Debounce time.Duration
}

// Model is everything a render pass needs, fully formatted.
type Model struct {
	Location   string      `json:"location"`
	Region     string      `json:"region,omitempty"`
	Country    string      `json:"country,omitempty"`
	Loading    bool        `json:"loading"`
	Notice     string      `json:"notice,omitempty"`
	UseCelsius bool        `json:"use_celsius"`
	LongWindow bool        `json:"long_window"`
	HasData    bool        `json:"has_data"`
	Current    Current     `json:"current"`
	Hourly     []Hour      `json:"hourly,omitempty"`
	ScrollTo   int         `json:"scroll_to"` // hourly cell to center, -1 when none
	Forecast   []Day       `json:"forecast,omitempty"`
	Cards      Cards       `json:"cards"`
	Theme      theme.Theme `json:"theme"`
}

// Current is the formatted current-conditions section.
type Current struct {
	Condition   string  `json:"condition"`
	Temperature string  `json:"temperature"`
	FeelsLike   string  `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindKph     float64 `json:"wind_kph"`
}

// Hour is one cell of the hourly strip.
type Hour struct {
	Label       string `json:"label"`
	Temperature string `json:"temperature"`
	Condition   string `json:"condition"`
	Icon        string `json:"icon"`
	Current     bool   `json:"current"`
}

// Day is one row of the daily forecast list.
type Day struct {
	Date       string `json:"date"`
	DayOfMonth string `json:"day_of_month"`
	Label      string `json:"label"` // "mon, jan"
	MaxTemp    string `json:"max_temp"`
	Condition  string `json:"condition"`
	Icon       string `json:"icon"`
}

// Cards is the four summary cards under the main panel.
type Cards struct {
	Sunrise    string `json:"sunrise"`
	Sunset     string `json:"sunset"`
	MaxTemp    string `json:"max_temp"`
	MinTemp    string `json:"min_temp"`
	RainChance int    `json:"rain_chance"`
	SnowChance int    `json:"snow_chance"`
	WindDegree int    `json:"wind_degree"`
	WindDir    string `json:"wind_dir"`
}

// shortWindow and longWindow are the two forecast list sizes.
const (
	shortWindow = 4
	longWindow  = 9
)

// Window applies the forecast-window policy: optionally drop today, then
// truncate to the 4-day or 9-day view.
func Window(days []weather.ForecastDay, excludeToday, long bool, now time.Time) []weather.ForecastDay {
	today := now.Format("2006-01-02")

	out := make([]weather.ForecastDay, 0, len(days))
	for _, d := range days {
		if excludeToday && d.Date == today {
			continue
		}
		out = append(out, d)
	}

	limit := shortWindow
	if long {
		limit = longWindow
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CurrentHourIndex locates the hourly entry matching the current local
// hour, or -1 when no entry matches. The result drives the strip's
// scroll-to-center hint; it has no state implications.
func CurrentHourIndex(hours []weather.HourEntry, now time.Time) int {
	for i, h := range hours {
		t, err := time.Parse("2006-01-02 15:04", h.Time)
		if err != nil {
			continue
		}
		if t.Hour() == now.Hour() {
			return i
		}
	}
	return -1
}

// Build turns UI state into the render model.
func Build(s State, opts Options, now time.Time) Model {
	m := Model{
		Loading:    s.Loading,
		Notice:     s.Notice,
		UseCelsius: s.UseCelsius,
		LongWindow: s.LongWindow,
		ScrollTo:   -1,
		Theme:      theme.Default,
	}

	if s.Bundle == nil {
		return m
	}
	b := s.Bundle

	m.HasData = true
	m.Location = b.Location.Name
	m.Region = b.Location.Region
	m.Country = b.Location.Country
	m.Theme = theme.ForCondition(b.Current.Condition)

	m.Current = Current{
		Condition:   b.Current.Condition,
		Temperature: format.Temperature(b.Current.TempC, b.Current.TempF, s.UseCelsius),
		FeelsLike:   format.Celsius2(b.Current.FeelsC),
		Humidity:    b.Current.Humidity,
		WindKph:     b.Current.WindKph,
	}

	if len(b.Days) > 0 {
		today := b.Days[0]

		for _, h := range today.Hours {
			label, err := format.Hour12(h.Time)
			if err != nil {
				label = h.Time
			}
			m.Hourly = append(m.Hourly, Hour{
				Label:       label,
				Temperature: format.Temperature(h.TempC, h.TempF, s.UseCelsius),
				Condition:   h.Condition,
				Icon:        theme.ForCondition(h.Condition).Icon,
			})
		}
		if idx := CurrentHourIndex(today.Hours, now); idx >= 0 {
			m.ScrollTo = idx
			m.Hourly[idx].Current = true
		}

		for _, d := range Window(b.Days, opts.ExcludeToday, s.LongWindow, now) {
			label, err := format.DayLabel(d.Date)
			if err != nil {
				label = d.Date
			}
			dayOfMonth := ""
			if t, err := format.ParseDate(d.Date); err == nil {
				dayOfMonth = t.Format("02")
			}
			m.Forecast = append(m.Forecast, Day{
				Date:       d.Date,
				DayOfMonth: dayOfMonth,
				Label:      label,
				MaxTemp:    format.Temperature(d.MaxC, d.MaxF, s.UseCelsius),
				Condition:  d.Condition,
				Icon:       theme.ForCondition(d.Condition).Icon,
			})
		}

		m.Cards = Cards{
			Sunrise:    today.Sunrise,
			Sunset:     today.Sunset,
			MaxTemp:    format.Temperature(today.MaxC, today.MaxF, s.UseCelsius),
			MinTemp:    format.Temperature(today.MinC, today.MinF, s.UseCelsius),
			RainChance: today.RainChance,
			SnowChance: today.SnowChance,
			WindDegree: b.Current.WindDegree,
			WindDir:    b.Current.WindDir,
		}
	} else {
		// Current-only provider: the snapshot still carries today's min and
		// max, so the temperature card stays populated.
		m.Cards = Cards{
			MaxTemp:    format.Temperature(b.Current.MaxC, format.CelsiusToFahrenheit(b.Current.MaxC), s.UseCelsius),
			MinTemp:    format.Temperature(b.Current.MinC, format.CelsiusToFahrenheit(b.Current.MinC), s.UseCelsius),
			WindDegree: b.Current.WindDegree,
			WindDir:    b.Current.WindDir,
		}
	}

	return m
}
