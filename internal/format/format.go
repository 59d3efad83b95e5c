// Package format holds the pure display-formatting helpers used by the
// dashboard view: 12-hour clock labels, abbreviated day labels and
// temperature strings.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// hourLayouts are the timestamp shapes the providers emit. WeatherAPI uses
// "2006-01-02 15:04" for hourly entries; the ISO form shows up in cached
// payloads and tests.
var hourLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Hour12 renders a provider timestamp as a 12-hour clock label, e.g.
// "2:30 PM". The timezone carried by the timestamp (if any) is respected;
// naive timestamps are treated as already local to the queried location,
// which is how the providers hand them out.
func Hour12(ts string) (string, error) {
	for _, layout := range hourLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("3:04 PM"), nil
		}
	}
	return "", fmt.Errorf("unrecognized timestamp %q", ts)
}

// dayLayouts cover both date orderings seen in the wild: ISO "YYYY-MM-DD"
// and the reversed "DD-MM-YYYY". ISO is tried first; a reversed date can
// never parse as ISO because its year lands in the day position.
var dayLayouts = []string{
	"2006-01-02",
	"02-01-2006",
}

// DayLabel renders a calendar date as a lower-cased weekday/month pair,
// e.g. "mon, jan". Input is normalized to a time.Time before formatting so
// callers never branch on string shape.
func DayLabel(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	weekday := strings.ToLower(t.Format("Mon"))
	month := strings.ToLower(t.Format("Jan"))
	return weekday + ", " + month, nil
}

// ParseDate normalizes a forecast date string to a time.Time, accepting
// both supported orderings.
func ParseDate(date string) (time.Time, error) {
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", date)
}

// Temperature renders the unit-toggled display string with no fractional
// part: Temperature(20.6, 69.08, true) == "21°c".
func Temperature(celsius, fahrenheit float64, useCelsius bool) string {
	if useCelsius {
		return fmt.Sprintf("%d°c", int(math.Round(celsius)))
	}
	return fmt.Sprintf("%d°f", int(math.Round(fahrenheit)))
}

// KelvinToCelsius converts an absolute temperature to Celsius.
func KelvinToCelsius(k float64) float64 {
	return k - 273.15
}

// CelsiusToFahrenheit converts a Celsius temperature to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// Celsius2 renders a Celsius value with two decimal places, the precision
// used where Kelvin-sourced temperatures are displayed.
func Celsius2(c float64) string {
	return fmt.Sprintf("%.2f", c)
}
