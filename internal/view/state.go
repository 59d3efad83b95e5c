// Package view owns the dashboard's UI state and turns fetched weather
// into the render model. State changes only through Apply, a pure
// reducer keyed by event type; nothing mutates the state from the side.
package view

import "skycast/internal/weather"

// State is the single UI-state object. The zero value plus DefaultCity is
// the initial state after a full reload.
type State struct {
	Query       string
	Location    string // last successfully resolved location name
	UseCelsius  bool
	LongWindow  bool
	Loading     bool
	Notice      string // transient user-visible notice, cleared on next event
	Bundle      *weather.Bundle
	IssuedSeq   uint64 // newest fetch sequence issued
	AcceptedSeq uint64 // newest fetch sequence whose result was applied
}

// NewState returns the initial state: Celsius display, short forecast
// window, no data.
func NewState(defaultCity string) State {
	return State{
		Query:      defaultCity,
		UseCelsius: true,
	}
}

// Event is a UI state transition request.
type Event interface{ isEvent() }

// SearchSubmitted records a new location query from the user.
type SearchSubmitted struct{ Query string }

// UnitToggled flips the Celsius/Fahrenheit display flag.
type UnitToggled struct{}

// WindowToggled flips the 4-day/9-day forecast window flag.
type WindowToggled struct{}

// FetchStarted marks a fetch in flight.
type FetchStarted struct{ Seq uint64 }

// FetchSucceeded delivers a fetched bundle.
type FetchSucceeded struct {
	Seq    uint64
	Bundle weather.Bundle
}

// FetchFailed delivers a fetch error notice. The live bundle is cleared;
// the dashboard never shows a mix of old data and a new error.
type FetchFailed struct {
	Seq    uint64
	Notice string
}

func (SearchSubmitted) isEvent() {}
func (UnitToggled) isEvent()     {}
func (WindowToggled) isEvent()   {}
func (FetchStarted) isEvent()    {}
func (FetchSucceeded) isEvent()  {}
func (FetchFailed) isEvent()     {}

// Apply returns the state after one event. Fetch results older than the
// newest accepted one are discarded, so overlapping in-flight requests
// cannot reorder the display.
func Apply(s State, e Event) State {
	s.Notice = ""

	switch ev := e.(type) {
	case SearchSubmitted:
		s.Query = ev.Query
	case UnitToggled:
		s.UseCelsius = !s.UseCelsius
	case WindowToggled:
		s.LongWindow = !s.LongWindow
	case FetchStarted:
		s.Loading = true
		if ev.Seq > s.IssuedSeq {
			s.IssuedSeq = ev.Seq
		}
	case FetchSucceeded:
		if ev.Seq < s.AcceptedSeq {
			return s // stale response, keep current data
		}
		s.AcceptedSeq = ev.Seq
		bundle := ev.Bundle
		s.Bundle = &bundle
		s.Location = bundle.Location.Name
		if ev.Seq >= s.IssuedSeq {
			s.Loading = false
		}
	case FetchFailed:
		if ev.Seq < s.AcceptedSeq {
			return s
		}
		s.AcceptedSeq = ev.Seq
		s.Bundle = nil
		s.Notice = ev.Notice
		if ev.Seq >= s.IssuedSeq {
			s.Loading = false
		}
	}
	return s
}
