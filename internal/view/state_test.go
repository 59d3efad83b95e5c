package view

import (
	"testing"

	"skycast/internal/weather"
)

func testBundle(city string) weather.Bundle {
	return weather.Bundle{
		Location: weather.Location{Name: city},
		Current:  weather.Snapshot{Condition: "Clear", TempC: 20.6, TempF: 69.08},
	}
}

// TestApply_InitialState tests the reset-on-reload defaults
func TestApply_InitialState(t *testing.T) {
	s := NewState("Mumbai")
	if !s.UseCelsius {
		t.Error("initial state should display Celsius")
	}
	if s.LongWindow {
		t.Error("initial state should use the short forecast window")
	}
	if s.Loading || s.Bundle != nil || s.Notice != "" {
		t.Errorf("initial state should be idle and empty: %+v", s)
	}
	if s.Query != "Mumbai" {
		t.Errorf("initial query = %q, want default city", s.Query)
	}
}

// TestApply_Toggles tests the unit and window flag transitions
func TestApply_Toggles(t *testing.T) {
	s := NewState("Mumbai")

	s = Apply(s, UnitToggled{})
	if s.UseCelsius {
		t.Error("UnitToggled should flip to Fahrenheit")
	}
	s = Apply(s, UnitToggled{})
	if !s.UseCelsius {
		t.Error("second UnitToggled should flip back to Celsius")
	}

	s = Apply(s, WindowToggled{})
	if !s.LongWindow {
		t.Error("WindowToggled should flip to the long window")
	}
}

// TestApply_FetchLifecycle tests the loading flag across start and completion
func TestApply_FetchLifecycle(t *testing.T) {
	s := NewState("Mumbai")

	s = Apply(s, FetchStarted{Seq: 1})
	if !s.Loading {
		t.Error("FetchStarted should assert the loading flag")
	}

	s = Apply(s, FetchSucceeded{Seq: 1, Bundle: testBundle("Mumbai")})
	if s.Loading {
		t.Error("FetchSucceeded should clear the loading flag")
	}
	if s.Bundle == nil || s.Bundle.Location.Name != "Mumbai" {
		t.Errorf("bundle not applied: %+v", s.Bundle)
	}
	if s.Location != "Mumbai" {
		t.Errorf("resolved location = %q, want Mumbai", s.Location)
	}
}

// TestApply_FetchFailedClearsBundle tests that a failed fetch never leaves
// a mix of stale data and a new error
func TestApply_FetchFailedClearsBundle(t *testing.T) {
	s := NewState("Mumbai")
	s = Apply(s, FetchStarted{Seq: 1})
	s = Apply(s, FetchSucceeded{Seq: 1, Bundle: testBundle("Mumbai")})

	s = Apply(s, FetchStarted{Seq: 2})
	s = Apply(s, FetchFailed{Seq: 2, Notice: "City not found"})

	if s.Bundle != nil {
		t.Error("FetchFailed should clear the previous bundle")
	}
	if s.Notice != "City not found" {
		t.Errorf("notice = %q, want %q", s.Notice, "City not found")
	}
	if s.Loading {
		t.Error("loading flag should be false after a failed fetch")
	}
}

// TestApply_NoticeIsTransient tests that the notice survives exactly one event
func TestApply_NoticeIsTransient(t *testing.T) {
	s := NewState("Mumbai")
	s = Apply(s, FetchStarted{Seq: 1})
	s = Apply(s, FetchFailed{Seq: 1, Notice: "City not found"})
	s = Apply(s, UnitToggled{})

	if s.Notice != "" {
		t.Errorf("notice should clear on the next event, got %q", s.Notice)
	}
}

// TestApply_StaleResponseDiscarded tests request-generation stamping: a
// response older than the newest accepted one never overwrites state
func TestApply_StaleResponseDiscarded(t *testing.T) {
	s := NewState("Mumbai")

	// Two overlapping fetches; the newer one resolves first.
	s = Apply(s, FetchStarted{Seq: 1})
	s = Apply(s, FetchStarted{Seq: 2})
	s = Apply(s, FetchSucceeded{Seq: 2, Bundle: testBundle("Pune")})

	if s.Loading {
		t.Error("newest response should clear the loading flag")
	}

	// The older response arrives late and must be discarded.
	s = Apply(s, FetchSucceeded{Seq: 1, Bundle: testBundle("Mumbai")})
	if s.Bundle.Location.Name != "Pune" {
		t.Errorf("stale response overwrote state: got %q, want Pune", s.Bundle.Location.Name)
	}

	// A stale failure must not clear the accepted data either.
	s = Apply(s, FetchFailed{Seq: 1, Notice: "City not found"})
	if s.Bundle == nil {
		t.Error("stale failure cleared the accepted bundle")
	}
	if s.Notice != "" {
		t.Errorf("stale failure raised a notice: %q", s.Notice)
	}
}

// TestApply_SearchSubmitted tests query recording
func TestApply_SearchSubmitted(t *testing.T) {
	s := NewState("Mumbai")
	s = Apply(s, SearchSubmitted{Query: "Reykjavik"})
	if s.Query != "Reykjavik" {
		t.Errorf("query = %q, want Reykjavik", s.Query)
	}
}
