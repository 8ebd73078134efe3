// Package model defines data structures for the trip-planning dialog.
package model

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Turn is a single transcript entry.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UIHint directs the front end to render a specific input control.
type UIHint struct {
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// DialogState is the per-session record threaded through every dialog turn.
// Zero values mark unresolved slots; a resolved slot is never overwritten.
type DialogState struct {
	Transcript []Turn  `json:"transcript"`
	LastInput  string  `json:"last_input"`
	UI         *UIHint `json:"ui,omitempty"`

	Name           string   `json:"name,omitempty"`
	Destination    string   `json:"destination,omitempty"`
	TripLengthDays int      `json:"trip_length_days,omitempty"`
	GroupSize      int      `json:"group_size,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	Preferences    []string `json:"preferences,omitempty"`
	Itinerary      []string `json:"itinerary,omitempty"`
}

// Clone returns a deep copy so a dialog step can build the next state
// without mutating the stored one.
func (s DialogState) Clone() DialogState {
	next := s
	next.Transcript = append([]Turn(nil), s.Transcript...)
	next.Preferences = append([]string(nil), s.Preferences...)
	next.Itinerary = append([]string(nil), s.Itinerary...)
	if s.UI != nil {
		ui := *s.UI
		ui.Options = append([]string(nil), s.UI.Options...)
		next.UI = &ui
	}
	return next
}

// LastAssistantReply returns the content of the newest assistant turn.
func (s DialogState) LastAssistantReply() string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == RoleAssistant {
			return s.Transcript[i].Content
		}
	}
	return ""
}

// DailyWeather is a per-day forecast summary in metric units.
// Temperature pointers are nil when the provider had no reading.
type DailyWeather struct {
	Date              string   `json:"date"`
	MinTemp           *float64 `json:"min_temp,omitempty"`
	MaxTemp           *float64 `json:"max_temp,omitempty"`
	PrecipProbPercent int      `json:"precip_prob_percent"`
}
