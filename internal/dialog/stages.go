package dialog

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/voyageplan/trip-planner/internal/model"
)

var digitRuns = regexp.MustCompile(`\d+`)

// extractNumbers returns every maximal decimal digit run in order.
func extractNumbers(text string) []int {
	var nums []int
	for _, run := range digitRuns.FindAllString(text, -1) {
		if n, err := strconv.Atoi(run); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

func runName(_ context.Context, _ *Machine, st *model.DialogState) (string, bool) {
	if st.LastInput == "" {
		return "Hi, please state your name.", false
	}
	st.Name = model.TitleCase(st.LastInput)
	return fmt.Sprintf("Hi %s, where are you planning to go on a trip?", st.Name), false
}

func runDestination(_ context.Context, _ *Machine, st *model.DialogState) (string, bool) {
	if st.LastInput == "" {
		return "Please tell the destination city or place.", false
	}
	st.Destination = model.TitleCase(st.LastInput)
	return fmt.Sprintf("Wow, %s is a nice place. How many days and people are going on the trip?", st.Destination), false
}

// runParty fills trip length and group size from the digit runs in the
// utterance. Two or more numbers map positionally; a single number goes to
// whichever slot is still open, length first.
func runParty(_ context.Context, _ *Machine, st *model.DialogState) (string, bool) {
	nums := extractNumbers(st.LastInput)
	switch {
	case len(nums) >= 2:
		st.TripLengthDays, st.GroupSize = nums[0], nums[1]
	case len(nums) == 1 && st.TripLengthDays == 0:
		st.TripLengthDays = nums[0]
	case len(nums) == 1 && st.GroupSize == 0:
		st.GroupSize = nums[0]
	}

	if st.TripLengthDays == 0 || st.GroupSize == 0 {
		return "Please specify trip length and group size, e.g., '5 days and 2 people'.", false
	}
	return "Great. What is the trip start date? Please provide in YYYY-MM-DD format.", false
}

func runStartDate(_ context.Context, m *Machine, st *model.DialogState) (string, bool) {
	if st.LastInput == "" {
		return "Please provide the trip start date in YYYY-MM-DD format.", false
	}
	// Accepted verbatim; the weather slicer parses it leniently downstream.
	st.StartDate = st.LastInput
	st.UI = m.preferenceHint()
	return "One last thing—select preferences from the checkboxes, then send.", false
}

// runPreferences parses the comma-separated selection. On success it falls
// through so the itinerary stage runs within the same invocation.
func runPreferences(_ context.Context, m *Machine, st *model.DialogState) (string, bool) {
	var chosen []string
	for _, token := range strings.Split(st.LastInput, ",") {
		if token = strings.TrimSpace(token); token != "" {
			chosen = append(chosen, strings.ToLower(token))
		}
	}

	if len(chosen) == 0 {
		st.UI = m.preferenceHint()
		return "Please select your preferences using the checkboxes.", false
	}

	st.Preferences = chosen
	return "", true
}

func runItinerary(ctx context.Context, m *Machine, st *model.DialogState) (string, bool) {
	opening, lines := m.planner.Plan(ctx, st.Destination, st.TripLengthDays, st.GroupSize, st.Preferences, st.StartDate)
	st.Itinerary = lines

	parts := append([]string{"That's great—planning your itinerary now.", opening}, lines...)
	return strings.Join(parts, "\n"), false
}

func (m *Machine) preferenceHint() *model.UIHint {
	return &model.UIHint{
		Type:    "preferences",
		Options: append([]string(nil), m.preferenceOptions...),
	}
}
