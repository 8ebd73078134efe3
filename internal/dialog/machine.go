// Package dialog implements the slot-filling state machine that drives the
// trip-planning conversation. Slots resolve in a fixed order; each Advance
// consumes one user utterance and appends exactly one assistant turn.
package dialog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/voyageplan/trip-planner/internal/model"
	"github.com/voyageplan/trip-planner/pkg/logger"
	"github.com/voyageplan/trip-planner/pkg/metrics"
)

// Planner produces the opening remark and day lines once all slots resolve.
type Planner interface {
	Plan(ctx context.Context, destination string, days, groupSize int, preferences []string, startDate string) (string, []string)
}

// Machine is the dialog state machine. It is stateless itself; all per-session
// state lives in the DialogState it is handed.
type Machine struct {
	planner           Planner
	preferenceOptions []string
	logger            *logger.Logger
}

// NewMachine creates a machine over the given planner. preferenceOptions is
// the fixed vocabulary offered to the front end at the preference stage.
func NewMachine(planner Planner, preferenceOptions []string, log *logger.Logger) *Machine {
	return &Machine{
		planner:           planner,
		preferenceOptions: preferenceOptions,
		logger:            log,
	}
}

// stage owns exactly one slot: resolved reports whether the slot is filled,
// run consumes the current utterance and returns the assistant reply. A run
// may instead report fall-through, handing the same invocation to the next
// unresolved stage (preferences flow straight into itinerary planning).
type stage struct {
	name     string
	resolved func(*model.DialogState) bool
	run      func(ctx context.Context, m *Machine, st *model.DialogState) (reply string, fallThrough bool)
}

var stages = []stage{
	{
		name:     "name",
		resolved: func(st *model.DialogState) bool { return st.Name != "" },
		run:      runName,
	},
	{
		name:     "destination",
		resolved: func(st *model.DialogState) bool { return st.Destination != "" },
		run:      runDestination,
	},
	{
		name:     "party",
		resolved: func(st *model.DialogState) bool { return st.TripLengthDays > 0 && st.GroupSize > 0 },
		run:      runParty,
	},
	{
		name:     "start_date",
		resolved: func(st *model.DialogState) bool { return st.StartDate != "" },
		run:      runStartDate,
	},
	{
		name:     "preferences",
		resolved: func(st *model.DialogState) bool { return len(st.Preferences) > 0 },
		run:      runPreferences,
	},
	{
		name:     "itinerary",
		resolved: func(st *model.DialogState) bool { return len(st.Itinerary) > 0 },
		run:      runItinerary,
	},
}

// Advance runs one dialog step. It is a pure function of the given state and
// utterance: the input state is never mutated, and identical inputs yield
// identical outputs (the itinerary step aside, whose content depends on the
// injected planner). The caller appends the human turn before invoking.
func (m *Machine) Advance(ctx context.Context, state model.DialogState, userText string) model.DialogState {
	next := state.Clone()
	next.LastInput = strings.TrimSpace(userText)
	next.UI = nil

	for _, sg := range stages {
		if sg.resolved(&next) {
			continue
		}

		reply, fallThrough := sg.run(ctx, m, &next)
		if fallThrough {
			continue
		}

		next.Transcript = append(next.Transcript, model.Turn{Role: model.RoleAssistant, Content: reply})
		metrics.DialogTurnsTotal.WithLabelValues(sg.name).Inc()
		m.logger.Debug("dialog turn handled", zap.String("stage", sg.name))
		return next
	}

	// Every slot resolved and the itinerary already delivered.
	next.Transcript = append(next.Transcript, model.Turn{
		Role:    model.RoleAssistant,
		Content: "Your itinerary is ready above. Start a new session to plan another trip.",
	})
	metrics.DialogTurnsTotal.WithLabelValues("complete").Inc()
	return next
}
