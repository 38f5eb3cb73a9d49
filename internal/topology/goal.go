package topology

import (
	"fmt"
	"strings"
)

// Goal is the optimization objective a layout is scored and described against.
type Goal string

const (
	GoalLowLatency       Goal = "low_latency"
	GoalHighAvailability Goal = "high_availability"
	GoalLowCost          Goal = "low_cost"
)

// Goals lists the supported goals.
func Goals() []Goal {
	return []Goal{GoalLowLatency, GoalHighAvailability, GoalLowCost}
}

// Valid reports whether g is a supported goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalLowLatency, GoalHighAvailability, GoalLowCost:
		return true
	default:
		return false
	}
}

func (g Goal) String() string { return string(g) }

// ParseGoal accepts a supported goal or returns a ValidationError.
func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.TrimSpace(s))
	if !g.Valid() {
		return "", &ValidationError{Field: "goal", Reason: fmt.Sprintf("unsupported goal %q", s)}
	}
	return g, nil
}
