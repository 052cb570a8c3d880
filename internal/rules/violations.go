package rules

import (
	"fmt"
	"strings"
)

// ViolationKind names the ceiling a roster breached.
type ViolationKind string

// ViolationKind values, listed in the order Check reports them.
const (
	ViolationForeignerOnTeam ViolationKind = "foreigner_on_team"
	ViolationForeignerActive ViolationKind = "foreigner_active"
	ViolationTotal           ViolationKind = "total"
	ViolationActive          ViolationKind = "active"
)

// Violation describes one breached ceiling.
type Violation struct {
	Kind      ViolationKind `json:"kind"`
	Attempted int           `json:"attempted"`
	Limit     int           `json:"limit"`
	Message   string        `json:"message"`
}

// String returns the user-facing message.
func (v Violation) String() string {
	return v.Message
}

// Change is a hypothetical mutation of one roster.
type Change struct {
	// Removed holds the ids of players leaving the roster.
	Removed []string
	// Added holds the players joining the roster with their target slots.
	// An empty slot means the bench.
	Added []Occupant
}

// Check evaluates the roster that results from applying change to base and returns
// every breached ceiling. Checks always run in the same order and never short-circuit:
// foreigner on-team, foreigner active, total, active. An empty result means legal.
func Check(base []Occupant, change Change, slots SlotConfig, limits Limits) []Violation {
	removed := make(map[string]bool, len(change.Removed))
	for _, id := range change.Removed {
		removed[id] = true
	}

	foreignerDelta, activeDelta := 0, 0
	for _, o := range base {
		if !removed[o.Player.ID] {
			continue
		}
		if o.Player.IsForeigner() {
			foreignerDelta--
		}
		if o.IsActive() {
			activeDelta--
		}
	}

	added := make([]Occupant, 0, len(change.Added))
	addsActiveForeigner := false
	for _, o := range change.Added {
		if o.Slot == "" {
			o.Slot = SlotBench
		}
		if o.Player.IsForeigner() {
			foreignerDelta++
			if o.IsActive() {
				addsActiveForeigner = true
			}
		}
		if o.IsActive() {
			activeDelta++
		}
		added = append(added, o)
	}

	future := Summarize(Project(base, change.Removed, added), slots, limits)
	violations := make([]Violation, 0)

	if foreignerDelta > 0 && limits.ForeignerOnTeam != nil && future.ForeignerCount > *limits.ForeignerOnTeam {
		violations = append(violations, Violation{
			Kind:      ViolationForeignerOnTeam,
			Attempted: future.ForeignerCount,
			Limit:     *limits.ForeignerOnTeam,
			Message:   fmt.Sprintf("Foreigner On-Team Limit Exceeded (Limit: %d)", *limits.ForeignerOnTeam),
		})
	}

	if addsActiveForeigner && limits.ForeignerActive != nil && future.ActiveForeignerCount > *limits.ForeignerActive {
		violations = append(violations, Violation{
			Kind:      ViolationForeignerActive,
			Attempted: future.ActiveForeignerCount,
			Limit:     *limits.ForeignerActive,
			Message:   fmt.Sprintf("Foreigner Active Limit Exceeded (Limit: %d)", *limits.ForeignerActive),
		})
	}

	if future.TotalCount > future.TotalCapacity {
		violations = append(violations, Violation{
			Kind:      ViolationTotal,
			Attempted: future.TotalCount,
			Limit:     future.TotalCapacity,
			Message:   fmt.Sprintf("Total Players: %d/%d", future.TotalCount, future.TotalCapacity),
		})
	}

	if activeDelta > 0 && future.ActiveCount > future.ActiveCapacity {
		violations = append(violations, Violation{
			Kind:      ViolationActive,
			Attempted: future.ActiveCount,
			Limit:     future.ActiveCapacity,
			Message:   fmt.Sprintf("Active Players: %d/%d", future.ActiveCount, future.ActiveCapacity),
		})
	}

	return violations
}

// JoinViolations renders violations as one line.
func JoinViolations(violations []Violation) string {
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.Message)
	}
	return strings.Join(messages, "; ")
}
