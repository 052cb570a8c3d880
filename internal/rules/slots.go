package rules

import (
	"fmt"
	"strings"
)

// Well-known slot names.
const (
	SlotBench   = "BN"
	SlotNA      = "NA"
	SlotMinor   = "Minor"
	SlotUtility = "Util"
	SlotPitcher = "P"
)

// inactiveFamily holds the upper-cased slot names that do not count as active.
var inactiveFamily = map[string]bool{
	"NA":    true,
	"MINOR": true,
	"DL":    true,
	"IL":    true,
	"MN":    true,
}

// IsInactiveSlot reports whether the slot belongs to the NA/Minor family.
func IsInactiveSlot(slot string) bool {
	return inactiveFamily[strings.ToUpper(strings.TrimSpace(slot))]
}

// IsBenchSlot reports whether the slot is the bench.
func IsBenchSlot(slot string) bool {
	return strings.EqualFold(strings.TrimSpace(slot), SlotBench)
}

// IsStartingSlot reports whether the slot is a lineup slot (neither bench nor inactive).
func IsStartingSlot(slot string) bool {
	return slot != "" && !IsBenchSlot(slot) && !IsInactiveSlot(slot)
}

// SlotCapacity is one named roster bucket.
type SlotCapacity struct {
	Name     string `json:"slot"     yaml:"slot"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// SlotConfig is a league's ordered slot layout.
type SlotConfig []SlotCapacity

// Capacity returns the capacity configured for the slot, or 0 when absent.
func (c SlotConfig) Capacity(slot string) int {
	for _, s := range c {
		if s.Name == slot {
			return s.Capacity
		}
	}
	return 0
}

// Canonical returns the configured spelling of slot, matched case-insensitively.
// Unknown names come back unchanged.
func (c SlotConfig) Canonical(slot string) string {
	for _, s := range c {
		if strings.EqualFold(s.Name, slot) {
			return s.Name
		}
	}
	return slot
}

// Has reports whether the slot exists with a positive capacity.
func (c SlotConfig) Has(slot string) bool {
	return c.Capacity(slot) > 0
}

// TotalCapacity sums every slot.
func (c SlotConfig) TotalCapacity() int {
	total := 0
	for _, s := range c {
		total += s.Capacity
	}
	return total
}

// ActiveCapacity sums every slot outside the NA/Minor family.
func (c SlotConfig) ActiveCapacity() int {
	total := 0
	for _, s := range c {
		if !IsInactiveSlot(s.Name) {
			total += s.Capacity
		}
	}
	return total
}

// InactiveCapacity sums the NA/Minor family slots.
func (c SlotConfig) InactiveCapacity() int {
	return c.TotalCapacity() - c.ActiveCapacity()
}

// MinorSlot returns the league's name for its minor slot. "NA" or "Minor" wins over
// the injury slots of the same family, which only take the role when nothing else
// is configured; "NA" is the fallback.
func (c SlotConfig) MinorSlot() string {
	injury := ""
	for _, s := range c {
		if !IsInactiveSlot(s.Name) || s.Capacity <= 0 {
			continue
		}
		if strings.EqualFold(s.Name, SlotNA) || strings.EqualFold(s.Name, SlotMinor) {
			return s.Name
		}
		if injury == "" {
			injury = s.Name
		}
	}
	if injury != "" {
		return injury
	}
	return SlotNA
}

// Validate checks that names are unique and non-empty and capacities non-negative.
func (c SlotConfig) Validate() error {
	seen := make(map[string]bool, len(c))
	for _, s := range c {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("%w: slot name is required", ErrInvalidRequest)
		}
		if s.Capacity < 0 {
			return fmt.Errorf("%w: slot %s has negative capacity %d", ErrInvalidRequest, s.Name, s.Capacity)
		}
		if seen[name] {
			return fmt.Errorf("%w: slot %s is listed twice", ErrInvalidRequest, s.Name)
		}
		seen[name] = true
	}
	return nil
}

// Limits holds the league ceilings that are not expressed as slots.
// A nil limit is unbounded.
type Limits struct {
	ForeignerOnTeam *int
	ForeignerActive *int
	AllowDirectToNA bool
}

// League bundles everything the rules need to know about a league.
type League struct {
	Slots  SlotConfig
	Limits Limits
}
