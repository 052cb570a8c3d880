package rules

// Occupant is a player together with the slot they hold on a roster.
type Occupant struct {
	Player Player
	Slot   string
}

// IsActive reports whether the occupant counts against the active roster.
func (o Occupant) IsActive() bool {
	return !IsInactiveSlot(o.Slot)
}

// Summary holds the aggregate counts of a roster and their ceilings.
type Summary struct {
	TotalCount           int  `json:"total_count"`
	TotalCapacity        int  `json:"total_capacity"`
	ActiveCount          int  `json:"active_count"`
	ActiveCapacity       int  `json:"active_capacity"`
	InactiveCount        int  `json:"inactive_count"`
	InactiveCapacity     int  `json:"inactive_capacity"`
	ForeignerCount       int  `json:"foreigner_count"`
	ForeignerLimit       *int `json:"foreigner_limit,omitempty"`
	ActiveForeignerCount int  `json:"active_foreigner_count"`
	ActiveForeignerLimit *int `json:"active_foreigner_limit,omitempty"`
}

// Project builds a hypothetical roster: base minus the removed player ids plus the
// added occupants. Added occupants without a slot land on the bench.
func Project(base []Occupant, removed []string, added []Occupant) []Occupant {
	drop := make(map[string]bool, len(removed))
	for _, id := range removed {
		drop[id] = true
	}

	result := make([]Occupant, 0, len(base)+len(added))
	for _, o := range base {
		if !drop[o.Player.ID] {
			result = append(result, o)
		}
	}
	for _, o := range added {
		if o.Slot == "" {
			o.Slot = SlotBench
		}
		result = append(result, o)
	}
	return result
}

// Summarize counts a roster against the league configuration.
func Summarize(roster []Occupant, slots SlotConfig, limits Limits) Summary {
	s := Summary{
		TotalCapacity:        slots.TotalCapacity(),
		ActiveCapacity:       slots.ActiveCapacity(),
		InactiveCapacity:     slots.InactiveCapacity(),
		ForeignerLimit:       limits.ForeignerOnTeam,
		ActiveForeignerLimit: limits.ForeignerActive,
	}

	for _, o := range roster {
		s.TotalCount++
		active := o.IsActive()
		if active {
			s.ActiveCount++
		} else {
			s.InactiveCount++
		}
		if o.Player.IsForeigner() {
			s.ForeignerCount++
			if active {
				s.ActiveForeignerCount++
			}
		}
	}
	return s
}

// SlotOccupancy counts occupants per slot name.
func SlotOccupancy(roster []Occupant) map[string]int {
	counts := make(map[string]int)
	for _, o := range roster {
		counts[o.Slot]++
	}
	return counts
}
