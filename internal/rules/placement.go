package rules

// AssignSlot decides where a newly added player lands. The player goes straight to the
// minor slot when they are not on a major-league roster, the league allows direct
// placement and that slot still has room in the projected roster; otherwise the bench.
//
// projected must be the roster as it will look after any drop that accompanies the add,
// so the answer changes when the caller picks a different drop.
func AssignSlot(p Player, projected []Occupant, slots SlotConfig, limits Limits) string {
	if p.Status == StatusMajor || !limits.AllowDirectToNA {
		return SlotBench
	}

	minor := slots.MinorSlot()
	if !slots.Has(minor) {
		return SlotBench
	}

	if SlotOccupancy(projected)[minor] < slots.Capacity(minor) {
		return minor
	}
	return SlotBench
}
