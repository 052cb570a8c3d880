package rules

import "strings"

// NoPositionLabel is shown when a player has no fielding position in the league.
// It is a display label only and never makes a player eligible for the minor slot.
const NoPositionLabel = "NA"

// defaultPositions is used when the catalog lists no positions for a player.
func defaultPositions(p Player) []string {
	if p.Type == PlayerTypePitcher {
		return []string{SlotPitcher}
	}
	return []string{SlotUtility}
}

// fieldingSlots returns the player's raw positions that exist in the league.
func fieldingSlots(p Player, slots SlotConfig) []string {
	positions := p.Positions
	if len(positions) == 0 {
		positions = defaultPositions(p)
	}

	result := make([]string, 0, len(positions))
	seen := make(map[string]bool, len(positions))
	for _, pos := range positions {
		pos = strings.TrimSpace(pos)
		if pos == "" || seen[pos] || IsInactiveSlot(pos) || IsBenchSlot(pos) {
			continue
		}
		if slots.Has(pos) {
			seen[pos] = true
			result = append(result, pos)
		}
	}
	return result
}

// EligibleSlots returns the slots the player may legally occupy, in display order:
// fielding positions first, then the bench, then the minor slot for non-major players.
func EligibleSlots(p Player, slots SlotConfig) []string {
	result := fieldingSlots(p, slots)
	if slots.Has(SlotBench) {
		result = append(result, SlotBench)
	}
	if p.Status != StatusMajor {
		if minor := slots.MinorSlot(); slots.Has(minor) {
			result = append(result, minor)
		}
	}
	return result
}

// IsEligible reports whether the player may occupy the slot.
func IsEligible(p Player, slots SlotConfig, slot string) bool {
	for _, s := range EligibleSlots(p, slots) {
		if s == slot {
			return true
		}
	}
	return false
}

// DisplayEligibility renders the player's fielding positions for listings.
func DisplayEligibility(p Player, slots SlotConfig) string {
	positions := fieldingSlots(p, slots)
	if len(positions) == 0 {
		return NoPositionLabel
	}
	return strings.Join(positions, ", ")
}
