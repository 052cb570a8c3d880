package rules

import "time"

// DateLayout is the calendar date format used for lineup and waiver dates.
const DateLayout = "2006-01-02"

// CheckMoveWindow reports whether a manual slot move is allowed right now.
//
// Moves for a date before today are always locked. For today, a player whose game has
// already started is locked while sitting in a starting slot; bench and inactive
// occupants stay movable. gameStart is nil when the player has no game that day.
// Calendar days are evaluated in loc, the league's timezone.
func CheckMoveWindow(now, selected time.Time, gameStart *time.Time, currentSlot string, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	today := calendarDay(now, loc)
	day := calendarDay(selected, loc)

	if day.Before(today) {
		return Reject(ErrMoveLocked, "selected date "+day.Format(DateLayout)+" is in the past")
	}

	if day.Equal(today) && gameStart != nil && !now.Before(*gameStart) && IsStartingSlot(currentSlot) {
		return Reject(ErrMoveLocked, "game started at "+gameStart.In(loc).Format(time.Kitchen)+" and player is in the lineup")
	}

	return nil
}

// ParseDate parses a calendar date in the league timezone.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, Reject(ErrInvalidRequest, "date must use YYYY-MM-DD")
	}
	return t, nil
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
