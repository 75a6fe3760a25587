package schedule

import (
	"time"

	"github.com/navikt/mrooms/internal/models"
)

// RoomIsAvailable reports whether the room has no booking conflicting with
// the candidate window. Bookings on other days never conflict. On the same
// day a booking conflicts when the windows overlap or touch, which keeps a
// gap of at least one hour between any two one-hour slots in a room.
func RoomIsAvailable(room *models.Room, start, end time.Time) bool {
	for _, m := range room.Meetings {
		if !sameDay(m.StartTime, start) {
			continue
		}
		if !start.After(m.EndTime) && !m.StartTime.After(end) {
			return false
		}
	}
	return true
}

// MinCapacityFor returns the smallest room capacity that keeps the attendee
// count at or below 70% of capacity, i.e. ceil(attendees / 0.7).
func MinCapacityFor(attendees int) int {
	return (attendees*10 + 6) / 7
}
