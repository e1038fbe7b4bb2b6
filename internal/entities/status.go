package entities

import "math"

// Reading status ids as seeded in the status table.
const (
	StatusUnread  int64 = 0
	StatusRead    int64 = 1
	StatusReading int64 = 2
	StatusTBR     int64 = 3
	StatusDNF     int64 = 99
)

var StatusNames = map[int64]string{
	StatusUnread:  "UNREAD",
	StatusRead:    "READ",
	StatusReading: "READING",
	StatusTBR:     "TBR",
	StatusDNF:     "DNF",
}

// ValidStatus reports whether id is one of the known reading statuses.
func ValidStatus(id int64) bool {
	_, ok := StatusNames[id]
	return ok
}

const (
	MinRating = 0.0
	MaxRating = 5.0
)

// ValidRating accepts half-star steps between MinRating and MaxRating.
func ValidRating(v float64) bool {
	if math.IsNaN(v) || v < MinRating || v > MaxRating {
		return false
	}
	_, frac := math.Modf(v * 2)
	return frac == 0
}
