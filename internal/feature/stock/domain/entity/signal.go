package entity

import "time"

// Direction is the trend a signal was detected for.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionDrop Direction = "Drop"
	DirectionRise Direction = "Rise"
)

// Movement is the price change observed some bars after a signal.
// A zero Movement means the horizon lies beyond the available history.
type Movement struct {
	Direction Direction
	Percent   float64 // absolute change in percent, rounded to 2 decimals
}

// IsZero reports whether the movement could not be measured.
func (m Movement) IsZero() bool {
	return m.Direction == DirectionNone
}

// Signal is a detected 6% move together with its follow-up performance.
type Signal struct {
	Date        time.Time
	OneMonth    Movement
	ThreeMonths Movement
	HalfYear    Movement
}
