package domain

import "time"

// Record is one surfaced conversion. Records are append-only,
// most-recent-last, and live only as long as the interactive session.
type Record struct {
	ID     string
	Input  float64
	From   string
	To     string
	Result float64
	At     time.Time
}
