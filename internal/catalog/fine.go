package catalog

import "time"

const (
	DefaultFreeDays   = 14
	DefaultFinePerDay = 500
)

// FinePolicy charges PerDay for every whole day beyond FreeDays.
type FinePolicy struct {
	FreeDays int
	PerDay   int
}

func DefaultFinePolicy() FinePolicy {
	return FinePolicy{FreeDays: DefaultFreeDays, PerDay: DefaultFinePerDay}
}

// Fine returns the amount owed for a book borrowed at borrowedAt and returned at now.
// Clock skew that puts borrowedAt in the future still counts as elapsed days.
func (p FinePolicy) Fine(borrowedAt, now time.Time) int {
	days := ElapsedDays(borrowedAt, now)
	if days > p.FreeDays {
		return (days - p.FreeDays) * p.PerDay
	}
	return 0
}

// ElapsedDays is the absolute distance between two instants in whole days.
func ElapsedDays(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
