package models

import "time"

type Task struct {
	ID        int64
	Title     string
	IsDone    bool
	CreatedAt time.Time
}

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// ParseStatusFilter maps a raw query value to a filter. Anything other
// than the two recognized narrowing values behaves as "all".
func ParseStatusFilter(raw string) StatusFilter {
	switch StatusFilter(raw) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}
