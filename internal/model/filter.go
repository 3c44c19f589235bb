package model

import (
	"fmt"
	"strings"
)

// Filter is the status predicate applied to the list for display.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterPending
)

var filterNames = [...]string{"All", "Completed", "Pending"}

// Filters lists every filter in display order.
func Filters() []Filter { return []Filter{FilterAll, FilterCompleted, FilterPending} }

func (f Filter) String() string {
	if f < FilterAll || f > FilterPending {
		return fmt.Sprintf("Filter(%d)", int(f))
	}
	return filterNames[f]
}

// Next cycles All -> Completed -> Pending -> All.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(filterNames))
}

// Matches reports whether t passes the status predicate.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterPending:
		return !t.Completed
	default:
		return true
	}
}

// ParseFilter maps a case-insensitive name ("all", "completed", "pending")
// to a Filter. "done" is accepted for Completed.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "completed", "done":
		return FilterCompleted, nil
	case "pending":
		return FilterPending, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all|completed|pending)", s)
}
