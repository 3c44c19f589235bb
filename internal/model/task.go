package model

import "strings"

// Task is the domain model for a todo entry.
// ID never changes once the task exists.
type Task struct {
	ID        int64  `json:"id" cbor:"id"`
	Text      string `json:"text" cbor:"text"`
	Completed bool   `json:"completed" cbor:"completed"`
}

// Counts summarizes the full, unfiltered list.
type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// CountTasks derives Counts from a task sequence.
func CountTasks(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

// MatchesSearch reports whether text contains term, ignoring case.
// An empty term matches everything.
func MatchesSearch(text, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}
