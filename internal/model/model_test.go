package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"":          FilterAll,
		"All":       FilterAll,
		"COMPLETED": FilterCompleted,
		"done":      FilterCompleted,
		" pending ": FilterPending,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilter("later")
	assert.Error(t, err)
}

func TestFilterNextCycles(t *testing.T) {
	assert.Equal(t, FilterCompleted, FilterAll.Next())
	assert.Equal(t, FilterPending, FilterCompleted.Next())
	assert.Equal(t, FilterAll, FilterPending.Next())
	assert.Equal(t, "Pending", FilterPending.String())
}

func TestFilterMatches(t *testing.T) {
	done := Task{ID: 1, Text: "a", Completed: true}
	open := Task{ID: 2, Text: "b"}

	assert.True(t, FilterAll.Matches(done))
	assert.True(t, FilterAll.Matches(open))
	assert.True(t, FilterCompleted.Matches(done))
	assert.False(t, FilterCompleted.Matches(open))
	assert.True(t, FilterPending.Matches(open))
	assert.False(t, FilterPending.Matches(done))
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, MatchesSearch("Buy Milk", "milk"))
	assert.True(t, MatchesSearch("Buy Milk", "MILK"))
	assert.True(t, MatchesSearch("Buy Milk", ""))
	assert.False(t, MatchesSearch("Buy Milk", "bread"))
}

func TestCountTasks(t *testing.T) {
	c := CountTasks([]Task{{ID: 1, Completed: true}, {ID: 2}, {ID: 3}})
	assert.Equal(t, Counts{Total: 3, Completed: 1, Pending: 2}, c)
	assert.Equal(t, c.Total, c.Completed+c.Pending)
}
