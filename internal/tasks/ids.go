package tasks

import "time"

// idGen hands out millisecond timestamps, bumped past the last issued id
// so two adds in the same millisecond (or a clock step back) never collide.
type idGen struct {
	now  func() time.Time
	last int64
}

func (g *idGen) next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// observe makes sure future ids are above id.
func (g *idGen) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
