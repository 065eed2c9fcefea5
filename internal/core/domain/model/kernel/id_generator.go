package kernel

// IDGenerator produces identifiers for new aggregates, child entities and events.
type IDGenerator interface {
	NewID() UUID
}

// RandomIDGenerator issues random version 4 UUIDs.
type RandomIDGenerator struct{}

func (RandomIDGenerator) NewID() UUID {
	return NewUUID()
}

// SequenceIDGenerator replays a fixed list of identifiers and then falls back
// to random ones. It exists for deterministic tests and fixtures.
type SequenceIDGenerator struct {
	ids  []UUID
	next int
}

func NewSequenceIDGenerator(ids ...UUID) *SequenceIDGenerator {
	return &SequenceIDGenerator{ids: ids}
}

func (g *SequenceIDGenerator) NewID() UUID {
	if g.next < len(g.ids) {
		id := g.ids[g.next]
		g.next++
		return id
	}
	return NewUUID()
}
