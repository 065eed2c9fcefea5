package ports

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 500
)

// Page is an offset window over a listing.
type Page struct {
	Limit  int
	Offset int
}

// Normalized clamps the window to [1, MaxPageLimit] with DefaultPageLimit for zero.
func (p Page) Normalized() Page {
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultPageLimit
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
