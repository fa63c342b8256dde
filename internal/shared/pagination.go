package shared

// Pagination carries limit/offset parsed from list requests.
type Pagination struct {
	Limit  int
	Offset int
}

// Normalise clamps pagination to sane bounds.
func (p Pagination) Normalise(defaultLimit, maxLimit int) Pagination {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
