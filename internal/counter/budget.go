package counter

// Budget tracks how many units remain for output. A Budget with a
// non-positive limit is unlimited.
type Budget struct {
	counter Counter
	limit   int
	used    int
}

// NewBudget creates a Budget of limit units measured by c.
func NewBudget(c Counter, limit int) *Budget {
	return &Budget{counter: c, limit: limit}
}

// Take reserves the units of text and reports whether they fit.
// Text that does not fit reserves nothing, so later shorter text may still fit.
func (b *Budget) Take(text string) bool {
	if b.limit <= 0 {
		return true
	}
	n := b.counter.Count(text)
	if b.used+n > b.limit {
		return false
	}
	b.used += n
	return true
}

// Used returns the units reserved so far.
func (b *Budget) Used() int {
	return b.used
}

// Exhausted reports whether no units remain.
func (b *Budget) Exhausted() bool {
	return b.limit > 0 && b.used >= b.limit
}
