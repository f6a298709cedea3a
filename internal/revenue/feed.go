package revenue

// Feed is a bounded, newest-first log of recent transactions. Oldest entries
// are evicted once the capacity is exceeded. Pure data structure; the
// controller serializes access.
type Feed struct {
	capacity int
	items    []Transaction
}

// NewFeed creates an empty feed retaining at most capacity entries.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultConfig().FeedCapacity
	}
	return &Feed{capacity: capacity}
}

// Append inserts tx at the front, evicting from the back past capacity.
func (f *Feed) Append(tx Transaction) {
	f.items = append(f.items, Transaction{})
	copy(f.items[1:], f.items)
	f.items[0] = tx
	if len(f.items) > f.capacity {
		f.items = f.items[:f.capacity]
	}
}

// Snapshot returns a newest-first copy, never a live view.
func (f *Feed) Snapshot() []Transaction {
	return append([]Transaction(nil), f.items...)
}

// Len reports the retained entry count.
func (f *Feed) Len() int { return len(f.items) }
