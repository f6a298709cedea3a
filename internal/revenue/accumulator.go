package revenue

// Accumulator holds the running revenue total in minor units. The total is
// monotonically non-decreasing: every mutation either adds the fixed tick
// increment or a validated positive transaction amount.
type Accumulator struct {
	total     int64
	increment int64
}

// NewAccumulator seeds the total. The increment is applied on every Tick.
func NewAccumulator(seed, increment int64) (*Accumulator, error) {
	if seed < 0 {
		return nil, ErrInvalidSeed
	}
	if increment <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Accumulator{total: seed, increment: increment}, nil
}

// Tick applies one per-interval increment. Missed ticks during a pause are
// never replayed.
func (a *Accumulator) Tick() {
	a.total += a.increment
}

// Apply adds a transaction amount to the total. Non-positive amounts are
// rejected so the total can never decrease.
func (a *Accumulator) Apply(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.total += amount
	return nil
}

// Total returns the settled total in minor units.
func (a *Accumulator) Total() int64 { return a.total }

// TotalMajor returns the settled total in major units.
func (a *Accumulator) TotalMajor() float64 { return float64(a.total) / 100 }

// DerivedMetrics are presentation-only projections of the total. They are
// computed on read and never tracked independently.
type DerivedMetrics struct {
	Today     float64 `json:"today"`
	Month     float64 `json:"month"`
	AvgPerDay float64 `json:"avg_per_day"`
}

// Derived projects the current total into the dashboard's side metrics.
func (a *Accumulator) Derived() DerivedMetrics {
	major := a.TotalMajor()
	month := major * 0.41
	return DerivedMetrics{
		Today:     major * 0.032,
		Month:     month,
		AvgPerDay: month / 30,
	}
}
