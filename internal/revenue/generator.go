package revenue

import (
	"math/rand"
	"time"

	"revpulse.io/internal/ids"
)

// Generator produces randomized synthetic transactions. Category, description
// and amount are drawn uniformly from the fixed tier tables, so every output
// is internally consistent.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator seeds the random source. Seed 0 selects a wall-clock seed.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Next fabricates one transaction timestamped at now.
func (g *Generator) Next(now time.Time) Transaction {
	category := Categories[g.rnd.Intn(len(Categories))]
	table := tiers[category]
	return Transaction{
		ID:          ids.New(),
		CreatedAt:   now.UTC(),
		Category:    category,
		Description: table.descriptions[g.rnd.Intn(len(table.descriptions))],
		Amount:      table.amounts[g.rnd.Intn(len(table.amounts))],
	}
}

// Jitter draws a scheduling delay uniformly from [min, max).
func (g *Generator) Jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(g.rnd.Int63n(int64(max-min)))
}
