package revenue

import (
	"errors"
	"time"
)

// Amounts are represented in minor units (cents). No floats in stored state;
// derived projections and animation samples are float64 major units computed
// on read.

// Category classifies a synthetic transaction.
type Category string

const (
	CategorySubscription Category = "subscription"
	CategoryOneTime      Category = "one-time"
	CategoryEnterprise   Category = "enterprise"
)

// Categories lists every category in generation order.
var Categories = []Category{CategorySubscription, CategoryOneTime, CategoryEnterprise}

// Transaction is an immutable synthetic revenue event.
type Transaction struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"` // minor units
}

// tierTable pairs the fixed description and amount tiers of one category.
// Amount and description are always drawn from the same table, so every
// generated transaction is consistent with its category.
type tierTable struct {
	descriptions [4]string
	amounts      [4]int64
}

var tiers = map[Category]tierTable{
	CategorySubscription: {
		descriptions: [4]string{
			"Starter plan renewal",
			"Pro plan renewal",
			"Team plan renewal",
			"Business plan renewal",
		},
		amounts: [4]int64{999, 2999, 4999, 9999},
	},
	CategoryOneTime: {
		descriptions: [4]string{
			"Theme pack purchase",
			"Template bundle",
			"Priority support incident",
			"Add-on credit pack",
		},
		amounts: [4]int64{499, 1499, 2499, 4999},
	},
	CategoryEnterprise: {
		descriptions: [4]string{
			"Enterprise annual contract",
			"Enterprise onboarding package",
			"Custom SLA agreement",
			"Dedicated instance license",
		},
		amounts: [4]int64{49999, 99999, 249999, 499999},
	},
}

// Tiers exposes the fixed tables of a category for validation and display.
func Tiers(c Category) (descriptions []string, amounts []int64) {
	t, ok := tiers[c]
	if !ok {
		return nil, nil
	}
	return t.descriptions[:], t.amounts[:]
}

var (
	ErrInvalidAmount = errors.New("invalid amount (must be > 0)")
	ErrInvalidSeed   = errors.New("invalid seed (must be >= 0)")
	ErrInvalidConfig = errors.New("invalid simulation config")
)
