// Package valuation grows a player's market value after a completed sale.
package valuation

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Source draws a uniform integer in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Policy bounds the growth percentage: a sale grows the value by a whole
// percentage drawn uniformly from [MinGrowthPct, MaxGrowthPct).
type Policy struct {
	MinGrowthPct int `yaml:"min_growth_pct"`
	MaxGrowthPct int `yaml:"max_growth_pct"`
}

// DefaultPolicy grows values by 10% up to (but excluding) 100%
func DefaultPolicy() Policy {
	return Policy{MinGrowthPct: 10, MaxGrowthPct: 100}
}

// Validate checks the policy describes a non-empty, non-negative range
func (p Policy) Validate() error {
	if p.MinGrowthPct < 0 {
		return fmt.Errorf("min_growth_pct must not be negative, got %d", p.MinGrowthPct)
	}
	if p.MaxGrowthPct <= p.MinGrowthPct {
		return fmt.Errorf("max_growth_pct (%d) must be greater than min_growth_pct (%d)", p.MaxGrowthPct, p.MinGrowthPct)
	}
	return nil
}

// Appreciator applies a growth Policy using an injected random Source
type Appreciator struct {
	policy Policy

	mu  sync.Mutex
	src Source
}

// NewAppreciator creates an Appreciator. A nil src uses the process-wide
// math/rand/v2 generator.
func NewAppreciator(policy Policy, src Source) (*Appreciator, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid valuation policy: %w", err)
	}
	if src == nil {
		src = globalSource{}
	}
	return &Appreciator{policy: policy, src: src}, nil
}

// Policy returns the growth bounds in use
func (a *Appreciator) Policy() Policy {
	return a.policy
}

// Appreciate returns current grown by a random whole percentage within the policy
func (a *Appreciator) Appreciate(current decimal.Decimal) decimal.Decimal {
	return Grow(current, a.drawPct())
}

func (a *Appreciator) drawPct() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.policy.MinGrowthPct + a.src.IntN(a.policy.MaxGrowthPct-a.policy.MinGrowthPct)
}

// Grow returns value + value*pct/100 without rounding
func Grow(value decimal.Decimal, pct int) decimal.Decimal {
	return value.Add(value.Mul(decimal.NewFromInt(int64(pct))).Div(hundred))
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}
