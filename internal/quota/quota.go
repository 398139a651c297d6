// Package quota tracks the metered cost of Data API calls across one run.
package quota

import (
	"errors"
	"fmt"
	"sync"

	"vision/internal/logger"
)

// Unit costs per the Data API quota model. Every list call costs one unit
// regardless of page size; search is two orders of magnitude pricier.
const (
	CostList   = 1
	CostSearch = 100
)

// ErrBudgetExceeded is returned by Reserve once the run budget is spent.
var ErrBudgetExceeded = errors.New("quota: run budget exceeded")

// Accountant enforces a per-run quota budget and remembers when the remote
// side reported exhaustion. Once exhausted, non-essential calls (comment
// enrichment, roster API pulls) must not be issued; already collected data
// still flows to output.
type Accountant struct {
	mu        sync.Mutex
	budget    int // 0 = unlimited
	used      int
	exhausted bool
}

func New(budget int) *Accountant {
	return &Accountant{budget: budget}
}

// Reserve accounts units for one upcoming call. It fails when the local
// budget is spent or the remote API already reported over-limit.
func (a *Accountant) Reserve(units int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.exhausted {
		return fmt.Errorf("%w (remote reported over-limit)", ErrBudgetExceeded)
	}
	if a.budget > 0 && a.used+units > a.budget {
		logger.Warn("quota budget reached", "used", a.used, "budget", a.budget)
		return ErrBudgetExceeded
	}
	a.used += units
	return nil
}

// MarkExhausted records that the remote API rejected a call as over-limit.
func (a *Accountant) MarkExhausted() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.exhausted {
		logger.Warn("remote quota exhausted, switching to essential-only mode")
	}
	a.exhausted = true
}

// Exhausted reports whether further non-essential calls should be skipped.
func (a *Accountant) Exhausted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exhausted || (a.budget > 0 && a.used >= a.budget)
}

func (a *Accountant) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}
