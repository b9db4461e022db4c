// Package engine provides the action processor: every player action as a
// transition over a company state, plus the Processor that loads, applies,
// and saves those transitions one at a time.
package engine

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/entropy"
)

// Clock supplies timestamps for task records and achievement unlocks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Engine applies actions to a state. It holds no game state of its own.
// Methods check every precondition before mutating, so a returned error
// means the state was not modified.
type Engine struct {
	Tables economy.Tables
	Rand   entropy.Source
	Clock  Clock
	Labor  *economy.LaborMarket // Optional; nil means a neutral market
}

// New creates an engine with the wall clock.
func New(tables economy.Tables, rnd entropy.Source, labor *economy.LaborMarket) *Engine {
	if rnd == nil {
		rnd = entropy.Crypto{}
	}
	return &Engine{
		Tables: tables,
		Rand:   rnd,
		Clock:  SystemClock{},
		Labor:  labor,
	}
}

func (e *Engine) timestamp() string {
	clock := e.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return clock.Now().UTC().Format(time.RFC3339)
}

// money formats an amount for messages, e.g. "1,234.5".
func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
