package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/talgya/task-tycoon/internal/company"
)

// Store loads and saves the company document.
type Store interface {
	Load(ctx context.Context) (*company.State, error)
	Save(ctx context.Context, s *company.State) error
}

// Processor runs actions against a Store. Each action is load → apply to a
// copy → save under one lock, so concurrent requests cannot interleave and
// a failed action never reaches the store.
type Processor struct {
	store  Store
	engine *Engine
	mu     sync.Mutex
}

// NewProcessor creates a processor.
func NewProcessor(store Store, eng *Engine) *Processor {
	return &Processor{store: store, engine: eng}
}

// Engine returns the engine the processor applies actions with.
func (p *Processor) Engine() *Engine {
	return p.engine
}

// apply loads the document, runs fn on a copy, and saves the copy when fn
// succeeds.
func (p *Processor) apply(ctx context.Context, fn func(s *company.State) error) (*company.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	current, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	if err := p.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return next, nil
}

// ExecuteTask runs a task and saves the result.
func (p *Processor) ExecuteTask(ctx context.Context, taskType string) (*TaskResult, *company.State, error) {
	var res *TaskResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.ExecuteTask(s, taskType)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("task executed", "type", taskType, "reward", money(res.Record.Reward),
		"event", res.Record.Event, "energy", s.Energy, "cash", money(s.Cash))
	return res, s, nil
}

// EndDay closes the day and saves the result.
func (p *Processor) EndDay(ctx context.Context) (*DayResult, *company.State, error) {
	var res *DayResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.EndDay(s)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	sum := res.Summary
	slog.Info("day ended", "day", sum.Day, "costs", money(sum.Costs.TotalCost),
		"cash", money(s.Cash), "health", sum.FinancialHealth.Status, "level_up", sum.LevelUp)
	if sum.Bankrupt {
		slog.Warn("company out of cash", "day", sum.Day, "penalty", money(sum.BankruptcyPenalty))
	}
	return res, s, nil
}

// UnlockDepartment opens a department and saves the result.
func (p *Processor) UnlockDepartment(ctx context.Context, dept string) (*DepartmentResult, *company.State, error) {
	var res *DepartmentResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.UnlockDepartment(s, dept)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("department unlocked", "department", res.Department, "cost", money(res.Cost))
	return res, s, nil
}

// UpgradeDepartment raises a department one level and saves the result.
func (p *Processor) UpgradeDepartment(ctx context.Context, dept string) (*DepartmentResult, *company.State, error) {
	var res *DepartmentResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.UpgradeDepartment(s, dept)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("department upgraded", "department", res.Department, "level", res.NewLevel, "cost", money(res.Cost))
	return res, s, nil
}

// HireEmployee hires an employee of the given type and saves the result.
func (p *Processor) HireEmployee(ctx context.Context, employeeType string) (*HireResult, *company.State, error) {
	var res *HireResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.HireEmployee(s, employeeType)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("employee hired", "id", res.Employee.ID, "type", res.Employee.Type, "cost", res.HiringCost)
	return res, s, nil
}

// AddEmployee adds a named employee at a given salary and saves the result.
func (p *Processor) AddEmployee(ctx context.Context, name, role string, salary float64) (*AddResult, *company.State, error) {
	var res *AddResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.AddEmployee(s, name, role, salary)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("employee added", "id", res.Employee.ID, "role", res.Employee.Type, "salary", res.UpfrontSalary)
	return res, s, nil
}

// TrainEmployee trains an employee and saves the result.
func (p *Processor) TrainEmployee(ctx context.Context, id string) (*TrainResult, *company.State, error) {
	var res *TrainResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.TrainEmployee(s, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("employee trained", "id", id, "gain", res.EfficiencyGain, "skill", res.NewSkill)
	return res, s, nil
}

// FireEmployee dismisses an employee and saves the result.
func (p *Processor) FireEmployee(ctx context.Context, id string) (*FireResult, *company.State, error) {
	var res *FireResult
	s, err := p.apply(ctx, func(s *company.State) error {
		var err error
		res, err = p.engine.FireEmployee(s, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	slog.Info("employee fired", "id", id, "severance", money(res.SeverancePay))
	return res, s, nil
}

// State returns the stored document.
func (p *Processor) State(ctx context.Context) (*company.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, err := p.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return s, nil
}

// Candidates lists job seekers for the current state.
func (p *Processor) Candidates(ctx context.Context) ([]Candidate, error) {
	s, err := p.State(ctx)
	if err != nil {
		return nil, err
	}
	return p.engine.Candidates(s), nil
}

// Replace overwrites the stored document with s after normalizing it.
func (p *Processor) Replace(ctx context.Context, s *company.State) (*company.State, error) {
	if s == nil {
		return nil, invalidInput("no state document given")
	}
	next := s.Clone()
	company.Normalize(next)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	slog.Info("state replaced", "day", next.Day, "cash", money(next.Cash))
	return next, nil
}

// Reset replaces the stored document with a fresh company.
func (p *Processor) Reset(ctx context.Context) (*company.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := company.NewState()
	if err := p.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("reset state: %w", err)
	}
	slog.Info("state reset")
	return s, nil
}

// History returns the last n day summaries, oldest first. n <= 0 returns
// them all.
func (p *Processor) History(ctx context.Context, n int) ([]company.DaySummary, error) {
	s, err := p.State(ctx)
	if err != nil {
		return nil, err
	}
	return LastDays(s, n), nil
}

// LastDays returns the last n day summaries of s, oldest first.
func LastDays(s *company.State, n int) []company.DaySummary {
	days := s.DayHistory
	if n > 0 && n < len(days) {
		days = days[len(days)-n:]
	}
	out := make([]company.DaySummary, len(days))
	copy(out, days)
	return out
}
