package engine

import (
	"fmt"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
)

// DepartmentResult describes an unlock or upgrade.
type DepartmentResult struct {
	Message      string   `json:"message"`
	Department   string   `json:"department"`
	Cost         float64  `json:"cost"`
	NewLevel     int      `json:"new_level"`
	Achievements []string `json:"new_achievements,omitempty"`
}

// UnlockDepartment opens a locked department at its flat setup cost.
func (e *Engine) UnlockDepartment(s *company.State, dept string) (*DepartmentResult, error) {
	key, ok := economy.ParseDepartment(dept)
	if !ok {
		return nil, invalidInput("unknown department %q", dept)
	}
	if s.DepartmentLevel(key) > 0 {
		return nil, invalidInput("department %s is already unlocked", key)
	}
	cost, _ := economy.UnlockCost(e.Tables, key)
	if s.Cash < cost {
		return nil, insufficient("not enough cash to unlock %s: need %s, have %s", key, money(cost), money(s.Cash))
	}

	s.Cash -= cost
	if s.Departments == nil {
		s.Departments = make(map[string]int, len(company.DepartmentKeys))
	}
	s.Departments[key] = 1

	return &DepartmentResult{
		Message:      fmt.Sprintf("%s unlocked for %s", key, money(cost)),
		Department:   key,
		Cost:         cost,
		NewLevel:     1,
		Achievements: e.evaluateAchievements(s),
	}, nil
}

// UpgradeDepartment raises an unlocked department by exactly one level.
func (e *Engine) UpgradeDepartment(s *company.State, dept string) (*DepartmentResult, error) {
	key, ok := economy.ParseDepartment(dept)
	if !ok {
		return nil, invalidInput("unknown department %q", dept)
	}
	level := s.DepartmentLevel(key)
	if level == 0 {
		return nil, invalidInput("department %s is not unlocked", key)
	}
	cost, _ := economy.UpgradeCost(e.Tables, key, level)
	if s.Cash < cost {
		return nil, insufficient("not enough cash to upgrade %s: need %s, have %s", key, money(cost), money(s.Cash))
	}

	s.Cash -= cost
	s.Departments[key] = level + 1

	return &DepartmentResult{
		Message:      fmt.Sprintf("%s upgraded to level %d for %s", key, level+1, money(cost)),
		Department:   key,
		Cost:         cost,
		NewLevel:     level + 1,
		Achievements: e.evaluateAchievements(s),
	}, nil
}
