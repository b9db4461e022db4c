package economy

import (
	"math"
	"strings"

	"github.com/talgya/task-tycoon/internal/company"
)

// ParseDepartment maps "eng", "engLevel", "ENG" and similar to a department
// key. The second result is false for unknown departments.
func ParseDepartment(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "level")
	switch n {
	case "eng", "engineering":
		return company.DeptEngineering, true
	case "rnd", "research", "r&d":
		return company.DeptResearch, true
	case "hr":
		return company.DeptHR, true
	case "sales":
		return company.DeptSales, true
	}
	return "", false
}

// UpgradeCost is the price of raising a department from currentLevel by one:
// UpgradeBase × UpgradeScaling^currentLevel.
func UpgradeCost(t Tables, dept string, currentLevel int) (float64, bool) {
	cfg, ok := t.Departments[dept]
	if !ok {
		return 0, false
	}
	return Round2(cfg.UpgradeBase * math.Pow(t.UpgradeScaling, float64(currentLevel))), true
}

// UnlockCost is the flat setup price of opening a department.
func UnlockCost(t Tables, dept string) (float64, bool) {
	cfg, ok := t.Departments[dept]
	if !ok {
		return 0, false
	}
	return cfg.Setup, true
}

// Efficiency is an employee's contribution multiplier.
type Efficiency struct {
	Base              float64 `json:"base_efficiency"`
	ExperienceBonus   float64 `json:"experience_bonus"`
	SatisfactionBonus float64 `json:"satisfaction_bonus"`
	Total             float64 `json:"total_efficiency"`
}

// EmployeeEfficiency rates an employee: 1.0 plus 0.1 per level of their
// department plus salary/1000 capped at 2.0. The total is not capped.
func EmployeeEfficiency(e company.Employee, s *company.State) Efficiency {
	base := 1.0
	experience := float64(s.DepartmentLevel(e.Department)) * 0.1
	satisfaction := math.Min(e.Salary/1000, 2.0)
	return Efficiency{
		Base:              base,
		ExperienceBonus:   experience,
		SatisfactionBonus: satisfaction,
		Total:             Round2(base + experience + satisfaction),
	}
}

// HiringCost prices a hire: the type's base cost scaled up 10% for every
// current employee. Unknown types use the general rate.
func HiringCost(t Tables, employeeType string, currentCount int) int {
	cfg, ok := t.EmployeeTypes[employeeType]
	if !ok {
		cfg = t.EmployeeTypes[DefaultEmployeeType]
	}
	scarcity := 1 + float64(currentCount)*t.HiringScarcity
	return int(cfg.HiringCost * scarcity)
}

// TrainingCost rises with the employee's current efficiency.
func TrainingCost(t Tables, currentEfficiency float64) int {
	return int(t.TrainingBaseCost * (1 + currentEfficiency/100))
}

// Severance is owed when an employee is let go.
func Severance(t Tables, salary float64) float64 {
	return salary * t.SeveranceRate
}

// MaxEmployees is the head-count cap for an HR level. No hiring without HR.
func MaxEmployees(hrLevel int) int {
	if hrLevel <= 0 {
		return 0
	}
	return hrLevel*3 + 2
}
