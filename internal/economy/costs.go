package economy

import (
	"math"
	"sort"

	"github.com/talgya/task-tycoon/internal/company"
)

// DailyCosts computes the day's operating costs: fixed overhead, upkeep of
// every unlocked department, and payroll, all scaled by the market cycle.
func DailyCosts(t Tables, s *company.State) company.CostBreakdown {
	base := 0.0
	// Sum in key order so the float result is stable.
	keys := make([]string, 0, len(t.BaseDailyCosts))
	for k := range t.BaseDailyCosts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		base += t.BaseDailyCosts[k]
	}

	dept := 0.0
	for _, key := range company.DepartmentKeys {
		level := s.DepartmentLevel(key)
		if level <= 0 {
			continue
		}
		if cfg, ok := t.Departments[key]; ok {
			dept += cfg.Daily * float64(level)
		}
	}

	payroll := 0.0
	for _, e := range s.Employees {
		payroll += e.Salary
	}

	modifier := MarketModifier(t, s.Day)

	return company.CostBreakdown{
		BaseCost:        base,
		DepartmentCosts: dept,
		EmployeeCosts:   payroll,
		MarketModifier:  modifier,
		TotalCost:       Round2((base + dept + payroll) * modifier),
	}
}

// MarketModifier is the cost multiplier for a day: a sine cycle over
// MarketPeriod days with amplitude MarketAmplitude, rounded to 3 decimals.
func MarketModifier(t Tables, day int) float64 {
	if t.MarketPeriod <= 0 {
		return 1
	}
	pos := float64(day%t.MarketPeriod) / float64(t.MarketPeriod)
	return Round3(1 + t.MarketAmplitude*math.Sin(2*math.Pi*pos))
}

// Round2 rounds half away from zero to 2 decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds half away from zero to 3 decimals.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round1 rounds half away from zero to 1 decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
