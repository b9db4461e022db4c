// Package report builds read-only views of a company state: the dashboard,
// cash-flow predictions with recommendations, staff and department
// overviews, and the achievement list. Nothing here mutates the state.
package report

import (
	"math"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
)

// Department status labels.
const (
	StatusActive = "active"
	StatusLocked = "locked"
)

// Dashboard is the full company overview.
type Dashboard struct {
	FinancialOverview   FinancialOverview         `json:"financial_overview"`
	DepartmentStats     map[string]DepartmentStat `json:"department_stats"`
	EmployeeStats       EmployeeStats             `json:"employee_stats"`
	TaskPerformance     TaskPerformance           `json:"task_performance"`
	CompanyValuation    Valuation                 `json:"company_valuation"`
	DailyCostsBreakdown company.CostBreakdown     `json:"daily_costs_breakdown"`
	GameStats           GameStats                 `json:"game_stats"`
}

type FinancialOverview struct {
	CurrentCash          float64                 `json:"current_cash"`
	DailyIncomePotential float64                 `json:"daily_income_potential"`
	DailyExpenses        float64                 `json:"daily_expenses"`
	NetDailyFlow         float64                 `json:"net_daily_flow"`
	FinancialHealth      company.FinancialHealth `json:"financial_health"`
	RunwayDays           float64                 `json:"runway_days"`
}

type DepartmentStat struct {
	Level     int     `json:"level"`
	Value     float64 `json:"value"` // Setup plus upgrades paid so far
	DailyCost float64 `json:"daily_cost"`
	Status    string  `json:"status"`
}

type EmployeeStats struct {
	TotalEmployees  int     `json:"total_employees"`
	MaxEmployees    int     `json:"max_employees"`
	TotalSalaries   float64 `json:"total_salaries"`
	EfficiencyBonus float64 `json:"efficiency_bonus"`
}

type TaskPerformance struct {
	CompletedTasks    int     `json:"completed_tasks"`
	SuccessRate       float64 `json:"success_rate"`
	AverageReward     float64 `json:"average_reward"`
	BreakthroughCount int     `json:"breakthrough_count"`
}

type Valuation struct {
	TotalAssets     float64 `json:"total_assets"`
	DepartmentValue float64 `json:"department_value"`
	LiquidAssets    float64 `json:"liquid_assets"`
	GrowthRate      float64 `json:"growth_rate"`
}

type GameStats struct {
	CurrentDay int `json:"current_day"`
	Level      int `json:"level"`
	Energy     int `json:"energy"`
	MaxEnergy  int `json:"max_energy"`
	Experience int `json:"experience"`
}

// BuildDashboard summarizes s under the balance tables t.
func BuildDashboard(t economy.Tables, s *company.State) Dashboard {
	costs := economy.DailyCosts(t, s)
	health := economy.FinancialHealth(t, s)
	income := EstimateDailyIncome(s)

	deptStats := make(map[string]DepartmentStat, len(company.DepartmentKeys))
	deptValue := 0.0
	for _, key := range company.DepartmentKeys {
		stat := departmentStat(t, s, key)
		deptStats[key] = stat
		deptValue += stat.Value
	}

	return Dashboard{
		FinancialOverview: FinancialOverview{
			CurrentCash:          s.Cash,
			DailyIncomePotential: income,
			DailyExpenses:        costs.TotalCost,
			NetDailyFlow:         economy.Round2(income - costs.TotalCost),
			FinancialHealth:      health,
			RunwayDays:           health.DaysOfRunway,
		},
		DepartmentStats: deptStats,
		EmployeeStats: EmployeeStats{
			TotalEmployees:  len(s.Employees),
			MaxEmployees:    economy.MaxEmployees(s.DepartmentLevel(company.DeptHR)),
			TotalSalaries:   totalSalaries(s),
			EfficiencyBonus: TeamEfficiency(s),
		},
		TaskPerformance: TaskPerformance{
			CompletedTasks:    s.CompletedTasks,
			SuccessRate:       SuccessRate(s),
			AverageReward:     AverageReward(s),
			BreakthroughCount: s.Breakthroughs,
		},
		CompanyValuation: Valuation{
			TotalAssets:     economy.Round2(s.Cash + deptValue),
			DepartmentValue: deptValue,
			LiquidAssets:    s.Cash,
			GrowthRate:      GrowthRate(s),
		},
		DailyCostsBreakdown: costs,
		GameStats: GameStats{
			CurrentDay: s.Day,
			Level:      s.Level,
			Energy:     s.Energy,
			MaxEnergy:  s.MaxEnergy,
			Experience: s.XP,
		},
	}
}

func departmentStat(t economy.Tables, s *company.State, key string) DepartmentStat {
	level := s.DepartmentLevel(key)
	cfg := t.Departments[key]
	stat := DepartmentStat{
		Level:     level,
		DailyCost: cfg.Daily * float64(max(1, level)),
		Status:    StatusLocked,
	}
	if level > 0 {
		stat.Status = StatusActive
		stat.Value = DepartmentValue(t, key, level)
	}
	return stat
}

// DepartmentValue is what has been spent to bring a department to level:
// the setup cost plus every upgrade from level 1.
func DepartmentValue(t economy.Tables, key string, level int) float64 {
	if level <= 0 {
		return 0
	}
	value, _ := economy.UnlockCost(t, key)
	for i := 1; i < level; i++ {
		cost, _ := economy.UpgradeCost(t, key, i)
		value += cost
	}
	return economy.Round2(value)
}

// EstimateDailyIncome is a rough daily earning potential: 100 plus 50 per
// engineering level, 75 per sales level, and 25 per employee.
func EstimateDailyIncome(s *company.State) float64 {
	return float64(100 +
		s.DepartmentLevel(company.DeptEngineering)*50 +
		s.DepartmentLevel(company.DeptSales)*75 +
		len(s.Employees)*25)
}

// TeamEfficiency is the average employee efficiency above 50, as a
// fraction. 0 without staff.
func TeamEfficiency(s *company.State) float64 {
	if len(s.Employees) == 0 {
		return 0
	}
	return (averageEfficiency(s) - 50) / 100
}

// SuccessRate is the percentage of tasks that completed; 100 before any.
func SuccessRate(s *company.State) float64 {
	total := s.CompletedTasks + s.FailedTasks
	if total == 0 {
		return 100
	}
	return float64(s.CompletedTasks) / float64(total) * 100
}

// AverageReward is the mean base reward over the task history.
func AverageReward(s *company.State) float64 {
	if len(s.TaskHistory) == 0 {
		return 0
	}
	total := 0.0
	for _, rec := range s.TaskHistory {
		total += rec.Reward
	}
	return economy.Round2(total / float64(len(s.TaskHistory)))
}

// GrowthRate scores expansion: 20 per open department and 5 per employee,
// capped at 100.
func GrowthRate(s *company.State) float64 {
	return math.Min(100, float64(s.UnlockedDepartments()*20+len(s.Employees)*5))
}

func totalSalaries(s *company.State) float64 {
	total := 0.0
	for _, e := range s.Employees {
		total += e.Salary
	}
	return total
}

func averageEfficiency(s *company.State) float64 {
	if len(s.Employees) == 0 {
		return 0
	}
	total := 0.0
	for _, e := range s.Employees {
		total += e.Efficiency
	}
	return total / float64(len(s.Employees))
}
