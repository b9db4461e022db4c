package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
)

func staffedState() *company.State {
	s := company.NewState()
	s.Departments[company.DeptEngineering] = 2
	s.Departments[company.DeptHR] = 1
	s.Employees = []company.Employee{
		{ID: "a", Name: "Ada", Type: "developer", Salary: 500, Efficiency: 40, Skills: []string{"Go", "SQL"}},
		{ID: "b", Name: "Bo", Type: "developer", Salary: 700, Efficiency: 70, Skills: []string{"Go"}},
	}
	return s
}

func TestBuildDashboard_FreshCompany(t *testing.T) {
	d := BuildDashboard(economy.DefaultTables(), company.NewState())

	assert.Equal(t, 1000.0, d.FinancialOverview.CurrentCash)
	assert.Equal(t, 100.0, d.FinancialOverview.DailyIncomePotential)
	assert.Equal(t, 120.0, d.FinancialOverview.DailyExpenses)
	assert.Equal(t, -20.0, d.FinancialOverview.NetDailyFlow)
	assert.Equal(t, 8.3, d.FinancialOverview.RunwayDays)
	assert.Equal(t, economy.StatusFair, d.FinancialOverview.FinancialHealth.Status)

	require.Len(t, d.DepartmentStats, 4)
	eng := d.DepartmentStats[company.DeptEngineering]
	assert.Equal(t, StatusLocked, eng.Status)
	assert.Equal(t, 40.0, eng.DailyCost)
	assert.Zero(t, eng.Value)

	assert.Equal(t, 100.0, d.TaskPerformance.SuccessRate)
	assert.Zero(t, d.TaskPerformance.AverageReward)
	assert.Zero(t, d.CompanyValuation.GrowthRate)
	assert.Equal(t, 1000.0, d.CompanyValuation.TotalAssets)
	assert.Equal(t, 120.0, d.DailyCostsBreakdown.TotalCost)
	assert.Equal(t, 100, d.GameStats.Energy)
}

func TestBuildDashboard_Staffed(t *testing.T) {
	s := staffedState()
	s.CompletedTasks = 3
	s.TaskHistory = []company.TaskRecord{{Reward: 88}, {Reward: 100}, {Reward: 40}}
	d := BuildDashboard(economy.DefaultTables(), s)

	eng := d.DepartmentStats[company.DeptEngineering]
	assert.Equal(t, StatusActive, eng.Status)
	assert.Equal(t, 300.0, eng.Value, "one upgrade from level 1")
	assert.Equal(t, 80.0, eng.DailyCost)
	assert.Equal(t, 300.0, d.DepartmentStats[company.DeptHR].Value)
	assert.Equal(t, 60.0, d.DepartmentStats[company.DeptResearch].DailyCost)

	assert.Equal(t, 600.0, d.CompanyValuation.DepartmentValue)
	assert.Equal(t, 1600.0, d.CompanyValuation.TotalAssets)
	assert.Equal(t, 50.0, d.CompanyValuation.GrowthRate)

	assert.Equal(t, 2, d.EmployeeStats.TotalEmployees)
	assert.Equal(t, 5, d.EmployeeStats.MaxEmployees)
	assert.Equal(t, 1200.0, d.EmployeeStats.TotalSalaries)
	assert.InDelta(t, 0.05, d.EmployeeStats.EfficiencyBonus, 1e-9)

	assert.Equal(t, 250.0, d.FinancialOverview.DailyIncomePotential)
	assert.Equal(t, 76.0, d.TaskPerformance.AverageReward)
}

func TestDepartmentValue(t *testing.T) {
	tables := economy.DefaultTables()
	assert.Zero(t, DepartmentValue(tables, company.DeptResearch, 0))
	assert.Equal(t, 500.0, DepartmentValue(tables, company.DeptResearch, 1))
	// 500 + 450 + 675
	assert.Equal(t, 1625.0, DepartmentValue(tables, company.DeptResearch, 3))
}

func TestSuccessRateAndGrowth(t *testing.T) {
	s := company.NewState()
	s.CompletedTasks = 3
	s.FailedTasks = 1
	assert.Equal(t, 75.0, SuccessRate(s))

	s.Departments[company.DeptEngineering] = 1
	s.Departments[company.DeptResearch] = 1
	s.Departments[company.DeptHR] = 1
	s.Departments[company.DeptSales] = 1
	for range 5 {
		s.Employees = append(s.Employees, company.Employee{})
	}
	assert.Equal(t, 100.0, GrowthRate(s), "capped")
}

func TestPredict_FreshCompany(t *testing.T) {
	f := Predict(economy.DefaultTables(), company.NewState())

	require.Len(t, f.Predictions, PredictionDays)
	first := f.Predictions[0]
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, 100.0, first.Income)
	assert.Equal(t, 120.0, first.Expenses)
	assert.Equal(t, -20.0, first.NetFlow)
	assert.Equal(t, 980.0, first.EstimatedCash)
	assert.Equal(t, OutlookHealthy, first.Status)

	second := f.Predictions[1]
	assert.Equal(t, 125.04, second.Expenses, "costed at the next day's market")
	assert.Equal(t, 954.96, second.EstimatedCash)

	assert.NotNil(t, f.Recommendations)
	assert.Empty(t, f.Recommendations)
}

func TestPredict_CashRunsOut(t *testing.T) {
	s := company.NewState()
	s.Cash = 50
	f := Predict(economy.DefaultTables(), s)

	assert.Equal(t, OutlookWarning, f.Predictions[0].Status)
	assert.Equal(t, 30.0, f.Predictions[0].EstimatedCash)
	assert.Equal(t, OutlookCritical, f.Predictions[2].Status)
	assert.Zero(t, f.Predictions[2].EstimatedCash, "display cash is floored")

	require.NotEmpty(t, f.Recommendations)
	assert.Equal(t, "warning", f.Recommendations[0].Type)
	assert.Contains(t, f.Recommendations[0].Message, "5 of the next 7 days")
}

func TestRecommend(t *testing.T) {
	s := company.NewState()
	s.Cash = 5000
	s.Employees = []company.Employee{{Efficiency: 45}}

	recs := Recommend(s, nil)
	require.Len(t, recs, 2)
	assert.Equal(t, "investment", recs[0].Type)
	assert.Contains(t, recs[0].Message, "4 departments")
	assert.Equal(t, "optimization", recs[1].Type)

	s.Employees[0].Efficiency = 80
	for _, key := range company.DepartmentKeys {
		s.Departments[key] = 1
	}
	assert.Empty(t, Recommend(s, nil))
}

func TestStaff(t *testing.T) {
	o := Staff(staffedState())
	assert.Len(t, o.Employees, 2)
	assert.Equal(t, 2, o.Statistics.TotalEmployees)
	assert.Equal(t, 5, o.Statistics.MaxEmployees)
	assert.Equal(t, 1200.0, o.Statistics.TotalSalaries)
	assert.Equal(t, 36000.0, o.Statistics.MonthlyCost)
	assert.Equal(t, 55.0, o.Statistics.AverageEfficiency)
	assert.Equal(t, map[string]int{"Go": 2, "SQL": 1}, o.Statistics.SkillDistribution)
	assert.True(t, o.Statistics.HiringAvailable)

	s := company.NewState()
	s.Employees = nil
	o = Staff(s)
	assert.NotNil(t, o.Employees)
	assert.Zero(t, o.Statistics.MaxEmployees)
	assert.False(t, o.Statistics.HiringAvailable, "no hiring without HR")
}

func TestDepartments(t *testing.T) {
	tables := economy.DefaultTables()
	got := Departments(tables, staffedState())
	require.Len(t, got, 4)

	assert.Equal(t, company.DeptEngineering, got[0].Key)
	assert.Equal(t, 2, got[0].Level)
	assert.Equal(t, 450.0, got[0].UpgradeCost)
	assert.Equal(t, 1.5, got[0].RewardMultiplier)

	assert.Equal(t, company.DeptResearch, got[1].Key)
	assert.Equal(t, StatusLocked, got[1].Status)
	assert.Equal(t, 500.0, got[1].UnlockCost)
	assert.Zero(t, got[1].UpgradeCost)
}

func TestQuoteDepartment(t *testing.T) {
	tables := economy.DefaultTables()
	s := staffedState()

	q, ok := QuoteDepartment(tables, s, "rnd")
	require.True(t, ok)
	assert.Equal(t, Quote{Department: company.DeptResearch, Action: "unlock", Cost: 500, Affordable: true}, q)

	q, ok = QuoteDepartment(tables, s, "engLevel")
	require.True(t, ok)
	assert.Equal(t, "upgrade", q.Action)
	assert.Equal(t, 2, q.Level)
	assert.Equal(t, 450.0, q.Cost)

	s.Cash = 100
	q, _ = QuoteDepartment(tables, s, "sales")
	assert.False(t, q.Affordable)

	_, ok = QuoteDepartment(tables, s, "marketing")
	assert.False(t, ok)
}

func TestAchievements(t *testing.T) {
	s := company.NewState()
	s.Day = 1
	s.CompletedTasks = 4
	s.Achievements.Unlocked["first_day"] = "2026-03-14T09:30:00Z"

	got := Achievements(s)
	require.Len(t, got, len(company.DefaultAchievements()))

	byID := map[string]AchievementStatus{}
	for _, a := range got {
		byID[a.ID] = a
	}
	assert.Equal(t, "first_day", got[0].ID)
	assert.True(t, byID["first_day"].Unlocked)
	assert.Equal(t, "2026-03-14T09:30:00Z", byID["first_day"].UnlockedAt)
	assert.Equal(t, 1.0, byID["first_day"].Progress)

	assert.False(t, byID["ten_tasks"].Unlocked)
	assert.Equal(t, 0.4, byID["ten_tasks"].Progress)
	assert.Equal(t, 0.2, byID["cash_5000"].Progress)
	assert.Zero(t, byID["first_employee"].Progress)
}
