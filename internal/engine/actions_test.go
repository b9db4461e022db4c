package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/entropy"
)

func TestExecuteTask_WorkScenario(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()
	s.Cash = 0

	res, err := e.ExecuteTask(s, economy.TaskWork)
	require.NoError(t, err)

	assert.Equal(t, 88.0, s.Cash)
	assert.Equal(t, 88, s.Energy)
	assert.Equal(t, 8, s.XP)
	assert.Equal(t, 1, s.CompletedTasks)
	require.Len(t, s.TaskHistory, 1)
	assert.Equal(t, "2026-03-14T09:30:00Z", s.TaskHistory[0].Timestamp)
	assert.Equal(t, 88.0, res.Record.Reward)
	assert.Equal(t, 88.0, res.Economics.FinalReward)
	assert.Contains(t, res.Message, "88")
}

func TestExecuteTask_Preconditions(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})

	s := company.NewState()
	before := s.Clone()
	_, err := e.ExecuteTask(s, "nap")
	assertKind(t, err, ErrInvalidInput)
	assert.Equal(t, before, s)

	s.Energy = 11
	before = s.Clone()
	_, err = e.ExecuteTask(s, economy.TaskWork)
	assertKind(t, err, ErrInsufficientResource)
	assert.Equal(t, before, s)
}

func TestExecuteTask_ExactEnergy(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()
	s.Energy = 12

	_, err := e.ExecuteTask(s, economy.TaskWork)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Energy)
}

func TestExecuteTask_ResearchBreakthrough(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Floats: []float64{0.05}})
	s := company.NewState()

	res, err := e.ExecuteTask(s, economy.TaskResearch)
	require.NoError(t, err)

	assert.Equal(t, EventBreakthrough, res.Record.Event)
	assert.Equal(t, 250.0, res.Record.Bonus)
	assert.Equal(t, 1250.0, s.Cash)
	assert.Equal(t, 1, s.Breakthroughs)
	assert.Equal(t, 6.0, s.Research)
	assert.Equal(t, 12, s.XP)
	assert.Equal(t, 82, s.Energy)
}

func TestExecuteTask_ResearchWithoutBreakthrough(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Floats: []float64{0.5}})
	s := company.NewState()
	s.Departments[company.DeptResearch] = 1

	res, err := e.ExecuteTask(s, economy.TaskResearch)
	require.NoError(t, err)

	assert.Empty(t, res.Record.Event)
	assert.Equal(t, 1000.0, s.Cash)
	assert.Equal(t, 0, s.Breakthroughs)
	assert.Equal(t, 7.8, s.Research)
}

func TestExecuteTask_NetworkClient(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Floats: []float64{0.9, 0.01}})
	s := company.NewState()

	res, err := e.ExecuteTask(s, economy.TaskNetwork)
	require.NoError(t, err)
	assert.Empty(t, res.Record.Event)
	assert.Equal(t, 4, s.Reputation)
	assert.Equal(t, 1044.0, s.Cash)

	// Reputation 4 now lifts the reward by 8%.
	res, err = e.ExecuteTask(s, economy.TaskNetwork)
	require.NoError(t, err)
	assert.Equal(t, EventNewClient, res.Record.Event)
	assert.Equal(t, 150.0, res.Record.Bonus)
	assert.Equal(t, 47.52, res.Record.Reward)
	assert.InDelta(t, 1044+47.52+150, s.Cash, 1e-9)
	assert.Equal(t, 8, s.Reputation)
}

func TestExecuteTask_TeamBonus(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()
	s.Departments[company.DeptEngineering] = 1
	s.Employees = []company.Employee{{ID: "a", Department: company.DeptEngineering, Salary: 1500, Skills: []string{}}}

	res, err := e.ExecuteTask(s, economy.TaskWork)
	require.NoError(t, err)

	// Reward 80×1.25×1.1 = 110; surplus efficiency 1.6 pays 1.6% of cash.
	assert.Equal(t, 110.0, res.Record.Reward)
	assert.Equal(t, 17.76, res.Record.TeamBonus)
	assert.InDelta(t, 1127.76, s.Cash, 1e-9)
}

func TestExecuteTask_NoTeamBonusWhenBroke(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()
	s.Cash = -500
	s.Employees = []company.Employee{{ID: "a", Salary: 1500, Skills: []string{}}}

	res, err := e.ExecuteTask(s, economy.TaskWork)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Record.TeamBonus)
	assert.Equal(t, -412.0, s.Cash)
}

func TestUnlockDepartment(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()

	res, err := e.UnlockDepartment(s, "hr")
	require.NoError(t, err)
	assert.Equal(t, company.DeptHR, res.Department)
	assert.Equal(t, 300.0, res.Cost)
	assert.Equal(t, 1, s.DepartmentLevel(company.DeptHR))
	assert.Equal(t, 700.0, s.Cash)
	assert.Contains(t, res.Achievements, "first_department")

	_, err = e.UnlockDepartment(s, "hrLevel")
	assertKind(t, err, ErrInvalidInput)

	_, err = e.UnlockDepartment(s, "marketing")
	assertKind(t, err, ErrInvalidInput)

	s.Cash = 499
	before := s.Clone()
	_, err = e.UnlockDepartment(s, "rnd")
	assertKind(t, err, ErrInsufficientResource)
	assert.Equal(t, before, s)

	s.Cash = 0
	_, err = e.UnlockDepartment(s, "eng")
	require.NoError(t, err, "engineering is free")
	assert.Equal(t, 1, s.DepartmentLevel(company.DeptEngineering))
}

func TestUpgradeDepartment(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()

	_, err := e.UpgradeDepartment(s, "eng")
	assertKind(t, err, ErrInvalidInput)

	s.Departments[company.DeptEngineering] = 1
	res, err := e.UpgradeDepartment(s, "eng")
	require.NoError(t, err)
	assert.Equal(t, 300.0, res.Cost)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 700.0, s.Cash)

	res, err = e.UpgradeDepartment(s, "engLevel")
	require.NoError(t, err)
	assert.Equal(t, 450.0, res.Cost)
	assert.Equal(t, 3, s.DepartmentLevel(company.DeptEngineering))

	_, err = e.UpgradeDepartment(s, "eng")
	assertKind(t, err, ErrInsufficientResource)
	assert.Equal(t, 3, s.DepartmentLevel(company.DeptEngineering))
}

func TestHireEmployee_Candidate(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Ints: []int{0}})
	s := company.NewState()
	s.Cash = 5000
	s.Day = 4
	s.Departments[company.DeptHR] = 1

	res, err := e.HireEmployee(s, "developer")
	require.NoError(t, err)

	emp := res.Employee
	assert.Equal(t, 800, res.HiringCost)
	assert.Equal(t, 4200.0, s.Cash)
	assert.NotEmpty(t, emp.ID)
	assert.Equal(t, "Ada Ashford", emp.Name)
	assert.Equal(t, "developer", emp.Type)
	assert.Equal(t, company.DeptEngineering, emp.Department)
	assert.Equal(t, 40.0, emp.Efficiency)
	assert.Equal(t, 1, emp.Experience)
	assert.Equal(t, 550.0, emp.Salary, "600 + 1×50 + (40−50)×10")
	assert.Equal(t, []string{"Python"}, emp.Skills)
	assert.Equal(t, 4, emp.HiredDate)
	require.Len(t, s.Employees, 1)
	assert.Equal(t, emp, s.Employees[0])
	assert.Contains(t, res.Achievements, "first_employee")
}

func TestHireEmployee_Preconditions(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Ints: []int{3, 7, 1}})
	s := company.NewState()
	s.Cash = 100000

	_, err := e.HireEmployee(s, "developer")
	assertKind(t, err, ErrInvalidInput)

	s.Departments[company.DeptHR] = 1
	_, err = e.HireEmployee(s, "wizard")
	assertKind(t, err, ErrInvalidInput)

	s.Cash = 799
	_, err = e.HireEmployee(s, "developer")
	assertKind(t, err, ErrInsufficientResource)
	assert.Empty(t, s.Employees)

	s.Cash = 100000
	res, err := e.HireEmployee(s, "")
	require.NoError(t, err)
	assert.Equal(t, "general", res.Employee.Type)
	assert.Equal(t, 500, res.HiringCost)
}

func TestHireEmployee_RespectsHeadcountCap(t *testing.T) {
	e := newTestEngine(entropy.NewSeeded(7))
	s := company.NewState()
	s.Cash = 100000
	s.Departments[company.DeptHR] = 1

	for i := 0; i < economy.MaxEmployees(1); i++ {
		res, err := e.HireEmployee(s, "sales")
		require.NoError(t, err)
		assert.Equal(t, economy.HiringCost(e.Tables, "sales", i), res.HiringCost)
	}
	_, err := e.HireEmployee(s, "sales")
	assertKind(t, err, ErrInsufficientResource)
	assert.Len(t, s.Employees, 5)

	ids := map[string]bool{}
	for _, emp := range s.Employees {
		ids[emp.ID] = true
	}
	assert.Len(t, ids, 5)
}

func TestAddEmployee(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()
	s.Day = 6

	_, err := e.AddEmployee(s, "Ada", "developer", 900)
	assertKind(t, err, ErrInvalidInput)

	s.Departments[company.DeptHR] = 1
	for _, tc := range []struct {
		name, role string
		salary     float64
	}{
		{"", "developer", 900},
		{"Ada", " ", 900},
		{"Ada", "developer", 0},
		{"Ada", "developer", -5},
	} {
		_, err := e.AddEmployee(s, tc.name, tc.role, tc.salary)
		assertKind(t, err, ErrInvalidInput)
	}

	_, err = e.AddEmployee(s, "Ada", "developer", 1001)
	assertKind(t, err, ErrInsufficientResource)
	assert.Equal(t, 1000.0, s.Cash)

	res, err := e.AddEmployee(s, "Ada", "Developer", 900)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.Cash, "the first salary is paid up front")
	assert.Equal(t, 900.0, res.UpfrontSalary)
	assert.Equal(t, company.DeptEngineering, res.Employee.Department)
	assert.Equal(t, 50.0, res.Employee.Efficiency)
	assert.Equal(t, 6, res.Employee.HiredDate)
	assert.NotEmpty(t, res.Employee.ID)
	assert.Contains(t, res.Achievements, "first_employee")

	res, err = e.AddEmployee(s, "Bo", "Barista", 50)
	require.NoError(t, err)
	assert.Empty(t, res.Employee.Department)

	s.Cash = 100000
	for len(s.Employees) < economy.MaxEmployees(1) {
		_, err = e.AddEmployee(s, "Temp", "general", 100)
		require.NoError(t, err)
	}
	_, err = e.AddEmployee(s, "Extra", "general", 100)
	assertKind(t, err, ErrInsufficientResource)
}

func TestTrainEmployee(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Ints: []int{10}, Floats: []float64{0.1}})
	s := company.NewState()
	s.Employees = []company.Employee{{ID: "e1", Name: "Ada", Efficiency: 50, Salary: 700, Skills: []string{"SQL"}}}

	res, err := e.TrainEmployee(s, "e1")
	require.NoError(t, err)

	assert.Equal(t, 300, res.TrainingCost)
	assert.Equal(t, 700.0, s.Cash)
	assert.Equal(t, 11.25, res.EfficiencyGain)
	assert.Equal(t, 61.25, s.Employees[0].Efficiency)
	assert.Equal(t, "Sales", res.NewSkill)
	assert.Equal(t, []string{"SQL", "Sales"}, s.Employees[0].Skills)
}

func TestTrainEmployee_CapsAt100(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Ints: []int{10}, Floats: []float64{0.9}})
	s := company.NewState()
	s.Employees = []company.Employee{{ID: "e1", Efficiency: 98, Skills: []string{}}}

	res, err := e.TrainEmployee(s, "e1")
	require.NoError(t, err)
	assert.Equal(t, economy.TrainingCost(e.Tables, 98), res.TrainingCost)
	assert.Equal(t, 100.0, s.Employees[0].Efficiency)
	assert.Equal(t, 2.0, res.EfficiencyGain)
	assert.Empty(t, res.NewSkill)
}

func TestTrainEmployee_Preconditions(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()
	s.Employees = []company.Employee{{ID: "e1", Efficiency: 50, Skills: []string{}}}

	_, err := e.TrainEmployee(s, "missing")
	assertKind(t, err, ErrNotFound)

	s.Cash = 299
	before := s.Clone()
	_, err = e.TrainEmployee(s, "e1")
	assertKind(t, err, ErrInsufficientResource)
	assert.Equal(t, before, s)
}

func TestFireEmployee(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{})
	s := company.NewState()
	s.Cash = 100
	s.Employees = []company.Employee{
		{ID: "e1", Name: "Ada", Salary: 1000, Skills: []string{}},
		{ID: "e2", Name: "Bram", Salary: 600, Skills: []string{}},
	}

	res, err := e.FireEmployee(s, "e1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, res.SeverancePay)
	assert.Equal(t, -400.0, s.Cash, "severance has no floor")
	require.Len(t, s.Employees, 1)
	assert.Equal(t, "e2", s.Employees[0].ID)

	_, err = e.FireEmployee(s, "e1")
	assertKind(t, err, ErrNotFound)
}

func TestCandidates_Scripted(t *testing.T) {
	e := newTestEngine(&entropy.Sequence{Ints: []int{0}})
	s := company.NewState()
	before := s.Clone()

	got := e.Candidates(s)
	require.Len(t, got, 3)
	for _, c := range got {
		assert.Equal(t, "analyst", c.Type)
		assert.Equal(t, 650, c.HiringCost)
		assert.Equal(t, company.DeptResearch, c.Department)
	}
	assert.Equal(t, before, s)
}

func TestCandidates_Seeded(t *testing.T) {
	e := newTestEngine(entropy.NewSeeded(99))
	e.Labor = economy.NewLaborMarket(99)
	s := company.NewState()

	for round := 0; round < 20; round++ {
		s.Day = round
		got := e.Candidates(s)
		assert.GreaterOrEqual(t, len(got), 3)
		assert.LessOrEqual(t, len(got), 5)
		for _, c := range got {
			assert.GreaterOrEqual(t, c.Efficiency, 0.0)
			assert.LessOrEqual(t, c.Efficiency, 100.0)
			assert.GreaterOrEqual(t, c.Salary, 100.0)
			assert.NotEmpty(t, c.Skills)
			seen := map[string]bool{}
			for _, skill := range c.Skills {
				assert.False(t, seen[skill], "duplicate skill %s", skill)
				seen[skill] = true
			}
			assert.NotEqual(t, economy.DefaultEmployeeType, c.Type)
		}
	}
}

// Random play must never break the energy bounds or the head-count cap.
func TestInvariants_RandomPlay(t *testing.T) {
	rnd := entropy.NewSeeded(2024)
	e := newTestEngine(rnd)
	e.Tables.DailyEventChance = 0.3
	s := company.NewState()
	s.Cash = 20000

	types := []string{"developer", "designer", "analyst", "manager", "sales", "general"}
	depts := []string{"eng", "rnd", "hr", "sales"}

	for step := 0; step < 500; step++ {
		switch rnd.Intn(8) {
		case 0, 1, 2:
			tasks := []string{economy.TaskWork, economy.TaskResearch, economy.TaskNetwork}
			_, _ = e.ExecuteTask(s, tasks[rnd.Intn(len(tasks))])
		case 3:
			_, _ = e.EndDay(s)
		case 4:
			dept := depts[rnd.Intn(len(depts))]
			if _, err := e.UnlockDepartment(s, dept); err != nil {
				_, _ = e.UpgradeDepartment(s, dept)
			}
		case 5:
			_, _ = e.HireEmployee(s, types[rnd.Intn(len(types))])
		case 6:
			if len(s.Employees) > 0 {
				_, _ = e.TrainEmployee(s, s.Employees[rnd.Intn(len(s.Employees))].ID)
			}
		case 7:
			if len(s.Employees) > 3 {
				_, _ = e.FireEmployee(s, s.Employees[0].ID)
			}
		}

		require.GreaterOrEqual(t, s.Energy, 0, "step %d", step)
		require.LessOrEqual(t, s.Energy, s.MaxEnergy, "step %d", step)
		require.LessOrEqual(t, len(s.Employees), economy.MaxEmployees(s.DepartmentLevel(company.DeptHR)), "step %d", step)
		for _, emp := range s.Employees {
			require.LessOrEqual(t, emp.Efficiency, 100.0)
		}
	}
}
