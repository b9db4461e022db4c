package engine

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/entropy"
)

// Candidate generation bounds.
const (
	candidateEfficiencyMin = 40
	candidateEfficiencyMax = 80
	candidateExperienceMin = 1
	candidateExperienceMax = 10
	salaryPerExperience    = 50
	salaryPerEfficiency    = 10 // Per point above 50
	minimumSalary          = 100
)

// HireResult describes a new hire.
type HireResult struct {
	Message      string           `json:"message"`
	Employee     company.Employee `json:"employee"`
	HiringCost   int              `json:"hiring_cost"`
	Achievements []string         `json:"new_achievements,omitempty"`
}

// TrainResult describes a training session.
type TrainResult struct {
	Message        string           `json:"message"`
	Employee       company.Employee `json:"employee"`
	TrainingCost   int              `json:"training_cost"`
	EfficiencyGain float64          `json:"efficiency_gain"`
	NewSkill       string           `json:"new_skill,omitempty"`
	Achievements   []string         `json:"new_achievements,omitempty"`
}

// FireResult describes a dismissal.
type FireResult struct {
	Message      string           `json:"message"`
	Employee     company.Employee `json:"employee"`
	SeverancePay float64          `json:"severance_pay"`
	Achievements []string         `json:"new_achievements,omitempty"`
}

// AddResult describes a directly added employee.
type AddResult struct {
	Message       string           `json:"message"`
	Employee      company.Employee `json:"employee"`
	UpfrontSalary float64          `json:"upfront_salary"`
	Achievements  []string         `json:"new_achievements,omitempty"`
}

// Candidate is a job seeker on the employee market.
type Candidate struct {
	company.Employee
	HiringCost int `json:"hiring_cost"`
}

// HireEmployee generates a candidate of the given type and hires them.
// An empty type hires general staff.
func (e *Engine) HireEmployee(s *company.State, employeeType string) (*HireResult, error) {
	if employeeType == "" {
		employeeType = economy.DefaultEmployeeType
	}
	if !e.Tables.HasEmployeeType(employeeType) {
		return nil, invalidInput("unknown employee type %q", employeeType)
	}
	hr := s.DepartmentLevel(company.DeptHR)
	if hr <= 0 {
		return nil, invalidInput("the HR department must be unlocked before hiring")
	}
	limit := economy.MaxEmployees(hr)
	if len(s.Employees) >= limit {
		return nil, insufficient("employee limit reached: %d of %d", len(s.Employees), limit)
	}
	cost := economy.HiringCost(e.Tables, employeeType, len(s.Employees))
	if s.Cash < float64(cost) {
		return nil, insufficient("not enough cash to hire: need %s, have %s", money(float64(cost)), money(s.Cash))
	}

	emp := e.generateCandidate(s, employeeType)
	s.Cash -= float64(cost)
	s.Employees = append(s.Employees, emp)

	return &HireResult{
		Message:      fmt.Sprintf("%s joined as %s for %s", emp.Name, employeeType, money(float64(cost))),
		Employee:     emp,
		HiringCost:   cost,
		Achievements: e.evaluateAchievements(s),
	}, nil
}

// AddEmployee takes on a named person at an agreed salary, skipping the
// market. The first salary is paid up front instead of a hiring fee. The
// role may be any title; known employee types get their department.
func (e *Engine) AddEmployee(s *company.State, name, role string, salary float64) (*AddResult, error) {
	name, role = strings.TrimSpace(name), strings.TrimSpace(role)
	if name == "" || role == "" {
		return nil, invalidInput("name and role are required")
	}
	if salary <= 0 || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return nil, invalidInput("salary must be a positive number")
	}
	hr := s.DepartmentLevel(company.DeptHR)
	if hr <= 0 {
		return nil, invalidInput("the HR department must be unlocked before hiring")
	}
	limit := economy.MaxEmployees(hr)
	if len(s.Employees) >= limit {
		return nil, insufficient("employee limit reached: %d of %d", len(s.Employees), limit)
	}
	if s.Cash < salary {
		return nil, insufficient("not enough cash for the first salary: need %s, have %s", money(salary), money(s.Cash))
	}

	emp := company.Employee{
		ID:         uuid.NewString(),
		Name:       name,
		Type:       role,
		Department: e.Tables.EmployeeTypes[strings.ToLower(role)].Department,
		Salary:     salary,
		Efficiency: company.DefaultEfficiency,
		Skills:     []string{},
		HiredDate:  s.Day,
	}
	s.Cash -= salary
	s.Employees = append(s.Employees, emp)

	return &AddResult{
		Message:       fmt.Sprintf("%s joined as %s, first salary of %s paid", emp.Name, role, money(salary)),
		Employee:      emp,
		UpfrontSalary: salary,
		Achievements:  e.evaluateAchievements(s),
	}, nil
}

// TrainEmployee raises an employee's efficiency. Gains shrink as
// efficiency rises and the result is capped at 100.
func (e *Engine) TrainEmployee(s *company.State, id string) (*TrainResult, error) {
	i := s.FindEmployee(id)
	if i < 0 {
		return nil, notFound("employee %s not found", id)
	}
	emp := &s.Employees[i]
	cost := economy.TrainingCost(e.Tables, emp.Efficiency)
	if s.Cash < float64(cost) {
		return nil, insufficient("not enough cash to train %s: need %s, have %s", emp.Name, money(float64(cost)), money(s.Cash))
	}

	s.Cash -= float64(cost)

	before := emp.Efficiency
	raw := float64(entropy.IntRange(e.Rand, e.Tables.TrainingGainMin, e.Tables.TrainingGainMax)) * (1 - before/200)
	emp.Efficiency = economy.Round2(math.Min(100, before+raw))

	res := &TrainResult{
		TrainingCost:   cost,
		EfficiencyGain: economy.Round2(emp.Efficiency - before),
	}

	if entropy.Chance(e.Rand, e.Tables.TrainingSkillChance) {
		var fresh []string
		for _, skill := range e.Tables.TrainingSkills {
			if !slices.Contains(emp.Skills, skill) {
				fresh = append(fresh, skill)
			}
		}
		if len(fresh) > 0 {
			res.NewSkill = fresh[e.Rand.Intn(len(fresh))]
			emp.Skills = append(emp.Skills, res.NewSkill)
		}
	}

	res.Employee = *emp
	res.Message = fmt.Sprintf("%s trained, efficiency now %.0f%%", emp.Name, emp.Efficiency)
	res.Achievements = e.evaluateAchievements(s)
	return res, nil
}

// FireEmployee lets an employee go and pays severance. Severance may push
// cash below zero.
func (e *Engine) FireEmployee(s *company.State, id string) (*FireResult, error) {
	i := s.FindEmployee(id)
	if i < 0 {
		return nil, notFound("employee %s not found", id)
	}
	emp := s.Employees[i]
	pay := economy.Severance(e.Tables, emp.Salary)

	s.Employees = slices.Delete(s.Employees, i, i+1)
	s.Cash -= pay

	return &FireResult{
		Message:      fmt.Sprintf("%s was let go with %s severance", emp.Name, money(pay)),
		Employee:     emp,
		SeverancePay: pay,
		Achievements: e.evaluateAchievements(s),
	}, nil
}

// Candidates lists a few job seekers with what hiring each would cost now.
// It does not modify the state.
func (e *Engine) Candidates(s *company.State) []Candidate {
	types := e.marketTypes()
	if len(types) == 0 {
		return nil
	}
	n := entropy.IntRange(e.Rand, e.Tables.CandidateMin, e.Tables.CandidateMax)
	out := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		typ := types[e.Rand.Intn(len(types))]
		out = append(out, Candidate{
			Employee:   e.generateCandidate(s, typ),
			HiringCost: economy.HiringCost(e.Tables, typ, len(s.Employees)),
		})
	}
	return out
}

// marketTypes lists the specialist types in a stable order.
func (e *Engine) marketTypes() []string {
	types := make([]string, 0, len(e.Tables.EmployeeTypes))
	for name := range e.Tables.EmployeeTypes {
		if name == economy.DefaultEmployeeType {
			continue
		}
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

func (e *Engine) generateCandidate(s *company.State, employeeType string) company.Employee {
	cfg := e.Tables.EmployeeTypes[employeeType]
	r := e.Rand

	eff := entropy.IntRange(r, candidateEfficiencyMin, candidateEfficiencyMax)
	eff += entropy.IntRange(r, cfg.EfficiencyBumpMin, cfg.EfficiencyBumpMax)
	eff += e.Labor.EfficiencyShift(s.Day)
	eff = company.Clamp(eff, 0, 100)

	experience := entropy.IntRange(r, candidateExperienceMin, candidateExperienceMax)
	salary := entropy.IntRange(r, cfg.SalaryMin, cfg.SalaryMax) +
		experience*salaryPerExperience +
		(eff-50)*salaryPerEfficiency
	if salary < minimumSalary {
		salary = minimumSalary
	}

	skills := entropy.Sample(r, cfg.Skills, entropy.IntRange(r, cfg.MinSkills, cfg.MaxSkills))

	return company.Employee{
		ID:         uuid.NewString(),
		Name:       generateName(r),
		Type:       employeeType,
		Department: cfg.Department,
		Salary:     float64(salary),
		Efficiency: float64(eff),
		Skills:     skills,
		Experience: experience,
		HiredDate:  s.Day,
	}
}

func generateName(r entropy.Source) string {
	first := firstNames[r.Intn(len(firstNames))]
	last := lastNames[r.Intn(len(lastNames))]
	return first + " " + last
}

// Name pools for generated candidates.
var firstNames = []string{
	"Ada", "Bram", "Cora", "Dev", "Elena", "Farid", "Grace", "Hugo",
	"Ines", "Jonas", "Kira", "Liam", "Maya", "Nico", "Omar", "Priya",
	"Quinn", "Rosa", "Sami", "Tara", "Umar", "Vera", "Wes", "Yuki", "Zoe",
}

var lastNames = []string{
	"Ashford", "Brooks", "Castillo", "Demir", "Eriksen", "Fischer",
	"Gupta", "Holloway", "Ibarra", "Jensen", "Kaya", "Lindqvist",
	"Moreau", "Nakamura", "Okafor", "Petrov", "Reyes", "Sato",
	"Thatcher", "Yilmaz", "Walsh", "Zimmer",
}
