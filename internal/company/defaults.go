package company

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Starting values for a fresh company.
const (
	StartingCash      = 1000
	StartingEnergy    = 100
	StartingMaxEnergy = 100
)

// DefaultAchievements returns the achievement catalog.
func DefaultAchievements() []AchievementDef {
	return []AchievementDef{
		{ID: "first_day", Name: "First Day", Description: "Finish your first day", Condition: map[string]int{"day": 1}},
		{ID: "first_employee", Name: "First Hire", Description: "Hire your first employee", Condition: map[string]int{"employee_count": 1}},
		{ID: "first_department", Name: "First Department", Description: "Open your first department", Condition: map[string]int{"department_count": 1}},
		{ID: "cash_5000", Name: "Saved 5,000", Description: "Reach 5,000 in cash", Condition: map[string]int{"cash": 5000}},
		{ID: "ten_tasks", Name: "Ten Tasks", Description: "Complete 10 tasks", Condition: map[string]int{"completedTasks": 10}},
		{ID: "cash_10000", Name: "Saved 10,000", Description: "Reach 10,000 in cash", Condition: map[string]int{"cash": 10000}},
		{ID: "five_departments", Name: "Five Departments", Description: "Open five departments", Condition: map[string]int{"department_count": 5}},
		{ID: "twenty_employees", Name: "Twenty Employees", Description: "Employ twenty people", Condition: map[string]int{"employee_count": 20}},
		{ID: "thirty_days", Name: "Thirty Days", Description: "Run the company for 30 days", Condition: map[string]int{"day": 30}},
	}
}

// NewState creates the default company document.
func NewState() *State {
	return &State{
		Day:       0,
		Cash:      StartingCash,
		Level:     1,
		Energy:    StartingEnergy,
		MaxEnergy: StartingMaxEnergy,
		Departments: map[string]int{
			DeptEngineering: 0,
			DeptResearch:    0,
			DeptHR:          0,
			DeptSales:       0,
		},
		Employees:   []Employee{},
		TaskHistory: []TaskRecord{},
		DayHistory:  []DaySummary{},
		Achievements: Achievements{
			Unlocked: map[string]string{},
			All:      DefaultAchievements(),
		},
	}
}

// Normalize backfills fields that older documents lack and restores the
// state invariants. It is applied once, where documents are loaded.
func Normalize(s *State) {
	if s.Departments == nil {
		s.Departments = make(map[string]int, len(DepartmentKeys))
	}
	for _, key := range DepartmentKeys {
		if _, ok := s.Departments[key]; !ok {
			s.Departments[key] = 0
		}
	}
	if s.Employees == nil {
		s.Employees = []Employee{}
	}
	for i := range s.Employees {
		normalizeEmployee(&s.Employees[i])
	}
	if s.TaskHistory == nil {
		s.TaskHistory = []TaskRecord{}
	}
	if s.DayHistory == nil {
		s.DayHistory = []DaySummary{}
	}
	if s.Achievements.Unlocked == nil {
		s.Achievements.Unlocked = map[string]string{}
	}
	if len(s.Achievements.All) == 0 {
		s.Achievements.All = DefaultAchievements()
	}
	if s.Level < 1 {
		s.Level = 1
	}
	if s.MaxEnergy <= 0 {
		s.MaxEnergy = StartingMaxEnergy
	}
	s.Energy = Clamp(s.Energy, 0, s.MaxEnergy)
	if s.Research < 0 {
		s.Research = 0
	}
}

// normalizeEmployee fills in records written by the older add-employee
// form, which stored only id, name, role, and salary.
func normalizeEmployee(e *Employee) {
	if e.Skills == nil {
		e.Skills = []string{}
	}
	if e.Efficiency <= 0 {
		e.Efficiency = DefaultEfficiency
	}
	e.Efficiency = Clamp(e.Efficiency, 0, 100)
	if e.Department == "" {
		e.Department = typeDepartments[strings.ToLower(e.Type)]
	}
}

// Decode parses a stored document, accepting older layouts, and normalizes it.
func Decode(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}

	// Some documents only carry currentDay.
	var legacy struct {
		Day        *int `json:"day"`
		CurrentDay *int `json:"currentDay"`
	}
	if err := json.Unmarshal(data, &legacy); err == nil && legacy.Day == nil && legacy.CurrentDay != nil {
		s.Day = *legacy.CurrentDay
	}

	Normalize(&s)
	return &s, nil
}

// Encode serializes a state document.
func Encode(s *State) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Clone returns a deep copy so an action can be abandoned without touching
// s. Nil and empty collections are preserved as they are.
func (s *State) Clone() *State {
	c := *s
	c.Departments = maps.Clone(s.Departments)

	c.Employees = slices.Clone(s.Employees)
	for i := range c.Employees {
		c.Employees[i].Skills = slices.Clone(c.Employees[i].Skills)
	}

	c.TaskHistory = slices.Clone(s.TaskHistory)
	c.DayHistory = slices.Clone(s.DayHistory)
	for i, d := range c.DayHistory {
		if d.Event != nil {
			ev := *d.Event
			c.DayHistory[i].Event = &ev
		}
	}

	c.Achievements.Unlocked = maps.Clone(s.Achievements.Unlocked)
	c.Achievements.All = slices.Clone(s.Achievements.All)
	for i := range c.Achievements.All {
		c.Achievements.All[i].Condition = maps.Clone(c.Achievements.All[i].Condition)
	}
	return &c
}

// UnmarshalJSON accepts the unlocked set either as a map or as a plain list
// of ids (older saves), which become entries with empty timestamps.
func (a *Achievements) UnmarshalJSON(data []byte) error {
	var raw struct {
		Unlocked json.RawMessage  `json:"unlocked"`
		All      []AchievementDef `json:"all"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.All = raw.All
	a.Unlocked = map[string]string{}
	if len(raw.Unlocked) == 0 || string(raw.Unlocked) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw.Unlocked, &a.Unlocked); err == nil {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(raw.Unlocked, &ids); err != nil {
		return fmt.Errorf("achievements.unlocked: %w", err)
	}
	for _, id := range ids {
		a.Unlocked[id] = ""
	}
	return nil
}

// UnmarshalJSON accepts numeric ids and the older "role" field.
func (e *Employee) UnmarshalJSON(data []byte) error {
	type plain Employee
	var raw struct {
		plain
		ID   json.RawMessage `json:"id"`
		Role string          `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Employee(raw.plain)

	if len(raw.ID) > 0 && string(raw.ID) != "null" {
		var id string
		if err := json.Unmarshal(raw.ID, &id); err != nil {
			var n int64
			if err := json.Unmarshal(raw.ID, &n); err != nil {
				return fmt.Errorf("employee id: %w", err)
			}
			id = strconv.FormatInt(n, 10)
		}
		e.ID = id
	}
	if e.Type == "" {
		e.Type = raw.Role
	}
	return nil
}
