// Package company provides the company-state document: the single mutable
// record every player action reads and rewrites.
package company

import "math"

// Department keys as they appear in the state document.
const (
	DeptEngineering = "engLevel"
	DeptResearch    = "rndLevel"
	DeptHR          = "hrLevel"
	DeptSales       = "salesLevel"
)

// DepartmentKeys lists every department in display order.
var DepartmentKeys = []string{DeptEngineering, DeptResearch, DeptHR, DeptSales}

// DefaultEfficiency is assumed for staff saved without an efficiency.
const DefaultEfficiency = 50

// typeDepartments places the built-in employee types. Records saved
// without a department are filled in from it.
var typeDepartments = map[string]string{
	"developer": DeptEngineering,
	"designer":  DeptEngineering,
	"analyst":   DeptResearch,
	"manager":   DeptHR,
	"sales":     DeptSales,
}

// State is the whole company. One instance per game, saved after every action.
type State struct {
	Day         int            `json:"day"`
	Cash        float64        `json:"cash"`
	XP          int            `json:"xp"`
	Level       int            `json:"level"`
	Energy      int            `json:"energy"`
	MaxEnergy   int            `json:"maxEnergy"`
	Research    float64        `json:"research"`
	Reputation  int            `json:"reputation"`
	Departments map[string]int `json:"departments"`
	Employees   []Employee     `json:"employees"`

	CompletedTasks int `json:"completedTasks"`
	FailedTasks    int `json:"failedTasks"`
	Breakthroughs  int `json:"breakthroughs"`

	// Append-only; never trimmed.
	TaskHistory []TaskRecord `json:"taskHistory"`
	DayHistory  []DaySummary `json:"dayHistory"`

	Achievements Achievements `json:"achievements"`
}

// Employee is a hired staff member.
type Employee struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Department string   `json:"department,omitempty"` // Department key, empty for general staff
	Salary     float64  `json:"salary"`
	Efficiency float64  `json:"efficiency"` // 0–100
	Skills     []string `json:"skills"`
	Experience int      `json:"experience"`
	HiredDate  int      `json:"hired_date"` // Day of hire
}

// TaskRecord is one executed task.
type TaskRecord struct {
	Day        int     `json:"day"`
	TaskType   string  `json:"task_type"`
	Reward     float64 `json:"reward"`
	Bonus      float64 `json:"bonus"`
	TeamBonus  float64 `json:"team_bonus"`
	EnergyCost int     `json:"energy_cost"`
	XPGained   int     `json:"xp_gained"`
	Event      string  `json:"event,omitempty"` // "breakthrough", "new_client"
	Timestamp  string  `json:"timestamp"`
}

// CostBreakdown is the daily operating cost split by source.
type CostBreakdown struct {
	BaseCost        float64 `json:"base_cost"`
	DepartmentCosts float64 `json:"department_costs"`
	EmployeeCosts   float64 `json:"employee_costs"`
	MarketModifier  float64 `json:"market_modifier"`
	TotalCost       float64 `json:"total_cost"`
}

// DaySummary records what happened when a day was closed.
type DaySummary struct {
	Day             int             `json:"day"` // Day that was ended
	Costs           CostBreakdown   `json:"costs"`
	FinancialHealth FinancialHealth `json:"financial_health"`
	ResearchBonus   int             `json:"research_bonus"`
	EnergyRestored  int             `json:"energy_restored"`
	LevelUp         bool            `json:"level_up"`
	NewLevel        int             `json:"new_level,omitempty"`
	StartingCash    float64         `json:"starting_cash"`
	EndingCash      float64         `json:"ending_cash"`
	NetChange       float64         `json:"net_change"`

	Bankrupt          bool    `json:"bankrupt,omitempty"`
	BankruptcyPenalty float64 `json:"bankruptcy_penalty,omitempty"`
	BankruptcyMessage string  `json:"bankruptcy_message,omitempty"`
	Event             *Event  `json:"event,omitempty"`
}

// Event is a random daily occurrence applied during day end.
type Event struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Cash        float64 `json:"cash,omitempty"`
	Energy      int     `json:"energy,omitempty"`
}

// Achievements holds unlocked ids and the static catalog.
type Achievements struct {
	Unlocked map[string]string `json:"unlocked"` // id → RFC 3339 unlock time
	All      []AchievementDef  `json:"all"`
}

// AchievementDef is one catalog entry. Condition maps a metric to the
// minimum value that unlocks it.
type AchievementDef struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"desc"`
	Condition   map[string]int `json:"condition"`
}

// FinancialHealth is the runway-based score reported by the economy.
// It lives here so day summaries can embed it. An unlimited runway is
// stored as UnlimitedRunway with DaysOfRunway left at 0, since JSON has no
// infinity.
type FinancialHealth struct {
	Cash            float64 `json:"cash"`
	DailyCosts      float64 `json:"daily_costs"`
	DaysOfRunway    float64 `json:"days_of_runway"`
	UnlimitedRunway bool    `json:"unlimited_runway,omitempty"`
	HealthScore     float64 `json:"health_score"`
	Status          string  `json:"status"`
}

// Runway returns days of runway, +Inf when costs are zero.
func (h FinancialHealth) Runway() float64 {
	if h.UnlimitedRunway {
		return math.Inf(1)
	}
	return h.DaysOfRunway
}

// DepartmentLevel returns the level for a department key, 0 when absent.
func (s *State) DepartmentLevel(key string) int {
	if s.Departments == nil {
		return 0
	}
	return s.Departments[key]
}

// UnlockedDepartments counts departments with level > 0.
func (s *State) UnlockedDepartments() int {
	n := 0
	for _, key := range DepartmentKeys {
		if s.DepartmentLevel(key) > 0 {
			n++
		}
	}
	return n
}

// FindEmployee returns the index of the employee with the given id, or -1.
func (s *State) FindEmployee(id string) int {
	for i := range s.Employees {
		if s.Employees[i].ID == id {
			return i
		}
	}
	return -1
}
