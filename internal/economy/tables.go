// Package economy provides the closed-form economics of the company:
// operating costs, task rewards, department pricing, staff pricing, the
// market cycle, and financial health. Every function is pure over a
// Tables value and a company state.
package economy

import "github.com/talgya/task-tycoon/internal/company"

// Task types.
const (
	TaskWork     = "work"
	TaskResearch = "research"
	TaskNetwork  = "network"
)

// DepartmentCost prices one department.
type DepartmentCost struct {
	Setup       float64 `yaml:"setup" json:"setup"`               // Flat unlock cost (level 0 → 1)
	Daily       float64 `yaml:"daily" json:"daily"`               // Upkeep per level per day
	UpgradeBase float64 `yaml:"upgrade_base" json:"upgrade_base"` // Upgrade cost at level 0 before scaling
}

// TaskConfig describes one task type.
type TaskConfig struct {
	BaseReward     float64 `yaml:"base_reward" json:"base_reward"`
	EnergyCost     int     `yaml:"energy_cost" json:"energy_cost"`
	XPReward       int     `yaml:"xp_reward" json:"xp_reward"`
	Department     string  `yaml:"department" json:"department"`
	ResearchPoints float64 `yaml:"research_points,omitempty" json:"research_points,omitempty"`
	ReputationGain int     `yaml:"reputation_gain,omitempty" json:"reputation_gain,omitempty"`
	BonusChance    float64 `yaml:"bonus_chance,omitempty" json:"bonus_chance,omitempty"` // Breakthrough or new client
	BonusCash      float64 `yaml:"bonus_cash,omitempty" json:"bonus_cash,omitempty"`
	UsesReputation bool    `yaml:"uses_reputation,omitempty" json:"uses_reputation,omitempty"`
}

// EmployeeType describes a hireable role.
type EmployeeType struct {
	HiringCost        float64  `yaml:"hiring_cost" json:"hiring_cost"`
	Department        string   `yaml:"department" json:"department"`
	SalaryMin         int      `yaml:"salary_min" json:"salary_min"`
	SalaryMax         int      `yaml:"salary_max" json:"salary_max"`
	EfficiencyBumpMin int      `yaml:"efficiency_bump_min" json:"efficiency_bump_min"`
	EfficiencyBumpMax int      `yaml:"efficiency_bump_max" json:"efficiency_bump_max"`
	Skills            []string `yaml:"skills" json:"skills"`
	MinSkills         int      `yaml:"min_skills" json:"min_skills"`
	MaxSkills         int      `yaml:"max_skills" json:"max_skills"`
}

// Tables holds every balance constant. DefaultTables matches the shipped game;
// a YAML file may override any field.
type Tables struct {
	BaseDailyCosts map[string]float64        `yaml:"base_daily_costs"`
	Departments    map[string]DepartmentCost `yaml:"departments"`
	Tasks          map[string]TaskConfig     `yaml:"tasks"`
	EmployeeTypes  map[string]EmployeeType   `yaml:"employee_types"`

	DepartmentBonusPerLevel float64 `yaml:"department_bonus_per_level"` // +25% per level
	LevelBonusPerLevel      float64 `yaml:"level_bonus_per_level"`      // +10% per company level
	ReputationBonus         float64 `yaml:"reputation_bonus"`           // +2% per reputation point
	ResearchPerRnDLevel     float64 `yaml:"research_per_rnd_level"`

	MarketAmplitude float64 `yaml:"market_amplitude"`
	MarketPeriod    int     `yaml:"market_period"`
	UpgradeScaling  float64 `yaml:"upgrade_scaling"`

	HiringScarcity      float64  `yaml:"hiring_scarcity"` // +10% per current employee
	TrainingBaseCost    float64  `yaml:"training_base_cost"`
	TrainingGainMin     int      `yaml:"training_gain_min"`
	TrainingGainMax     int      `yaml:"training_gain_max"`
	TrainingSkillChance float64  `yaml:"training_skill_chance"`
	TrainingSkills      []string `yaml:"training_skills"`
	SeveranceRate       float64  `yaml:"severance_rate"`
	TeamBonusRate       float64  `yaml:"team_bonus_rate"` // Share of cash per unit of surplus efficiency

	LevelUpXPPerLevel           int     `yaml:"level_up_xp_per_level"`
	LevelUpEnergyBonus          int     `yaml:"level_up_energy_bonus"`
	EnergyRestoreRate           float64 `yaml:"energy_restore_rate"`
	EnergyPerHRLevel            int     `yaml:"energy_per_hr_level"`
	ResearchPerReputation       float64 `yaml:"research_per_reputation"`
	ConsumeResearchOnConversion bool    `yaml:"consume_research_on_conversion"`

	BankruptcyFloor       float64 `yaml:"bankruptcy_floor"`
	BankruptcyPenaltyRate float64 `yaml:"bankruptcy_penalty_rate"`
	BankruptcyReputation  int     `yaml:"bankruptcy_reputation"`

	DailyEventChance float64 `yaml:"daily_event_chance"`

	CandidateMin int `yaml:"candidate_min"`
	CandidateMax int `yaml:"candidate_max"`
}

// DefaultTables returns the standard balance.
func DefaultTables() Tables {
	return Tables{
		BaseDailyCosts: map[string]float64{
			"office_rent":       50,
			"utilities":         25,
			"software_licenses": 30,
			"internet":          15,
		},
		Departments: map[string]DepartmentCost{
			company.DeptEngineering: {Setup: 0, Daily: 40, UpgradeBase: 200},
			company.DeptResearch:    {Setup: 500, Daily: 60, UpgradeBase: 300},
			company.DeptHR:          {Setup: 300, Daily: 25, UpgradeBase: 150},
			company.DeptSales:       {Setup: 400, Daily: 50, UpgradeBase: 250},
		},
		Tasks: map[string]TaskConfig{
			TaskWork: {
				BaseReward: 80, EnergyCost: 12, XPReward: 8,
				Department: company.DeptEngineering,
			},
			TaskResearch: {
				BaseReward: 0, EnergyCost: 18, XPReward: 12,
				Department: company.DeptResearch, ResearchPoints: 6,
				BonusChance: 0.1, BonusCash: 250,
			},
			TaskNetwork: {
				BaseReward: 40, EnergyCost: 10, XPReward: 6,
				Department: company.DeptSales, ReputationGain: 4,
				BonusChance: 0.15, BonusCash: 150, UsesReputation: true,
			},
		},
		EmployeeTypes: map[string]EmployeeType{
			"developer": {
				HiringCost: 800, Department: company.DeptEngineering, SalaryMin: 600, SalaryMax: 1200,
				EfficiencyBumpMin: 0, EfficiencyBumpMax: 10,
				Skills: []string{"Python", "JavaScript", "React", "SQL"}, MinSkills: 1, MaxSkills: 3,
			},
			"designer": {
				HiringCost: 600, Department: company.DeptEngineering, SalaryMin: 500, SalaryMax: 1000,
				Skills: []string{"UI/UX", "Graphic Design", "Figma", "Adobe"}, MinSkills: 1, MaxSkills: 3,
			},
			"analyst": {
				HiringCost: 650, Department: company.DeptResearch, SalaryMin: 550, SalaryMax: 900,
				Skills: []string{"Data Analysis", "Excel", "Power BI", "Statistics"}, MinSkills: 1, MaxSkills: 3,
			},
			"manager": {
				HiringCost: 1200, Department: company.DeptHR, SalaryMin: 800, SalaryMax: 1500,
				EfficiencyBumpMin: 5, EfficiencyBumpMax: 15,
				Skills: []string{"Project Management", "Leadership", "Planning", "Communication"}, MinSkills: 2, MaxSkills: 4,
			},
			"sales": {
				HiringCost: 550, Department: company.DeptSales, SalaryMin: 500, SalaryMax: 1000,
				Skills: []string{"Sales", "Customer Relations", "Marketing", "Presenting"}, MinSkills: 1, MaxSkills: 3,
			},
			"general": {
				HiringCost: 500, SalaryMin: 400, SalaryMax: 700,
				Skills: []string{"Operations", "Support", "Administration"}, MinSkills: 1, MaxSkills: 2,
			},
		},

		DepartmentBonusPerLevel: 0.25,
		LevelBonusPerLevel:      0.1,
		ReputationBonus:         0.02,
		ResearchPerRnDLevel:     0.3,

		MarketAmplitude: 0.2,
		MarketPeriod:    30,
		UpgradeScaling:  1.5,

		HiringScarcity:      0.1,
		TrainingBaseCost:    200,
		TrainingGainMin:     5,
		TrainingGainMax:     15,
		TrainingSkillChance: 0.3,
		TrainingSkills:      []string{"Software", "Design", "Analysis", "Management", "Sales", "Research"},
		SeveranceRate:       0.5,
		TeamBonusRate:       0.01,

		LevelUpXPPerLevel:     50,
		LevelUpEnergyBonus:    10,
		EnergyRestoreRate:     0.3,
		EnergyPerHRLevel:      5,
		ResearchPerReputation: 10,

		BankruptcyFloor:       -1000,
		BankruptcyPenaltyRate: 0.1,
		BankruptcyReputation:  5,

		DailyEventChance: 0,

		CandidateMin: 3,
		CandidateMax: 5,
	}
}

// DefaultEmployeeType is used for unknown hiring-cost lookups.
const DefaultEmployeeType = "general"

// HasTask reports whether taskType is configured.
func (t Tables) HasTask(taskType string) bool {
	_, ok := t.Tasks[taskType]
	return ok
}

// HasEmployeeType reports whether employeeType is configured.
func (t Tables) HasEmployeeType(employeeType string) bool {
	_, ok := t.EmployeeTypes[employeeType]
	return ok
}
