package report

import (
	"math"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/engine"
)

// StaffOverview lists employees with aggregate statistics.
type StaffOverview struct {
	Employees  []company.Employee `json:"employees"`
	Statistics StaffStatistics    `json:"statistics"`
}

type StaffStatistics struct {
	TotalEmployees    int            `json:"total_employees"`
	MaxEmployees      int            `json:"max_employees"`
	TotalSalaries     float64        `json:"total_salaries"`
	AverageEfficiency float64        `json:"average_efficiency"`
	SkillDistribution map[string]int `json:"skill_distribution"`
	HiringAvailable   bool           `json:"hiring_available"`
	MonthlyCost       float64        `json:"monthly_cost"` // 30 days of salaries
}

// Staff builds the employees overview.
func Staff(s *company.State) StaffOverview {
	skills := map[string]int{}
	for _, e := range s.Employees {
		for _, skill := range e.Skills {
			skills[skill]++
		}
	}

	employees := s.Employees
	if employees == nil {
		employees = []company.Employee{}
	}
	maxEmployees := economy.MaxEmployees(s.DepartmentLevel(company.DeptHR))
	salaries := totalSalaries(s)

	return StaffOverview{
		Employees: employees,
		Statistics: StaffStatistics{
			TotalEmployees:    len(s.Employees),
			MaxEmployees:      maxEmployees,
			TotalSalaries:     salaries,
			AverageEfficiency: economy.Round2(averageEfficiency(s)),
			SkillDistribution: skills,
			HiringAvailable:   len(s.Employees) < maxEmployees,
			MonthlyCost:       salaries * 30,
		},
	}
}

// DepartmentInfo describes one department and what the next step costs.
type DepartmentInfo struct {
	Key              string  `json:"key"`
	Level            int     `json:"level"`
	Status           string  `json:"status"`
	UnlockCost       float64 `json:"unlock_cost,omitempty"`
	UpgradeCost      float64 `json:"upgrade_cost,omitempty"`
	DailyCost        float64 `json:"daily_cost"`
	RewardMultiplier float64 `json:"reward_multiplier"`
	Value            float64 `json:"value"`
}

// Departments lists every department in display order.
func Departments(t economy.Tables, s *company.State) []DepartmentInfo {
	out := make([]DepartmentInfo, 0, len(company.DepartmentKeys))
	for _, key := range company.DepartmentKeys {
		stat := departmentStat(t, s, key)
		info := DepartmentInfo{
			Key:              key,
			Level:            stat.Level,
			Status:           stat.Status,
			DailyCost:        stat.DailyCost,
			RewardMultiplier: economy.DepartmentMultiplier(t, stat.Level),
			Value:            stat.Value,
		}
		if stat.Level == 0 {
			info.UnlockCost, _ = economy.UnlockCost(t, key)
		} else {
			info.UpgradeCost, _ = economy.UpgradeCost(t, key, stat.Level)
		}
		out = append(out, info)
	}
	return out
}

// Quote is the price of the next step for a department.
type Quote struct {
	Department string  `json:"department"`
	Level      int     `json:"level"`
	Action     string  `json:"action"` // unlock or upgrade
	Cost       float64 `json:"cost"`
	Affordable bool    `json:"affordable"`
}

// QuoteDepartment prices unlocking a locked department or upgrading an open
// one. Names are accepted in either short ("eng") or key ("engLevel") form.
func QuoteDepartment(t economy.Tables, s *company.State, name string) (Quote, bool) {
	key, ok := economy.ParseDepartment(name)
	if !ok {
		return Quote{}, false
	}
	level := s.DepartmentLevel(key)
	q := Quote{Department: key, Level: level, Action: "upgrade"}
	if level == 0 {
		q.Action = "unlock"
		q.Cost, ok = economy.UnlockCost(t, key)
	} else {
		q.Cost, ok = economy.UpgradeCost(t, key, level)
	}
	if !ok {
		return Quote{}, false
	}
	q.Affordable = s.Cash >= q.Cost
	return q, true
}

// AchievementStatus is one catalog entry with the company's progress.
type AchievementStatus struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Unlocked    bool    `json:"unlocked"`
	UnlockedAt  string  `json:"unlocked_at,omitempty"`
	Progress    float64 `json:"progress"` // 0–1, the weakest condition
}

// Achievements lists the catalog in order.
func Achievements(s *company.State) []AchievementStatus {
	out := make([]AchievementStatus, 0, len(s.Achievements.All))
	for _, def := range s.Achievements.All {
		st := AchievementStatus{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
		}
		if at, ok := s.Achievements.Unlocked[def.ID]; ok {
			st.Unlocked = true
			st.UnlockedAt = at
			st.Progress = 1
		} else {
			st.Progress = progress(s, def.Condition)
		}
		out = append(out, st)
	}
	return out
}

func progress(s *company.State, cond map[string]int) float64 {
	if len(cond) == 0 {
		return 0
	}
	p := 1.0
	for metric, want := range cond {
		have, ok := engine.AchievementMetric(s, metric)
		if !ok {
			return 0
		}
		if want <= 0 {
			continue
		}
		p = math.Min(p, math.Max(0, have/float64(want)))
	}
	return math.Min(1, economy.Round2(p))
}
