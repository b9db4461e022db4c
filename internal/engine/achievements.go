package engine

import (
	"github.com/talgya/task-tycoon/internal/company"
)

// evaluateAchievements unlocks every catalog entry whose conditions all
// hold and returns the newly unlocked ids in catalog order.
func (e *Engine) evaluateAchievements(s *company.State) []string {
	if s.Achievements.Unlocked == nil {
		s.Achievements.Unlocked = map[string]string{}
	}
	var unlocked []string
	var now string
	for _, def := range s.Achievements.All {
		if _, done := s.Achievements.Unlocked[def.ID]; done {
			continue
		}
		if !conditionsMet(s, def.Condition) {
			continue
		}
		if now == "" {
			now = e.timestamp()
		}
		s.Achievements.Unlocked[def.ID] = now
		unlocked = append(unlocked, def.ID)
	}
	return unlocked
}

func conditionsMet(s *company.State, cond map[string]int) bool {
	if len(cond) == 0 {
		return false
	}
	for metric, want := range cond {
		have, ok := AchievementMetric(s, metric)
		if !ok || have < float64(want) {
			return false
		}
	}
	return true
}

// AchievementMetric reads a condition metric from the state. The
// department count is the sum of department levels, so upgrades count
// toward it.
func AchievementMetric(s *company.State, metric string) (float64, bool) {
	switch metric {
	case "day":
		return float64(s.Day), true
	case "cash":
		return s.Cash, true
	case "employee_count":
		return float64(len(s.Employees)), true
	case "department_count":
		total := 0
		for _, key := range company.DepartmentKeys {
			total += s.DepartmentLevel(key)
		}
		return float64(total), true
	case "completedTasks":
		return float64(s.CompletedTasks), true
	case "level":
		return float64(s.Level), true
	case "reputation":
		return float64(s.Reputation), true
	case "breakthroughs":
		return float64(s.Breakthroughs), true
	}
	return 0, false
}
