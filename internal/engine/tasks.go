package engine

import (
	"fmt"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/entropy"
)

// Task outcome events recorded on a TaskRecord.
const (
	EventBreakthrough = "breakthrough"
	EventNewClient    = "new_client"
)

// TaskResult describes an executed task.
type TaskResult struct {
	Message      string                `json:"message"`
	Economics    economy.TaskEconomics `json:"task_economics"`
	Record       company.TaskRecord    `json:"record"`
	Achievements []string              `json:"new_achievements,omitempty"`
}

// ExecuteTask performs one task: pays the reward, spends energy, grants xp
// and the task's research or reputation, rolls its bonus, and finally pays
// the team bonus.
func (e *Engine) ExecuteTask(s *company.State, taskType string) (*TaskResult, error) {
	cfg, ok := e.Tables.Tasks[taskType]
	if !ok {
		return nil, invalidInput("unknown task type %q", taskType)
	}
	econ, _ := economy.TaskReward(e.Tables, taskType, s)
	if s.Energy < econ.EnergyCost {
		return nil, insufficient("not enough energy for %s: need %d, have %d", taskType, econ.EnergyCost, s.Energy)
	}

	s.Cash += econ.FinalReward
	s.Energy = company.Clamp(s.Energy-econ.EnergyCost, 0, s.MaxEnergy)
	s.XP += econ.XPReward
	s.Research += econ.ResearchPoints
	s.Reputation += econ.ReputationGain

	rec := company.TaskRecord{
		Day:        s.Day,
		TaskType:   taskType,
		Reward:     econ.FinalReward,
		EnergyCost: econ.EnergyCost,
		XPGained:   econ.XPReward,
		Timestamp:  e.timestamp(),
	}

	if econ.BonusChance > 0 && entropy.Chance(e.Rand, econ.BonusChance) {
		s.Cash += econ.BonusCash
		rec.Bonus = econ.BonusCash
		if cfg.ResearchPoints > 0 {
			rec.Event = EventBreakthrough
			s.Breakthroughs++
		} else {
			rec.Event = EventNewClient
		}
	}

	rec.TeamBonus = e.teamBonus(s)
	s.Cash += rec.TeamBonus

	s.TaskHistory = append(s.TaskHistory, rec)
	s.CompletedTasks++

	return &TaskResult{
		Message:      taskMessage(rec, econ),
		Economics:    econ,
		Record:       rec,
		Achievements: e.evaluateAchievements(s),
	}, nil
}

// teamBonus pays a share of current cash for every point of staff
// efficiency above 1.0. Nothing is paid when the result is not positive.
func (e *Engine) teamBonus(s *company.State) float64 {
	surplus := 0.0
	for _, emp := range s.Employees {
		surplus += economy.EmployeeEfficiency(emp, s).Total - 1.0
	}
	if surplus <= 0 {
		return 0
	}
	bonus := economy.Round2(s.Cash * e.Tables.TeamBonusRate * surplus)
	if bonus <= 0 {
		return 0
	}
	return bonus
}

func taskMessage(rec company.TaskRecord, econ economy.TaskEconomics) string {
	msg := fmt.Sprintf("%s task completed", rec.TaskType)
	if rec.Reward > 0 {
		msg += fmt.Sprintf(", earned %s", money(rec.Reward))
	}
	if econ.ResearchPoints > 0 {
		msg += fmt.Sprintf(", +%.2f research", econ.ResearchPoints)
	}
	if econ.ReputationGain > 0 {
		msg += fmt.Sprintf(", +%d reputation", econ.ReputationGain)
	}
	switch rec.Event {
	case EventBreakthrough:
		msg += fmt.Sprintf(". Breakthrough! +%s", money(rec.Bonus))
	case EventNewClient:
		msg += fmt.Sprintf(". New client signed! +%s", money(rec.Bonus))
	}
	if rec.TeamBonus > 0 {
		msg += fmt.Sprintf(" (team bonus %s)", money(rec.TeamBonus))
	}
	return msg
}
