package economy

import "github.com/talgya/task-tycoon/internal/company"

// TaskEconomics is the reward breakdown for one task type in the current state.
type TaskEconomics struct {
	TaskType             string  `json:"task_type"`
	BaseReward           float64 `json:"base_reward"`
	DepartmentMultiplier float64 `json:"department_multiplier"`
	LevelMultiplier      float64 `json:"level_multiplier"`
	ReputationMultiplier float64 `json:"reputation_multiplier"`
	FinalReward          float64 `json:"final_reward"`
	EnergyCost           int     `json:"energy_cost"`
	XPReward             int     `json:"xp_reward"`
	ResearchPoints       float64 `json:"research_points,omitempty"`
	ReputationGain       int     `json:"reputation_gain,omitempty"`
	BonusChance          float64 `json:"bonus_chance,omitempty"`
	BonusCash            float64 `json:"bonus_cash,omitempty"`
}

// TaskReward prices a task. The second result is false for unknown types.
//
// The owning department adds 25% per level and each company level adds 10%.
// Client-facing tasks are further scaled by reputation. Bonus chance and
// bonus cash scale with the department multiplier.
func TaskReward(t Tables, taskType string, s *company.State) (TaskEconomics, bool) {
	cfg, ok := t.Tasks[taskType]
	if !ok {
		return TaskEconomics{}, false
	}

	deptMul := DepartmentMultiplier(t, s.DepartmentLevel(cfg.Department))
	levelMul := 1 + float64(s.Level)*t.LevelBonusPerLevel
	repMul := 1.0

	reward := cfg.BaseReward * deptMul * levelMul
	if cfg.UsesReputation {
		repMul = 1 + float64(s.Reputation)*t.ReputationBonus
		reward *= repMul
	}

	econ := TaskEconomics{
		TaskType:             taskType,
		BaseReward:           cfg.BaseReward,
		DepartmentMultiplier: deptMul,
		LevelMultiplier:      levelMul,
		ReputationMultiplier: repMul,
		FinalReward:          Round2(reward),
		EnergyCost:           cfg.EnergyCost,
		XPReward:             cfg.XPReward,
		ReputationGain:       cfg.ReputationGain,
	}
	if cfg.ResearchPoints > 0 {
		econ.ResearchPoints = Round2(cfg.ResearchPoints * (1 + float64(s.DepartmentLevel(company.DeptResearch))*t.ResearchPerRnDLevel))
	}
	if cfg.BonusChance > 0 {
		econ.BonusChance = cfg.BonusChance * deptMul
		if econ.BonusChance > 1 {
			econ.BonusChance = 1
		}
		econ.BonusCash = Round2(cfg.BonusCash * deptMul)
	}
	return econ, true
}

// DepartmentMultiplier is the reward multiplier granted by a department level.
func DepartmentMultiplier(t Tables, level int) float64 {
	return 1 + float64(level)*t.DepartmentBonusPerLevel
}
