package engine

import (
	"fmt"
	"math"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/entropy"
)

// DayResult describes a closed day.
type DayResult struct {
	Message      string             `json:"message"`
	Summary      company.DaySummary `json:"day_summary"`
	Achievements []string           `json:"new_achievements,omitempty"`
}

// EndDay closes the current day. Steps run in a fixed order: pay operating
// costs, convert research to reputation, level up, restore energy, roll the
// daily event, apply the bankruptcy floor, advance the day, and record the
// summary. The floor comes after the event so no event can sink cash below
// it. EndDay never fails.
func (e *Engine) EndDay(s *company.State) (*DayResult, error) {
	t := e.Tables
	sum := company.DaySummary{
		Day:          s.Day,
		StartingCash: s.Cash,
	}

	sum.Costs = economy.DailyCosts(t, s)
	s.Cash -= sum.Costs.TotalCost

	if t.ResearchPerReputation > 0 {
		bonus := int(math.Floor(s.Research / t.ResearchPerReputation))
		s.Reputation += bonus
		sum.ResearchBonus = bonus
		if t.ConsumeResearchOnConversion {
			s.Research = math.Max(0, s.Research-float64(bonus)*t.ResearchPerReputation)
		}
	}

	if cost := t.LevelUpXPPerLevel * s.Level; s.XP >= cost {
		s.XP -= cost
		s.Level++
		s.MaxEnergy += t.LevelUpEnergyBonus
		s.Energy = company.Clamp(s.Energy+t.LevelUpEnergyBonus, 0, s.MaxEnergy)
		sum.LevelUp = true
		sum.NewLevel = s.Level
	}

	restore := int(float64(s.MaxEnergy)*t.EnergyRestoreRate) + t.EnergyPerHRLevel*s.DepartmentLevel(company.DeptHR)
	s.Energy = company.Clamp(s.Energy+restore, 0, s.MaxEnergy)
	sum.EnergyRestored = restore

	if t.DailyEventChance > 0 && entropy.Chance(e.Rand, t.DailyEventChance) {
		ev := pickEvent(e.Rand)
		s.Cash += ev.Cash
		s.Energy = company.Clamp(s.Energy+ev.Energy, 0, s.MaxEnergy)
		sum.Event = &ev
	}

	// The penalty is reported only; the floor is the whole punishment.
	if s.Cash < 0 {
		sum.Bankrupt = true
		sum.BankruptcyPenalty = economy.Round2(-s.Cash * t.BankruptcyPenaltyRate)
		s.Cash = math.Max(s.Cash, t.BankruptcyFloor)
		s.Reputation -= t.BankruptcyReputation
		sum.BankruptcyMessage = fmt.Sprintf("Cash ran out: reputation -%d, losses capped at %s", t.BankruptcyReputation, money(t.BankruptcyFloor))
	}

	s.Day++

	sum.EndingCash = s.Cash
	sum.NetChange = economy.Round2(s.Cash - sum.StartingCash)
	sum.FinancialHealth = economy.FinancialHealth(t, s)
	s.DayHistory = append(s.DayHistory, sum)

	return &DayResult{
		Message:      dayMessage(sum),
		Summary:      sum,
		Achievements: e.evaluateAchievements(s),
	}, nil
}

func dayMessage(sum company.DaySummary) string {
	msg := fmt.Sprintf("Day %d closed: paid %s in costs", sum.Day, money(sum.Costs.TotalCost))
	if sum.LevelUp {
		msg += fmt.Sprintf(", reached level %d", sum.NewLevel)
	}
	if sum.Event != nil {
		msg += fmt.Sprintf(". %s: %s", sum.Event.Name, sum.Event.Description)
	}
	if sum.Bankrupt {
		msg += ". " + sum.BankruptcyMessage
	}
	return msg
}
