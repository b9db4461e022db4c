package economy

import (
	"math"

	"github.com/talgya/task-tycoon/internal/company"
)

// Financial status labels.
const (
	StatusExcellent = "Excellent"
	StatusGood      = "Good"
	StatusFair      = "Fair"
	StatusPoor      = "Poor"
	StatusCritical  = "Critical"
)

// FinancialHealth scores the company by days of runway at the current burn.
func FinancialHealth(t Tables, s *company.State) company.FinancialHealth {
	daily := DailyCosts(t, s).TotalCost

	h := company.FinancialHealth{
		Cash:       s.Cash,
		DailyCosts: daily,
	}
	if daily <= 0 {
		h.UnlimitedRunway = true
		h.HealthScore = 100
		h.Status = HealthStatus(100)
		return h
	}

	runway := s.Cash / daily
	score := HealthScore(runway)
	h.DaysOfRunway = Round1(runway)
	h.HealthScore = Round1(score)
	h.Status = HealthStatus(score)
	return h
}

// HealthScore maps runway days to 0–100: full marks from 30 days, 80–100
// across two to four weeks, 50–80 across one to two weeks, 0–50 below.
func HealthScore(runway float64) float64 {
	switch {
	case math.IsInf(runway, 1) || runway >= 30:
		return 100
	case runway >= 14:
		return 80 + (runway-14)*20/16
	case runway >= 7:
		return 50 + (runway-7)*30/7
	default:
		return math.Max(0, runway*50/7)
	}
}

// HealthStatus buckets a score.
func HealthStatus(score float64) string {
	switch {
	case score >= 80:
		return StatusExcellent
	case score >= 60:
		return StatusGood
	case score >= 40:
		return StatusFair
	case score >= 20:
		return StatusPoor
	default:
		return StatusCritical
	}
}
