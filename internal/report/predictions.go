package report

import (
	"fmt"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
)

// PredictionDays is how far ahead Predict looks.
const PredictionDays = 7

// Prediction status labels.
const (
	OutlookHealthy  = "healthy"
	OutlookWarning  = "warning"
	OutlookCritical = "critical"
)

// Prediction is the projected cash position after one future day.
type Prediction struct {
	Day           int     `json:"day"` // 1 = the next day ended
	EstimatedCash float64 `json:"estimated_cash"`
	Income        float64 `json:"income"`
	Expenses      float64 `json:"expenses"`
	NetFlow       float64 `json:"net_flow"`
	Status        string  `json:"status"`
}

// Recommendation is one suggested next move.
type Recommendation struct {
	Type    string `json:"type"` // warning, investment, optimization
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// Forecast bundles predictions with the recommendations drawn from them.
type Forecast struct {
	Predictions     []Prediction     `json:"predictions"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Predict projects cash over the next PredictionDays days, assuming the
// estimated income is earned and no one is hired, trained, or fired. Each
// day is costed at its own market modifier. Estimated cash is floored at 0
// for display; the status uses the unfloored balance.
func Predict(t economy.Tables, s *company.State) Forecast {
	projected := *s
	income := EstimateDailyIncome(s)
	cash := s.Cash

	preds := make([]Prediction, 0, PredictionDays)
	for i := 1; i <= PredictionDays; i++ {
		projected.Day = s.Day + i - 1
		expenses := economy.DailyCosts(t, &projected).TotalCost
		net := economy.Round2(income - expenses)
		cash = economy.Round2(cash + net)

		preds = append(preds, Prediction{
			Day:           i,
			EstimatedCash: max(0, cash),
			Income:        income,
			Expenses:      expenses,
			NetFlow:       net,
			Status:        outlook(cash, expenses),
		})
	}

	return Forecast{
		Predictions:     preds,
		Recommendations: Recommend(s, preds),
	}
}

func outlook(cash, expenses float64) string {
	switch {
	case cash > expenses*3:
		return OutlookHealthy
	case cash > 0:
		return OutlookWarning
	default:
		return OutlookCritical
	}
}

// Recommend suggests actions from the state and its predictions. The result
// is never nil.
func Recommend(s *company.State, preds []Prediction) []Recommendation {
	recs := []Recommendation{}

	critical := 0
	for _, p := range preds {
		if p.Status == OutlookCritical {
			critical++
		}
	}
	if critical > 0 {
		recs = append(recs, Recommendation{
			Type:    "warning",
			Title:   "Cash flow warning",
			Message: fmt.Sprintf("Cash may run out: %d of the next %d days end with no cash. Income is needed now.", critical, len(preds)),
			Action:  "Focus on high-reward tasks",
		})
	}

	locked := len(company.DepartmentKeys) - s.UnlockedDepartments()
	if locked > 0 && s.Cash > 1000 {
		recs = append(recs, Recommendation{
			Type:    "investment",
			Title:   "Department investment",
			Message: fmt.Sprintf("%d departments are still closed. There is room to invest.", locked),
			Action:  "Consider unlocking a department",
		})
	}

	if len(s.Employees) > 0 && averageEfficiency(s) < 60 {
		recs = append(recs, Recommendation{
			Type:    "optimization",
			Title:   "Employee efficiency",
			Message: "Average employee efficiency is low. Training would help.",
			Action:  "Train employees or hire stronger ones",
		})
	}

	return recs
}
