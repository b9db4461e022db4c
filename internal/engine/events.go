package engine

import (
	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/entropy"
)

// dailyEvents are the random occurrences that may hit at day end.
var dailyEvents = []company.Event{
	{ID: "bonus_cash", Name: "Investor Bonus", Description: "An angel investor wired a surprise bonus.", Cash: 2000},
	{ID: "tax_audit", Name: "Tax Audit", Description: "Back taxes and fees after an audit.", Cash: -1500},
	{ID: "employee_sick", Name: "Sick Day", Description: "Half the office caught a cold.", Energy: -10},
	{ID: "viral_marketing", Name: "Viral Post", Description: "A post went viral. Sales are up, everyone is tired.", Cash: 1000, Energy: -5},
	{ID: "equipment_break", Name: "Equipment Failure", Description: "The server room needed emergency repairs.", Cash: -800},
}

func pickEvent(src entropy.Source) company.Event {
	return dailyEvents[src.Intn(len(dailyEvents))]
}
