package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/persistence"
	"github.com/talgya/task-tycoon/internal/report"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved company",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.proc.State(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(a, s)
			return nil
		},
	}
}

func printStatus(a *app, s *company.State) {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	d := report.BuildDashboard(a.proc.Engine().Tables, s)

	titleColor.Printf("\nTask Tycoon: day %d, level %d\n\n", s.Day, s.Level)

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Metric", "Value"}),
	)
	rows := [][]string{
		{"Cash", money(s.Cash)},
		{"Daily costs", money(d.FinancialOverview.DailyExpenses)},
		{"Health", healthLabel(d.FinancialOverview.FinancialHealth)},
		{"XP", strconv.Itoa(s.XP)},
		{"Energy", fmt.Sprintf("%d / %d", s.Energy, s.MaxEnergy)},
		{"Reputation", strconv.Itoa(s.Reputation)},
		{"Research", humanize.FormatFloat("#,###.##", s.Research)},
		{"Employees", fmt.Sprintf("%d / %d", d.EmployeeStats.TotalEmployees, d.EmployeeStats.MaxEmployees)},
		{"Tasks completed", humanize.Comma(int64(s.CompletedTasks))},
		{"Achievements", fmt.Sprintf("%d / %d", len(s.Achievements.Unlocked), len(s.Achievements.All))},
	}
	for _, row := range rows {
		_ = table.Append(row)
	}
	_ = table.Render()

	infoColor.Println("\nDepartments:")
	depts := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Department", "Level", "Daily", "Next step"}),
	)
	for _, info := range report.Departments(a.proc.Engine().Tables, s) {
		next := "unlock " + money(info.UnlockCost)
		if info.Level > 0 {
			next = "upgrade " + money(info.UpgradeCost)
		}
		_ = depts.Append([]string{info.Key, strconv.Itoa(info.Level), money(info.DailyCost), next})
	}
	_ = depts.Render()
}

func healthLabel(h company.FinancialHealth) string {
	runway := "unlimited runway"
	if !h.UnlimitedRunway {
		runway = fmt.Sprintf("%.1f days runway", h.DaysOfRunway)
	}
	label := fmt.Sprintf("%s (%.1f, %s)", h.Status, h.HealthScore, runway)
	switch {
	case h.HealthScore >= 60:
		return color.GreenString(label)
	case h.HealthScore >= 20:
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}

func historyCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent day summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			rows, err := recentDays(cmd, a, n)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				color.Yellow("No days have been ended yet.")
				return nil
			}

			table := tablewriter.NewTable(os.Stdout,
				tablewriter.WithHeader([]string{"Day", "Costs", "Ending cash", "Net", "Health", "Bankrupt"}),
			)
			for _, r := range rows {
				net := money(r.NetChange)
				if r.NetChange < 0 {
					net = color.RedString(net)
				} else {
					net = color.GreenString(net)
				}
				bankrupt := ""
				if r.Bankrupt {
					bankrupt = color.RedString("yes")
				}
				_ = table.Append([]string{strconv.Itoa(r.Day), money(r.TotalCost), money(r.EndingCash), net, r.Status, bankrupt})
			}
			_ = table.Render()
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "days", "n", 7, "Number of days to show")
	return cmd
}

// recentDays returns up to n days, newest first. The SQLite store answers
// from its day log; other stores decode the document.
func recentDays(cmd *cobra.Command, a *app, n int) ([]persistence.DayLogEntry, error) {
	if n <= 0 {
		return nil, errors.New("--days must be positive")
	}
	if db, ok := a.store.(*persistence.SQLiteStore); ok {
		return db.RecentDays(cmd.Context(), n)
	}

	days, err := a.proc.History(cmd.Context(), n)
	if err != nil {
		return nil, err
	}
	out := make([]persistence.DayLogEntry, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		out = append(out, persistence.DayLogEntry{
			Day:        d.Day,
			TotalCost:  d.Costs.TotalCost,
			EndingCash: d.EndingCash,
			NetChange:  d.NetChange,
			Status:     d.FinancialHealth.Status,
			Bankrupt:   d.Bankrupt,
		})
	}
	return out, nil
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the saved company with a fresh one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("reset discards the saved company; pass --yes to confirm")
			}
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.proc.Reset(cmd.Context())
			if err != nil {
				return err
			}
			color.Green("Company reset: day %d, cash %s", s.Day, money(s.Cash))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
