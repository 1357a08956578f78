package advisor

import (
	"math"
	"time"

	"github.com/astritdwi/smartbudget/internal/analysis"
	"github.com/astritdwi/smartbudget/internal/core"
)

// Health score factors. Base 50, expense efficiency up to +25, goal
// completion up to +15, income stability +10, clamped to [0,100].
const (
	healthBase            = 50
	efficiencyMaxBonus    = 25
	efficiencyMidBonus    = 15
	efficiencyLowBonus    = 8
	goalMaxBonus          = 15
	stabilityBonus        = 10
	stableIncomeThreshold = 2
)

// HealthScore is a 0-100 composite of expense efficiency, goal
// completion, and income stability over the current month.
func HealthScore(txs []core.Transaction, goals []core.Goal, now time.Time) int {
	month := analysis.CurrentMonth(txs, now)
	income := analysis.SumByType(month, core.Income)
	expenses := analysis.SumByType(month, core.Expense)

	score := healthBase

	if income.Rupiah > 0 {
		ratio := float64(expenses.Rupiah) / float64(income.Rupiah)
		switch {
		case ratio <= 0.5:
			score += efficiencyMaxBonus
		case ratio <= 0.7:
			score += efficiencyMidBonus
		case ratio <= 0.85:
			score += efficiencyLowBonus
		}
	}

	if len(goals) > 0 {
		completed := 0
		for _, g := range goals {
			if g.Completed() {
				completed++
			}
		}
		score += int(math.Round(float64(completed) / float64(len(goals)) * goalMaxBonus))
	}

	if analysis.CountByType(month, core.Income) >= stableIncomeThreshold {
		score += stabilityBonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CashFlow summarizes the current month's money movement.
type CashFlow struct {
	Income            core.Money `json:"income"`
	Expenses          core.Money `json:"expenses"`
	Net               core.Money `json:"net"`
	IncomeCount       int        `json:"incomeCount"`
	ExpenseCount      int        `json:"expenseCount"`
	IncomeAverage     float64    `json:"incomeAverage"`
	ExpenseAverage    float64    `json:"expenseAverage"`
	ExpensePercentage float64    `json:"expensePercentage"`
}

// AnalyzeCashFlow computes the current month's income/expense totals,
// counts, per-transaction averages, and expense share of income.
func AnalyzeCashFlow(txs []core.Transaction, now time.Time) CashFlow {
	month := analysis.CurrentMonth(txs, now)
	income := analysis.SumByType(month, core.Income)
	expenses := analysis.SumByType(month, core.Expense)

	flow := CashFlow{
		Income:       income,
		Expenses:     expenses,
		Net:          core.Money{Rupiah: income.Rupiah - expenses.Rupiah},
		IncomeCount:  analysis.CountByType(month, core.Income),
		ExpenseCount: analysis.CountByType(month, core.Expense),
	}
	if flow.IncomeCount > 0 {
		flow.IncomeAverage = float64(income.Rupiah) / float64(flow.IncomeCount)
	}
	if flow.ExpenseCount > 0 {
		flow.ExpenseAverage = float64(expenses.Rupiah) / float64(flow.ExpenseCount)
	}
	if income.Rupiah > 0 {
		flow.ExpensePercentage = float64(expenses.Rupiah) / float64(income.Rupiah) * 100
	}
	return flow
}
