// Package forecast projects the end-of-month balance from month-to-date
// income and expense figures.
package forecast

import (
	"time"

	"github.com/astritdwi/smartbudget/internal/analysis"
	"github.com/astritdwi/smartbudget/internal/core"
)

const (
	StatusSafe     Status = "safe"
	StatusCritical Status = "critical"
)

type Status string

// Prediction carries every intermediate of the projection. Consumers
// must read these fields rather than recompute them, so displayed
// figures stay mutually consistent.
type Prediction struct {
	CurrentBalance            core.Money `json:"currentBalance"`
	Income                    core.Money `json:"income"`
	Expenses                  core.Money `json:"expenses"`
	AvgDailyExpense           float64    `json:"avgDailyExpense"`
	PredictedRemainingExpense float64    `json:"predictedRemainingExpense"`
	TotalExpectedExpense      float64    `json:"totalExpectedExpense"`
	EndBalance                float64    `json:"endBalance"`
	DaysPassed                int        `json:"daysPassed"`
	DaysInMonth               int        `json:"daysInMonth"`
	DaysRemaining             int        `json:"daysRemaining"`
	Status                    Status     `json:"status"`
}

// Predict projects the end-of-month balance: the month-to-date daily
// expense average is assumed to continue for the remaining days.
func Predict(txs []core.Transaction, currentBalance core.Money, now time.Time) Prediction {
	month := analysis.CurrentMonth(txs, now)
	income := analysis.SumByType(month, core.Income)
	expenses := analysis.SumByType(month, core.Expense)

	daysPassed := now.Day()
	daysInMonth := DaysInMonth(now)
	daysRemaining := daysInMonth - daysPassed

	avgDaily := 0.0
	if daysPassed > 0 {
		avgDaily = float64(expenses.Rupiah) / float64(daysPassed)
	}
	predictedRemaining := avgDaily * float64(daysRemaining)
	totalExpected := float64(expenses.Rupiah) + predictedRemaining
	endBalance := float64(currentBalance.Rupiah) + float64(income.Rupiah) - totalExpected

	status := StatusCritical
	if endBalance > 0 {
		status = StatusSafe
	}

	return Prediction{
		CurrentBalance:            currentBalance,
		Income:                    income,
		Expenses:                  expenses,
		AvgDailyExpense:           avgDaily,
		PredictedRemainingExpense: predictedRemaining,
		TotalExpectedExpense:      totalExpected,
		EndBalance:                endBalance,
		DaysPassed:                daysPassed,
		DaysInMonth:               daysInMonth,
		DaysRemaining:             daysRemaining,
		Status:                    status,
	}
}

// DaysInMonth returns the number of days in the calendar month
// containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
