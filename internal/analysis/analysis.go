// Package analysis provides pure aggregation functions over transaction
// collections. Nothing here holds state: the wall clock is always passed
// in explicitly so month boundaries and trend windows are deterministic
// under test.
package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/astritdwi/smartbudget/internal/core"
)

// DayAmount is one day of a spending trend.
type DayAmount struct {
	Date   core.Date  `json:"date"`
	Amount core.Money `json:"amount"`
}

// CategoryAmount is an amount aggregated under one category name.
type CategoryAmount struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
}

// SumByType sums amounts of transactions whose type matches.
func SumByType(txs []core.Transaction, typ core.TransactionType) core.Money {
	var total int64
	for _, tx := range txs {
		if tx.Type == typ {
			total += tx.Amount.Rupiah
		}
	}
	return core.Money{Rupiah: total}
}

// CountByType counts transactions of the given type.
func CountByType(txs []core.Transaction, typ core.TransactionType) int {
	n := 0
	for _, tx := range txs {
		if tx.Type == typ {
			n++
		}
	}
	return n
}

// FilterByType returns the transactions of the given type, insertion
// order preserved.
func FilterByType(txs []core.Transaction, typ core.TransactionType) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if tx.Type == typ {
			out = append(out, tx)
		}
	}
	return out
}

// GroupByCategory partitions transactions into per-category sequences,
// insertion order preserved within each group.
func GroupByCategory(txs []core.Transaction) map[string][]core.Transaction {
	grouped := make(map[string][]core.Transaction)
	for _, tx := range txs {
		grouped[tx.Category] = append(grouped[tx.Category], tx)
	}
	return grouped
}

// SumByCategory sums amounts per category.
func SumByCategory(txs []core.Transaction) map[string]core.Money {
	sums := make(map[string]core.Money)
	for _, tx := range txs {
		sums[tx.Category] = core.Money{Rupiah: sums[tx.Category].Rupiah + tx.Amount.Rupiah}
	}
	return sums
}

// CurrentMonth filters to transactions dated in the calendar month
// containing now.
func CurrentMonth(txs []core.Transaction, now time.Time) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if tx.Date.SameMonth(now) {
			out = append(out, tx)
		}
	}
	return out
}

// MonthOf filters to transactions dated in the given year and month.
func MonthOf(txs []core.Transaction, year, month int) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if tx.Date.Year() == year && tx.Date.Month() == month {
			out = append(out, tx)
		}
	}
	return out
}

// DailyTrend sums expense amounts for each of the last windowDays days
// ending today inclusive. Every day in the window gets an entry, oldest
// first, even when nothing was spent.
func DailyTrend(txs []core.Transaction, windowDays int, now time.Time) []DayAmount {
	if windowDays <= 0 {
		return nil
	}
	trend := make([]DayAmount, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		var total int64
		for _, tx := range txs {
			if tx.Type == core.Expense && tx.Date.SameDay(day) {
				total += tx.Amount.Rupiah
			}
		}
		trend = append(trend, DayAmount{Date: core.DateOf(day), Amount: core.Money{Rupiah: total}})
	}
	return trend
}

// TopCategories returns the highest-spending categories, largest first,
// at most limit entries. Equal sums keep first-seen category order.
func TopCategories(txs []core.Transaction, limit int) []CategoryAmount {
	sums := SumByCategory(txs)
	order := make(map[string]int, len(sums))
	var ranked []CategoryAmount
	for _, tx := range txs {
		if _, seen := order[tx.Category]; !seen {
			order[tx.Category] = len(ranked)
			ranked = append(ranked, CategoryAmount{Name: tx.Category, Amount: sums[tx.Category]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.Rupiah > ranked[j].Amount.Rupiah
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// CategoryOrder lists category names in first-seen transaction order.
// Callers that iterate category maps use it to keep output
// deterministic.
func CategoryOrder(txs []core.Transaction) []string {
	seen := make(map[string]bool)
	var order []string
	for _, tx := range txs {
		if !seen[tx.Category] {
			seen[tx.Category] = true
			order = append(order, tx.Category)
		}
	}
	return order
}

// UniqueCategories returns the distinct category names, sorted.
func UniqueCategories(txs []core.Transaction) []string {
	seen := make(map[string]bool)
	var names []string
	for _, tx := range txs {
		if !seen[tx.Category] {
			seen[tx.Category] = true
			names = append(names, tx.Category)
		}
	}
	sort.Strings(names)
	return names
}

// AverageDailySpending is the current month's expense total divided by
// the days elapsed so far, zero when no day has elapsed.
func AverageDailySpending(txs []core.Transaction, now time.Time) float64 {
	expense := SumByType(CurrentMonth(txs, now), core.Expense)
	daysPassed := now.Day()
	if daysPassed == 0 {
		return 0
	}
	return float64(expense.Rupiah) / float64(daysPassed)
}

// Percentage is value/total as a rounded whole percentage, zero when the
// total is zero.
func Percentage(value, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(total) * 100))
}
