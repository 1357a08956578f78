// Package advisor turns aggregated transaction data into prioritized
// spending recommendations, financial advice, and a 0-100 health score.
// All functions are stateless transforms over the live collections;
// nothing derived is ever cached or stored.
package advisor

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/astritdwi/smartbudget/internal/analysis"
	"github.com/astritdwi/smartbudget/internal/core"
	"github.com/astritdwi/smartbudget/internal/forecast"
)

// Severity tags an entry for display styling. The set is closed.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Priority orders recommendations, most urgent first. The set is closed.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank maps priorities to sort keys, high first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is one derived spending observation.
type Recommendation struct {
	Kind        Severity `json:"kind"`
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// Advice is one derived budgeting suggestion.
type Advice struct {
	Kind        Severity `json:"kind"`
	Icon        string   `json:"icon"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// Category names the recommendation rules key on.
const (
	categoryFood          = "Food & Drink"
	categoryTransport     = "Transportation"
	categoryShopping      = "Shopping & Necessities"
	categoryEntertainment = "Entertainment & Recreation"
)

// Rule thresholds over current-month spending.
const (
	overspendFactor     = 1.5  // category vs mean category spend
	overspendReduceTo   = 1.2  // suggested ceiling, in means
	foodShareLimit      = 35   // percent of total spending
	transportShareLimit = 20   // percent of total spending
	entertainShareLimit = 20   // percent of total spending
	shoppingShareLimit  = 25   // percent of total spending
	risingTrendFactor   = 1.3  // recent-transaction mean vs daily average
	recentWindow        = 5    // transactions considered "recent"
)

// GenerateRecommendations derives spending warnings from the current
// month's expenses. Empty input produces empty output; a clean month
// produces a single positive entry. The result is sorted by priority,
// high to low, stable within equal priorities.
func GenerateRecommendations(txs []core.Transaction, now time.Time) []Recommendation {
	var recs []Recommendation
	if len(txs) == 0 {
		return recs
	}

	month := analysis.CurrentMonth(txs, now)
	expenses := analysis.FilterByType(month, core.Expense)
	if len(expenses) == 0 {
		return recs
	}

	spending := analysis.SumByCategory(expenses)
	var totalSpending int64
	for _, m := range spending {
		totalSpending += m.Rupiah
	}
	meanPerCategory := float64(totalSpending) / float64(len(spending))

	// Category overspending: anything beyond 1.5x the mean category
	// spend gets a suggested reduction back toward 1.2x the mean.
	// Iterate in first-seen order so output is deterministic.
	for _, cat := range analysis.CategoryOrder(expenses) {
		amount := spending[cat]
		if float64(amount.Rupiah) > meanPerCategory*overspendFactor {
			excess := core.Money{Rupiah: int64(float64(amount.Rupiah) - meanPerCategory*overspendReduceTo)}
			recs = append(recs, Recommendation{
				Kind:        SeverityWarning,
				Icon:        "fas fa-exclamation-triangle",
				Title:       fmt.Sprintf("Pengeluaran %q Tinggi", cat),
				Description: fmt.Sprintf("Anda menghabiskan %s untuk %s. Coba kurangi sebesar %s untuk optimalisasi.", amount.Format(), cat, excess.Format()),
				Priority:    PriorityHigh,
			})
		}
	}

	if share := sharePercent(spending[categoryFood].Rupiah, totalSpending); share > foodShareLimit {
		recs = append(recs, Recommendation{
			Kind:        SeverityWarning,
			Icon:        "fas fa-utensils",
			Title:       "Pengeluaran Makanan Cukup Besar",
			Description: fmt.Sprintf("%d%% dari total pengeluaran Anda untuk makanan. Coba masak sendiri atau membawa bekal.", share),
			Priority:    PriorityMedium,
		})
	}

	// Rising trend: the mean of the most recent expenses against the
	// month's running daily average.
	dailyAverage := analysis.AverageDailySpending(txs, now)
	recent := expenses
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	var recentTotal int64
	for _, tx := range recent {
		recentTotal += tx.Amount.Rupiah
	}
	recentAverage := float64(recentTotal) / float64(len(recent))
	if recentAverage > dailyAverage*risingTrendFactor {
		recs = append(recs, Recommendation{
			Kind:        SeverityDanger,
			Icon:        "fas fa-chart-line",
			Title:       "Tren Pengeluaran Meningkat",
			Description: "Pengeluaran rata-rata Anda naik. Periksa kembali transaksi baru untuk mengetahui penyebabnya.",
			Priority:    PriorityHigh,
		})
	}

	if share := sharePercent(spending[categoryTransport].Rupiah, totalSpending); share > transportShareLimit {
		recs = append(recs, Recommendation{
			Kind:        SeverityWarning,
			Icon:        "fas fa-car",
			Title:       "Biaya Transportasi Tinggi",
			Description: fmt.Sprintf("%d%% budget untuk transportasi. Pertimbangkan carpooling atau transportasi publik.", share),
			Priority:    PriorityMedium,
		})
	}
	if amount := spending[categoryEntertainment]; amount.Rupiah > 0 {
		if share := sharePercent(amount.Rupiah, totalSpending); share > entertainShareLimit {
			recs = append(recs, Recommendation{
				Kind:        SeverityInfo,
				Icon:        "fas fa-gamepad",
				Title:       "Hiburan dan Rekreasi",
				Description: fmt.Sprintf("Anda menghabiskan %s untuk hiburan. Hemat dengan berbagi langganan atau aktivitas gratis.", amount.Format()),
				Priority:    PriorityLow,
			})
		}
	}
	if amount := spending[categoryShopping]; amount.Rupiah > 0 {
		if share := sharePercent(amount.Rupiah, totalSpending); share > shoppingShareLimit {
			recs = append(recs, Recommendation{
				Kind:        SeverityWarning,
				Icon:        "fas fa-shopping-bag",
				Title:       "Belanja Impulsif Tinggi",
				Description: fmt.Sprintf("Anda menghabiskan %s untuk belanja. Buat daftar kebutuhan sebelum berbelanja.", amount.Format()),
				Priority:    PriorityMedium,
			})
		}
	}

	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Kind:        SeveritySuccess,
			Icon:        "fas fa-thumbs-up",
			Title:       "Pengeluaran Terkontrol",
			Description: "Pola pengeluaran Anda sangat baik! Terus pertahankan keseimbangan ini.",
			Priority:    PriorityLow,
		})
	} else if !hasHighPriority(recs) {
		recs = append([]Recommendation{{
			Kind:        SeveritySuccess,
			Icon:        "fas fa-check-circle",
			Title:       "Pola Pengeluaran Cukup Baik",
			Description: "Beberapa area bisa dioptimalkan, tapi secara umum keuangan Anda sehat.",
			Priority:    PriorityLow,
		}}, recs...)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.rank() < recs[j].Priority.rank()
	})
	return recs
}

// GenerateAdvice derives budgeting advice from the end-of-month
// projection. An empty transaction list yields a single "start
// tracking" entry.
func GenerateAdvice(txs []core.Transaction, currentBalance core.Money, now time.Time) []Advice {
	if len(txs) == 0 {
		return []Advice{{
			Kind:        SeverityInfo,
			Icon:        "fas fa-info-circle",
			Title:       "Mulai Catat Transaksi",
			Description: "Mulai catat setiap pengeluaran untuk mendapat analisis keuangan yang akurat.",
		}}
	}

	p := forecast.Predict(txs, currentBalance, now)
	var advice []Advice

	// Projection status: exactly one of danger, warning, success.
	switch {
	case p.EndBalance < 0:
		deficit := core.Money{Rupiah: int64(-p.EndBalance)}
		advice = append(advice, Advice{
			Kind:        SeverityDanger,
			Icon:        "fas fa-exclamation-circle",
			Title:       "Peringatan Saldo Negatif",
			Description: fmt.Sprintf("Berdasarkan prediksi, Anda akan mengalami defisit sebesar %s pada akhir bulan.", deficit.Format()),
		})
	case p.EndBalance < float64(currentBalance.Rupiah)*0.2:
		advice = append(advice, Advice{
			Kind:        SeverityWarning,
			Icon:        "fas fa-triangle-exclamation",
			Title:       "Saldo Mencukupi Tapi Terbatas",
			Description: fmt.Sprintf("Saldo akhir bulan akan menjadi %s. Hemat lebih banyak untuk buffer.", core.Money{Rupiah: int64(p.EndBalance)}.Format()),
		})
	default:
		advice = append(advice, Advice{
			Kind:        SeveritySuccess,
			Icon:        "fas fa-check-circle",
			Title:       "Saldo Aman",
			Description: fmt.Sprintf("Proyeksi saldo akhir bulan: %s. Keuangan Anda sehat!", core.Money{Rupiah: int64(p.EndBalance)}.Format()),
		})
	}

	// Daily spending target: trim 10% when on track, 30% when not.
	targetFactor := 0.9
	if p.EndBalance <= 0 {
		targetFactor = 0.7
	}
	dailyTarget := core.Money{Rupiah: int64(math.Floor(p.AvgDailyExpense * targetFactor))}
	advice = append(advice, Advice{
		Kind:        SeverityInfo,
		Icon:        "fas fa-calendar-day",
		Title:       "Target Pengeluaran Harian",
		Description: fmt.Sprintf("Target harian optimal: %s (saat ini: %s)", dailyTarget.Format(), core.Money{Rupiah: int64(math.Round(p.AvgDailyExpense))}.Format()),
	})

	potentialSavings := core.Money{Rupiah: int64(p.TotalExpectedExpense * 0.1)}
	advice = append(advice, Advice{
		Kind:        SeverityInfo,
		Icon:        "fas fa-piggy-bank",
		Title:       "Potensi Tabungan",
		Description: fmt.Sprintf("Dengan mengurangi 10%% pengeluaran, Anda bisa menabung %s per bulan.", potentialSavings.Format()),
	})

	// Month progress vs budget consumption. Equal percentages produce
	// no entry.
	progress := int(math.Round(float64(p.DaysPassed) / float64(p.DaysInMonth) * 100))
	denom := p.TotalExpectedExpense
	if denom == 0 {
		denom = 1
	}
	spendingPct := int(math.Round(float64(p.Expenses.Rupiah) / denom * 100))
	if progress > spendingPct {
		advice = append(advice, Advice{
			Kind:        SeveritySuccess,
			Icon:        "fas fa-arrow-trend-down",
			Title:       "Pengeluaran Di Bawah Target",
			Description: fmt.Sprintf("Anda sudah melewati %d%% bulan tapi hanya mengeluarkan %d%% budget. Terus pertahankan!", progress, spendingPct),
		})
	} else if progress < spendingPct {
		advice = append(advice, Advice{
			Kind:        SeverityWarning,
			Icon:        "fas fa-arrow-trend-up",
			Title:       "Pengeluaran Di Atas Target",
			Description: fmt.Sprintf("Anda sudah melewati %d%% bulan tapi sudah mengeluarkan %d%% budget. Kurangi pengeluaran!", progress, spendingPct),
		})
	}

	return advice
}

// StatusBadge is a compact severity label for the projection.
type StatusBadge struct {
	Status Severity `json:"status"`
	Label  string   `json:"label"`
	Icon   string   `json:"icon"`
}

// StatusOf maps a prediction to its display badge.
func StatusOf(p forecast.Prediction) StatusBadge {
	switch {
	case p.EndBalance < 0:
		return StatusBadge{Status: SeverityDanger, Label: "Kritis", Icon: "fas fa-exclamation-circle"}
	case p.EndBalance < float64(p.CurrentBalance.Rupiah)*0.2:
		return StatusBadge{Status: SeverityWarning, Label: "Hati-Hati", Icon: "fas fa-triangle-exclamation"}
	default:
		return StatusBadge{Status: SeveritySuccess, Label: "Aman", Icon: "fas fa-check-circle"}
	}
}

func hasHighPriority(recs []Recommendation) bool {
	for _, r := range recs {
		if r.Priority == PriorityHigh {
			return true
		}
	}
	return false
}

// sharePercent is value's rounded share of total, 0 when total is 0.
func sharePercent(value, total int64) int {
	return analysis.Percentage(value, total)
}
