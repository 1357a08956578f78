// Package services provides business logic and orchestration services.
//
// BudgetService owns the in-memory transaction and goal collections: it
// validates and applies CRUD operations, persists every mutation through
// the Store, and assembles dashboard and insight views by calling the
// pure analysis, forecast, and advisor functions.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/astritdwi/smartbudget/internal/advisor"
	"github.com/astritdwi/smartbudget/internal/analysis"
	"github.com/astritdwi/smartbudget/internal/core"
	"github.com/astritdwi/smartbudget/internal/forecast"
	applog "github.com/astritdwi/smartbudget/internal/log"
	"github.com/astritdwi/smartbudget/internal/storage"
)

// ErrNotFound reports an edit or delete against an unknown ID. No state
// changes when it is returned.
var ErrNotFound = errors.New("record not found")

// DefaultTrendWindowDays is the spending-trend window used by the
// dashboard view.
const DefaultTrendWindowDays = 30

// BudgetService coordinates the collections, the store, and the derived
// views. The now function is injectable so month boundaries are
// deterministic under test.
type BudgetService struct {
	mu     sync.Mutex
	store  storage.Store
	txs    []core.Transaction
	goals  []core.Goal
	now    func() time.Time
	window int
}

func NewBudgetService(store storage.Store, now func() time.Time) *BudgetService {
	if now == nil {
		now = time.Now
	}
	return &BudgetService{
		store:  store,
		now:    now,
		window: DefaultTrendWindowDays,
	}
}

// SetTrendWindow overrides the dashboard trend window. Non-positive
// values are ignored.
func (s *BudgetService) SetTrendWindow(days int) {
	if days > 0 {
		s.mu.Lock()
		s.window = days
		s.mu.Unlock()
	}
}

// Load pulls the persisted collections into memory. Absent or malformed
// state resolves to empty collections.
func (s *BudgetService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = storage.LoadTransactions(ctx, s.store)
	s.goals = storage.LoadGoals(ctx, s.store)
	slog.InfoContext(ctx, "Collections loaded",
		applog.FieldComponent, applog.ComponentBudget,
		"transactions", len(s.txs), "goals", len(s.goals))
}

// nextID derives a unique ID from the current instant. Collisions with
// existing IDs (two creations in the same millisecond) bump forward.
func nextID(base int64, taken func(int64) bool) int64 {
	id := base
	for taken(id) {
		id++
	}
	return id
}

func (s *BudgetService) txIDTaken(id int64) bool {
	for _, tx := range s.txs {
		if tx.ID == id {
			return true
		}
	}
	return false
}

func (s *BudgetService) goalIDTaken(id int64) bool {
	for _, g := range s.goals {
		if g.ID == id {
			return true
		}
	}
	return false
}

// AddTransaction validates and records a new transaction, assigning its
// ID and creation instant. The write is persisted before returning.
func (s *BudgetService) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	tx.ID = nextID(now.UnixMilli(), s.txIDTaken)
	tx.CreatedAt = now

	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.txs = append(s.txs, tx)
	if err := storage.SaveTransactions(ctx, s.store, s.txs); err != nil {
		s.txs = s.txs[:len(s.txs)-1]
		return core.Transaction{}, fmt.Errorf("persist transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction added",
		applog.FieldComponent, applog.ComponentBudget,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTxID, tx.ID,
		"type", string(tx.Type),
		applog.FieldCategory, tx.Category,
		applog.FieldAmount, tx.Amount.Rupiah,
		"date", tx.Date.String())
	return tx, nil
}

// UpdateTransaction overwrites every user-editable field of the
// transaction with the given ID. Identity and creation instant are kept.
func (s *BudgetService) UpdateTransaction(ctx context.Context, id int64, updated core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txs {
		if tx.ID != id {
			continue
		}
		updated.ID = tx.ID
		updated.CreatedAt = tx.CreatedAt
		if err := updated.Validate(); err != nil {
			return core.Transaction{}, err
		}
		s.txs[i] = updated
		if err := storage.SaveTransactions(ctx, s.store, s.txs); err != nil {
			s.txs[i] = tx
			return core.Transaction{}, fmt.Errorf("persist transaction: %w", err)
		}
		slog.InfoContext(ctx, "Transaction updated",
			applog.FieldComponent, applog.ComponentBudget,
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldTxID, id)
		return updated, nil
	}
	return core.Transaction{}, ErrNotFound
}

// DeleteTransaction removes the transaction with the given ID.
func (s *BudgetService) DeleteTransaction(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txs {
		if tx.ID != id {
			continue
		}
		s.txs = append(s.txs[:i], s.txs[i+1:]...)
		if err := storage.SaveTransactions(ctx, s.store, s.txs); err != nil {
			s.txs = append(s.txs[:i], append([]core.Transaction{tx}, s.txs[i:]...)...)
			return fmt.Errorf("persist transactions: %w", err)
		}
		slog.InfoContext(ctx, "Transaction deleted",
			applog.FieldComponent, applog.ComponentBudget,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldTxID, id)
		return nil
	}
	return ErrNotFound
}

// Transactions returns a copy of the collection, insertion order
// preserved.
func (s *BudgetService) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...)
}

// AddGoal validates and records a new savings goal, starting at zero
// saved.
func (s *BudgetService) AddGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	g.ID = nextID(now.UnixMilli(), s.goalIDTaken)
	g.CreatedAt = now
	g.Saved = core.Money{}

	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	s.goals = append(s.goals, g)
	if err := storage.SaveGoals(ctx, s.store, s.goals); err != nil {
		s.goals = s.goals[:len(s.goals)-1]
		return core.Goal{}, fmt.Errorf("persist goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal added",
		applog.FieldComponent, applog.ComponentBudget,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldGoalID, g.ID,
		"name", g.Name,
		"target", g.Target.Rupiah)
	return g, nil
}

// UpdateGoal overwrites every user-editable field of the goal with the
// given ID, the saved amount included. Saved beyond target is allowed.
func (s *BudgetService) UpdateGoal(ctx context.Context, id int64, updated core.Goal) (core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals {
		if g.ID != id {
			continue
		}
		updated.ID = g.ID
		updated.CreatedAt = g.CreatedAt
		if err := updated.Validate(); err != nil {
			return core.Goal{}, err
		}
		s.goals[i] = updated
		if err := storage.SaveGoals(ctx, s.store, s.goals); err != nil {
			s.goals[i] = g
			return core.Goal{}, fmt.Errorf("persist goal: %w", err)
		}
		slog.InfoContext(ctx, "Goal updated",
			applog.FieldComponent, applog.ComponentBudget,
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldGoalID, id)
		return updated, nil
	}
	return core.Goal{}, ErrNotFound
}

// DeleteGoal removes the goal with the given ID.
func (s *BudgetService) DeleteGoal(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals {
		if g.ID != id {
			continue
		}
		s.goals = append(s.goals[:i], s.goals[i+1:]...)
		if err := storage.SaveGoals(ctx, s.store, s.goals); err != nil {
			s.goals = append(s.goals[:i], append([]core.Goal{g}, s.goals[i:]...)...)
			return fmt.Errorf("persist goals: %w", err)
		}
		slog.InfoContext(ctx, "Goal deleted",
			applog.FieldComponent, applog.ComponentBudget,
			applog.FieldOperation, applog.OpDelete,
			applog.FieldGoalID, id)
		return nil
	}
	return ErrNotFound
}

// Goals returns a copy of the goal collection.
func (s *BudgetService) Goals() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...)
}

// Dashboard is the aggregate view the main screen renders from.
type Dashboard struct {
	MonthIncome     core.Money                `json:"monthIncome"`
	MonthExpense    core.Money                `json:"monthExpense"`
	MonthNet        core.Money                `json:"monthNet"`
	TopCategories   []analysis.CategoryAmount `json:"topCategories"`
	Trend           []analysis.DayAmount      `json:"trend"`
	Recommendations []advisor.Recommendation  `json:"recommendations"`
	HealthScore     int                       `json:"healthScore"`
}

// Dashboard assembles the current month's aggregates, the expense
// trend, recommendations, and the health score.
func (s *BudgetService) Dashboard() Dashboard {
	txs := s.Transactions()
	goals := s.Goals()
	now := s.now()

	month := analysis.CurrentMonth(txs, now)
	income := analysis.SumByType(month, core.Income)
	expense := analysis.SumByType(month, core.Expense)
	expenses := analysis.FilterByType(month, core.Expense)

	return Dashboard{
		MonthIncome:     income,
		MonthExpense:    expense,
		MonthNet:        core.Money{Rupiah: income.Rupiah - expense.Rupiah},
		TopCategories:   analysis.TopCategories(expenses, 5),
		Trend:           analysis.DailyTrend(txs, s.window, now),
		Recommendations: advisor.GenerateRecommendations(txs, now),
		HealthScore:     advisor.HealthScore(txs, goals, now),
	}
}

// Insights is the prediction-and-advice view.
type Insights struct {
	Prediction forecast.Prediction `json:"prediction"`
	Status     advisor.StatusBadge `json:"status"`
	Advice     []advisor.Advice    `json:"advice"`
	CashFlow   advisor.CashFlow    `json:"cashFlow"`
}

// Insights projects the end-of-month balance and derives advice from
// it. currentBalance is the caller's opening balance, zero in the
// standard UI.
func (s *BudgetService) Insights(currentBalance core.Money) Insights {
	txs := s.Transactions()
	now := s.now()

	p := forecast.Predict(txs, currentBalance, now)
	return Insights{
		Prediction: p,
		Status:     advisor.StatusOf(p),
		Advice:     advisor.GenerateAdvice(txs, currentBalance, now),
		CashFlow:   advisor.AnalyzeCashFlow(txs, now),
	}
}
