package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/astritdwi/smartbudget/internal/core"
	"github.com/astritdwi/smartbudget/internal/storage"
)

func fixedNow() time.Time {
	return time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T) *BudgetService {
	t.Helper()
	svc := NewBudgetService(storage.NewMemoryStore(), fixedNow)
	svc.Load(context.Background())
	return svc
}

func sampleTx(amount int64) core.Transaction {
	return core.Transaction{
		Type:        core.Expense,
		Amount:      core.Money{Rupiah: amount},
		Category:    "Food & Drink",
		Description: "makan siang",
		Date:        core.NewDate(2025, 8, 20),
	}
}

func TestAddTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, sampleTx(25000))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if tx.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if tx.CreatedAt != fixedNow() {
		t.Errorf("CreatedAt = %v, want %v", tx.CreatedAt, fixedNow())
	}
	if got := svc.Transactions(); len(got) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(got))
	}
}

func TestAddTransactionValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	bad := sampleTx(25000)
	bad.Description = ""
	if _, err := svc.AddTransaction(ctx, bad); err == nil {
		t.Error("expected validation error for empty description")
	}
	if got := svc.Transactions(); len(got) != 0 {
		t.Errorf("rejected transaction must not be stored, got %d", len(got))
	}
}

func TestAddTransactionUniqueIDs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.AddTransaction(ctx, sampleTx(10000))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	second, err := svc.AddTransaction(ctx, sampleTx(20000))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("IDs must be unique, both %d", first.ID)
	}
}

func TestUpdateTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, sampleTx(25000))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	edited := sampleTx(40000)
	edited.Description = "makan malam"
	got, err := svc.UpdateTransaction(ctx, tx.ID, edited)
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if got.ID != tx.ID {
		t.Errorf("ID changed on update: %d != %d", got.ID, tx.ID)
	}
	if got.CreatedAt != tx.CreatedAt {
		t.Error("CreatedAt must be preserved on update")
	}
	if got.Amount.Rupiah != 40000 {
		t.Errorf("Amount = %d, want 40000", got.Amount.Rupiah)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.UpdateTransaction(context.Background(), 99, sampleTx(1000))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTransactionInvalidKeepsOriginal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, sampleTx(25000))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	bad := sampleTx(0)
	if _, err := svc.UpdateTransaction(ctx, tx.ID, bad); err == nil {
		t.Fatal("expected validation error for zero amount")
	}
	got := svc.Transactions()
	if got[0].Amount.Rupiah != 25000 {
		t.Errorf("original must be untouched, amount = %d", got[0].Amount.Rupiah)
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddTransaction(ctx, sampleTx(25000))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if err := svc.DeleteTransaction(ctx, tx.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if got := svc.Transactions(); len(got) != 0 {
		t.Errorf("expected empty collection, got %d", len(got))
	}
	if err := svc.DeleteTransaction(ctx, tx.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestGoalLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	g, err := svc.AddGoal(ctx, core.Goal{
		Name:     "Dana Darurat",
		Target:   core.Money{Rupiah: 1000000},
		Deadline: core.NewDate(2025, 12, 31),
		Saved:    core.Money{Rupiah: 999}, // ignored on create
	})
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if g.Saved.Rupiah != 0 {
		t.Errorf("new goal must start at zero saved, got %d", g.Saved.Rupiah)
	}

	g.Saved = core.Money{Rupiah: 1200000}
	updated, err := svc.UpdateGoal(ctx, g.ID, g)
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if !updated.Completed() {
		t.Error("goal saved beyond target must report completed")
	}

	if err := svc.DeleteGoal(ctx, g.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if err := svc.DeleteGoal(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadRestoresState(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	svc := NewBudgetService(store, fixedNow)
	svc.Load(ctx)
	tx, err := svc.AddTransaction(ctx, sampleTx(25000))
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	fresh := NewBudgetService(store, fixedNow)
	fresh.Load(ctx)
	got := fresh.Transactions()
	if len(got) != 1 || got[0].ID != tx.ID {
		t.Fatalf("expected restored transaction %d, got %+v", tx.ID, got)
	}
}

func TestDashboard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	income := sampleTx(1000000)
	income.Type = core.Income
	income.Category = "Salary & Income"
	income.Description = "gaji bulanan"
	if _, err := svc.AddTransaction(ctx, income); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, sampleTx(250000)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	d := svc.Dashboard()
	if d.MonthIncome.Rupiah != 1000000 {
		t.Errorf("MonthIncome = %d, want 1000000", d.MonthIncome.Rupiah)
	}
	if d.MonthExpense.Rupiah != 250000 {
		t.Errorf("MonthExpense = %d, want 250000", d.MonthExpense.Rupiah)
	}
	if d.MonthNet.Rupiah != 750000 {
		t.Errorf("MonthNet = %d, want 750000", d.MonthNet.Rupiah)
	}
	if len(d.TopCategories) != 1 || d.TopCategories[0].Name != "Food & Drink" {
		t.Errorf("unexpected top categories: %+v", d.TopCategories)
	}
	if len(d.Trend) != DefaultTrendWindowDays {
		t.Errorf("trend length = %d, want %d", len(d.Trend), DefaultTrendWindowDays)
	}
	if d.HealthScore < 0 || d.HealthScore > 100 {
		t.Errorf("health score out of range: %d", d.HealthScore)
	}
}

func TestInsights(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	income := sampleTx(1000000)
	income.Type = core.Income
	income.Category = "Salary & Income"
	income.Description = "gaji bulanan"
	if _, err := svc.AddTransaction(ctx, income); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, sampleTx(200000)); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	ins := svc.Insights(core.Money{})
	if ins.Prediction.Income.Rupiah != 1000000 {
		t.Errorf("prediction income = %d, want 1000000", ins.Prediction.Income.Rupiah)
	}
	if ins.Prediction.Expenses.Rupiah != 200000 {
		t.Errorf("prediction expenses = %d, want 200000", ins.Prediction.Expenses.Rupiah)
	}
	if ins.Status.Label == "" {
		t.Error("expected a status label")
	}
	if len(ins.Advice) == 0 {
		t.Error("expected advice entries")
	}
}
