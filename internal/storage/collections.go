package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/astritdwi/smartbudget/internal/core"
	applog "github.com/astritdwi/smartbudget/internal/log"
)

// LoadTransactions reads the stored transaction list. An absent or
// malformed value resolves to an empty collection; corruption is logged
// but never surfaced.
func LoadTransactions(ctx context.Context, s Store) []core.Transaction {
	raw, err := s.Get(ctx, KeyTransactions, "[]")
	if err != nil {
		slog.WarnContext(ctx, "Failed to read transactions, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldError, err.Error())
		return nil
	}
	var txs []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		slog.WarnContext(ctx, "Stored transactions are malformed, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldError, err.Error())
		return nil
	}
	return txs
}

// SaveTransactions writes the full transaction list.
func SaveTransactions(ctx context.Context, s Store, txs []core.Transaction) error {
	if txs == nil {
		txs = []core.Transaction{}
	}
	raw, err := json.Marshal(txs)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	if err := s.Set(ctx, KeyTransactions, string(raw)); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

// LoadGoals reads the stored goal list, defaulting to empty.
func LoadGoals(ctx context.Context, s Store) []core.Goal {
	raw, err := s.Get(ctx, KeyGoals, "[]")
	if err != nil {
		slog.WarnContext(ctx, "Failed to read goals, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldError, err.Error())
		return nil
	}
	var goals []core.Goal
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		slog.WarnContext(ctx, "Stored goals are malformed, starting empty",
			applog.FieldComponent, applog.ComponentStorage,
			applog.FieldError, err.Error())
		return nil
	}
	return goals
}

// SaveGoals writes the full goal list.
func SaveGoals(ctx context.Context, s Store, goals []core.Goal) error {
	if goals == nil {
		goals = []core.Goal{}
	}
	raw, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	if err := s.Set(ctx, KeyGoals, string(raw)); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	return nil
}
