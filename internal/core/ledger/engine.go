// Package ledger applies deposits and withdrawals against resolved accounts.
package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

// Engine validates transaction requests and hands the atomic
// read-check-write to the ledger store. The store serializes mutations per
// account; operations on different accounts proceed in parallel.
type Engine struct {
	store      ports.LedgerStore
	webhooks   ports.WebhookQueue
	webhookURL string
}

func NewEngine(store ports.LedgerStore, webhooks ports.WebhookQueue, webhookURL string) *Engine {
	return &Engine{store: store, webhooks: webhooks, webhookURL: webhookURL}
}

// Apply commits one deposit or withdrawal and returns the transaction record
// carrying the new balance. Invariants: amount must be positive, the balance
// never goes negative, and a failed withdrawal leaves the balance untouched.
func (e *Engine) Apply(ctx context.Context, accountNo string, kind domain.TxKind, amount int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if kind != domain.Deposit && kind != domain.Withdrawal {
		return nil, domain.ErrMissingField
	}

	tx, err := e.store.ApplyTransaction(ctx, accountNo, kind, amount)
	if err != nil {
		return nil, err
	}

	e.notify(ctx, tx)
	return tx, nil
}

// History returns the most recent transactions for an account.
func (e *Engine) History(ctx context.Context, accountNo string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	return e.store.History(ctx, accountNo, limit)
}

// notify enqueues a transaction.completed webhook. Delivery is best-effort:
// the transaction is already committed, so a queue failure is logged, not
// surfaced.
func (e *Engine) notify(ctx context.Context, tx *domain.Transaction) {
	if e.webhookURL == "" || e.webhooks == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event":      "transaction.completed",
		"account_no": tx.AccountNo,
		"kind":       tx.Kind,
		"amount":     tx.Amount,
		"balance":    tx.BalanceAfter,
		"tx_id":      tx.ID,
		"timestamp":  time.Now().UTC(),
	})
	if err != nil {
		slog.Error("Failed to build webhook payload", "error", err, "tx_id", tx.ID)
		return
	}
	if err := e.webhooks.EnqueueWebhook(ctx, e.webhookURL, payload); err != nil {
		slog.Error("Failed to enqueue webhook", "error", err, "tx_id", tx.ID)
	}
}
