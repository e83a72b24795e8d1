package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// ApplyTransaction runs the read-check-write for one account inside a single
// transaction. The store's single write connection serializes concurrent
// calls, so two withdrawals racing on the same balance cannot both pass the
// funds check.
func (s *Store) ApplyTransaction(ctx context.Context, accountNo string, kind domain.TxKind, amount int64) (*domain.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRowContext(ctx,
		`SELECT balance FROM accounts WHERE account_no = ?`, accountNo,
	).Scan(&balance)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}

	var newBalance int64
	switch kind {
	case domain.Deposit:
		newBalance = balance + amount
	case domain.Withdrawal:
		if amount > balance {
			return nil, domain.ErrInsufficientFunds
		}
		newBalance = balance - amount
	default:
		return nil, domain.ErrInvalidAmount
	}

	record := domain.Transaction{
		ID:           uuid.New(),
		AccountNo:    accountNo,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: newBalance,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = ? WHERE account_no = ?`, newBalance, accountNo,
	); err != nil {
		return nil, fmt.Errorf("write balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO transactions (id, account_no, kind, amount, balance_after, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID.String(), record.AccountNo, string(record.Kind), record.Amount, record.BalanceAfter, record.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &record, nil
}

// History fetches the most recent transactions for an account.
func (s *Store) History(ctx context.Context, accountNo string, limit int) ([]domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_no, kind, amount, balance_after, created_at
		 FROM transactions WHERE account_no = ?
		 ORDER BY created_at DESC LIMIT ?`,
		accountNo, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var history []domain.Transaction
	for rows.Next() {
		var rec domain.Transaction
		var id, kind string
		if err := rows.Scan(&id, &rec.AccountNo, &kind, &rec.Amount, &rec.BalanceAfter, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		rec.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse transaction id: %w", err)
		}
		rec.Kind = domain.TxKind(kind)
		history = append(history, rec)
	}
	return history, rows.Err()
}
