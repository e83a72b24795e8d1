package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// ApplyTransaction moves money safely: the row lock taken by FOR UPDATE
// serializes concurrent mutations of one account while leaving other
// accounts untouched.
func (s *Store) ApplyTransaction(ctx context.Context, accountNo string, kind domain.TxKind, amount int64) (*domain.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT balance FROM accounts WHERE account_no = $1 FOR UPDATE`, accountNo,
	).Scan(&balance)
	if err == pgx.ErrNoRows {
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

	if _, err := tx.Exec(ctx,
		`UPDATE accounts SET balance = $1 WHERE account_no = $2`, newBalance, accountNo,
	); err != nil {
		return nil, fmt.Errorf("write balance: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO transactions (id, account_no, kind, amount, balance_after, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, record.AccountNo, string(record.Kind), record.Amount, record.BalanceAfter, record.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &record, nil
}

// History fetches the most recent transactions for an account.
func (s *Store) History(ctx context.Context, accountNo string, limit int) ([]domain.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, account_no, kind, amount, balance_after, created_at
		 FROM transactions WHERE account_no = $1
		 ORDER BY created_at DESC LIMIT $2`,
		accountNo, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var history []domain.Transaction
	for rows.Next() {
		var rec domain.Transaction
		var kind string
		if err := rows.Scan(&rec.ID, &rec.AccountNo, &kind, &rec.Amount, &rec.BalanceAfter, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		rec.Kind = domain.TxKind(kind)
		history = append(history, rec)
	}
	return history, rows.Err()
}
