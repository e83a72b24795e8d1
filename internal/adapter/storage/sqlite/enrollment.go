package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// GetAccount returns the account or domain.ErrUnknownAccount.
func (s *Store) GetAccount(ctx context.Context, accountNo string) (*domain.Account, error) {
	var acct domain.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT account_no, holder_name, balance, created_at FROM accounts WHERE account_no = ?`,
		accountNo,
	).Scan(&acct.AccountNo, &acct.HolderName, &acct.Balance, &acct.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acct, nil
}

func (s *Store) AccountExists(ctx context.Context, accountNo string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM accounts WHERE account_no = ?`, accountNo,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("account exists: %w", err)
	}
	return true, nil
}

// ListTemplates returns a snapshot of every enrolled template. A single
// query inside SQLite's snapshot isolation means a concurrently committing
// enrollment is either fully visible or fully absent.
func (s *Store) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_no, embedding, model, created_at FROM templates`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var tpl domain.Template
		var embeddingJSON string
		if err := rows.Scan(&tpl.AccountNo, &embeddingJSON, &tpl.Model, &tpl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if err := json.Unmarshal([]byte(embeddingJSON), &tpl.Embedding); err != nil {
			return nil, fmt.Errorf("decode embedding for %s: %w", tpl.AccountNo, err)
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// CreateEnrollment inserts the account and its template in one transaction.
// Either both rows are visible afterward or neither is. The primary key
// rejects a second enrollment for the same account number.
func (s *Store) CreateEnrollment(ctx context.Context, acct domain.Account, tpl domain.Template) error {
	embeddingJSON, err := json.Marshal(tpl.Embedding)
	if err != nil {
		return fmt.Errorf("encode embedding: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin enrollment: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO accounts (account_no, holder_name, balance, created_at) VALUES (?, ?, ?, ?)`,
		acct.AccountNo, acct.HolderName, acct.Balance, acct.CreatedAt,
	)
	if err != nil {
		if isConstraintErr(err) {
			return domain.ErrDuplicateIdentity
		}
		return fmt.Errorf("insert account: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO templates (account_no, embedding, model, created_at) VALUES (?, ?, ?, ?)`,
		tpl.AccountNo, string(embeddingJSON), tpl.Model, tpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}

	return tx.Commit()
}

// DeleteEnrollment removes the account and template rows. Used only as
// compensating cleanup for a failed enrollment.
func (s *Store) DeleteEnrollment(ctx context.Context, accountNo string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cleanup: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM templates WHERE account_no = ?`, accountNo); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE account_no = ?`, accountNo); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return tx.Commit()
}
