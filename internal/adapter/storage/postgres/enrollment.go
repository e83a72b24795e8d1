package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// GetAccount returns the account or domain.ErrUnknownAccount.
func (s *Store) GetAccount(ctx context.Context, accountNo string) (*domain.Account, error) {
	var acct domain.Account
	err := s.pool.QueryRow(ctx,
		`SELECT account_no, holder_name, balance, created_at FROM accounts WHERE account_no = $1`,
		accountNo,
	).Scan(&acct.AccountNo, &acct.HolderName, &acct.Balance, &acct.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acct, nil
}

func (s *Store) AccountExists(ctx context.Context, accountNo string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_no = $1)`, accountNo,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("account exists: %w", err)
	}
	return exists, nil
}

// ListTemplates returns a snapshot of every enrolled template. One query,
// one MVCC snapshot: a concurrently committing enrollment is either fully
// visible or fully absent.
func (s *Store) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT account_no, embedding, model, created_at FROM templates`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var tpl domain.Template
		var embeddingJSON []byte
		if err := rows.Scan(&tpl.AccountNo, &embeddingJSON, &tpl.Model, &tpl.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if err := json.Unmarshal(embeddingJSON, &tpl.Embedding); err != nil {
			return nil, fmt.Errorf("decode embedding for %s: %w", tpl.AccountNo, err)
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// CreateEnrollment inserts account and template in one transaction; the
// primary key settles the race between two concurrent enrollments of the
// same account number.
func (s *Store) CreateEnrollment(ctx context.Context, acct domain.Account, tpl domain.Template) error {
	embeddingJSON, err := json.Marshal(tpl.Embedding)
	if err != nil {
		return fmt.Errorf("encode embedding: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin enrollment: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO accounts (account_no, holder_name, balance, created_at) VALUES ($1, $2, $3, $4)`,
		acct.AccountNo, acct.HolderName, acct.Balance, acct.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdentity
		}
		return fmt.Errorf("insert account: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO templates (account_no, embedding, model, created_at) VALUES ($1, $2, $3, $4)`,
		tpl.AccountNo, embeddingJSON, tpl.Model, tpl.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}

	return tx.Commit(ctx)
}

// DeleteEnrollment removes both rows; compensating cleanup only.
func (s *Store) DeleteEnrollment(ctx context.Context, accountNo string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cleanup: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM templates WHERE account_no = $1`, accountNo); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_no = $1`, accountNo); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return tx.Commit(ctx)
}
