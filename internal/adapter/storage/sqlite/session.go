package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

func (s *Store) SaveSession(ctx context.Context, tokenHash, accountNo string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, account_no, created_at) VALUES (?, ?, ?)`,
		tokenHash, accountNo, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LookupSession returns the account number bound to a token hash, or
// domain.ErrUnauthorized when no session matches.
func (s *Store) LookupSession(ctx context.Context, tokenHash string) (string, error) {
	var accountNo string
	err := s.db.QueryRowContext(ctx,
		`SELECT account_no FROM sessions WHERE token_hash = ?`, tokenHash,
	).Scan(&accountNo)
	if err == sql.ErrNoRows {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return accountNo, nil
}

func (s *Store) GetCachedResponse(ctx context.Context, key string) (int, []byte, bool, error) {
	var status int
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT response_status, response_body FROM idempotency_keys WHERE key_id = ?`, key,
	).Scan(&status, &body)
	if err == sql.ErrNoRows {
		return 0, nil, false, nil
	}
	if err != nil {
		return 0, nil, false, fmt.Errorf("get idempotency key: %w", err)
	}
	return status, body, true, nil
}

func (s *Store) SaveCachedResponse(ctx context.Context, key string, status int, body []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO idempotency_keys (key_id, response_status, response_body, created_at)
		 VALUES (?, ?, ?, ?) ON CONFLICT(key_id) DO NOTHING`,
		key, status, body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save idempotency key: %w", err)
	}
	return nil
}
