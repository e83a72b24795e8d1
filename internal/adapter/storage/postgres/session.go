package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

func (s *Store) SaveSession(ctx context.Context, tokenHash, accountNo string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (token_hash, account_no, created_at) VALUES ($1, $2, NOW())`,
		tokenHash, accountNo,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) LookupSession(ctx context.Context, tokenHash string) (string, error) {
	var accountNo string
	err := s.pool.QueryRow(ctx,
		`SELECT account_no FROM sessions WHERE token_hash = $1`, tokenHash,
	).Scan(&accountNo)
	if err == pgx.ErrNoRows {
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
	err := s.pool.QueryRow(ctx,
		`SELECT response_status, response_body FROM idempotency_keys WHERE key_id = $1`, key,
	).Scan(&status, &body)
	if err == pgx.ErrNoRows {
		return 0, nil, false, nil
	}
	if err != nil {
		return 0, nil, false, fmt.Errorf("get idempotency key: %w", err)
	}
	return status, body, true, nil
}

func (s *Store) SaveCachedResponse(ctx context.Context, key string, status int, body []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO idempotency_keys (key_id, response_status, response_body, created_at)
		 VALUES ($1, $2, $3, NOW()) ON CONFLICT DO NOTHING`,
		key, status, body,
	)
	if err != nil {
		return fmt.Errorf("save idempotency key: %w", err)
	}
	return nil
}
