package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

func (s *Store) EnqueueWebhook(ctx context.Context, url string, payload []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO webhook_jobs (id, url, payload, status, attempts, next_run_at, created_at)
		 VALUES ($1, $2, $3, 'PENDING', 0, NOW(), NOW())`,
		uuid.New(), url, payload,
	)
	if err != nil {
		return fmt.Errorf("enqueue webhook: %w", err)
	}
	return nil
}

// DequeueWebhook returns the oldest due pending job, or (nil, nil) when
// nothing is due. SKIP LOCKED keeps multiple server instances from handing
// the same job to two workers.
func (s *Store) DequeueWebhook(ctx context.Context) (*ports.WebhookJob, error) {
	var job ports.WebhookJob
	err := s.pool.QueryRow(ctx,
		`SELECT id, url, payload, attempts, next_run_at
		 FROM webhook_jobs
		 WHERE status = 'PENDING' AND next_run_at <= NOW()
		 ORDER BY created_at ASC
		 LIMIT 1
		 FOR UPDATE SKIP LOCKED`,
	).Scan(&job.ID, &job.URL, &job.Payload, &job.Attempts, &job.NextRunAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue webhook: %w", err)
	}
	return &job, nil
}

func (s *Store) CompleteWebhook(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE webhook_jobs SET status = 'COMPLETED' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("complete webhook: %w", err)
	}
	return nil
}

func (s *Store) RetryWebhook(ctx context.Context, id string, attempts int, nextRun time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE webhook_jobs SET status = 'PENDING', attempts = $2, next_run_at = $3 WHERE id = $1`,
		id, attempts, nextRun.UTC())
	if err != nil {
		return fmt.Errorf("retry webhook: %w", err)
	}
	return nil
}

func (s *Store) FailWebhook(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE webhook_jobs SET status = 'FAILED' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("fail webhook: %w", err)
	}
	return nil
}
