package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

func (s *Store) EnqueueWebhook(ctx context.Context, url string, payload []byte) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO webhook_jobs (id, url, payload, status, attempts, next_run_at, created_at)
		 VALUES (?, ?, ?, 'PENDING', 0, ?, ?)`,
		uuid.New().String(), url, payload, now, now,
	)
	if err != nil {
		return fmt.Errorf("enqueue webhook: %w", err)
	}
	return nil
}

// DequeueWebhook returns the oldest due pending job, or (nil, nil) when the
// queue is empty. The single worker goroutine is the only consumer, so no
// row claim is needed here.
func (s *Store) DequeueWebhook(ctx context.Context) (*ports.WebhookJob, error) {
	var job ports.WebhookJob
	err := s.db.QueryRowContext(ctx,
		`SELECT id, url, payload, attempts, next_run_at
		 FROM webhook_jobs
		 WHERE status = 'PENDING' AND next_run_at <= ?
		 ORDER BY created_at ASC LIMIT 1`,
		time.Now().UTC(),
	).Scan(&job.ID, &job.URL, &job.Payload, &job.Attempts, &job.NextRunAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dequeue webhook: %w", err)
	}
	return &job, nil
}

func (s *Store) CompleteWebhook(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE webhook_jobs SET status = 'COMPLETED' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("complete webhook: %w", err)
	}
	return nil
}

func (s *Store) RetryWebhook(ctx context.Context, id string, attempts int, nextRun time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE webhook_jobs SET status = 'PENDING', attempts = ?, next_run_at = ? WHERE id = ?`,
		attempts, nextRun.UTC(), id)
	if err != nil {
		return fmt.Errorf("retry webhook: %w", err)
	}
	return nil
}

func (s *Store) FailWebhook(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE webhook_jobs SET status = 'FAILED' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("fail webhook: %w", err)
	}
	return nil
}
