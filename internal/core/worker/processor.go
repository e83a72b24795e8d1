package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/Abhivandan7/DashCash/internal/core/notifications"
	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

const maxAttempts = 5

// StartWebhookWorker polls the queue and delivers pending webhooks until the
// context is cancelled.
func StartWebhookWorker(ctx context.Context, queue ports.WebhookQueue, secret string) {
	go func() {
		slog.Info("Webhook worker started")
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("Webhook worker stopped")
				return
			case <-ticker.C:
				processJobs(ctx, queue, secret)
			}
		}
	}()
}

func processJobs(ctx context.Context, queue ports.WebhookQueue, secret string) {
	for {
		job, err := queue.DequeueWebhook(ctx)
		if err != nil {
			slog.Error("Worker: dequeue failed", "error", err)
			return
		}
		if job == nil {
			return
		}

		slog.Info("Worker: processing job", "url", job.URL, "job_id", job.ID)

		if sendErr := notifications.SendWebhook(job.URL, job.Payload, secret); sendErr != nil {
			slog.Error("Worker: webhook failed", "error", sendErr, "attempts", job.Attempts)
			if job.Attempts+1 >= maxAttempts {
				if err := queue.FailWebhook(ctx, job.ID); err != nil {
					slog.Error("Worker: could not mark job failed", "error", err, "job_id", job.ID)
				}
				slog.Error("Worker: job marked as FAILED (max attempts reached)", "job_id", job.ID)
				continue
			}
			nextRun := time.Now().Add(time.Duration(job.Attempts*10+10) * time.Second)
			if err := queue.RetryWebhook(ctx, job.ID, job.Attempts+1, nextRun); err != nil {
				slog.Error("Worker: could not schedule retry", "error", err, "job_id", job.ID)
			} else {
				slog.Info("Worker: scheduled retry", "next_run", nextRun)
			}
			continue
		}

		if err := queue.CompleteWebhook(ctx, job.ID); err != nil {
			slog.Error("Worker: could not mark job completed", "error", err, "job_id", job.ID)
		} else {
			slog.Info("Worker: webhook sent", "job_id", job.ID)
		}
	}
}
