// Package ports declares the interfaces the core services depend on, so the
// storage backend (Postgres for hosted deployments, embedded SQLite for kiosk
// units) and the embedding sidecar stay swappable.
package ports

import (
	"context"
	"time"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

// AccountStore reads account records.
type AccountStore interface {
	// GetAccount returns domain.ErrUnknownAccount when the key is absent.
	GetAccount(ctx context.Context, accountNo string) (*domain.Account, error)
	AccountExists(ctx context.Context, accountNo string) (bool, error)
}

// TemplateStore serves the resolver's candidate scan. ListTemplates must
// return a consistent snapshot: an enrollment committing concurrently is
// either fully present or fully absent, never half-written.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]domain.Template, error)
}

// EnrollmentStore commits a new identity. CreateEnrollment writes the account
// and its template as one atomic unit; a partially enrolled state is not
// reachable through this interface. DeleteEnrollment exists only for
// compensating cleanup when a later step of enrollment fails.
type EnrollmentStore interface {
	// CreateEnrollment returns domain.ErrDuplicateIdentity if the account
	// number is already claimed.
	CreateEnrollment(ctx context.Context, acct domain.Account, tpl domain.Template) error
	DeleteEnrollment(ctx context.Context, accountNo string) error
}

// LedgerStore applies balance mutations. ApplyTransaction performs the
// read-check-write for one account inside a single storage transaction:
// concurrent calls against the same account serialize, different accounts do
// not block each other. A withdrawal exceeding the balance returns
// domain.ErrInsufficientFunds and leaves no trace.
type LedgerStore interface {
	ApplyTransaction(ctx context.Context, accountNo string, kind domain.TxKind, amount int64) (*domain.Transaction, error)
	History(ctx context.Context, accountNo string, limit int) ([]domain.Transaction, error)
}

// SessionStore persists hashed session tokens issued on successful login.
type SessionStore interface {
	SaveSession(ctx context.Context, tokenHash, accountNo string) error
	// LookupSession returns domain.ErrUnauthorized when no session matches.
	LookupSession(ctx context.Context, tokenHash string) (string, error)
}

// IdempotencyStore caches responses for replayed Idempotency-Key requests.
type IdempotencyStore interface {
	GetCachedResponse(ctx context.Context, key string) (status int, body []byte, ok bool, err error)
	SaveCachedResponse(ctx context.Context, key string, status int, body []byte) error
}

// WebhookJob is a queued outbound notification.
type WebhookJob struct {
	ID        string
	URL       string
	Payload   []byte
	Attempts  int
	NextRunAt time.Time
}

// WebhookQueue is the durable queue behind the notification worker.
type WebhookQueue interface {
	EnqueueWebhook(ctx context.Context, url string, payload []byte) error
	// DequeueWebhook returns (nil, nil) when nothing is due.
	DequeueWebhook(ctx context.Context) (*WebhookJob, error)
	CompleteWebhook(ctx context.Context, id string) error
	RetryWebhook(ctx context.Context, id string, attempts int, nextRun time.Time) error
	FailWebhook(ctx context.Context, id string) error
}

// Store is the full backend contract a storage adapter implements.
type Store interface {
	AccountStore
	TemplateStore
	EnrollmentStore
	LedgerStore
	SessionStore
	IdempotencyStore
	WebhookQueue
	Close() error
}
