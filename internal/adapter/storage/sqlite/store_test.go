package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dashcash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEnrollment(accountNo string, balance int64) (domain.Account, domain.Template) {
	now := time.Now().UTC()
	acct := domain.Account{
		AccountNo:  accountNo,
		HolderName: "Test Holder",
		Balance:    balance,
		CreatedAt:  now,
	}
	tpl := domain.Template{
		AccountNo: accountNo,
		Embedding: []float64{0.1, 0.2, 0.3},
		Model:     "vgg-face",
		CreatedAt: now,
	}
	return acct, tpl
}

func TestCreateEnrollment_BothRecordsVisible(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acct, tpl := testEnrollment("1001", 5000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))

	got, err := s.GetAccount(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, "Test Holder", got.HolderName)
	assert.Equal(t, int64(5000), got.Balance)

	templates, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "1001", templates[0].AccountNo)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, templates[0].Embedding)
}

func TestCreateEnrollment_DuplicateLeavesOriginalUntouched(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acct, tpl := testEnrollment("1001", 5000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))

	acct2, tpl2 := testEnrollment("1001", 9999)
	tpl2.Embedding = []float64{0.9, 0.9, 0.9}
	err := s.CreateEnrollment(ctx, acct2, tpl2)
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	got, err := s.GetAccount(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.Balance)

	templates, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, templates[0].Embedding)
}

func TestDeleteEnrollment_RemovesBothRecords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acct, tpl := testEnrollment("1001", 5000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))
	require.NoError(t, s.DeleteEnrollment(ctx, "1001"))

	_, err := s.GetAccount(ctx, "1001")
	assert.ErrorIs(t, err, domain.ErrUnknownAccount)

	templates, err := s.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestAccountExists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	exists, err := s.AccountExists(ctx, "1001")
	require.NoError(t, err)
	assert.False(t, exists)

	acct, tpl := testEnrollment("1001", 5000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))

	exists, err = s.AccountExists(ctx, "1001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestApplyTransaction_DepositAndWithdrawal(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acct, tpl := testEnrollment("1001", 10000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))

	tx, err := s.ApplyTransaction(ctx, "1001", domain.Deposit, 5000)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), tx.BalanceAfter)

	tx, err = s.ApplyTransaction(ctx, "1001", domain.Withdrawal, 15000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tx.BalanceAfter)

	_, err = s.ApplyTransaction(ctx, "1001", domain.Withdrawal, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestApplyTransaction_OverdraftHasNoSideEffect(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acct, tpl := testEnrollment("1001", 10000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))

	_, err := s.ApplyTransaction(ctx, "1001", domain.Withdrawal, 15000)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	got, err := s.GetAccount(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got.Balance)

	history, err := s.History(ctx, "1001", 10)
	require.NoError(t, err)
	assert.Empty(t, history, "failed withdrawal must not record a transaction")
}

func TestApplyTransaction_UnknownAccount(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ApplyTransaction(context.Background(), "missing", domain.Deposit, 100)
	assert.ErrorIs(t, err, domain.ErrUnknownAccount)
}

func TestHistory_MostRecentFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acct, tpl := testEnrollment("1001", 10000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))

	_, err := s.ApplyTransaction(ctx, "1001", domain.Deposit, 100)
	require.NoError(t, err)
	_, err = s.ApplyTransaction(ctx, "1001", domain.Withdrawal, 50)
	require.NoError(t, err)

	history, err := s.History(ctx, "1001", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(10050), history[0].BalanceAfter)
	assert.Equal(t, domain.Withdrawal, history[0].Kind)
}

func TestSessions_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	acct, tpl := testEnrollment("1001", 5000)
	require.NoError(t, s.CreateEnrollment(ctx, acct, tpl))

	require.NoError(t, s.SaveSession(ctx, "hash-abc", "1001"))

	accountNo, err := s.LookupSession(ctx, "hash-abc")
	require.NoError(t, err)
	assert.Equal(t, "1001", accountNo)

	_, err = s.LookupSession(ctx, "hash-unknown")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestIdempotency_FirstWriteWins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, _, ok, err := s.GetCachedResponse(ctx, "key-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveCachedResponse(ctx, "key-1", 200, []byte(`{"a":1}`)))
	require.NoError(t, s.SaveCachedResponse(ctx, "key-1", 500, []byte(`{"b":2}`)))

	status, body, ok, err := s.GetCachedResponse(ctx, "key-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"a":1}`, string(body))
}

func TestWebhookQueue_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	job, err := s.DequeueWebhook(ctx)
	require.NoError(t, err)
	assert.Nil(t, job)

	require.NoError(t, s.EnqueueWebhook(ctx, "http://example/hook", []byte(`{"event":"x"}`)))

	job, err = s.DequeueWebhook(ctx)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "http://example/hook", job.URL)
	assert.Equal(t, 0, job.Attempts)

	// Retry pushes the job into the future; it is no longer due.
	require.NoError(t, s.RetryWebhook(ctx, job.ID, 1, time.Now().Add(time.Hour)))
	due, err := s.DequeueWebhook(ctx)
	require.NoError(t, err)
	assert.Nil(t, due)

	require.NoError(t, s.RetryWebhook(ctx, job.ID, 2, time.Now().Add(-time.Second)))
	due, err = s.DequeueWebhook(ctx)
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, 2, due.Attempts)

	require.NoError(t, s.CompleteWebhook(ctx, job.ID))
	done, err := s.DequeueWebhook(ctx)
	require.NoError(t, err)
	assert.Nil(t, done)
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}
