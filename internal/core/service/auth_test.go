package service_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhivandan7/DashCash/internal/adapter/storage/sqlite"
	"github.com/Abhivandan7/DashCash/internal/core/biometric"
	"github.com/Abhivandan7/DashCash/internal/core/domain"
	"github.com/Abhivandan7/DashCash/internal/core/security"
	"github.com/Abhivandan7/DashCash/internal/core/service"
)

func newAuthFixture(t *testing.T) (*service.AuthService, *service.EnrollmentService, *stubProvider, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	provider := newStubProvider()
	resolver := biometric.NewResolver(store, 0.75, 0.05)
	auth := service.NewAuthService(provider, resolver, store, store)
	enroll := service.NewEnrollmentService(provider, store, store, minDeposit)
	return auth, enroll, provider, store
}

func TestAuthenticate_FreshCaptureOfEnrolledFace(t *testing.T) {
	auth, enroll, provider, store := newAuthFixture(t)
	provider.register("alice-enrollment", []float64{0.9, 0.1, 0.05})
	// A different capture of the same face: near, not identical.
	provider.register("alice-fresh", []float64{0.88, 0.12, 0.04})

	_, err := enroll.Enroll(context.Background(), "1001", "Alice", 5000, []byte("alice-enrollment"))
	require.NoError(t, err)

	result, err := auth.Authenticate(context.Background(), []byte("alice-fresh"))
	require.NoError(t, err)
	assert.Equal(t, "1001", result.Account.AccountNo)
	assert.True(t, strings.HasPrefix(result.Token, "dc_sess_"))

	// The probe capture must not have been persisted as a template.
	templates, err := store.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}

func TestAuthenticate_ExactEnrollmentImage(t *testing.T) {
	auth, enroll, provider, _ := newAuthFixture(t)
	provider.register("alice-enrollment", []float64{0.9, 0.1, 0.05})

	_, err := enroll.Enroll(context.Background(), "1001", "Alice", 5000, []byte("alice-enrollment"))
	require.NoError(t, err)

	result, err := auth.Authenticate(context.Background(), []byte("alice-enrollment"))
	require.NoError(t, err)
	assert.Equal(t, "1001", result.Account.AccountNo)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestAuthenticate_StrangerIsRejected(t *testing.T) {
	auth, enroll, provider, store := newAuthFixture(t)
	provider.register("alice-enrollment", []float64{0.9, 0.1, 0.05})
	provider.register("stranger", []float64{0.01, 0.99, 0})

	_, err := enroll.Enroll(context.Background(), "1001", "Alice", 5000, []byte("alice-enrollment"))
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), []byte("stranger"))
	assert.ErrorIs(t, err, domain.ErrNoMatch)

	// A rejected probe leaves no session and no template behind.
	templates, err := store.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}

func TestAuthenticate_EmptyStoreIsNoMatch(t *testing.T) {
	auth, _, provider, _ := newAuthFixture(t)
	provider.register("anyone", []float64{1, 0, 0})

	_, err := auth.Authenticate(context.Background(), []byte("anyone"))
	assert.ErrorIs(t, err, domain.ErrNoMatch)
}

func TestAuthenticate_AmbiguousTwinsRejected(t *testing.T) {
	auth, enroll, provider, _ := newAuthFixture(t)
	provider.register("twin-one", []float64{1, 0.010, 0})
	provider.register("twin-two", []float64{1, 0.020, 0})
	provider.register("twin-probe", []float64{1, 0.015, 0})

	_, err := enroll.Enroll(context.Background(), "1001", "Twin One", 5000, []byte("twin-one"))
	require.NoError(t, err)
	_, err = enroll.Enroll(context.Background(), "1002", "Twin Two", 5000, []byte("twin-two"))
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), []byte("twin-probe"))
	assert.ErrorIs(t, err, domain.ErrAmbiguousMatch)
}

func TestAuthenticate_FacelessProbe(t *testing.T) {
	auth, _, _, _ := newAuthFixture(t)

	_, err := auth.Authenticate(context.Background(), []byte("no-face-here"))
	assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
}

func TestAuthenticate_SessionTokenIsUsable(t *testing.T) {
	auth, enroll, provider, store := newAuthFixture(t)
	provider.register("alice-enrollment", []float64{0.9, 0.1, 0.05})

	_, err := enroll.Enroll(context.Background(), "1001", "Alice", 5000, []byte("alice-enrollment"))
	require.NoError(t, err)

	result, err := auth.Authenticate(context.Background(), []byte("alice-enrollment"))
	require.NoError(t, err)

	accountNo, err := store.LookupSession(context.Background(), security.HashToken(result.Token))
	require.NoError(t, err)
	assert.Equal(t, "1001", accountNo)

	// Only the hash is stored, never the raw token.
	_, err = store.LookupSession(context.Background(), result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
