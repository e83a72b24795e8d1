// Package service orchestrates the enrollment and login flows over the
// store and provider ports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Abhivandan7/DashCash/internal/core/domain"
	"github.com/Abhivandan7/DashCash/internal/core/ports"
)

// EnrollmentService creates a new identity: one account plus one verified
// biometric template, committed as a single unit.
type EnrollmentService struct {
	provider    ports.EmbeddingProvider
	accounts    ports.AccountStore
	enrollments ports.EnrollmentStore
	minDeposit  int64
}

func NewEnrollmentService(provider ports.EmbeddingProvider, accounts ports.AccountStore, enrollments ports.EnrollmentStore, minDeposit int64) *EnrollmentService {
	return &EnrollmentService{
		provider:    provider,
		accounts:    accounts,
		enrollments: enrollments,
		minDeposit:  minDeposit,
	}
}

// Enroll validates the request, extracts a template from the sample image,
// and commits account + template atomically. Every failure path leaves both
// stores exactly as they were: extraction happens before any write, the
// commit itself is one storage transaction, and a storage failure triggers
// compensating cleanup before the error is surfaced.
func (s *EnrollmentService) Enroll(ctx context.Context, accountNo, holderName string, initialDeposit int64, image []byte) (*domain.Account, error) {
	if accountNo == "" || holderName == "" {
		return nil, domain.ErrMissingField
	}
	if initialDeposit < s.minDeposit {
		return nil, &domain.Error{
			Kind:    domain.KindValidation,
			Code:    domain.ErrInvalidAmount.Code,
			Message: fmt.Sprintf("opening deposit must be at least %s", domain.FormatAmount(s.minDeposit)),
		}
	}

	exists, err := s.accounts.AccountExists(ctx, accountNo)
	if err != nil {
		return nil, domain.WrapStorage(err)
	}
	if exists {
		return nil, domain.ErrDuplicateIdentity
	}

	// Extract before any write. A faceless image fails here with zero
	// residue in either store.
	tpl, err := s.provider.Extract(ctx, image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	acct := domain.Account{
		AccountNo:  accountNo,
		HolderName: holderName,
		Balance:    initialDeposit,
		CreatedAt:  now,
	}
	tpl.AccountNo = accountNo
	tpl.CreatedAt = now

	if err := s.enrollments.CreateEnrollment(ctx, acct, tpl); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			// A concurrent enrollment claimed the key between our check and
			// the insert. The existing enrollment is untouched.
			return nil, domain.ErrDuplicateIdentity
		}
		// Remove whatever the failed commit may have left behind before
		// surfacing; no artifact outlives a failed enrollment.
		if cleanupErr := s.enrollments.DeleteEnrollment(ctx, accountNo); cleanupErr != nil {
			slog.Error("Enrollment cleanup failed", "error", cleanupErr, "account_no", accountNo)
		}
		return nil, domain.WrapStorage(err)
	}

	slog.Info("Account enrolled", "account_no", accountNo, "holder", holderName)
	return &acct, nil
}
