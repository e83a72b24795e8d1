package service

import (
	"context"
	"log/slog"

	"github.com/Abhivandan7/DashCash/internal/core/biometric"
	"github.com/Abhivandan7/DashCash/internal/core/domain"
	"github.com/Abhivandan7/DashCash/internal/core/ports"
	"github.com/Abhivandan7/DashCash/internal/core/security"
)

// AuthService runs the login flow: probe image -> template -> resolver ->
// session token. A no-match or ambiguous result is an authentication
// failure; the best guess is never handed out.
type AuthService struct {
	provider ports.EmbeddingProvider
	resolver *biometric.Resolver
	accounts ports.AccountStore
	sessions ports.SessionStore
}

func NewAuthService(provider ports.EmbeddingProvider, resolver *biometric.Resolver, accounts ports.AccountStore, sessions ports.SessionStore) *AuthService {
	return &AuthService{provider: provider, resolver: resolver, accounts: accounts, sessions: sessions}
}

// LoginResult is returned once per successful login. Token is the raw
// session token; only its hash is stored.
type LoginResult struct {
	Account *domain.Account
	Token   string
	Score   float64
}

func (s *AuthService) Authenticate(ctx context.Context, image []byte) (*LoginResult, error) {
	probe, err := s.provider.Extract(ctx, image)
	if err != nil {
		return nil, err
	}

	result, err := s.resolver.Resolve(ctx, probe)
	if err != nil {
		return nil, err
	}
	switch result.Decision {
	case domain.DecisionNoMatch:
		return nil, domain.ErrNoMatch
	case domain.DecisionAmbiguous:
		slog.Warn("Ambiguous biometric match rejected", "score", result.Score, "gap", result.Gap)
		return nil, domain.ErrAmbiguousMatch
	}

	acct, err := s.accounts.GetAccount(ctx, result.AccountNo)
	if err != nil {
		return nil, err
	}

	token, tokenHash, err := security.GenerateSessionToken()
	if err != nil {
		return nil, domain.WrapStorage(err)
	}
	if err := s.sessions.SaveSession(ctx, tokenHash, acct.AccountNo); err != nil {
		return nil, domain.WrapStorage(err)
	}

	slog.Info("Login succeeded", "account_no", acct.AccountNo, "score", result.Score)
	return &LoginResult{Account: acct, Token: token, Score: result.Score}, nil
}
