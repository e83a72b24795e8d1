package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a holder's pinless account. Balance is stored in minor units
// (cents), never floats.
type Account struct {
	AccountNo  string    `json:"account_no"`
	HolderName string    `json:"holder_name"`
	Balance    int64     `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

// Template is the enrolled biometric record for an account. Exactly one
// template exists per account, keyed by the same account number; both are
// written in a single storage commit during enrollment.
type Template struct {
	AccountNo string    `json:"account_no"`
	Embedding []float64 `json:"embedding"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// TxKind is the direction of a ledger transaction.
type TxKind string

const (
	Deposit    TxKind = "DEPOSIT"
	Withdrawal TxKind = "WITHDRAWAL"
)

// Transaction is a committed movement of money on one account.
// BalanceAfter is the balance the commit left behind.
type Transaction struct {
	ID           uuid.UUID `json:"id"`
	AccountNo    string    `json:"account_no"`
	Kind         TxKind    `json:"kind"`
	Amount       int64     `json:"amount"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

// Decision classifies the outcome of an identity resolution.
type Decision string

const (
	DecisionMatch     Decision = "MATCH"
	DecisionNoMatch   Decision = "NO_MATCH"
	DecisionAmbiguous Decision = "AMBIGUOUS"
)

// MatchResult is the transient output of the identity resolver. It is never
// persisted. AccountNo and Score are only meaningful for DecisionMatch;
// Gap is the separation between the best and second-best candidate.
type MatchResult struct {
	Decision  Decision `json:"decision"`
	AccountNo string   `json:"account_no,omitempty"`
	Score     float64  `json:"score"`
	Gap       float64  `json:"gap"`
}
