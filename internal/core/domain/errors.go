package domain

import "fmt"

// ErrorKind buckets domain errors so the HTTP layer can map them to statuses
// without string-matching messages.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindBiometric      ErrorKind = "biometric"
	KindAuthentication ErrorKind = "authentication"
	KindLedger         ErrorKind = "ledger"
	KindStorage        ErrorKind = "storage"
)

// Error is a kinded domain error. Sentinels below are compared with
// errors.Is; wrapped causes are reachable through Unwrap.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any error sharing the same kind and code, so wrapped copies of a
// sentinel still satisfy errors.Is(err, sentinel).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

var (
	ErrDuplicateIdentity = &Error{Kind: KindValidation, Code: "duplicate_identity", Message: "account number already enrolled"}
	ErrInvalidAmount     = &Error{Kind: KindValidation, Code: "invalid_amount", Message: "amount must be positive"}
	ErrMissingField      = &Error{Kind: KindValidation, Code: "missing_field", Message: "required field is empty"}

	ErrNoFaceDetected  = &Error{Kind: KindBiometric, Code: "no_face_detected", Message: "no clear face detected in the image"}
	ErrProbeExtraction = &Error{Kind: KindBiometric, Code: "probe_extraction_failed", Message: "could not extract a biometric template from the image"}

	ErrNoMatch        = &Error{Kind: KindAuthentication, Code: "no_match", Message: "face not recognized"}
	ErrAmbiguousMatch = &Error{Kind: KindAuthentication, Code: "ambiguous_match", Message: "face matches more than one enrolled account"}
	ErrUnauthorized   = &Error{Kind: KindAuthentication, Code: "unauthorized", Message: "missing or invalid session token"}

	ErrUnknownAccount    = &Error{Kind: KindLedger, Code: "unknown_account", Message: "account not found"}
	ErrInsufficientFunds = &Error{Kind: KindLedger, Code: "insufficient_funds", Message: "insufficient funds"}

	ErrStorage = &Error{Kind: KindStorage, Code: "storage_failure", Message: "storage failure"}
)

// WrapStorage attaches a storage cause to the storage sentinel.
func WrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Code: ErrStorage.Code, Message: ErrStorage.Message, cause: err}
}

// WrapBiometric marks a provider transport or timeout failure as a probe
// extraction error.
func WrapBiometric(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindBiometric, Code: ErrProbeExtraction.Code, Message: ErrProbeExtraction.Message, cause: err}
}
