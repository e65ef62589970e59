package processing

import "github.com/walletlabs/zscore/internal/core/domain"

// ErrorClass is the error taxonomy carried on a failed outcome.
type ErrorClass int

const (
	// ErrClassNone marks a successful outcome.
	ErrClassNone ErrorClass = iota
	// ErrClassValidation covers malformed or out-of-contract input,
	// including payloads that do not decode as JSON.
	ErrClassValidation
	// ErrClassScoring covers unexpected failures inside the scoring engine.
	ErrClassScoring
	// ErrClassPublish covers outbound records that could not be confirmed.
	ErrClassPublish
)

func (c ErrorClass) String() string {
	switch c {
	case ErrClassNone:
		return "none"
	case ErrClassValidation:
		return "validation"
	case ErrClassScoring:
		return "scoring"
	case ErrClassPublish:
		return "publish"
	}
	return "unknown"
}

// Outcome is the explicit result of processing one message. Exactly one of
// Success or Failure is set; the stream loop switches on it instead of
// relying on error propagation.
type Outcome struct {
	// ID identifies one processing attempt in logs.
	ID            string
	WalletAddress string
	Class         ErrorClass

	Success *domain.WalletScoreSuccess
	Failure *domain.WalletScoreFailure
}

// OK reports whether the message was scored successfully.
func (o *Outcome) OK() bool {
	return o.Success != nil
}

// ProcessingTimeMs returns the elapsed wall-clock time recorded on the
// outcome's record.
func (o *Outcome) ProcessingTimeMs() int64 {
	if o.Success != nil {
		return o.Success.ProcessingTimeMs
	}
	if o.Failure != nil {
		return o.Failure.ProcessingTimeMs
	}
	return 0
}
