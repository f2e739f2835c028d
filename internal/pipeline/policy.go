package pipeline

import (
	"errors"
	"time"

	"github.com/adriancosta/fitflow/internal/genapi"
)

// FailureClass partitions generation errors by how the pipeline should
// react to them.
type FailureClass int

const (
	// FailureHard is unrecoverable for this attempt: the sub-plan is
	// marked failed and no retry happens.
	FailureHard FailureClass = iota
	// FailureSoft is a deadline expiry. The server may still be
	// working, so one more attempt is worth making after a short pause.
	FailureSoft
	// FailureOffline means the server was unreachable. Retrying
	// immediately is pointless; the caller waits for connectivity.
	FailureOffline
)

const (
	// SoftRetryBackoff is the pause before the single soft retry.
	SoftRetryBackoff = 1500 * time.Millisecond

	// MaxSoftRetries bounds soft-timeout retries per runner invocation.
	MaxSoftRetries = 1
)

// Classify maps a generation error onto its failure class.
func Classify(err error) FailureClass {
	switch {
	case errors.Is(err, genapi.ErrTimeout):
		return FailureSoft
	case errors.Is(err, genapi.ErrUnavailable):
		return FailureOffline
	default:
		return FailureHard
	}
}
