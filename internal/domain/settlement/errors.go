package settlement

import (
	"errors"
	"fmt"
)

type Step string

const (
	StepUsage      Step = "usage"
	StepCommission Step = "commission"
)

// PartialSettlementError reports a post-payment step that failed after the
// transaction and the completed status were committed.
type PartialSettlementError struct {
	AppointmentID uint
	TransactionID uint
	Step          Step
	Err           error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf(
		"settlement of appointment %d (transaction %d) failed at step %s: %v",
		e.AppointmentID, e.TransactionID, e.Step, e.Err,
	)
}

func (e *PartialSettlementError) Unwrap() error {
	return e.Err
}

// PartialFailures flattens err (possibly joined) into its partial settlement failures.
func PartialFailures(err error) []*PartialSettlementError {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*PartialSettlementError
		for _, e := range joined.Unwrap() {
			out = append(out, PartialFailures(e)...)
		}
		return out
	}

	var p *PartialSettlementError
	if errors.As(err, &p) {
		return []*PartialSettlementError{p}
	}
	return nil
}
