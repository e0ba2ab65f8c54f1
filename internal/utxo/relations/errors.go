package relations

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFundingTransaction matches MissingFundingTransactionError with errors.Is.
	ErrMissingFundingTransaction = errors.New("missing funding transaction")
	// ErrMissingFundingOutput matches MissingFundingOutputError with errors.Is.
	ErrMissingFundingOutput = errors.New("missing funding output")
)

// MissingFundingTransactionError reports an input whose funding transaction is not stored.
type MissingFundingTransactionError struct {
	TxID string
}

func (e *MissingFundingTransactionError) Error() string {
	return fmt.Sprintf("funding transaction %s not found", e.TxID)
}

// Is matches ErrMissingFundingTransaction.
func (e *MissingFundingTransactionError) Is(target error) bool {
	return target == ErrMissingFundingTransaction
}

// MissingFundingOutputError reports an input referencing an output its stored funding
// transaction does not have. RepairErr is set when rebuilding the funding transaction failed.
type MissingFundingOutputError struct {
	TxID      string
	Index     uint32
	RepairErr error
}

func (e *MissingFundingOutputError) Error() string {
	if e.RepairErr != nil {
		return fmt.Sprintf("funding output %s:%d not found (repair failed: %v)", e.TxID, e.Index, e.RepairErr)
	}
	return fmt.Sprintf("funding output %s:%d not found", e.TxID, e.Index)
}

// Is matches ErrMissingFundingOutput.
func (e *MissingFundingOutputError) Is(target error) bool {
	return target == ErrMissingFundingOutput
}

// Unwrap returns the repair failure, if any.
func (e *MissingFundingOutputError) Unwrap() error {
	return e.RepairErr
}
