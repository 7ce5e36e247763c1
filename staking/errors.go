package staking

import (
	"errors"
	"fmt"
	"time"

	cb "github.com/rcastle4778/coinbase1"
)

var ErrAmountRequired = errors.New("staking amount must be greater than zero")
var ErrAlreadySigned = errors.New("transaction is already signed")
var ErrWalletManagedWait = errors.New("wallet staking operations are driven by their owning wallet, not Wait")
var ErrNativeEthClaimStake = errors.New("claiming stake is not supported for eth in native staking mode")

// InsufficientBalanceError reports a requested amount exceeding the balance
// available for the action.
type InsufficientBalanceError struct {
	Requested cb.AmountHumanReadable
	Available cb.AmountHumanReadable
}

var _ error = &InsufficientBalanceError{}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("requested amount %s exceeds available balance %s", e.Requested.String(), e.Available.String())
}

// TimeoutError reports that an operation remained non-terminal when the
// polling deadline elapsed. Distinct from a Failed terminal status, which is
// a successful poll observing a backend-reported failure.
type TimeoutError struct {
	OperationID string
	Timeout     time.Duration
}

var _ error = &TimeoutError{}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("staking operation %s not terminal after %s", e.OperationID, e.Timeout)
}
