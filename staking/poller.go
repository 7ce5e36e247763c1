package staking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
	"github.com/rcastle4778/coinbase1/pkg/hex"
	"github.com/rcastle4778/coinbase1/signer"
)

// Account identifies a custodially managed address: the wallet holding the
// signing context plus the address and its network.
type Account struct {
	NetworkID cb.NetworkID
	WalletID  string
	AddressID string
}

// Staker drives wallet staking operations end to end: validate the amount,
// build the operation, then sign, broadcast and reload until the operation
// reaches a terminal state or the deadline elapses.
//
// A Staker instance must not be used concurrently against the same
// operation; each operation gets one driving caller.
type Staker struct {
	client   *client.Client
	signer   signer.Signer
	account  Account
	waitOpts []WaitOption
}

func NewStaker(cli *client.Client, sg signer.Signer, account Account, waitOptions ...WaitOption) *Staker {
	return &Staker{
		client:   cli,
		signer:   sg,
		account:  account,
		waitOpts: waitOptions,
	}
}

// Stake stakes the given amount and drives the operation to a terminal
// state. The returned operation is also returned alongside an error when the
// flow fails after the operation was created, so callers can inspect or
// resume it.
func (st *Staker) Stake(ctx context.Context, amount cb.AmountHumanReadable, assetID cb.AssetID, mode Mode, options ...StakeOption) (*StakingOperation, error) {
	err := ValidateCanStake(ctx, st.client, st.account.NetworkID, st.account.AddressID, assetID, mode, amount, options...)
	if err != nil {
		return nil, err
	}
	op, err := buildOperation(ctx, st.client, st.account.WalletID, ActionStake, amount, assetID, st.account.NetworkID, st.account.AddressID, mode, options...)
	if err != nil {
		return nil, err
	}
	return op, st.complete(ctx, op)
}

// Unstake unstakes the given amount. Amount validation is skipped for
// amount-exempt requests (native eth unstake with an explicit unstake type).
func (st *Staker) Unstake(ctx context.Context, amount cb.AmountHumanReadable, assetID cb.AssetID, mode Mode, options ...StakeOption) (*StakingOperation, error) {
	opts, err := NewStakeOptions(options...)
	if err != nil {
		return nil, err
	}
	if !isAmountExempt(ActionUnstake, assetID, mode, opts) {
		err := ValidateCanUnstake(ctx, st.client, st.account.NetworkID, st.account.AddressID, assetID, mode, amount, options...)
		if err != nil {
			return nil, err
		}
	}
	op, err := buildOperation(ctx, st.client, st.account.WalletID, ActionUnstake, amount, assetID, st.account.NetworkID, st.account.AddressID, mode, options...)
	if err != nil {
		return nil, err
	}
	return op, st.complete(ctx, op)
}

func (st *Staker) ClaimStake(ctx context.Context, amount cb.AmountHumanReadable, assetID cb.AssetID, mode Mode, options ...StakeOption) (*StakingOperation, error) {
	err := ValidateCanClaimStake(ctx, st.client, st.account.NetworkID, st.account.AddressID, assetID, mode, amount, options...)
	if err != nil {
		return nil, err
	}
	op, err := buildOperation(ctx, st.client, st.account.WalletID, ActionClaimStake, amount, assetID, st.account.NetworkID, st.account.AddressID, mode, options...)
	if err != nil {
		return nil, err
	}
	return op, st.complete(ctx, op)
}

// complete loops sign-broadcast-reload until the operation is terminal or
// the deadline elapses. The deadline is fixed at loop entry. Broadcasting is
// interleaved per transaction rather than batched: later transactions may
// only become available after earlier ones take effect server-side, and the
// reconciliation rule in loadTransactions makes re-running the scan safe.
func (st *Staker) complete(ctx context.Context, op *StakingOperation) error {
	opts, err := newWaitOptions(st.waitOpts...)
	if err != nil {
		return err
	}
	start := time.Now()
	for {
		if time.Since(start) > opts.timeout {
			return &TimeoutError{OperationID: op.ID(), Timeout: opts.timeout}
		}
		if err := st.signAndBroadcast(ctx, op); err != nil {
			return err
		}
		if err := op.Reload(ctx); err != nil {
			return err
		}
		if op.IsTerminalState() {
			return nil
		}
		if time.Since(start) > opts.timeout {
			return &TimeoutError{OperationID: op.ID(), Timeout: opts.timeout}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.interval):
		}
	}
}

// signAndBroadcast walks the current transaction list in index order. Each
// unsigned transaction is signed and broadcast immediately; the snapshot
// returned by broadcast replaces the operation's state before the scan
// continues. Already-signed transactions are skipped, so re-running the scan
// never reprocesses a broadcast transaction.
func (st *Staker) signAndBroadcast(ctx context.Context, op *StakingOperation) error {
	for i := 0; i < len(op.Transactions()); i++ {
		tx := op.Transactions()[i]
		if tx.IsSigned() {
			continue
		}
		if err := tx.Sign(st.signer); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"operation": op.ID(),
			"index":     i,
		}).Debug("broadcasting transaction")
		snapshot, err := st.client.BroadcastStakingOperation(ctx, st.account.WalletID, op.AddressID(), op.ID(), &client.BroadcastStakingOperationRequest{
			SignedPayload:    hex.TrimPrefix(tx.SignedPayload),
			TransactionIndex: i,
		})
		if err != nil {
			return err
		}
		op.replaceSnapshot(snapshot)
	}
	return nil
}
