package staking

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
	"github.com/rcastle4778/coinbase1/pkg/hex"
	"github.com/rcastle4778/coinbase1/signer"
)

// Transaction is one step of a staking operation, keyed by its unsigned
// payload. Signing is one-way: once signed, the unsigned payload must not
// change and signing again is an error.
type Transaction struct {
	NetworkID       cb.NetworkID
	FromAddressID   string
	UnsignedPayload string
	SignedPayload   string
	Status          client.TransactionStatus
}

func newTransaction(snapshot client.TransactionSnapshot) *Transaction {
	return &Transaction{
		NetworkID:       snapshot.NetworkID,
		FromAddressID:   snapshot.FromAddressID,
		UnsignedPayload: snapshot.UnsignedPayload,
		SignedPayload:   snapshot.SignedPayload,
		Status:          snapshot.Status,
	}
}

func (tx *Transaction) IsSigned() bool {
	return tx.SignedPayload != ""
}

// Sign signs the unsigned payload with the given key. The key is used for
// this call only and not retained.
func (tx *Transaction) Sign(sg signer.Signer) error {
	if tx.IsSigned() {
		return ErrAlreadySigned
	}
	payload, err := tx.payloadBytes()
	if err != nil {
		return err
	}
	signed, err := sg.Sign(payload)
	if err != nil {
		return fmt.Errorf("could not sign transaction: %w", err)
	}
	tx.SignedPayload = hex.Encode(signed)
	tx.Status = client.TransactionStatusSigned
	return nil
}

func (tx *Transaction) payloadBytes() ([]byte, error) {
	if bz, err := hex.Decode(tx.UnsignedPayload); err == nil {
		return bz, nil
	}
	if tx.UnsignedPayload == "" {
		return nil, fmt.Errorf("transaction has no unsigned payload")
	}
	return []byte(tx.UnsignedPayload), nil
}

// StakingOperation owns the current server snapshot of a staking workflow and
// the locally accumulated list of per step transactions. The backend path
// used for reload and broadcast is fixed at construction by the presence of
// a wallet id and never changes afterwards.
type StakingOperation struct {
	client       *client.Client
	snapshot     *client.OperationSnapshot
	transactions []*Transaction
}

func NewStakingOperation(cli *client.Client, snapshot *client.OperationSnapshot) *StakingOperation {
	op := &StakingOperation{
		client:   cli,
		snapshot: snapshot,
	}
	op.loadTransactions()
	return op
}

// FetchStakingOperation looks up an existing operation for an externally
// owned address.
func FetchStakingOperation(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, operationID string) (*StakingOperation, error) {
	snapshot, err := cli.GetStakingOperation(ctx, networkID, addressID, operationID)
	if err != nil {
		return nil, err
	}
	return NewStakingOperation(cli, snapshot), nil
}

// FetchWalletStakingOperation looks up an existing operation for a
// custodially managed address.
func FetchWalletStakingOperation(ctx context.Context, cli *client.Client, walletID string, addressID string, operationID string) (*StakingOperation, error) {
	snapshot, err := cli.GetWalletStakingOperation(ctx, walletID, addressID, operationID)
	if err != nil {
		return nil, err
	}
	return NewStakingOperation(cli, snapshot), nil
}

func (op *StakingOperation) ID() string {
	return op.snapshot.ID
}

func (op *StakingOperation) NetworkID() cb.NetworkID {
	return op.snapshot.NetworkID
}

func (op *StakingOperation) AddressID() string {
	return op.snapshot.AddressID
}

// WalletID is set only for custodially managed operations.
func (op *StakingOperation) WalletID() string {
	return op.snapshot.WalletID
}

func (op *StakingOperation) Status() client.OperationStatus {
	return op.snapshot.Status
}

// Transactions returns the locally accumulated transaction list, in
// first-seen order. The list only grows; entries are never removed or
// reordered.
func (op *StakingOperation) Transactions() []*Transaction {
	return op.transactions
}

func (op *StakingOperation) IsTerminalState() bool {
	return op.snapshot.Status.IsTerminal()
}

func (op *StakingOperation) IsCompleteState() bool {
	return op.snapshot.Status == client.OperationStatusComplete
}

func (op *StakingOperation) IsFailedState() bool {
	return op.snapshot.Status == client.OperationStatusFailed
}

// Reload fetches a fresh snapshot from the backend path chosen at
// construction and reconciles the transaction list. A no-op once the
// operation is terminal.
func (op *StakingOperation) Reload(ctx context.Context) error {
	if op.IsTerminalState() {
		return nil
	}
	var snapshot *client.OperationSnapshot
	var err error
	if walletID := op.WalletID(); walletID != "" {
		snapshot, err = op.client.GetWalletStakingOperation(ctx, walletID, op.AddressID(), op.ID())
	} else {
		snapshot, err = op.client.GetStakingOperation(ctx, op.NetworkID(), op.AddressID(), op.ID())
	}
	if err != nil {
		return err
	}
	op.replaceSnapshot(snapshot)
	return nil
}

// replaceSnapshot swaps in a fresh server snapshot. Terminal statuses are
// absorbing: a later snapshot may update other fields but never reverts a
// terminal status.
func (op *StakingOperation) replaceSnapshot(snapshot *client.OperationSnapshot) {
	if op.snapshot.Status.IsTerminal() && !snapshot.Status.IsTerminal() {
		logrus.WithFields(logrus.Fields{
			"operation": op.ID(),
			"from":      op.snapshot.Status,
			"to":        snapshot.Status,
		}).Warn("backend tried to revert a terminal status")
		snapshot.Status = op.snapshot.Status
	}
	op.snapshot = snapshot
	op.loadTransactions()
}

// loadTransactions appends, in snapshot order, every remote transaction whose
// unsigned payload is not already held locally. Locally held entries are kept
// as-is: for externally owned addresses the caller, not the backend, is the
// source of truth for signature state once a transaction is signed.
func (op *StakingOperation) loadTransactions() {
	if len(op.snapshot.Transactions) == 0 {
		return
	}
	seen := make(map[string]bool, len(op.transactions))
	for _, tx := range op.transactions {
		seen[tx.UnsignedPayload] = true
	}
	for _, snapshot := range op.snapshot.Transactions {
		if seen[snapshot.UnsignedPayload] {
			continue
		}
		seen[snapshot.UnsignedPayload] = true
		op.transactions = append(op.transactions, newTransaction(snapshot))
	}
}

// Sign signs every transaction not yet signed, in list order, stopping on the
// first failure. Partial signing is safe to retry.
func (op *StakingOperation) Sign(sg signer.Signer) error {
	for _, tx := range op.transactions {
		if tx.IsSigned() {
			continue
		}
		if err := tx.Sign(sg); err != nil {
			return err
		}
	}
	return nil
}

// SignedVoluntaryExitMessages decodes the base64 exit messages embedded in
// the snapshot metadata, if any. Pure decode, no side effects.
func (op *StakingOperation) SignedVoluntaryExitMessages() ([]string, error) {
	messages := []string{}
	for _, metadata := range op.snapshot.Metadata {
		if metadata.SignedVoluntaryExit == "" {
			continue
		}
		bz, err := base64.StdEncoding.DecodeString(metadata.SignedVoluntaryExit)
		if err != nil {
			return nil, fmt.Errorf("could not decode signed voluntary exit message: %v", err)
		}
		messages = append(messages, string(bz))
	}
	return messages, nil
}

const DefaultWaitInterval = 5 * time.Second
const DefaultWaitTimeout = 10 * time.Minute

type WaitOptions struct {
	interval time.Duration
	timeout  time.Duration
}

type WaitOption func(opts *WaitOptions)

func WithWaitInterval(interval time.Duration) WaitOption {
	return func(opts *WaitOptions) {
		opts.interval = interval
	}
}

func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(opts *WaitOptions) {
		opts.timeout = timeout
	}
}

func newWaitOptions(options ...WaitOption) (WaitOptions, error) {
	opts := WaitOptions{
		interval: DefaultWaitInterval,
		timeout:  DefaultWaitTimeout,
	}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.interval <= 0 || opts.timeout <= 0 {
		return opts, fmt.Errorf("wait interval and timeout must be positive")
	}
	return opts, nil
}

// Wait reloads the operation until it reaches a terminal state or the
// timeout elapses, measured from entry. Only usable for externally owned
// addresses; wallet operations are driven by the owning wallet.
func (op *StakingOperation) Wait(ctx context.Context, options ...WaitOption) error {
	if op.WalletID() != "" {
		return ErrWalletManagedWait
	}
	opts, err := newWaitOptions(options...)
	if err != nil {
		return err
	}
	start := time.Now()
	for {
		if time.Since(start) > opts.timeout {
			return &TimeoutError{OperationID: op.ID(), Timeout: opts.timeout}
		}
		if err := op.Reload(ctx); err != nil {
			return err
		}
		if op.IsTerminalState() {
			return nil
		}
		// recheck before committing to another sleep
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
