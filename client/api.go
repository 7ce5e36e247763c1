package client

import (
	cb "github.com/rcastle4778/coinbase1"
)

// OperationStatus is the backend-reported status of a staking operation.
// The orchestration only distinguishes terminal vs non-terminal and complete
// vs failed; the full enumeration is owned by the backend.
type OperationStatus string

const (
	OperationStatusInitialized OperationStatus = "initialized"
	OperationStatusPending     OperationStatus = "pending"
	OperationStatusComplete    OperationStatus = "complete"
	OperationStatusFailed      OperationStatus = "failed"
)

func (status OperationStatus) IsTerminal() bool {
	return status == OperationStatusComplete || status == OperationStatusFailed
}

// TransactionStatus is the backend-reported status of one transaction inside
// a staking operation.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusSigned    TransactionStatus = "signed"
	TransactionStatusBroadcast TransactionStatus = "broadcast"
	TransactionStatusComplete  TransactionStatus = "complete"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// OperationSnapshot is the backend's view of a staking operation. wallet_id is
// set only for custodially managed operations and never changes afterwards.
type OperationSnapshot struct {
	ID           string                `json:"id"`
	NetworkID    cb.NetworkID          `json:"network_id"`
	AddressID    string                `json:"address_id"`
	WalletID     string                `json:"wallet_id,omitempty"`
	Status       OperationStatus       `json:"status"`
	Transactions []TransactionSnapshot `json:"transactions"`
	Metadata     []OperationMetadata   `json:"metadata,omitempty"`
}

type TransactionSnapshot struct {
	NetworkID       cb.NetworkID      `json:"network_id"`
	FromAddressID   string            `json:"from_address_id"`
	UnsignedPayload string            `json:"unsigned_payload"`
	SignedPayload   string            `json:"signed_payload,omitempty"`
	Status          TransactionStatus `json:"status"`
}

// OperationMetadata carries side artifacts of an operation, currently only
// base64 encoded signed voluntary exit messages.
type OperationMetadata struct {
	SignedVoluntaryExit string `json:"signed_voluntary_exit,omitempty"`
}

// Asset is an entry in the backend's asset registry.
type Asset struct {
	NetworkID       cb.NetworkID `json:"network_id"`
	AssetID         cb.AssetID   `json:"asset_id"`
	ContractAddress string       `json:"contract_address,omitempty"`
	Decimals        int32        `json:"decimals"`
}

type BuildStakingOperationRequest struct {
	NetworkID cb.NetworkID      `json:"network_id"`
	AssetID   cb.AssetID        `json:"asset_id"`
	AddressID string            `json:"address_id"`
	Action    string            `json:"action"`
	Options   map[string]string `json:"options"`
}

type BroadcastStakingOperationRequest struct {
	SignedPayload    string `json:"signed_payload"`
	TransactionIndex int    `json:"transaction_index"`
}

type GetStakingContextRequest struct {
	AssetID cb.AssetID        `json:"asset_id"`
	Options map[string]string `json:"options"`
}

// StakingBalance is an atomic amount paired with the asset it is denominated
// in, so callers can convert it back to a human readable amount.
type StakingBalance struct {
	Amount cb.AmountAtomic `json:"amount"`
	Asset  Asset           `json:"asset"`
}

// StakingContext reports all four balance categories for one
// (address, asset, options) tuple in a single fetch.
type StakingContext struct {
	StakeableBalance        StakingBalance `json:"stakeable_balance"`
	UnstakeableBalance      StakingBalance `json:"unstakeable_balance"`
	ClaimableBalance        StakingBalance `json:"claimable_balance"`
	PendingClaimableBalance StakingBalance `json:"pending_claimable_balance"`
}

type getStakingContextResponse struct {
	Context StakingContext `json:"context"`
}
