package coinbase

import (
	"fmt"
	"strings"
)

// NetworkID identifies a blockchain network tracked by the staking backend.
type NetworkID string

// List of supported networks
const (
	EthereumMainnet NetworkID = "ethereum-mainnet"
	EthereumHolesky NetworkID = "ethereum-holesky"
	EthereumHoodi   NetworkID = "ethereum-hoodi"
	SolanaMainnet   NetworkID = "solana-mainnet"
	SolanaDevnet    NetworkID = "solana-devnet"
)

var NetworkIDList = []NetworkID{
	EthereumMainnet,
	EthereumHolesky,
	EthereumHoodi,
	SolanaMainnet,
	SolanaDevnet,
}

func (networkID NetworkID) IsSolana() bool {
	return strings.HasPrefix(string(networkID), "solana-")
}

// AssetID identifies an asset within a network.
type AssetID string

const (
	Eth  AssetID = "eth"
	Gwei AssetID = "gwei"
	Wei  AssetID = "wei"
	Sol  AssetID = "sol"
)

const (
	// Number of decimal places in one ether denominated in wei.
	EthDecimals = 18
	// Number of decimal places in one ether denominated in gwei.
	GweiDecimals = 9
	// Number of decimal places in one sol denominated in lamports.
	SolDecimals = 9
)

// PrimaryDenomination resolves the asset identifier the backend tracks
// balances under. Gwei and wei are client-side denominations of ether and
// both map to eth; every other asset maps to itself.
func (assetID AssetID) PrimaryDenomination() AssetID {
	switch assetID {
	case Gwei, Wei:
		return Eth
	}
	return assetID
}

// Asset is an on-chain asset resolved from the backend's asset registry,
// keyed by (network, asset id). Immutable once constructed.
type Asset struct {
	NetworkID       NetworkID
	AssetID         AssetID
	ContractAddress string
	Decimals        int32
}

func NewAsset(networkID NetworkID, assetID AssetID, contractAddress string, decimals int32) (Asset, error) {
	if decimals < 0 {
		return Asset{}, fmt.Errorf("invalid decimals %d for asset %s", decimals, assetID)
	}
	return Asset{
		NetworkID:       networkID,
		AssetID:         assetID,
		ContractAddress: contractAddress,
		Decimals:        decimals,
	}, nil
}

// ToAtomicAmount converts a human readable amount of this asset to its
// atomic representation.
func (asset Asset) ToAtomicAmount(amount AmountHumanReadable) AmountAtomic {
	return amount.ToAtomic(asset.Decimals)
}

// FromAtomicAmount converts an atomic amount of this asset to its human
// readable representation, preserving full precision.
func (asset Asset) FromAtomicAmount(amount AmountAtomic) AmountHumanReadable {
	return amount.ToHuman(asset.Decimals)
}

func (asset Asset) String() string {
	return fmt.Sprintf("%s/%s", asset.NetworkID, asset.AssetID)
}
