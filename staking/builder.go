package staking

import (
	"context"

	"github.com/sirupsen/logrus"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
)

// BuildStakeOperation materializes a stake for an externally owned address.
// The caller signs the resulting transactions and polls via Wait.
func BuildStakeOperation(ctx context.Context, cli *client.Client, amount cb.AmountHumanReadable, assetID cb.AssetID, networkID cb.NetworkID, addressID string, mode Mode, options ...StakeOption) (*StakingOperation, error) {
	return buildOperation(ctx, cli, "", ActionStake, amount, assetID, networkID, addressID, mode, options...)
}

func BuildUnstakeOperation(ctx context.Context, cli *client.Client, amount cb.AmountHumanReadable, assetID cb.AssetID, networkID cb.NetworkID, addressID string, mode Mode, options ...StakeOption) (*StakingOperation, error) {
	return buildOperation(ctx, cli, "", ActionUnstake, amount, assetID, networkID, addressID, mode, options...)
}

func BuildClaimStakeOperation(ctx context.Context, cli *client.Client, amount cb.AmountHumanReadable, assetID cb.AssetID, networkID cb.NetworkID, addressID string, mode Mode, options ...StakeOption) (*StakingOperation, error) {
	return buildOperation(ctx, cli, "", ActionClaimStake, amount, assetID, networkID, addressID, mode, options...)
}

// isAmountExempt reports whether the request carries no amount at all: a
// native eth unstake with an explicit unstake type is amount-exempt because
// the backend computes withdrawal instructions from validator-level inputs
// (see ValidatorUnstakeAmounts and ValidatorPubKeys).
func isAmountExempt(action Action, assetID cb.AssetID, mode Mode, opts *StakeOptions) bool {
	if action != ActionUnstake || mode != ModeNative {
		return false
	}
	if assetID.PrimaryDenomination() != cb.Eth {
		return false
	}
	_, ok := opts.GetUnstakeType()
	return ok
}

// resolveDecimals resolves the decimal places of the requested denomination.
// Gwei and wei are client-side denominations of ether the backend does not
// track, so they resolve locally; everything else comes from the registry.
func resolveDecimals(ctx context.Context, cli *client.Client, networkID cb.NetworkID, assetID cb.AssetID) (int32, error) {
	switch assetID {
	case cb.Gwei:
		return cb.GweiDecimals, nil
	case cb.Wei:
		return 0, nil
	}
	asset, err := cli.GetAsset(ctx, networkID, assetID)
	if err != nil {
		return 0, err
	}
	return asset.Decimals, nil
}

func buildOperation(ctx context.Context, cli *client.Client, walletID string, action Action, amount cb.AmountHumanReadable, assetID cb.AssetID, networkID cb.NetworkID, addressID string, mode Mode, options ...StakeOption) (*StakingOperation, error) {
	if action == ActionClaimStake && assetID.PrimaryDenomination() == cb.Eth && mode == ModeNative {
		return nil, ErrNativeEthClaimStake
	}
	opts, err := NewStakeOptions(options...)
	if err != nil {
		return nil, err
	}

	atomicAmount := ""
	if !isAmountExempt(action, assetID, mode, opts) {
		if amount.Sign() <= 0 {
			return nil, ErrAmountRequired
		}
		decimals, err := resolveDecimals(ctx, cli, networkID, assetID)
		if err != nil {
			return nil, err
		}
		atomicAmount = amount.ToAtomic(decimals).String()
	}

	req := &client.BuildStakingOperationRequest{
		NetworkID: networkID,
		AssetID:   assetID.PrimaryDenomination(),
		AddressID: addressID,
		Action:    string(action),
		Options:   opts.ToWire(mode, atomicAmount),
	}
	logrus.WithFields(logrus.Fields{
		"network": networkID,
		"address": addressID,
		"action":  action,
		"options": req.Options,
	}).Debug("building staking operation")

	var snapshot *client.OperationSnapshot
	if walletID != "" {
		snapshot, err = cli.CreateWalletStakingOperation(ctx, walletID, req)
	} else {
		snapshot, err = cli.BuildStakingOperation(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	return NewStakingOperation(cli, snapshot), nil
}
