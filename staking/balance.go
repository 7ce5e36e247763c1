package staking

import (
	"context"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
)

// StakingBalances is a transient aggregate of the four balance categories for
// one (address, asset, mode, options) tuple. The backend reports all four in
// a single fetch; callers needing one category still pay for all four.
// Recomputed on every fetch, never cached.
type StakingBalances struct {
	Stakeable        cb.AmountHumanReadable
	Unstakeable      cb.AmountHumanReadable
	Claimable        cb.AmountHumanReadable
	PendingClaimable cb.AmountHumanReadable
}

func FetchStakingBalances(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, options ...StakeOption) (*StakingBalances, error) {
	opts, err := NewStakeOptions(options...)
	if err != nil {
		return nil, err
	}
	stakingContext, err := cli.GetStakingContext(ctx, networkID, addressID, &client.GetStakingContextRequest{
		AssetID: assetID.PrimaryDenomination(),
		Options: opts.ToWire(mode, ""),
	})
	if err != nil {
		return nil, err
	}
	return &StakingBalances{
		Stakeable:        toHuman(stakingContext.StakeableBalance),
		Unstakeable:      toHuman(stakingContext.UnstakeableBalance),
		Claimable:        toHuman(stakingContext.ClaimableBalance),
		PendingClaimable: toHuman(stakingContext.PendingClaimableBalance),
	}, nil
}

func toHuman(balance client.StakingBalance) cb.AmountHumanReadable {
	return balance.Amount.ToHuman(balance.Asset.Decimals)
}

func StakeableBalance(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, options ...StakeOption) (cb.AmountHumanReadable, error) {
	balances, err := FetchStakingBalances(ctx, cli, networkID, addressID, assetID, mode, options...)
	if err != nil {
		return cb.AmountHumanReadable{}, err
	}
	return balances.Stakeable, nil
}

func UnstakeableBalance(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, options ...StakeOption) (cb.AmountHumanReadable, error) {
	balances, err := FetchStakingBalances(ctx, cli, networkID, addressID, assetID, mode, options...)
	if err != nil {
		return cb.AmountHumanReadable{}, err
	}
	return balances.Unstakeable, nil
}

func ClaimableBalance(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, options ...StakeOption) (cb.AmountHumanReadable, error) {
	balances, err := FetchStakingBalances(ctx, cli, networkID, addressID, assetID, mode, options...)
	if err != nil {
		return cb.AmountHumanReadable{}, err
	}
	return balances.Claimable, nil
}

func PendingClaimableBalance(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, options ...StakeOption) (cb.AmountHumanReadable, error) {
	balances, err := FetchStakingBalances(ctx, cli, networkID, addressID, assetID, mode, options...)
	if err != nil {
		return cb.AmountHumanReadable{}, err
	}
	return balances.PendingClaimable, nil
}

// ValidateCanStake fails fast, before any network-mutating call, if the
// requested amount is not positive or exceeds the stakeable balance.
func ValidateCanStake(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, amount cb.AmountHumanReadable, options ...StakeOption) error {
	balances, err := fetchForValidation(ctx, cli, networkID, addressID, assetID, mode, amount, options...)
	if err != nil {
		return err
	}
	return checkBalance(amount, assetID, balances.Stakeable)
}

func ValidateCanUnstake(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, amount cb.AmountHumanReadable, options ...StakeOption) error {
	balances, err := fetchForValidation(ctx, cli, networkID, addressID, assetID, mode, amount, options...)
	if err != nil {
		return err
	}
	return checkBalance(amount, assetID, balances.Unstakeable)
}

// ValidateCanClaimStake rejects native-mode eth outright: native eth staking
// has no claimable phase.
func ValidateCanClaimStake(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, amount cb.AmountHumanReadable, options ...StakeOption) error {
	if assetID.PrimaryDenomination() == cb.Eth && mode == ModeNative {
		return ErrNativeEthClaimStake
	}
	balances, err := fetchForValidation(ctx, cli, networkID, addressID, assetID, mode, amount, options...)
	if err != nil {
		return err
	}
	return checkBalance(amount, assetID, balances.Claimable)
}

func fetchForValidation(ctx context.Context, cli *client.Client, networkID cb.NetworkID, addressID string, assetID cb.AssetID, mode Mode, amount cb.AmountHumanReadable, options ...StakeOption) (*StakingBalances, error) {
	if amount.Sign() <= 0 {
		return nil, ErrAmountRequired
	}
	return FetchStakingBalances(ctx, cli, networkID, addressID, assetID, mode, options...)
}

// checkBalance compares the requested amount against the available balance
// in the balance's own denomination. Gwei and wei requests are converted to
// ether first, since balances are always reported in the primary
// denomination.
func checkBalance(amount cb.AmountHumanReadable, assetID cb.AssetID, available cb.AmountHumanReadable) error {
	requested := amount
	switch assetID {
	case cb.Gwei:
		atomic := amount.ToAtomic(cb.GweiDecimals)
		requested = atomic.ToHuman(cb.EthDecimals)
	case cb.Wei:
		atomic := amount.ToAtomic(0)
		requested = atomic.ToHuman(cb.EthDecimals)
	}
	if requested.Cmp(available) > 0 {
		return &InsufficientBalanceError{Requested: requested, Available: available}
	}
	return nil
}
