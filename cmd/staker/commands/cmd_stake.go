package commands

import (
	"context"
	"fmt"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
	"github.com/rcastle4778/coinbase1/cmd/staker/setup"
	"github.com/rcastle4778/coinbase1/staking"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdStake() *cobra.Command {
	return actionCommand("stake", "Stake an asset.", staking.ActionStake)
}

func CmdUnstake() *cobra.Command {
	return actionCommand("unstake", "Unstake an asset.", staking.ActionUnstake)
}

func CmdClaimStake() *cobra.Command {
	return actionCommand("claim-stake", "Claim unstaked funds.", staking.ActionClaimStake)
}

// actionCommand builds the shared stake/unstake/claim-stake command. With
// --wallet the operation is driven end to end through the wallet backend;
// without it the operation is built for an external address, signed locally,
// and printed for out-of-band submission.
func actionCommand(use string, short string, action staking.Action) *cobra.Command {
	var dryRun bool
	var privateKeyRefMaybe string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			args := setup.UnwrapArgs(cmd.Context())

			networkID, err := args.NetworkID()
			if err != nil {
				return err
			}
			mode, err := args.StakingMode()
			if err != nil {
				return err
			}
			address, err := requireAddress(args)
			if err != nil {
				return err
			}
			amount := cb.AmountHumanReadable{}
			if args.Amount != "" {
				amount, err = requireAmount(args)
				if err != nil {
					return err
				}
			}
			options := args.StakeOptions()

			if args.Wallet != "" {
				return runWalletAction(cmd.Context(), cli, args, action, networkID, address, amount, mode, privateKeyRefMaybe, options...)
			}
			return runExternalAction(cmd.Context(), cli, action, networkID, address, amount, mode, dryRun, privateKeyRefMaybe, options...)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build the operation without signing it")
	cmd.Flags().StringVar(&privateKeyRefMaybe, "from", "", "Secret reference for the signing key")
	return cmd
}

func runWalletAction(ctx context.Context, cli *client.Client, args *setup.Args, action staking.Action, networkID cb.NetworkID, address string, amount cb.AmountHumanReadable, mode staking.Mode, privateKeyRefMaybe string, options ...staking.StakeOption) error {
	sg, err := LoadSigner(networkID, privateKeyRefMaybe)
	if err != nil {
		return err
	}
	staker := staking.NewStaker(cli, sg, staking.Account{
		NetworkID: networkID,
		WalletID:  args.Wallet,
		AddressID: address,
	}, staking.WithWaitInterval(args.Interval), staking.WithWaitTimeout(args.Timeout))

	var op *staking.StakingOperation
	switch action {
	case staking.ActionStake:
		op, err = staker.Stake(ctx, amount, cb.AssetID(args.Asset), mode, options...)
	case staking.ActionUnstake:
		op, err = staker.Unstake(ctx, amount, cb.AssetID(args.Asset), mode, options...)
	case staking.ActionClaimStake:
		op, err = staker.ClaimStake(ctx, amount, cb.AssetID(args.Asset), mode, options...)
	default:
		return fmt.Errorf("unsupported action: %s", action)
	}
	if err != nil {
		if op != nil {
			logrus.WithField("operation", op.ID()).Error("operation did not complete")
		}
		return err
	}
	printOperation(op)
	return nil
}

func runExternalAction(ctx context.Context, cli *client.Client, action staking.Action, networkID cb.NetworkID, address string, amount cb.AmountHumanReadable, mode staking.Mode, dryRun bool, privateKeyRefMaybe string, options ...staking.StakeOption) error {
	var op *staking.StakingOperation
	var err error
	switch action {
	case staking.ActionStake:
		op, err = staking.BuildStakeOperation(ctx, cli, amount, actionAsset(ctx), networkID, address, mode, options...)
	case staking.ActionUnstake:
		op, err = staking.BuildUnstakeOperation(ctx, cli, amount, actionAsset(ctx), networkID, address, mode, options...)
	case staking.ActionClaimStake:
		op, err = staking.BuildClaimStakeOperation(ctx, cli, amount, actionAsset(ctx), networkID, address, mode, options...)
	default:
		return fmt.Errorf("unsupported action: %s", action)
	}
	if err != nil {
		return err
	}
	if dryRun {
		printOperation(op)
		return nil
	}

	sg, err := LoadSigner(networkID, privateKeyRefMaybe)
	if err != nil {
		return err
	}
	if err := op.Sign(sg); err != nil {
		return err
	}
	printOperation(op)
	return nil
}

func actionAsset(ctx context.Context) cb.AssetID {
	return cb.AssetID(setup.UnwrapArgs(ctx).Asset)
}

func printOperation(op *staking.StakingOperation) {
	type txView struct {
		UnsignedPayload string `json:"unsigned_payload"`
		SignedPayload   string `json:"signed_payload,omitempty"`
		Status          string `json:"status"`
	}
	view := struct {
		ID           string   `json:"id"`
		Status       string   `json:"status"`
		Transactions []txView `json:"transactions"`
		ExitMessages []string `json:"signed_voluntary_exit_messages,omitempty"`
	}{
		ID:     op.ID(),
		Status: string(op.Status()),
	}
	for _, tx := range op.Transactions() {
		view.Transactions = append(view.Transactions, txView{
			UnsignedPayload: tx.UnsignedPayload,
			SignedPayload:   tx.SignedPayload,
			Status:          string(tx.Status),
		})
	}
	if messages, err := op.SignedVoluntaryExitMessages(); err == nil {
		view.ExitMessages = messages
	}
	jsonprint(view)
}
