package commands

import (
	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/cmd/staker/setup"
	"github.com/rcastle4778/coinbase1/staking"
	"github.com/spf13/cobra"
)

func CmdBalances() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Lookup staking balances for an address.",
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

			balances, err := staking.FetchStakingBalances(
				cmd.Context(), cli, networkID, address, cb.AssetID(args.Asset), mode, args.StakeOptions()...,
			)
			if err != nil {
				return err
			}
			jsonprint(balances)
			return nil
		},
	}
	return cmd
}
