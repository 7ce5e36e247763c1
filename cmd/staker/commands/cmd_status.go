package commands

import (
	"github.com/rcastle4778/coinbase1/cmd/staker/setup"
	"github.com/rcastle4778/coinbase1/staking"
	"github.com/spf13/cobra"
)

func CmdStatus() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "status <operation-id>",
		Short: "Lookup a staking operation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			cli := setup.UnwrapClient(cmd.Context())
			args := setup.UnwrapArgs(cmd.Context())
			operationID := cmdArgs[0]

			address, err := requireAddress(args)
			if err != nil {
				return err
			}

			var op *staking.StakingOperation
			if args.Wallet != "" {
				op, err = staking.FetchWalletStakingOperation(cmd.Context(), cli, args.Wallet, address, operationID)
			} else {
				networkID, networkErr := args.NetworkID()
				if networkErr != nil {
					return networkErr
				}
				op, err = staking.FetchStakingOperation(cmd.Context(), cli, networkID, address, operationID)
			}
			if err != nil {
				return err
			}

			if wait {
				err = op.Wait(cmd.Context(),
					staking.WithWaitInterval(args.Interval),
					staking.WithWaitTimeout(args.Timeout),
				)
				if err != nil {
					return err
				}
			}
			printOperation(op)
			return nil
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the operation reaches a terminal state")
	return cmd
}
