package main

import (
	"os"

	"github.com/rcastle4778/coinbase1/cmd/staker/commands"
	"github.com/rcastle4778/coinbase1/cmd/staker/setup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func CmdStaker() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "staker",
		Short:        "Stake, unstake and claim assets through the staking backend",
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			args, err := setup.ArgsFromCmd(cmd)
			if err != nil {
				return err
			}
			setup.ConfigureLogger(args)

			cli, err := setup.LoadClient(args)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"url":     cli.Url,
				"network": args.Network,
			}).Debug("backend")

			ctx := setup.WrapClient(cmd.Context(), cli)
			ctx = setup.WrapArgs(ctx, args)
			cmd.SetContext(ctx)
			return nil
		},
	}
	setup.AddArgs(cmd)

	cmd.AddCommand(commands.CmdBalances())
	cmd.AddCommand(commands.CmdStake())
	cmd.AddCommand(commands.CmdUnstake())
	cmd.AddCommand(commands.CmdClaimStake())
	cmd.AddCommand(commands.CmdStatus())

	return cmd
}

func main() {
	rootCmd := CmdStaker()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
