package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
	"github.com/rcastle4778/coinbase1/config"
	"github.com/rcastle4778/coinbase1/staking"
	"github.com/spf13/cobra"
)

type ContextKey string

const ContextClient ContextKey = "client"
const ContextArgs ContextKey = "args"

// Args are the persistent flags shared by every staker subcommand.
type Args struct {
	ConfigPath string
	Url        string
	ApiKeyRef  string

	Network string
	Address string
	Wallet  string

	Asset       string
	Amount      string
	Mode        string
	UnstakeType string

	Interval time.Duration
	Timeout  time.Duration

	VerbosityCount int
}

func AddArgs(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to a staker config file (TOML)")
	cmd.PersistentFlags().String("url", "", "Override the staking backend URL")
	cmd.PersistentFlags().String("api-key", "", "Secret reference for the API key (env:VAR, file:PATH, or raw:VALUE)")

	cmd.PersistentFlags().String("network", "", "Network to stake on (defaults from config)")
	cmd.PersistentFlags().String("address", "", "Address holding the stake")
	cmd.PersistentFlags().String("wallet", "", "Wallet ID, for custodially managed addresses")

	cmd.PersistentFlags().String("asset", string(cb.Eth), "Asset to stake")
	cmd.PersistentFlags().String("amount", "", "Amount in human units, e.g. 1.5")
	cmd.PersistentFlags().String("mode", string(staking.ModeDefault), "Staking mode (default, partial, native)")
	cmd.PersistentFlags().String("unstake-type", "", "Ethereum native unstake type (execution, consensus)")

	cmd.PersistentFlags().Duration("interval", staking.DefaultWaitInterval, "Polling interval while waiting for the operation")
	cmd.PersistentFlags().Duration("timeout", staking.DefaultWaitTimeout, "Give up waiting after this long")

	cmd.PersistentFlags().CountP("verbose", "v", "Increase logging verbosity")
}

func ArgsFromCmd(cmd *cobra.Command) (*Args, error) {
	configPath, _ := cmd.Flags().GetString("config")
	url, _ := cmd.Flags().GetString("url")
	apiKeyRef, _ := cmd.Flags().GetString("api-key")
	network, _ := cmd.Flags().GetString("network")
	address, _ := cmd.Flags().GetString("address")
	wallet, _ := cmd.Flags().GetString("wallet")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetString("amount")
	mode, _ := cmd.Flags().GetString("mode")
	unstakeType, _ := cmd.Flags().GetString("unstake-type")
	interval, _ := cmd.Flags().GetDuration("interval")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	verbosity, _ := cmd.Flags().GetCount("verbose")

	return &Args{
		ConfigPath:     configPath,
		Url:            url,
		ApiKeyRef:      apiKeyRef,
		Network:        network,
		Address:        address,
		Wallet:         wallet,
		Asset:          asset,
		Amount:         amount,
		Mode:           mode,
		UnstakeType:    unstakeType,
		Interval:       interval,
		Timeout:        timeout,
		VerbosityCount: verbosity,
	}, nil
}

func ConfigureLogger(args *Args) {
	switch {
	case args.VerbosityCount == 0:
		config.ConfigureLogger()
	case args.VerbosityCount == 1:
		config.ConfigureLogger("info")
	case args.VerbosityCount == 2:
		config.ConfigureLogger("debug")
	default:
		config.ConfigureLogger("trace")
	}
}

// LoadClient resolves the backend configuration (flag, file, env, defaults
// in that order) and builds the API client.
func LoadClient(args *Args) (*client.Client, error) {
	var cfg *config.Config
	var err error
	if args.ConfigPath != "" {
		cfg, err = config.LoadConfigFromFile(args.ConfigPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}
	if args.Url != "" {
		cfg.BaseUrl = args.Url
	}
	if args.ApiKeyRef != "" {
		if !config.HasTypePrefix(args.ApiKeyRef) {
			return nil, fmt.Errorf("--api-key must be a secret reference (env:VAR, file:PATH, or raw:VALUE)")
		}
		cfg.ApiKey = config.Secret(args.ApiKeyRef)
	}
	if args.Network == "" {
		args.Network = cfg.Network
	}
	return client.NewClient(cfg.BaseUrl, cfg.ApiKey)
}

func (args *Args) NetworkID() (cb.NetworkID, error) {
	for _, networkID := range cb.NetworkIDList {
		if strings.EqualFold(string(networkID), args.Network) {
			return networkID, nil
		}
	}
	return "", fmt.Errorf("invalid network: %s\noptions: %v", args.Network, cb.NetworkIDList)
}

func (args *Args) StakingMode() (staking.Mode, error) {
	switch staking.Mode(args.Mode) {
	case staking.ModeDefault, staking.ModePartial, staking.ModeNative:
		return staking.Mode(args.Mode), nil
	}
	return "", fmt.Errorf("invalid mode: %s", args.Mode)
}

func (args *Args) StakeOptions() []staking.StakeOption {
	var options []staking.StakeOption
	if args.UnstakeType != "" {
		options = append(options, staking.WithUnstakeType(staking.UnstakeType(args.UnstakeType)))
	}
	return options
}

func WrapClient(ctx context.Context, cli *client.Client) context.Context {
	return context.WithValue(ctx, ContextClient, cli)
}

func WrapArgs(ctx context.Context, args *Args) context.Context {
	return context.WithValue(ctx, ContextArgs, args)
}

func UnwrapClient(ctx context.Context) *client.Client {
	return ctx.Value(ContextClient).(*client.Client)
}

func UnwrapArgs(ctx context.Context) *Args {
	return ctx.Value(ContextArgs).(*Args)
}
