package commands

import (
	"encoding/json"
	"fmt"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/cmd/staker/setup"
	"github.com/rcastle4778/coinbase1/config"
	"github.com/rcastle4778/coinbase1/signer"
)

func jsonprint(v any) {
	bz, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(bz))
}

// LoadSigner loads the signing key from a secret reference, falling back to
// the private-key env var. The algorithm follows the network's curve.
func LoadSigner(networkID cb.NetworkID, privateKeyRefMaybe string) (signer.Signer, error) {
	var privateKeyInput string
	if privateKeyRefMaybe != "" {
		privateKeyInput = config.Secret(privateKeyRefMaybe).LoadOrBlank()
	} else {
		privateKeyInput = signer.ReadPrivateKeyEnv()
	}
	if privateKeyInput == "" {
		return nil, fmt.Errorf("must set env %s", signer.EnvPrivateKey)
	}
	algorithm := signer.K256Keccak
	if networkID.IsSolana() {
		algorithm = signer.Ed255
	}
	return signer.New(algorithm, privateKeyInput)
}

func requireAddress(args *setup.Args) (string, error) {
	if args.Address == "" {
		return "", fmt.Errorf("must pass --address")
	}
	return args.Address, nil
}

func requireAmount(args *setup.Args) (cb.AmountHumanReadable, error) {
	if args.Amount == "" {
		return cb.AmountHumanReadable{}, fmt.Errorf("must pass --amount")
	}
	amount, err := cb.NewAmountHumanReadableFromStr(args.Amount)
	if err != nil {
		return cb.AmountHumanReadable{}, fmt.Errorf("invalid --amount: %v", err)
	}
	return amount, nil
}
