package staking

import (
	"fmt"
)

// Action is a staking workflow kind understood by the backend.
type Action string

const (
	ActionStake      Action = "stake"
	ActionUnstake    Action = "unstake"
	ActionClaimStake Action = "claim_stake"
)

// Mode selects how stake is held for an address.
type Mode string

const (
	ModeDefault Mode = "default"
	ModePartial Mode = "partial"
	ModeNative  Mode = "native"
)

// UnstakeType discriminates how a native eth unstake is carried out.
type UnstakeType string

const (
	UnstakeTypeExecution UnstakeType = "execution"
	UnstakeTypeConsensus UnstakeType = "consensus"
)

// Option keys recognized on the wire. Anything else in an options map is
// caller passthrough.
const (
	KeyMode                    = "mode"
	KeyAmount                  = "amount"
	KeyUnstakeType             = "unstake_type"
	KeyValidatorUnstakeAmounts = "validator_unstake_amounts"
	KeyValidatorPubKeys        = "validator_pub_keys"
)

// StakeOptions is the typed bag of provider options attached to a staking
// request: a small set of recognized keys plus passthrough entries for
// caller extensions.
type StakeOptions struct {
	unstakeType             UnstakeType
	validatorUnstakeAmounts string
	validatorPubKeys        string
	extra                   map[string]string
}

type StakeOption func(opts *StakeOptions) error

func NewStakeOptions(options ...StakeOption) (*StakeOptions, error) {
	opts := &StakeOptions{
		extra: map[string]string{},
	}
	for _, opt := range options {
		if err := opt(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func WithUnstakeType(unstakeType UnstakeType) StakeOption {
	return func(opts *StakeOptions) error {
		switch unstakeType {
		case UnstakeTypeExecution, UnstakeTypeConsensus:
			opts.unstakeType = unstakeType
			return nil
		}
		return fmt.Errorf("invalid unstake type: %s", unstakeType)
	}
}

// WithOption attaches a passthrough key to the request options.
func WithOption(key, value string) StakeOption {
	return func(opts *StakeOptions) error {
		opts.extra[key] = value
		return nil
	}
}

func withValidatorUnstakeAmounts(serialized string) StakeOption {
	return func(opts *StakeOptions) error {
		opts.validatorUnstakeAmounts = serialized
		return nil
	}
}

func withValidatorPubKeys(serialized string) StakeOption {
	return func(opts *StakeOptions) error {
		opts.validatorPubKeys = serialized
		return nil
	}
}

// GetUnstakeType returns the unstake type discriminator, if a valid one was
// set either as a typed option or as passthrough.
func (opts *StakeOptions) GetUnstakeType() (UnstakeType, bool) {
	if opts.unstakeType != "" {
		return opts.unstakeType, true
	}
	switch UnstakeType(opts.extra[KeyUnstakeType]) {
	case UnstakeTypeExecution:
		return UnstakeTypeExecution, true
	case UnstakeTypeConsensus:
		return UnstakeTypeConsensus, true
	}
	return "", false
}

// ToWire flattens the options into the request map. Passthrough entries are
// written first, so computed fields win on key collision.
func (opts *StakeOptions) ToWire(mode Mode, atomicAmount string) map[string]string {
	out := make(map[string]string, len(opts.extra)+4)
	for key, value := range opts.extra {
		out[key] = value
	}
	if opts.unstakeType != "" {
		out[KeyUnstakeType] = string(opts.unstakeType)
	}
	if opts.validatorUnstakeAmounts != "" {
		out[KeyValidatorUnstakeAmounts] = opts.validatorUnstakeAmounts
	}
	if opts.validatorPubKeys != "" {
		out[KeyValidatorPubKeys] = opts.validatorPubKeys
	}
	out[KeyMode] = string(mode)
	if atomicAmount != "" {
		out[KeyAmount] = atomicAmount
	}
	return out
}
