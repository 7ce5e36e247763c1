package staking

import (
	"encoding/json"
	"fmt"
	"strings"

	cb "github.com/rcastle4778/coinbase1"
)

// ValidatorUnstakeAmounts accumulates a mapping of validator public key to
// withdrawal amount for a native eth unstake. Amounts are converted to atomic
// units per entry; Option serializes the mapping into a single request option
// and may be used against any number of option sets.
type ValidatorUnstakeAmounts struct {
	decimals int32
	amounts  map[string]string
}

func NewValidatorUnstakeAmounts(decimals int32) *ValidatorUnstakeAmounts {
	return &ValidatorUnstakeAmounts{
		decimals: decimals,
		amounts:  map[string]string{},
	}
}

func (b *ValidatorUnstakeAmounts) Add(pubKey string, amount cb.AmountHumanReadable) error {
	pubKey = strings.TrimSpace(pubKey)
	if pubKey == "" {
		return fmt.Errorf("validator public key required")
	}
	if amount.Sign() <= 0 {
		return ErrAmountRequired
	}
	b.amounts[pubKey] = amount.ToAtomic(b.decimals).String()
	return nil
}

func (b *ValidatorUnstakeAmounts) Len() int {
	return len(b.amounts)
}

func (b *ValidatorUnstakeAmounts) Option() (StakeOption, error) {
	if len(b.amounts) == 0 {
		return nil, fmt.Errorf("no validator unstake amounts accumulated")
	}
	bz, err := json.Marshal(b.amounts)
	if err != nil {
		return nil, err
	}
	return withValidatorUnstakeAmounts(string(bz)), nil
}

// ValidatorPubKeys accumulates a de-duplicated, order-preserving list of
// validator public keys. Option serializes the list comma-joined into a
// single request option.
type ValidatorPubKeys struct {
	seen map[string]bool
	keys []string
}

func NewValidatorPubKeys() *ValidatorPubKeys {
	return &ValidatorPubKeys{
		seen: map[string]bool{},
	}
}

func (b *ValidatorPubKeys) Add(pubKeys ...string) {
	for _, pubKey := range pubKeys {
		pubKey = strings.TrimSpace(pubKey)
		if pubKey == "" || b.seen[pubKey] {
			continue
		}
		b.seen[pubKey] = true
		b.keys = append(b.keys, pubKey)
	}
}

func (b *ValidatorPubKeys) Len() int {
	return len(b.keys)
}

func (b *ValidatorPubKeys) Option() (StakeOption, error) {
	if len(b.keys) == 0 {
		return nil, fmt.Errorf("no validator public keys accumulated")
	}
	return withValidatorPubKeys(strings.Join(b.keys, ",")), nil
}
