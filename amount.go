package coinbase

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// AmountAtomic is a big integer amount in the smallest indivisible unit of an
// asset (e.g. wei for ether), as the staking backend expects it.
type AmountAtomic big.Int

// AmountHumanReadable is a decimal amount as a human expects it for readability.
type AmountHumanReadable decimal.Decimal

func (amount AmountAtomic) String() string {
	bigInt := big.Int(amount)
	return bigInt.String()
}

// Int converts an AmountAtomic into *big.Int
func (amount AmountAtomic) Int() *big.Int {
	bigInt := big.Int(amount)
	return &bigInt
}

func (amount AmountAtomic) Sign() int {
	bigInt := big.Int(amount)
	return bigInt.Sign()
}

// Use the underlying big.Int.Cmp()
func (amount *AmountAtomic) Cmp(other *AmountAtomic) int {
	return amount.Int().Cmp(other.Int())
}

// Use the underlying big.Int.Add()
func (amount *AmountAtomic) Add(x *AmountAtomic) AmountAtomic {
	sum := new(big.Int)
	sum.Set((*big.Int)(amount))
	return AmountAtomic(*sum.Add(sum, x.Int()))
}

// Use the underlying big.Int.Sub()
func (amount *AmountAtomic) Sub(x *AmountAtomic) AmountAtomic {
	diff := new(big.Int)
	diff.Set((*big.Int)(amount))
	return AmountAtomic(*diff.Sub(diff, x.Int()))
}

var zero = big.NewInt(0)

func (amount *AmountAtomic) IsZero() bool {
	return amount.Int().Cmp(zero) == 0
}

// ToHuman divides out the decimals of the asset, preserving full precision.
func (amount *AmountAtomic) ToHuman(decimals int32) AmountHumanReadable {
	dec := decimal.NewFromBigInt(amount.Int(), -decimals)
	return AmountHumanReadable(dec)
}

// NewAmountAtomicFromUint64 creates a new AmountAtomic from a uint64
func NewAmountAtomicFromUint64(u64 uint64) AmountAtomic {
	bigInt := new(big.Int).SetUint64(u64)
	return AmountAtomic(*bigInt)
}

// NewAmountAtomicFromStr creates a new AmountAtomic from a string
func NewAmountAtomicFromStr(str string) AmountAtomic {
	var ok bool
	var bigInt *big.Int
	bigInt, ok = new(big.Int).SetString(str, 0)
	if !ok {
		return NewAmountAtomicFromUint64(0)
	}
	return AmountAtomic(*bigInt)
}

// NewAmountHumanReadableFromStr creates a new AmountHumanReadable from a string
func NewAmountHumanReadableFromStr(str string) (AmountHumanReadable, error) {
	decimal, err := decimal.NewFromString(str)
	return AmountHumanReadable(decimal), err
}

// NewAmountHumanReadableFromFloat creates a new AmountHumanReadable from a float
func NewAmountHumanReadableFromFloat(float float64) AmountHumanReadable {
	return AmountHumanReadable(decimal.NewFromFloat(float))
}

func (amount AmountHumanReadable) Decimal() decimal.Decimal {
	return decimal.Decimal(amount)
}

// ToAtomic raises the amount by the decimals of the asset, truncating toward
// zero any precision below the atomic unit.
func (amount AmountHumanReadable) ToAtomic(decimals int32) AmountAtomic {
	factor := decimal.NewFromInt32(10).Pow(decimal.NewFromInt32(decimals))
	raised := ((decimal.Decimal)(amount)).Mul(factor)
	return AmountAtomic(*raised.BigInt())
}

func (amount AmountHumanReadable) String() string {
	return decimal.Decimal(amount).String()
}

func (amount AmountHumanReadable) Sign() int {
	return decimal.Decimal(amount).Sign()
}

func (amount AmountHumanReadable) Cmp(other AmountHumanReadable) int {
	return decimal.Decimal(amount).Cmp(decimal.Decimal(other))
}

var _ json.Marshaler = AmountHumanReadable{}
var _ json.Unmarshaler = &AmountHumanReadable{}
var _ yaml.Unmarshaler = &AmountHumanReadable{}
var _ yaml.Marshaler = AmountHumanReadable{}
var _ yaml.IsZeroer = AmountHumanReadable{}

func (b AmountHumanReadable) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

func (b AmountHumanReadable) IsZero() bool {
	return decimal.Decimal(b).IsZero()
}

func (b *AmountHumanReadable) UnmarshalYAML(node *yaml.Node) error {
	value := node.Value
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "\"")
	value = strings.TrimSuffix(value, "\"")
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid decimal amount: %v", err)
	}
	*b = AmountHumanReadable(dec)
	return nil
}

func (b AmountHumanReadable) MarshalJSON() ([]byte, error) {
	return []byte("\"" + b.String() + "\""), nil
}

func (b *AmountHumanReadable) UnmarshalJSON(p []byte) error {
	if string(p) == "null" {
		return nil
	}
	str := strings.Trim(string(p), "\"")
	decimal, err := decimal.NewFromString(str)
	if err != nil {
		return err
	}
	*b = AmountHumanReadable(decimal)
	return nil
}

var _ json.Marshaler = AmountAtomic{}
var _ json.Unmarshaler = &AmountAtomic{}

func (b AmountAtomic) MarshalJSON() ([]byte, error) {
	return []byte("\"" + b.String() + "\""), nil
}

func (b *AmountAtomic) UnmarshalJSON(p []byte) error {
	if string(p) == "null" {
		return nil
	}
	str := strings.Trim(string(p), "\"")
	var z big.Int
	_, ok := z.SetString(str, 0)
	if !ok {
		return fmt.Errorf("not a valid big integer: %s", p)
	}
	*b = AmountAtomic(z)
	return nil
}
