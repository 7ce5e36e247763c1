package coinbase_test

import (
	. "github.com/rcastle4778/coinbase1"
	"github.com/shopspring/decimal"
)

func (s *CoinbaseTestSuite) TestNewAmountAtomicFromUint64() {
	require := s.Require()
	amount := NewAmountAtomicFromUint64(123)
	require.NotNil(amount)
	require.Equal(amount.String(), "123")
}

func (s *CoinbaseTestSuite) TestAmountHumanReadable() {
	require := s.Require()
	amountDec, _ := decimal.NewFromString("10.3")
	amount := AmountHumanReadable(amountDec)
	require.NotNil(amount)
	require.Equal(amount.String(), "10.3")
}

func (s *CoinbaseTestSuite) TestNewAmountHumanReadableFromStr() {
	require := s.Require()
	amount, err := NewAmountHumanReadableFromStr("10.3")
	require.NoError(err)
	require.Equal(amount.String(), "10.3")

	amount, err = NewAmountHumanReadableFromStr("0")
	require.NoError(err)
	require.Equal(amount.String(), "0")

	_, err = NewAmountHumanReadableFromStr("")
	require.Error(err)

	_, err = NewAmountHumanReadableFromStr("invalid")
	require.Error(err)
}

func (s *CoinbaseTestSuite) TestNewAmountAtomicFromStr() {
	require := s.Require()
	amount := NewAmountAtomicFromStr("10")
	require.Equal(amount.String(), "10")

	amount = NewAmountAtomicFromStr("10.3")
	require.Equal(amount.String(), "0")

	amount = NewAmountAtomicFromStr("1500000000000000000")
	require.Equal(amount.String(), "1500000000000000000")
}

func (s *CoinbaseTestSuite) TestToAtomic() {
	require := s.Require()
	amount, err := NewAmountHumanReadableFromStr("1.5")
	require.NoError(err)
	require.Equal(amount.ToAtomic(18).String(), "1500000000000000000")
	require.Equal(amount.ToAtomic(9).String(), "1500000000")
	require.Equal(amount.ToAtomic(0).String(), "1")
}

func (s *CoinbaseTestSuite) TestToHuman() {
	require := s.Require()
	amount := NewAmountAtomicFromStr("1500000000000000000")
	require.Equal(amount.ToHuman(18).String(), "1.5")
	require.Equal(amount.ToHuman(9).String(), "1500000000")
}

// For all decimals exactly representable at the given scale, converting to
// atomic units and back is the identity.
func (s *CoinbaseTestSuite) TestAtomicRoundTrip() {
	require := s.Require()
	vectors := []struct {
		amount   string
		decimals int32
	}{
		{"0", 18},
		{"1.5", 18},
		{"0.000000000000000001", 18},
		{"123456.789", 9},
		{"32", 0},
		{"0.25", 6},
	}
	for _, v := range vectors {
		human, err := NewAmountHumanReadableFromStr(v.amount)
		require.NoError(err)
		atomic := human.ToAtomic(v.decimals)
		back := atomic.ToHuman(v.decimals)
		require.Zero(back.Cmp(human), "round trip failed for %s at %d decimals", v.amount, v.decimals)
	}
}

func (s *CoinbaseTestSuite) TestAtomicTruncatesTowardZero() {
	require := s.Require()
	human, err := NewAmountHumanReadableFromStr("1.0000000005")
	require.NoError(err)
	require.Equal(human.ToAtomic(9).String(), "1000000000")
}

func (s *CoinbaseTestSuite) TestAmountAtomicArithmetic() {
	require := s.Require()
	a := NewAmountAtomicFromUint64(100)
	b := NewAmountAtomicFromUint64(30)
	sum := a.Add(&b)
	require.Equal(sum.String(), "130")
	diff := a.Sub(&b)
	require.Equal(diff.String(), "70")
	require.Equal(a.Cmp(&b), 1)
	require.Equal(b.Cmp(&a), -1)
	z := NewAmountAtomicFromUint64(0)
	require.True(z.IsZero())
	require.False(a.IsZero())
}

func (s *CoinbaseTestSuite) TestAmountJSON() {
	require := s.Require()
	amount, _ := NewAmountHumanReadableFromStr("10.3")
	bz, err := amount.MarshalJSON()
	require.NoError(err)
	require.Equal(string(bz), "\"10.3\"")

	var parsed AmountHumanReadable
	require.NoError(parsed.UnmarshalJSON([]byte("\"10.3\"")))
	require.Equal(parsed.String(), "10.3")

	atomic := NewAmountAtomicFromStr("1500000000")
	bz, err = atomic.MarshalJSON()
	require.NoError(err)
	require.Equal(string(bz), "\"1500000000\"")

	var parsedAtomic AmountAtomic
	require.NoError(parsedAtomic.UnmarshalJSON([]byte("\"1500000000\"")))
	require.Equal(parsedAtomic.String(), "1500000000")
	require.Error(parsedAtomic.UnmarshalJSON([]byte("\"abc!\"")))
}
