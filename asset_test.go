package coinbase_test

import (
	. "github.com/rcastle4778/coinbase1"
)

func (s *CoinbaseTestSuite) TestPrimaryDenomination() {
	require := s.Require()
	require.Equal(Gwei.PrimaryDenomination(), Eth)
	require.Equal(Wei.PrimaryDenomination(), Eth)
	require.Equal(Eth.PrimaryDenomination(), Eth)
	require.Equal(Sol.PrimaryDenomination(), Sol)
	require.Equal(AssetID("usdc").PrimaryDenomination(), AssetID("usdc"))
}

func (s *CoinbaseTestSuite) TestNewAsset() {
	require := s.Require()
	asset, err := NewAsset(EthereumHolesky, Eth, "", EthDecimals)
	require.NoError(err)
	require.Equal(asset.Decimals, int32(18))
	require.Equal(asset.String(), "ethereum-holesky/eth")

	_, err = NewAsset(EthereumHolesky, Eth, "", -1)
	require.Error(err)
}

func (s *CoinbaseTestSuite) TestAssetAtomicConversion() {
	require := s.Require()
	asset, err := NewAsset(EthereumMainnet, Eth, "", EthDecimals)
	require.NoError(err)

	amount, err := NewAmountHumanReadableFromStr("1.5")
	require.NoError(err)
	require.Equal(asset.ToAtomicAmount(amount).String(), "1500000000000000000")

	atomic := NewAmountAtomicFromStr("1500000000000000000")
	require.Equal(asset.FromAtomicAmount(atomic).String(), "1.5")
}
