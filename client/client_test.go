package client_test

import (
	"context"
	"encoding/json"
	"testing"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
	"github.com/rcastle4778/coinbase1/config"
	"github.com/rcastle4778/coinbase1/testutil"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	Ctx context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.Ctx = context.Background()
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TestNewClient() {
	require := s.Require()
	cli, err := client.NewClient("http://localhost:1234/", "")
	require.NoError(err)
	require.NotNil(cli)
	require.Equal("http://localhost:1234", cli.Url)

	_, err = client.NewClient("", "")
	require.Error(err)
}

func (s *ClientTestSuite) TestBuildStakingOperation() {
	require := s.Require()
	resObj := client.OperationSnapshot{
		ID:        "op-1",
		NetworkID: cb.EthereumHolesky,
		AddressID: "0xabc",
		Status:    client.OperationStatusInitialized,
		Transactions: []client.TransactionSnapshot{
			{UnsignedPayload: "0x01", Status: client.TransactionStatusPending},
		},
	}
	res, _ := json.Marshal(resObj)
	server, close := testutil.MockHTTP(s.T(), string(res), 200)
	defer close()

	cli, _ := client.NewClient(server.URL, config.NewRawSecret("test-key"))
	snapshot, err := cli.BuildStakingOperation(s.Ctx, &client.BuildStakingOperationRequest{
		NetworkID: cb.EthereumHolesky,
		AssetID:   cb.Eth,
		AddressID: "0xabc",
		Action:    "stake",
		Options:   map[string]string{"mode": "default", "amount": "100"},
	})
	require.NoError(err)
	require.Equal("op-1", snapshot.ID)
	require.Len(snapshot.Transactions, 1)
	require.False(snapshot.Status.IsTerminal())
}

func (s *ClientTestSuite) TestGetStakingOperationPaths() {
	require := s.Require()
	resObj := client.OperationSnapshot{ID: "op-2", Status: client.OperationStatusComplete}
	seq := testutil.MockHTTPSequence(s.T(),
		testutil.Response{Body: resObj},
		testutil.Response{Body: resObj},
	)

	cli, _ := client.NewClient(seq.Server.URL, "")
	snapshot, err := cli.GetStakingOperation(s.Ctx, cb.EthereumHolesky, "0xabc", "op-2")
	require.NoError(err)
	require.True(snapshot.Status.IsTerminal())

	snapshot, err = cli.GetWalletStakingOperation(s.Ctx, "wallet-1", "0xabc", "op-2")
	require.NoError(err)
	require.Equal("op-2", snapshot.ID)

	reqs := seq.Requests()
	require.Len(reqs, 2)
	require.Equal("/v1/networks/ethereum-holesky/addresses/0xabc/staking_operations/op-2", reqs[0].Path)
	require.Equal("/v1/wallets/wallet-1/addresses/0xabc/staking_operations/op-2", reqs[1].Path)
}

func (s *ClientTestSuite) TestBroadcastStakingOperation() {
	require := s.Require()
	resObj := client.OperationSnapshot{ID: "op-3", Status: client.OperationStatusPending}
	seq := testutil.MockHTTPSequence(s.T(), testutil.Response{Body: resObj})

	cli, _ := client.NewClient(seq.Server.URL, "")
	snapshot, err := cli.BroadcastStakingOperation(s.Ctx, "wallet-1", "0xabc", "op-3", &client.BroadcastStakingOperationRequest{
		SignedPayload:    "f86b…",
		TransactionIndex: 0,
	})
	require.NoError(err)
	require.Equal("op-3", snapshot.ID)

	reqs := seq.Requests()
	require.Len(reqs, 1)
	require.Equal("POST", reqs[0].Method)
	require.Equal("/v1/wallets/wallet-1/addresses/0xabc/staking_operations/op-3/broadcast", reqs[0].Path)
	var body client.BroadcastStakingOperationRequest
	require.NoError(json.Unmarshal(reqs[0].Body, &body))
	require.Equal(0, body.TransactionIndex)
}

func (s *ClientTestSuite) TestGetStakingContext() {
	require := s.Require()
	res := `{"context": {
		"stakeable_balance": {"amount": "3000000000000000000", "asset": {"network_id": "ethereum-holesky", "asset_id": "eth", "decimals": 18}},
		"unstakeable_balance": {"amount": "2000000000000000000", "asset": {"network_id": "ethereum-holesky", "asset_id": "eth", "decimals": 18}},
		"claimable_balance": {"amount": "0", "asset": {"network_id": "ethereum-holesky", "asset_id": "eth", "decimals": 18}},
		"pending_claimable_balance": {"amount": "0", "asset": {"network_id": "ethereum-holesky", "asset_id": "eth", "decimals": 18}}
	}}`
	server, close := testutil.MockHTTP(s.T(), res, 200)
	defer close()

	cli, _ := client.NewClient(server.URL, "")
	stakingContext, err := cli.GetStakingContext(s.Ctx, cb.EthereumHolesky, "0xabc", &client.GetStakingContextRequest{
		AssetID: cb.Eth,
		Options: map[string]string{"mode": "default"},
	})
	require.NoError(err)
	require.Equal("3000000000000000000", stakingContext.StakeableBalance.Amount.String())
	require.Equal(int32(18), stakingContext.StakeableBalance.Asset.Decimals)
	require.Equal("2", stakingContext.UnstakeableBalance.Amount.ToHuman(18).String())
}

func (s *ClientTestSuite) TestGetAsset() {
	require := s.Require()
	res := `{"network_id": "ethereum-holesky", "asset_id": "eth", "decimals": 18}`
	server, close := testutil.MockHTTP(s.T(), res, 200)
	defer close()

	cli, _ := client.NewClient(server.URL, "")
	asset, err := cli.GetAsset(s.Ctx, cb.EthereumHolesky, cb.Eth)
	require.NoError(err)
	require.Equal(cb.Eth, asset.AssetID)
	require.Equal(int32(18), asset.Decimals)
}

func (s *ClientTestSuite) TestBackendError() {
	require := s.Require()
	server, close := testutil.MockHTTP(s.T(), `{"code": "invalid_request", "message": "amount is too large"}`, 400)
	defer close()

	cli, _ := client.NewClient(server.URL, "")
	_, err := cli.GetStakingOperation(s.Ctx, cb.EthereumHolesky, "0xabc", "op-x")
	require.Error(err)
	apiErr, ok := err.(*client.Error)
	require.True(ok)
	require.Equal("invalid_request", apiErr.Code)
	require.Equal(400, apiErr.HttpStatus)
	require.Contains(apiErr.Error(), "amount is too large")
}

func (s *ClientTestSuite) TestUnknownBackendError() {
	require := s.Require()
	server, close := testutil.MockHTTP(s.T(), `not json`, 500)
	defer close()

	cli, _ := client.NewClient(server.URL, "")
	_, err := cli.GetStakingOperation(s.Ctx, cb.EthereumHolesky, "0xabc", "op-x")
	require.Error(err)
	require.Contains(err.Error(), "unknown backend error")
}
