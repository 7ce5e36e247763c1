package staking_test

import (
	"context"
	"encoding/json"
	"testing"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/client"
	"github.com/rcastle4778/coinbase1/staking"
	"github.com/rcastle4778/coinbase1/testutil"
	"github.com/stretchr/testify/require"
)

const assetResponse = `{"network_id": "ethereum-holesky", "asset_id": "eth", "decimals": 18}`

func buildRequestBody(t *testing.T, req testutil.RecordedRequest) client.BuildStakingOperationRequest {
	t.Helper()
	var body client.BuildStakingOperationRequest
	require.NoError(t, json.Unmarshal(req.Body, &body))
	return body
}

// Staking 1.5 eth attaches the atomic amount and mode to the request options.
func TestBuildStakeOperation(t *testing.T) {
	seq := testutil.MockHTTPSequence(t,
		testutil.Response{Body: assetResponse},
		testutil.Response{Body: snapshotWithTxs(client.OperationStatusInitialized, "aa11")},
	)
	cli := newTestClient(t, seq.Server.URL)

	op, err := staking.BuildStakeOperation(context.Background(), cli, mustHuman(t, "1.5"), cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModePartial)
	require.NoError(t, err)
	require.Equal(t, "op-1", op.ID())
	require.Len(t, op.Transactions(), 1)
	require.Empty(t, op.WalletID())

	reqs := seq.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "/v1/networks/ethereum-holesky/assets/eth", reqs[0].Path)
	require.Equal(t, "/v1/networks/ethereum-holesky/addresses/0xabc/staking_operations", reqs[1].Path)

	body := buildRequestBody(t, reqs[1])
	require.Equal(t, "stake", body.Action)
	require.Equal(t, cb.Eth, body.AssetID)
	require.Equal(t, "1500000000000000000", body.Options[staking.KeyAmount])
	require.Equal(t, "partial", body.Options[staking.KeyMode])
}

// Sub-unit denominations convert with their own decimals but the request is
// submitted under the primary denomination, without a registry lookup.
func TestBuildStakeOperationGwei(t *testing.T) {
	seq := testutil.MockHTTPSequence(t,
		testutil.Response{Body: snapshotWithTxs(client.OperationStatusInitialized, "aa11")},
	)
	cli := newTestClient(t, seq.Server.URL)

	_, err := staking.BuildStakeOperation(context.Background(), cli, mustHuman(t, "1500000000"), cb.Gwei, cb.EthereumHolesky, "0xabc", staking.ModePartial)
	require.NoError(t, err)

	reqs := seq.Requests()
	require.Len(t, reqs, 1)
	body := buildRequestBody(t, reqs[0])
	require.Equal(t, cb.Eth, body.AssetID)
	require.Equal(t, "1500000000000000000", body.Options[staking.KeyAmount])
}

func TestBuildRequiresPositiveAmount(t *testing.T) {
	cli := newTestClient(t, "http://localhost:0")

	_, err := staking.BuildStakeOperation(context.Background(), cli, mustHuman(t, "0"), cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeDefault)
	require.ErrorIs(t, err, staking.ErrAmountRequired)

	_, err = staking.BuildUnstakeOperation(context.Background(), cli, mustHuman(t, "-2"), cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeDefault)
	require.ErrorIs(t, err, staking.ErrAmountRequired)
}

// A native eth unstake with an explicit unstake type is amount-exempt: the
// request omits the amount entirely and carries the discriminator.
func TestBuildUnstakeOperationAmountExempt(t *testing.T) {
	seq := testutil.MockHTTPSequence(t,
		testutil.Response{Body: snapshotWithTxs(client.OperationStatusInitialized, "aa11")},
	)
	cli := newTestClient(t, seq.Server.URL)

	op, err := staking.BuildUnstakeOperation(context.Background(), cli, cb.AmountHumanReadable{}, cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeNative,
		staking.WithUnstakeType(staking.UnstakeTypeExecution))
	require.NoError(t, err)
	require.Equal(t, "op-1", op.ID())

	reqs := seq.Requests()
	require.Len(t, reqs, 1)
	body := buildRequestBody(t, reqs[0])
	require.Equal(t, "unstake", body.Action)
	require.NotContains(t, body.Options, staking.KeyAmount)
	require.Equal(t, "execution", body.Options[staking.KeyUnstakeType])
	require.Equal(t, "native", body.Options[staking.KeyMode])
}

// The exemption only holds for the exact combination of action, asset, mode
// and discriminator; every other combination requires an amount.
func TestAmountExemptionBoundary(t *testing.T) {
	cli := newTestClient(t, "http://localhost:0")
	ctx := context.Background()
	zero := cb.AmountHumanReadable{}

	// wrong action
	_, err := staking.BuildStakeOperation(ctx, cli, zero, cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeNative,
		staking.WithUnstakeType(staking.UnstakeTypeExecution))
	require.ErrorIs(t, err, staking.ErrAmountRequired)

	// wrong mode
	_, err = staking.BuildUnstakeOperation(ctx, cli, zero, cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModePartial,
		staking.WithUnstakeType(staking.UnstakeTypeExecution))
	require.ErrorIs(t, err, staking.ErrAmountRequired)

	// non-native asset
	_, err = staking.BuildUnstakeOperation(ctx, cli, zero, cb.Sol, cb.SolanaMainnet, "addr", staking.ModeNative,
		staking.WithUnstakeType(staking.UnstakeTypeExecution))
	require.ErrorIs(t, err, staking.ErrAmountRequired)

	// missing discriminator
	_, err = staking.BuildUnstakeOperation(ctx, cli, zero, cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeNative)
	require.ErrorIs(t, err, staking.ErrAmountRequired)

	// invalid discriminator via passthrough does not qualify
	_, err = staking.BuildUnstakeOperation(ctx, cli, zero, cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeNative,
		staking.WithOption(staking.KeyUnstakeType, "bogus"))
	require.ErrorIs(t, err, staking.ErrAmountRequired)
}

// gwei and wei qualify for the exemption through their primary denomination.
func TestAmountExemptionSubUnitDenominations(t *testing.T) {
	seq := testutil.MockHTTPSequence(t,
		testutil.Response{Body: snapshotWithTxs(client.OperationStatusInitialized, "aa11")},
	)
	cli := newTestClient(t, seq.Server.URL)

	_, err := staking.BuildUnstakeOperation(context.Background(), cli, cb.AmountHumanReadable{}, cb.Gwei, cb.EthereumHolesky, "0xabc", staking.ModeNative,
		staking.WithUnstakeType(staking.UnstakeTypeConsensus))
	require.NoError(t, err)

	body := buildRequestBody(t, seq.Requests()[0])
	require.NotContains(t, body.Options, staking.KeyAmount)
	require.Equal(t, cb.Eth, body.AssetID)
}

// Native unstake request assembled with the validator builders.
func TestBuildUnstakeWithValidatorInputs(t *testing.T) {
	seq := testutil.MockHTTPSequence(t,
		testutil.Response{Body: snapshotWithTxs(client.OperationStatusInitialized, "aa11")},
	)
	cli := newTestClient(t, seq.Server.URL)

	amounts := staking.NewValidatorUnstakeAmounts(cb.EthDecimals)
	require.NoError(t, amounts.Add("0xval1", mustHuman(t, "16")))
	amountsOpt, err := amounts.Option()
	require.NoError(t, err)

	pubKeys := staking.NewValidatorPubKeys()
	pubKeys.Add("0xval1", "0xval2")
	pubKeysOpt, err := pubKeys.Option()
	require.NoError(t, err)

	_, err = staking.BuildUnstakeOperation(context.Background(), cli, cb.AmountHumanReadable{}, cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeNative,
		staking.WithUnstakeType(staking.UnstakeTypeExecution), amountsOpt, pubKeysOpt)
	require.NoError(t, err)

	body := buildRequestBody(t, seq.Requests()[0])
	require.Equal(t, "0xval1,0xval2", body.Options[staking.KeyValidatorPubKeys])
	var unstakeAmounts map[string]string
	require.NoError(t, json.Unmarshal([]byte(body.Options[staking.KeyValidatorUnstakeAmounts]), &unstakeAmounts))
	require.Equal(t, map[string]string{"0xval1": "16000000000000000000"}, unstakeAmounts)
}

func TestBuildClaimStakeOperation(t *testing.T) {
	seq := testutil.MockHTTPSequence(t,
		testutil.Response{Body: assetResponse},
		testutil.Response{Body: snapshotWithTxs(client.OperationStatusInitialized, "aa11")},
	)
	cli := newTestClient(t, seq.Server.URL)

	_, err := staking.BuildClaimStakeOperation(context.Background(), cli, mustHuman(t, "1"), cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModePartial)
	require.NoError(t, err)

	body := buildRequestBody(t, seq.Requests()[1])
	require.Equal(t, "claim_stake", body.Action)
	require.Equal(t, "1000000000000000000", body.Options[staking.KeyAmount])
}

func TestBuildPropagatesRemoteError(t *testing.T) {
	seq := testutil.MockHTTPSequence(t,
		testutil.Response{Body: assetResponse},
		testutil.Response{Status: 400, Body: `{"code": "invalid_request", "message": "address not found"}`},
	)
	cli := newTestClient(t, seq.Server.URL)

	_, err := staking.BuildStakeOperation(context.Background(), cli, mustHuman(t, "1"), cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeDefault)
	require.Error(t, err)
	require.Contains(t, err.Error(), "address not found")
}

func TestBuildClaimStakeRejectsNativeEth(t *testing.T) {
	// rejected before any request is issued
	cli := newTestClient(t, "http://localhost:0")

	_, err := staking.BuildClaimStakeOperation(context.Background(), cli, mustHuman(t, "1"), cb.Eth, cb.EthereumHolesky, "0xabc", staking.ModeNative)
	require.ErrorIs(t, err, staking.ErrNativeEthClaimStake)

	_, err = staking.BuildClaimStakeOperation(context.Background(), cli, mustHuman(t, "1"), cb.Wei, cb.EthereumHolesky, "0xabc", staking.ModeNative)
	require.ErrorIs(t, err, staking.ErrNativeEthClaimStake)
}
