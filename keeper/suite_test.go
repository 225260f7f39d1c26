package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/keeper"
	"github.com/fundlabs/shareclass/types"
	"github.com/fundlabs/shareclass/utils"
	"github.com/fundlabs/shareclass/utils/mocks"
)

const (
	testPool = types.PoolId(7)

	// usdc carries 6 decimals; dai carries the pool's native 18 so tests
	// that care about exact small numbers can skip rescaling.
	usdc = "uusdc"
	dai  = "adai"
)

// setupKeeper returns a fresh keeper with 1:1 quotes for both test assets.
func setupKeeper(t testing.TB) (sdk.Context, *keeper.Keeper, *mocks.FixedPriceSource) {
	ctx, k, prices := mocks.NewShareClassKeeper(t)
	prices.SetQuote(usdc, 6, sdkmath.LegacyOneDec())
	prices.SetQuote(dai, 18, sdkmath.LegacyOneDec())
	return ctx, k, prices
}

func randomSalt(t testing.TB) types.Salt {
	t.Helper()
	var salt types.Salt
	copy(salt[:], utils.GenerateRandomBytes(len(salt)))
	require.False(t, salt.IsZero(), "random salt should not be zero")
	return salt
}

// addTestShareClass registers a share class under testPool.
func addTestShareClass(t testing.TB, ctx sdk.Context, k *keeper.Keeper) types.ShareClassId {
	t.Helper()
	scId, err := k.AddShareClass(ctx, testPool, "Senior Tranche", "SNR", randomSalt(t))
	require.NoError(t, err, "AddShareClass should succeed")
	return scId
}

func testInvestor() sdk.AccAddress {
	return sdk.AccAddress(utils.TestAddress().Bytes)
}

// dec parses a decimal literal, failing the test on bad input.
func dec(t testing.TB, s string) sdkmath.LegacyDec {
	t.Helper()
	d, err := sdkmath.LegacyNewDecFromStr(s)
	require.NoError(t, err, "LegacyNewDecFromStr(%q)", s)
	return d
}

// approveDeposits runs a single-call deposit approval with a fresh epoch
// context.
func approveDeposits(t testing.TB, ctx sdk.Context, k *keeper.Keeper, scId types.ShareClassId, asset, ratio string) (sdkmath.Int, sdkmath.Int, sdkmath.Int) {
	t.Helper()
	approvedAsset, approvedPool, pendingAfter, err := k.ApproveDeposits(ctx, types.NewEpochContext(), testPool, scId, asset, dec(t, ratio))
	require.NoError(t, err, "ApproveDeposits(%s) should succeed", ratio)
	return approvedAsset, approvedPool, pendingAfter
}

// approveRedeems runs a single-call redeem approval with a fresh epoch
// context.
func approveRedeems(t testing.TB, ctx sdk.Context, k *keeper.Keeper, scId types.ShareClassId, asset, ratio string) (sdkmath.Int, sdkmath.Int) {
	t.Helper()
	approvedShares, pendingAfter, err := k.ApproveRedeems(ctx, types.NewEpochContext(), testPool, scId, asset, dec(t, ratio))
	require.NoError(t, err, "ApproveRedeems(%s) should succeed", ratio)
	return approvedShares, pendingAfter
}
