package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/types"
)

func TestRequestDeposit(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	investor := testInvestor()

	err := k.RequestDeposit(ctx, testPool, scId, usdc, investor, sdkmath.NewInt(1_000_000))
	require.NoError(t, err, "first deposit request should succeed")

	order, err := k.GetDepositRequest(ctx, testPool, scId, usdc, investor)
	require.NoError(t, err, "should read the deposit order back")
	require.Equal(t, sdkmath.NewInt(1_000_000).String(), order.Pending.String(), "order pending should match the request")
	require.Equal(t, uint64(1), order.LastUpdate, "order should be anchored at the opening epoch")

	// A second request before any approval tops up the same order.
	err = k.RequestDeposit(ctx, testPool, scId, usdc, investor, sdkmath.NewInt(500_000))
	require.NoError(t, err, "topping up an unapproved order should succeed")

	order, err = k.GetDepositRequest(ctx, testPool, scId, usdc, investor)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(1_500_000).String(), order.Pending.String(), "top-up should accumulate")

	pending, err := k.PendingDeposit(ctx, scId, usdc)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(1_500_000).String(), pending.String(), "aggregate pending should track the order")
}

func TestRequestDepositValidation(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	investor := testInvestor()

	err := k.RequestDeposit(ctx, testPool, scId, usdc, investor, sdkmath.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidRequest, "zero amount should be rejected")

	err = k.RequestDeposit(ctx, testPool, scId, usdc, investor, sdkmath.NewInt(-5))
	require.ErrorIs(t, err, types.ErrInvalidRequest, "negative amount should be rejected")

	unknown := types.NewShareClassId(testPool, 99)
	err = k.RequestDeposit(ctx, testPool, unknown, usdc, investor, sdkmath.NewInt(100))
	require.ErrorIs(t, err, types.ErrShareClassNotFound, "unknown share class should be rejected")

	err = k.RequestDeposit(ctx, types.PoolId(42), scId, usdc, investor, sdkmath.NewInt(100))
	require.ErrorIs(t, err, types.ErrShareClassNotFound, "share class of another pool should be rejected")
}

func TestCancelDepositRequest(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	investor := testInvestor()

	require.NoError(t, k.RequestDeposit(ctx, testPool, scId, usdc, investor, sdkmath.NewInt(750)))

	cancelled, err := k.CancelDepositRequest(ctx, testPool, scId, usdc, investor)
	require.NoError(t, err, "cancel should succeed before approval")
	require.Equal(t, sdkmath.NewInt(750).String(), cancelled.String(), "cancel should return the full pending amount")

	pending, err := k.PendingDeposit(ctx, scId, usdc)
	require.NoError(t, err)
	require.True(t, pending.IsZero(), "aggregate pending should drop to zero after cancel")

	// Cancelling an empty order is a no-op.
	cancelled, err = k.CancelDepositRequest(ctx, testPool, scId, usdc, investor)
	require.NoError(t, err, "cancelling an empty order should succeed")
	require.True(t, cancelled.IsZero(), "nothing should be returned")
}

func TestRequestDepositClaimRequired(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	investor := testInvestor()

	require.NoError(t, k.RequestDeposit(ctx, testPool, scId, dai, investor, sdkmath.NewInt(1000)))
	approveDeposits(t, ctx, k, scId, dai, "0.5")

	// The order is now covered by an approval: both mutate paths freeze.
	err := k.RequestDeposit(ctx, testPool, scId, dai, investor, sdkmath.NewInt(1))
	require.ErrorIs(t, err, types.ErrClaimRequired, "request on a frozen order should fail")
	_, err = k.CancelDepositRequest(ctx, testPool, scId, dai, investor)
	require.ErrorIs(t, err, types.ErrClaimRequired, "cancel on a frozen order should fail")

	require.NoError(t, k.IssueShares(ctx, testPool, scId, dai, dec(t, "1")), "issuance should unlock claiming")
	_, _, err = k.ClaimDeposit(ctx, testPool, scId, dai, investor)
	require.NoError(t, err, "claim should succeed after issuance")

	// Claimed through the approval, the order is mutable again.
	err = k.RequestDeposit(ctx, testPool, scId, dai, investor, sdkmath.NewInt(1))
	require.NoError(t, err, "request should succeed once claimed")
}

func TestRequestRedeemAndCancel(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	investor := testInvestor()

	shares := sdkmath.NewInt(100).Mul(sdkmath.NewIntWithDecimal(1, 18))
	require.NoError(t, k.RequestRedeem(ctx, testPool, scId, usdc, investor, shares))

	pending, err := k.PendingRedeem(ctx, scId, usdc)
	require.NoError(t, err)
	require.Equal(t, shares.String(), pending.String(), "aggregate pending redeem should track the order")

	err = k.RequestRedeem(ctx, testPool, scId, usdc, investor, sdkmath.ZeroInt())
	require.ErrorIs(t, err, types.ErrInvalidRequest, "zero share amount should be rejected")

	cancelled, err := k.CancelRedeemRequest(ctx, testPool, scId, usdc, investor)
	require.NoError(t, err)
	require.Equal(t, shares.String(), cancelled.String(), "cancel should return the full share amount")
}

func TestRequestRedeemClaimRequired(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	investor := testInvestor()

	require.NoError(t, k.RequestRedeem(ctx, testPool, scId, dai, investor, sdkmath.NewInt(1000)))
	approveRedeems(t, ctx, k, scId, dai, "1")

	err := k.RequestRedeem(ctx, testPool, scId, dai, investor, sdkmath.NewInt(1))
	require.ErrorIs(t, err, types.ErrClaimRequired, "request on a frozen redeem order should fail")

	_, _, err = k.RevokeShares(ctx, testPool, scId, dai, dec(t, "1"))
	require.NoError(t, err, "revocation should succeed")
	_, _, err = k.ClaimRedeem(ctx, testPool, scId, dai, investor)
	require.NoError(t, err, "claim should succeed after revocation")

	err = k.RequestRedeem(ctx, testPool, scId, dai, investor, sdkmath.NewInt(1))
	require.NoError(t, err, "request should succeed once claimed")
}

// Deposits and redeems of the same (share class, asset) are independent
// books: an approval on one side never freezes the other.
func TestDepositAndRedeemBooksAreIndependent(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	investor := testInvestor()

	require.NoError(t, k.RequestDeposit(ctx, testPool, scId, dai, investor, sdkmath.NewInt(500)))
	require.NoError(t, k.RequestRedeem(ctx, testPool, scId, dai, investor, sdkmath.NewInt(300)))

	approveDeposits(t, ctx, k, scId, dai, "1")

	err := k.RequestRedeem(ctx, testPool, scId, dai, investor, sdkmath.NewInt(200))
	require.NoError(t, err, "redeem order should stay mutable after a deposit approval")

	pendingRedeem, err := k.PendingRedeem(ctx, scId, dai)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(500).String(), pendingRedeem.String(), "redeem book should be untouched by the deposit approval")
}
