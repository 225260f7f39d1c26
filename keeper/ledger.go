package keeper

import (
	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sdkerrors "cosmossdk.io/errors"

	"github.com/fundlabs/shareclass/types"
)

// The epoch ledger: investor order state and aggregate pending totals.
//
// An investor may only have one outstanding order per
// (share class, asset, direction). Once an approval covers the order, the
// order is frozen until the investor claims; mutating a frozen order would
// lose the pro-rata entitlement of the approved epochs.

// RequestDeposit adds amount to the investor's pending deposit order and to
// the aggregate pending deposit total. Fails with ClaimRequired while the
// investor holds approved-but-unclaimed epochs.
func (k *Keeper) RequestDeposit(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkerrors.Wrapf(types.ErrInvalidRequest, "deposit amount must be positive, got %s", amount)
	}
	return k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		order, err := k.mutableOrder(ctx, k.DepositRequests, poolId, scId, asset, investor, depositApprovalPointer)
		if err != nil {
			return err
		}

		epochId, err := k.CurrentEpoch(ctx, poolId)
		if err != nil {
			return err
		}
		order.Pending = order.Pending.Add(amount)
		order.LastUpdate = epochId
		if err := k.DepositRequests.Set(ctx, collections.Join3(scId.Bytes(), asset, investor), order); err != nil {
			return err
		}
		if err := k.addPending(ctx, k.PendingDeposits, scId, asset, amount); err != nil {
			return err
		}

		return k.emitUpdatedDepositRequest(ctx, poolId, scId, asset, investor, order)
	})
}

// CancelDepositRequest zeroes the investor's pending deposit order and
// returns the cancelled amount. Fails with ClaimRequired under the same
// condition as RequestDeposit.
func (k *Keeper) CancelDepositRequest(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress) (sdkmath.Int, error) {
	cancelled := sdkmath.ZeroInt()
	err := k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		order, err := k.mutableOrder(ctx, k.DepositRequests, poolId, scId, asset, investor, depositApprovalPointer)
		if err != nil {
			return err
		}

		epochId, err := k.CurrentEpoch(ctx, poolId)
		if err != nil {
			return err
		}
		cancelled = order.Pending
		order.Pending = sdkmath.ZeroInt()
		order.LastUpdate = epochId
		if err := k.DepositRequests.Set(ctx, collections.Join3(scId.Bytes(), asset, investor), order); err != nil {
			return err
		}
		if err := k.addPending(ctx, k.PendingDeposits, scId, asset, cancelled.Neg()); err != nil {
			return err
		}

		return k.emitUpdatedDepositRequest(ctx, poolId, scId, asset, investor, order)
	})
	if err != nil {
		return sdkmath.Int{}, err
	}
	return cancelled, nil
}

// RequestRedeem adds amount (share-denominated) to the investor's pending
// redeem order and to the aggregate pending redeem total. Fails with
// ClaimRequired while the investor holds approved-but-unclaimed epochs.
func (k *Keeper) RequestRedeem(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkerrors.Wrapf(types.ErrInvalidRequest, "redeem amount must be positive, got %s", amount)
	}
	return k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		order, err := k.mutableOrder(ctx, k.RedeemRequests, poolId, scId, asset, investor, redeemApprovalPointer)
		if err != nil {
			return err
		}

		epochId, err := k.CurrentEpoch(ctx, poolId)
		if err != nil {
			return err
		}
		order.Pending = order.Pending.Add(amount)
		order.LastUpdate = epochId
		if err := k.RedeemRequests.Set(ctx, collections.Join3(scId.Bytes(), asset, investor), order); err != nil {
			return err
		}
		if err := k.addPending(ctx, k.PendingRedeems, scId, asset, amount); err != nil {
			return err
		}

		return k.emitUpdatedRedeemRequest(ctx, poolId, scId, asset, investor, order)
	})
}

// CancelRedeemRequest zeroes the investor's pending redeem order and returns
// the cancelled share amount.
func (k *Keeper) CancelRedeemRequest(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress) (sdkmath.Int, error) {
	cancelled := sdkmath.ZeroInt()
	err := k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		order, err := k.mutableOrder(ctx, k.RedeemRequests, poolId, scId, asset, investor, redeemApprovalPointer)
		if err != nil {
			return err
		}

		epochId, err := k.CurrentEpoch(ctx, poolId)
		if err != nil {
			return err
		}
		cancelled = order.Pending
		order.Pending = sdkmath.ZeroInt()
		order.LastUpdate = epochId
		if err := k.RedeemRequests.Set(ctx, collections.Join3(scId.Bytes(), asset, investor), order); err != nil {
			return err
		}
		if err := k.addPending(ctx, k.PendingRedeems, scId, asset, cancelled.Neg()); err != nil {
			return err
		}

		return k.emitUpdatedRedeemRequest(ctx, poolId, scId, asset, investor, order)
	})
	if err != nil {
		return sdkmath.Int{}, err
	}
	return cancelled, nil
}

type approvalPointer func(types.EpochPointers) uint64

func depositApprovalPointer(p types.EpochPointers) uint64 { return p.LatestDepositApproval }
func redeemApprovalPointer(p types.EpochPointers) uint64  { return p.LatestRedeemApproval }

// mutableOrder loads the investor's order and enforces the claim-first rule:
// an order with pending volume whose LastUpdate does not trail the latest
// approval is frozen until claimed.
func (k *Keeper) mutableOrder(ctx sdk.Context, requests collections.Map[collections.Triple[[]byte, string, sdk.AccAddress], types.UserOrder], poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, pointer approvalPointer) (types.UserOrder, error) {
	order, err := k.getOrder(ctx, requests, poolId, scId, asset, investor)
	if err != nil {
		return types.UserOrder{}, err
	}
	pointers, err := k.GetEpochPointers(ctx, scId, asset)
	if err != nil {
		return types.UserOrder{}, err
	}
	if order.Pending.IsPositive() && order.LastUpdate <= pointer(pointers) {
		return types.UserOrder{}, sdkerrors.Wrapf(types.ErrClaimRequired,
			"%s/%s order last updated at epoch %d is covered by approval at epoch %d", scId, asset, order.LastUpdate, pointer(pointers))
	}
	return order, nil
}

// addPending adjusts an aggregate pending total by delta, which may be
// negative on approvals and cancellations. The total can never go negative.
func (k *Keeper) addPending(ctx sdk.Context, pendings collections.Map[collections.Pair[[]byte, string], sdkmath.Int], scId types.ShareClassId, asset string, delta sdkmath.Int) error {
	pending, err := k.pendingAmount(ctx, pendings, scId, asset)
	if err != nil {
		return err
	}
	pending = pending.Add(delta)
	if pending.IsNegative() {
		return sdkerrors.Wrapf(types.ErrInvalidRequest, "pending total for %s/%s would become negative", scId, asset)
	}
	return pendings.Set(ctx, collections.Join(scId.Bytes(), asset), pending)
}

// recordDepositApproval writes the deposit side of an epoch snapshot.
// Single-assignment: a second write for the same epoch fails.
func (k *Keeper) recordDepositApproval(ctx sdk.Context, scId types.ShareClassId, asset string, epochId uint64, deposits types.EpochDeposits) error {
	amounts, err := k.epochAmountsOrZero(ctx, scId, asset, epochId)
	if err != nil {
		return err
	}
	if amounts.Deposits.ApprovalRate.IsPositive() {
		return sdkerrors.Wrapf(types.ErrAlreadyApproved, "%s/%s deposits at epoch %d", scId, asset, epochId)
	}
	amounts.Deposits = deposits
	return k.EpochAmounts.Set(ctx, collections.Join3(scId.Bytes(), asset, epochId), amounts)
}

// recordRedeemApproval writes the redeem side of an epoch snapshot.
// Single-assignment: a second write for the same epoch fails.
func (k *Keeper) recordRedeemApproval(ctx sdk.Context, scId types.ShareClassId, asset string, epochId uint64, redeems types.EpochRedeems) error {
	amounts, err := k.epochAmountsOrZero(ctx, scId, asset, epochId)
	if err != nil {
		return err
	}
	if amounts.Redeems.ApprovalRate.IsPositive() {
		return sdkerrors.Wrapf(types.ErrAlreadyApproved, "%s/%s redeems at epoch %d", scId, asset, epochId)
	}
	amounts.Redeems = redeems
	return k.EpochAmounts.Set(ctx, collections.Join3(scId.Bytes(), asset, epochId), amounts)
}

func (k *Keeper) epochAmountsOrZero(ctx sdk.Context, scId types.ShareClassId, asset string, epochId uint64) (types.EpochAmounts, error) {
	amounts, err := k.GetEpochAmounts(ctx, scId, asset, epochId)
	if err != nil {
		if sdkerrors.IsOf(err, types.ErrEpochNotFound) {
			return types.NewEpochAmounts(), nil
		}
		return types.EpochAmounts{}, err
	}
	return amounts, nil
}

func (k *Keeper) emitUpdatedDepositRequest(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, order types.UserOrder) error {
	investorStr, err := k.addressCodec.BytesToString(investor)
	if err != nil {
		return err
	}
	k.emitEvent(ctx, types.NewEventUpdatedDepositRequest(poolId, scId, asset, investorStr, order.Pending, order.LastUpdate))
	return nil
}

func (k *Keeper) emitUpdatedRedeemRequest(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, order types.UserOrder) error {
	investorStr, err := k.addressCodec.BytesToString(investor)
	if err != nil {
		return err
	}
	k.emitEvent(ctx, types.NewEventUpdatedRedeemRequest(poolId, scId, asset, investorStr, order.Pending, order.LastUpdate))
	return nil
}
