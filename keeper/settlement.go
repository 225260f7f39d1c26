package keeper

import (
	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sdkerrors "cosmossdk.io/errors"

	"github.com/fundlabs/shareclass/types"
	"github.com/fundlabs/shareclass/utils"
)

// The settlement engine.
//
// Per (share class, asset) the machine is the pointer pair
// (latestApproval, latestIssuance): approvals close epochs one at a time,
// while issuance/revocation are catch-up operations that may settle many
// epochs in one call. Claims then walk an investor's order forward through
// the settled epochs.

// latchEpoch returns the approval epoch for the pool within the current
// top-level call. The first approval of a call closes the pool's current
// epoch and opens the next one; further approvals in the same call reuse the
// closed epoch. A context must not be reused after a failed approval.
func (k *Keeper) latchEpoch(ctx sdk.Context, ectx *types.EpochContext, poolId types.PoolId) (uint64, error) {
	if epochId, ok := ectx.ApprovalEpoch(poolId); ok {
		return epochId, nil
	}
	epochId, err := k.CurrentEpoch(ctx, poolId)
	if err != nil {
		return 0, err
	}
	if err := k.Epochs.Set(ctx, uint64(poolId), epochId+1); err != nil {
		return 0, err
	}
	ectx.Latch(poolId, epochId)
	k.emitEvent(ctx, types.NewEventNewEpoch(poolId, epochId+1))
	return epochId, nil
}

// ApproveDeposits accepts a fraction of the pending deposit total for
// settlement in the pool's current epoch. The approved asset amount is
// converted into the pool denomination through the price source. Returns the
// approved asset amount, the approved pool amount, and the pending total
// remaining after approval.
func (k *Keeper) ApproveDeposits(ctx sdk.Context, ectx *types.EpochContext, poolId types.PoolId, scId types.ShareClassId, asset string, approvalRatio sdkmath.LegacyDec) (approvedAsset, approvedPool, pendingAfter sdkmath.Int, err error) {
	if err := validateApprovalRatio(approvalRatio); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}
	err = k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		pointers, err := k.GetEpochPointers(ctx, scId, asset)
		if err != nil {
			return err
		}
		epochId, err := k.latchEpoch(ctx, ectx, poolId)
		if err != nil {
			return err
		}
		if pointers.LatestDepositApproval >= epochId {
			return sdkerrors.Wrapf(types.ErrAlreadyApproved, "%s/%s deposits at epoch %d", scId, asset, epochId)
		}

		pending, err := k.PendingDeposit(ctx, scId, asset)
		if err != nil {
			return err
		}
		approvedAsset, err = utils.ApplyRatio(pending, approvalRatio)
		if err != nil {
			return err
		}
		approvedPool, err = k.priceSource.AssetToPool(ctx, poolId, asset, approvedAsset)
		if err != nil {
			return err
		}

		if err := k.recordDepositApproval(ctx, scId, asset, epochId, types.EpochDeposits{
			ApprovalRate:  approvalRatio,
			ApprovedAsset: approvedAsset,
			ApprovedPool:  approvedPool,
			IssuedShares:  sdkmath.ZeroInt(),
		}); err != nil {
			return err
		}
		if err := k.addPending(ctx, k.PendingDeposits, scId, asset, approvedAsset.Neg()); err != nil {
			return err
		}
		pendingAfter = pending.Sub(approvedAsset)

		pointers.LatestDepositApproval = epochId
		if err := k.EpochPointers.Set(ctx, collections.Join(scId.Bytes(), asset), pointers); err != nil {
			return err
		}

		k.emitEvent(ctx, types.NewEventApprovedDeposits(poolId, scId, epochId, asset, approvedAsset, approvedPool, pendingAfter))
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, sdkmath.Int{}, err
	}
	return approvedAsset, approvedPool, pendingAfter, nil
}

// ApproveRedeems accepts a fraction of the pending redeem total (in shares)
// for settlement in the pool's current epoch. No price conversion happens at
// approval time; assets are priced at revocation. Returns the approved share
// amount and the pending total remaining after approval.
func (k *Keeper) ApproveRedeems(ctx sdk.Context, ectx *types.EpochContext, poolId types.PoolId, scId types.ShareClassId, asset string, approvalRatio sdkmath.LegacyDec) (approvedShares, pendingAfter sdkmath.Int, err error) {
	if err := validateApprovalRatio(approvalRatio); err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	err = k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		pointers, err := k.GetEpochPointers(ctx, scId, asset)
		if err != nil {
			return err
		}
		epochId, err := k.latchEpoch(ctx, ectx, poolId)
		if err != nil {
			return err
		}
		if pointers.LatestRedeemApproval >= epochId {
			return sdkerrors.Wrapf(types.ErrAlreadyApproved, "%s/%s redeems at epoch %d", scId, asset, epochId)
		}

		pending, err := k.PendingRedeem(ctx, scId, asset)
		if err != nil {
			return err
		}
		approvedShares, err = utils.ApplyRatio(pending, approvalRatio)
		if err != nil {
			return err
		}

		if err := k.recordRedeemApproval(ctx, scId, asset, epochId, types.EpochRedeems{
			ApprovalRate:   approvalRatio,
			ApprovedShares: approvedShares,
			PayoutAsset:    sdkmath.ZeroInt(),
			PayoutPool:     sdkmath.ZeroInt(),
		}); err != nil {
			return err
		}
		if err := k.addPending(ctx, k.PendingRedeems, scId, asset, approvedShares.Neg()); err != nil {
			return err
		}
		pendingAfter = pending.Sub(approvedShares)

		pointers.LatestRedeemApproval = epochId
		if err := k.EpochPointers.Set(ctx, collections.Join(scId.Bytes(), asset), pointers); err != nil {
			return err
		}

		k.emitEvent(ctx, types.NewEventApprovedRedeems(poolId, scId, epochId, asset, approvedShares, pendingAfter))
		return nil
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return approvedShares, pendingAfter, nil
}

// ApproveDepositsAndRedeems approves both directions of one (share class,
// asset) within a single call context, closing exactly one epoch.
func (k *Keeper) ApproveDepositsAndRedeems(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, depositRatio, redeemRatio sdkmath.LegacyDec) error {
	return k.branch(ctx, func(ctx sdk.Context) error {
		ectx := types.NewEpochContext()
		if _, _, _, err := k.ApproveDeposits(ctx, ectx, poolId, scId, asset, depositRatio); err != nil {
			return err
		}
		_, _, err := k.ApproveRedeems(ctx, ectx, poolId, scId, asset, redeemRatio)
		return err
	})
}

// IssueShares catches issuance up to the latest deposit approval, minting
// the share delta of every approved epoch since the last issuance at the
// given price. Fails with ApprovalRequired when there is nothing to issue.
func (k *Keeper) IssueShares(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, navPerShare sdkmath.LegacyDec) error {
	pointers, err := k.GetEpochPointers(ctx, scId, asset)
	if err != nil {
		return err
	}
	return k.IssueSharesUntilEpoch(ctx, poolId, scId, asset, navPerShare, pointers.LatestDepositApproval)
}

// IssueSharesUntilEpoch is the bounded issuance variant for partial
// catch-up. Fails with EpochNotFound when endEpochId has not closed yet and
// with ApprovalRequired when endEpochId holds no unissued approval.
func (k *Keeper) IssueSharesUntilEpoch(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, navPerShare sdkmath.LegacyDec, endEpochId uint64) error {
	return k.branch(ctx, func(ctx sdk.Context) error {
		sc, err := k.GetShareClass(ctx, poolId, scId)
		if err != nil {
			return err
		}
		if err := k.validateSettleBound(ctx, poolId, endEpochId); err != nil {
			return err
		}
		pointers, err := k.GetEpochPointers(ctx, scId, asset)
		if err != nil {
			return err
		}
		if endEpochId > pointers.LatestDepositApproval || endEpochId <= pointers.LatestIssuance {
			return sdkerrors.Wrapf(types.ErrApprovalRequired,
				"%s/%s issuance at epoch %d, approvals reach epoch %d and issuance reached epoch %d",
				scId, asset, endEpochId, pointers.LatestDepositApproval, pointers.LatestIssuance)
		}

		for epochId := pointers.LatestIssuance + 1; epochId <= endEpochId; epochId++ {
			amounts, err := k.epochAmountsOrZero(ctx, scId, asset, epochId)
			if err != nil {
				return err
			}
			// Epochs closed by approvals of other assets carry no deposit
			// snapshot for this asset.
			if !amounts.Deposits.ApprovalRate.IsPositive() || amounts.Deposits.Issued {
				continue
			}

			issuedShares, err := utils.SharesForPoolAmount(amounts.Deposits.ApprovedPool, navPerShare)
			if err != nil {
				return err
			}
			amounts.Deposits.IssuedShares = issuedShares
			amounts.Deposits.Issued = true
			if err := k.EpochAmounts.Set(ctx, collections.Join3(scId.Bytes(), asset, epochId), amounts); err != nil {
				return err
			}

			sc.TotalIssuance = sc.TotalIssuance.Add(issuedShares)
			k.emitEvent(ctx, types.NewEventIssuedShares(poolId, scId, epochId, asset, navPerShare, issuedShares))
		}

		if err := k.ShareClasses.Set(ctx, scId.Bytes(), sc); err != nil {
			return err
		}
		pointers.LatestIssuance = endEpochId
		return k.EpochPointers.Set(ctx, collections.Join(scId.Bytes(), asset), pointers)
	})
}

// RevokeShares catches revocation up to the latest redeem approval, burning
// the approved shares of every epoch since the last revocation. The share
// value is priced into the pool denomination at navPerShare and then into
// the payout asset through the price source. Returns the total payout asset
// and pool amounts.
func (k *Keeper) RevokeShares(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, navPerShare sdkmath.LegacyDec) (payoutAsset, payoutPool sdkmath.Int, err error) {
	pointers, err := k.GetEpochPointers(ctx, scId, asset)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return k.RevokeSharesUntilEpoch(ctx, poolId, scId, asset, navPerShare, pointers.LatestRedeemApproval)
}

// RevokeSharesUntilEpoch is the bounded revocation variant for partial
// catch-up. Fails with EpochNotFound when endEpochId has not closed yet and
// with ApprovalRequired when endEpochId holds no unrevoked approval.
func (k *Keeper) RevokeSharesUntilEpoch(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, navPerShare sdkmath.LegacyDec, endEpochId uint64) (totalPayoutAsset, totalPayoutPool sdkmath.Int, err error) {
	totalPayoutAsset, totalPayoutPool = sdkmath.ZeroInt(), sdkmath.ZeroInt()
	err = k.branch(ctx, func(ctx sdk.Context) error {
		sc, err := k.GetShareClass(ctx, poolId, scId)
		if err != nil {
			return err
		}
		if err := k.validateSettleBound(ctx, poolId, endEpochId); err != nil {
			return err
		}
		pointers, err := k.GetEpochPointers(ctx, scId, asset)
		if err != nil {
			return err
		}
		if endEpochId > pointers.LatestRedeemApproval || endEpochId <= pointers.LatestRevocation {
			return sdkerrors.Wrapf(types.ErrApprovalRequired,
				"%s/%s revocation at epoch %d, approvals reach epoch %d and revocation reached epoch %d",
				scId, asset, endEpochId, pointers.LatestRedeemApproval, pointers.LatestRevocation)
		}

		for epochId := pointers.LatestRevocation + 1; epochId <= endEpochId; epochId++ {
			amounts, err := k.epochAmountsOrZero(ctx, scId, asset, epochId)
			if err != nil {
				return err
			}
			if !amounts.Redeems.ApprovalRate.IsPositive() || amounts.Redeems.Revoked {
				continue
			}

			payoutPool, err := utils.PoolAmountForShares(amounts.Redeems.ApprovedShares, navPerShare)
			if err != nil {
				return err
			}
			payoutAsset, err := k.priceSource.PoolToAsset(ctx, poolId, asset, payoutPool)
			if err != nil {
				return err
			}
			amounts.Redeems.PayoutAsset = payoutAsset
			amounts.Redeems.PayoutPool = payoutPool
			amounts.Redeems.Revoked = true
			if err := k.EpochAmounts.Set(ctx, collections.Join3(scId.Bytes(), asset, epochId), amounts); err != nil {
				return err
			}

			sc.TotalIssuance = sc.TotalIssuance.Sub(amounts.Redeems.ApprovedShares)
			totalPayoutAsset = totalPayoutAsset.Add(payoutAsset)
			totalPayoutPool = totalPayoutPool.Add(payoutPool)
			k.emitEvent(ctx, types.NewEventRevokedShares(poolId, scId, epochId, asset, navPerShare, amounts.Redeems.ApprovedShares, payoutAsset, payoutPool))
		}

		if err := k.ShareClasses.Set(ctx, scId.Bytes(), sc); err != nil {
			return err
		}
		pointers.LatestRevocation = endEpochId
		return k.EpochPointers.Set(ctx, collections.Join(scId.Bytes(), asset), pointers)
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return totalPayoutAsset, totalPayoutPool, nil
}

// ClaimDeposit settles every issued epoch of the investor's deposit order,
// paying out shares pro rata and consuming the approved part of the pending
// amount. Re-claiming with no intervening settlement yields (0,0).
func (k *Keeper) ClaimDeposit(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress) (payoutShares, paymentAsset sdkmath.Int, err error) {
	pointers, err := k.GetEpochPointers(ctx, scId, asset)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return k.claimDepositUntil(ctx, poolId, scId, asset, investor, pointers.LatestIssuance)
}

// ClaimDepositUntilEpoch is the bounded claim variant for partial catch-up.
// Fails with EpochNotFound when endEpochId exceeds the issuance pointer.
func (k *Keeper) ClaimDepositUntilEpoch(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, endEpochId uint64) (payoutShares, paymentAsset sdkmath.Int, err error) {
	pointers, err := k.GetEpochPointers(ctx, scId, asset)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if endEpochId > pointers.LatestIssuance {
		return sdkmath.Int{}, sdkmath.Int{}, sdkerrors.Wrapf(types.ErrEpochNotFound,
			"%s/%s claim until epoch %d, issuance reached epoch %d", scId, asset, endEpochId, pointers.LatestIssuance)
	}
	return k.claimDepositUntil(ctx, poolId, scId, asset, investor, endEpochId)
}

func (k *Keeper) claimDepositUntil(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, endEpochId uint64) (payoutShares, paymentAsset sdkmath.Int, err error) {
	payoutShares, paymentAsset = sdkmath.ZeroInt(), sdkmath.ZeroInt()
	err = k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		order, err := k.getOrder(ctx, k.DepositRequests, poolId, scId, asset, investor)
		if err != nil {
			return err
		}
		if order.LastUpdate > endEpochId {
			return nil
		}

		for epochId := order.LastUpdate; epochId <= endEpochId; epochId++ {
			amounts, err := k.epochAmountsOrZero(ctx, scId, asset, epochId)
			if err != nil {
				return err
			}
			if !amounts.Deposits.ApprovalRate.IsPositive() {
				continue
			}

			payment, err := utils.ApplyRatio(order.Pending, amounts.Deposits.ApprovalRate)
			if err != nil {
				return err
			}
			shares := utils.ProRata(payment, amounts.Deposits.IssuedShares, amounts.Deposits.ApprovedAsset)

			order.Pending = order.Pending.Sub(payment)
			paymentAsset = paymentAsset.Add(payment)
			payoutShares = payoutShares.Add(shares)
		}

		order.LastUpdate = endEpochId + 1
		if err := k.DepositRequests.Set(ctx, collections.Join3(scId.Bytes(), asset, investor), order); err != nil {
			return err
		}

		investorStr, err := k.addressCodec.BytesToString(investor)
		if err != nil {
			return err
		}
		k.emitEvent(ctx, types.NewEventClaimedDeposit(poolId, scId, asset, investorStr, paymentAsset, payoutShares, order.LastUpdate))
		return k.emitUpdatedDepositRequest(ctx, poolId, scId, asset, investor, order)
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return payoutShares, paymentAsset, nil
}

// ClaimRedeem settles every revoked epoch of the investor's redeem order,
// paying out assets pro rata and consuming the approved part of the pending
// share amount. Re-claiming with no intervening settlement yields (0,0).
func (k *Keeper) ClaimRedeem(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress) (payoutAsset, paymentShares sdkmath.Int, err error) {
	pointers, err := k.GetEpochPointers(ctx, scId, asset)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return k.claimRedeemUntil(ctx, poolId, scId, asset, investor, pointers.LatestRevocation)
}

// ClaimRedeemUntilEpoch is the bounded claim variant for partial catch-up.
// Fails with EpochNotFound when endEpochId exceeds the revocation pointer.
func (k *Keeper) ClaimRedeemUntilEpoch(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, endEpochId uint64) (payoutAsset, paymentShares sdkmath.Int, err error) {
	pointers, err := k.GetEpochPointers(ctx, scId, asset)
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	if endEpochId > pointers.LatestRevocation {
		return sdkmath.Int{}, sdkmath.Int{}, sdkerrors.Wrapf(types.ErrEpochNotFound,
			"%s/%s claim until epoch %d, revocation reached epoch %d", scId, asset, endEpochId, pointers.LatestRevocation)
	}
	return k.claimRedeemUntil(ctx, poolId, scId, asset, investor, endEpochId)
}

func (k *Keeper) claimRedeemUntil(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress, endEpochId uint64) (payoutAsset, paymentShares sdkmath.Int, err error) {
	payoutAsset, paymentShares = sdkmath.ZeroInt(), sdkmath.ZeroInt()
	err = k.branch(ctx, func(ctx sdk.Context) error {
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		order, err := k.getOrder(ctx, k.RedeemRequests, poolId, scId, asset, investor)
		if err != nil {
			return err
		}
		if order.LastUpdate > endEpochId {
			return nil
		}

		for epochId := order.LastUpdate; epochId <= endEpochId; epochId++ {
			amounts, err := k.epochAmountsOrZero(ctx, scId, asset, epochId)
			if err != nil {
				return err
			}
			if !amounts.Redeems.ApprovalRate.IsPositive() {
				continue
			}

			payment, err := utils.ApplyRatio(order.Pending, amounts.Redeems.ApprovalRate)
			if err != nil {
				return err
			}
			assets := utils.ProRata(payment, amounts.Redeems.PayoutAsset, amounts.Redeems.ApprovedShares)

			order.Pending = order.Pending.Sub(payment)
			paymentShares = paymentShares.Add(payment)
			payoutAsset = payoutAsset.Add(assets)
		}

		order.LastUpdate = endEpochId + 1
		if err := k.RedeemRequests.Set(ctx, collections.Join3(scId.Bytes(), asset, investor), order); err != nil {
			return err
		}

		investorStr, err := k.addressCodec.BytesToString(investor)
		if err != nil {
			return err
		}
		k.emitEvent(ctx, types.NewEventClaimedRedeem(poolId, scId, asset, investorStr, paymentShares, payoutAsset, order.LastUpdate))
		return k.emitUpdatedRedeemRequest(ctx, poolId, scId, asset, investor, order)
	})
	if err != nil {
		return sdkmath.Int{}, sdkmath.Int{}, err
	}
	return payoutAsset, paymentShares, nil
}

// validateSettleBound rejects settlement targets beyond the pool's current
// epoch. The current epoch is still open and cannot be settled.
func (k *Keeper) validateSettleBound(ctx sdk.Context, poolId types.PoolId, endEpochId uint64) error {
	currentEpoch, err := k.CurrentEpoch(ctx, poolId)
	if err != nil {
		return err
	}
	if endEpochId >= currentEpoch {
		return sdkerrors.Wrapf(types.ErrEpochNotFound, "epoch %d has not closed, pool %d is at epoch %d", endEpochId, poolId, currentEpoch)
	}
	return nil
}

func validateApprovalRatio(ratio sdkmath.LegacyDec) error {
	if ratio.IsNil() || !ratio.IsPositive() || ratio.GT(sdkmath.LegacyOneDec()) {
		return sdkerrors.Wrapf(types.ErrApprovalRatioOutOfBounds, "got %v", ratio)
	}
	return nil
}
