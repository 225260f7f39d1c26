package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sdkerrors "cosmossdk.io/errors"

	"github.com/fundlabs/shareclass/types"
)

// GetShareClass returns the share class, failing with ShareClassNotFound if
// it does not exist or belongs to a different pool.
func (k *Keeper) GetShareClass(ctx context.Context, poolId types.PoolId, scId types.ShareClassId) (types.ShareClass, error) {
	sc, err := k.ShareClasses.Get(ctx, scId.Bytes())
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.ShareClass{}, sdkerrors.Wrapf(types.ErrShareClassNotFound, "%s", scId)
		}
		return types.ShareClass{}, err
	}
	if sc.PoolId != poolId {
		return types.ShareClass{}, sdkerrors.Wrapf(types.ErrShareClassNotFound, "%s does not belong to pool %d", scId, poolId)
	}
	return sc, nil
}

// ShareClassExists reports whether the share class exists within the pool.
func (k *Keeper) ShareClassExists(ctx context.Context, poolId types.PoolId, scId types.ShareClassId) (bool, error) {
	_, err := k.GetShareClass(ctx, poolId, scId)
	if err != nil {
		if errors.Is(err, types.ErrShareClassNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetShareClassCount returns the number of share classes created for a pool.
func (k *Keeper) GetShareClassCount(ctx context.Context, poolId types.PoolId) (uint32, error) {
	count, err := k.ShareClassCount.Get(ctx, uint64(poolId))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// PreviewNextShareClassId returns the id the next share class added to the
// pool will receive.
func (k *Keeper) PreviewNextShareClassId(ctx context.Context, poolId types.PoolId) (types.ShareClassId, error) {
	count, err := k.GetShareClassCount(ctx, poolId)
	if err != nil {
		return types.ShareClassId{}, err
	}
	return types.NewShareClassId(poolId, count+1), nil
}

// CurrentEpoch returns the pool's current epoch id. Epochs start at 1.
func (k *Keeper) CurrentEpoch(ctx context.Context, poolId types.PoolId) (uint64, error) {
	epochId, err := k.Epochs.Get(ctx, uint64(poolId))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 1, nil
		}
		return 0, err
	}
	return epochId, nil
}

// GetEpochPointers returns the settlement progress of a (share class, asset),
// zero-valued when nothing has been approved yet.
func (k *Keeper) GetEpochPointers(ctx context.Context, scId types.ShareClassId, asset string) (types.EpochPointers, error) {
	pointers, err := k.EpochPointers.Get(ctx, collections.Join(scId.Bytes(), asset))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.EpochPointers{}, nil
		}
		return types.EpochPointers{}, err
	}
	return pointers, nil
}

// GetEpochAmounts returns the settlement snapshot of one epoch, failing with
// EpochNotFound if no approval ever touched it.
func (k *Keeper) GetEpochAmounts(ctx context.Context, scId types.ShareClassId, asset string, epochId uint64) (types.EpochAmounts, error) {
	amounts, err := k.EpochAmounts.Get(ctx, collections.Join3(scId.Bytes(), asset, epochId))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.EpochAmounts{}, sdkerrors.Wrapf(types.ErrEpochNotFound, "%s/%s epoch %d", scId, asset, epochId)
		}
		return types.EpochAmounts{}, err
	}
	return amounts, nil
}

// PendingDeposit returns the aggregate not-yet-approved deposit total.
func (k *Keeper) PendingDeposit(ctx context.Context, scId types.ShareClassId, asset string) (sdkmath.Int, error) {
	return k.pendingAmount(ctx, k.PendingDeposits, scId, asset)
}

// PendingRedeem returns the aggregate not-yet-approved redeem total.
func (k *Keeper) PendingRedeem(ctx context.Context, scId types.ShareClassId, asset string) (sdkmath.Int, error) {
	return k.pendingAmount(ctx, k.PendingRedeems, scId, asset)
}

func (k *Keeper) pendingAmount(ctx context.Context, pendings collections.Map[collections.Pair[[]byte, string], sdkmath.Int], scId types.ShareClassId, asset string) (sdkmath.Int, error) {
	pending, err := pendings.Get(ctx, collections.Join(scId.Bytes(), asset))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return sdkmath.ZeroInt(), nil
		}
		return sdkmath.Int{}, err
	}
	return pending, nil
}

// GetDepositRequest returns an investor's deposit order, zero-valued and
// anchored at the current epoch when absent.
func (k *Keeper) GetDepositRequest(ctx context.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress) (types.UserOrder, error) {
	return k.getOrder(ctx, k.DepositRequests, poolId, scId, asset, investor)
}

// GetRedeemRequest returns an investor's redeem order, zero-valued and
// anchored at the current epoch when absent.
func (k *Keeper) GetRedeemRequest(ctx context.Context, poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress) (types.UserOrder, error) {
	return k.getOrder(ctx, k.RedeemRequests, poolId, scId, asset, investor)
}

func (k *Keeper) getOrder(ctx context.Context, requests collections.Map[collections.Triple[[]byte, string, sdk.AccAddress], types.UserOrder], poolId types.PoolId, scId types.ShareClassId, asset string, investor sdk.AccAddress) (types.UserOrder, error) {
	order, err := requests.Get(ctx, collections.Join3(scId.Bytes(), asset, investor))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			epochId, err := k.CurrentEpoch(ctx, poolId)
			if err != nil {
				return types.UserOrder{}, err
			}
			return types.NewUserOrder(epochId), nil
		}
		return types.UserOrder{}, err
	}
	return order, nil
}

// SumDepositRequests adds up all investor pending deposit amounts for a
// (share class, asset). Used by conservation checks.
func (k *Keeper) SumDepositRequests(ctx context.Context, scId types.ShareClassId, asset string) (sdkmath.Int, error) {
	return k.sumOrders(ctx, k.DepositRequests, scId, asset)
}

// SumRedeemRequests adds up all investor pending redeem amounts for a
// (share class, asset).
func (k *Keeper) SumRedeemRequests(ctx context.Context, scId types.ShareClassId, asset string) (sdkmath.Int, error) {
	return k.sumOrders(ctx, k.RedeemRequests, scId, asset)
}

func (k *Keeper) sumOrders(ctx context.Context, requests collections.Map[collections.Triple[[]byte, string, sdk.AccAddress], types.UserOrder], scId types.ShareClassId, asset string) (sdkmath.Int, error) {
	total := sdkmath.ZeroInt()
	rng := collections.NewSuperPrefixedTripleRange[[]byte, string, sdk.AccAddress](scId.Bytes(), asset)
	err := requests.Walk(ctx, rng, func(_ collections.Triple[[]byte, string, sdk.AccAddress], order types.UserOrder) (bool, error) {
		total = total.Add(order.Pending)
		return false, nil
	})
	return total, err
}

// GetShareClasses is a helper for retrieving every share class from state.
func (k *Keeper) GetShareClasses(ctx context.Context) ([]types.ShareClass, error) {
	var classes []types.ShareClass
	err := k.ShareClasses.Walk(ctx, nil, func(_ []byte, sc types.ShareClass) (bool, error) {
		classes = append(classes, sc)
		return false, nil
	})
	return classes, err
}
