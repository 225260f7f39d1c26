package keeper

import (
	"context"

	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sdkerrors "cosmossdk.io/errors"

	"github.com/fundlabs/shareclass/types"
)

// AddShareClass registers a new share class under the pool. The class id is
// derived deterministically from the pool id and the pool's class count, and
// the salt must be unique across all pools.
func (k *Keeper) AddShareClass(ctx sdk.Context, poolId types.PoolId, name, symbol string, salt types.Salt) (types.ShareClassId, error) {
	var scId types.ShareClassId
	err := k.branch(ctx, func(ctx sdk.Context) error {
		if err := types.ValidateMetadata(name, symbol); err != nil {
			return err
		}
		if salt.IsZero() {
			return sdkerrors.Wrap(types.ErrInvalidSalt, "salt must not be zero")
		}
		used, err := k.Salts.Has(ctx, salt.Bytes())
		if err != nil {
			return err
		}
		if used {
			return sdkerrors.Wrapf(types.ErrAlreadyUsedSalt, "%s", salt)
		}

		count, err := k.GetShareClassCount(ctx, poolId)
		if err != nil {
			return err
		}
		sc := types.NewShareClass(poolId, count+1, name, symbol, salt)
		scId = sc.Id

		if err := k.ShareClasses.Set(ctx, scId.Bytes(), sc); err != nil {
			return err
		}
		if err := k.ShareClassCount.Set(ctx, uint64(poolId), count+1); err != nil {
			return err
		}
		if err := k.Salts.Set(ctx, salt.Bytes()); err != nil {
			return err
		}

		k.emitEvent(ctx, types.NewEventAddShareClass(sc))
		return nil
	})
	if err != nil {
		return types.ShareClassId{}, err
	}
	return scId, nil
}

// UpdateMetadata replaces the name and symbol of an existing share class.
func (k *Keeper) UpdateMetadata(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, name, symbol string) error {
	return k.branch(ctx, func(ctx sdk.Context) error {
		if err := types.ValidateMetadata(name, symbol); err != nil {
			return err
		}
		sc, err := k.GetShareClass(ctx, poolId, scId)
		if err != nil {
			return err
		}
		sc.Name = name
		sc.Symbol = symbol
		if err := k.ShareClasses.Set(ctx, scId.Bytes(), sc); err != nil {
			return err
		}
		k.emitEvent(ctx, types.NewEventUpdateMetadata(poolId, scId, name, symbol))
		return nil
	})
}

// UpdateSharePrice records the pool-per-share price quoted by the fund
// accountant. Prices must not be dated in the future; stale or lower prices
// overwrite freely since NAV is not monotone.
func (k *Keeper) UpdateSharePrice(ctx sdk.Context, poolId types.PoolId, scId types.ShareClassId, price sdkmath.LegacyDec, computedAt int64) error {
	return k.branch(ctx, func(ctx sdk.Context) error {
		if price.IsNil() || price.IsNegative() {
			return sdkerrors.Wrapf(types.ErrInvalidRequest, "invalid share price %v", price)
		}
		if computedAt > ctx.BlockTime().Unix() {
			return sdkerrors.Wrapf(types.ErrCannotSetFuturePrice, "computed at %d, block time %d", computedAt, ctx.BlockTime().Unix())
		}
		if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
			return err
		}
		if err := k.SharePrices.Set(ctx, scId.Bytes(), types.SharePrice{Price: price, ComputedAt: computedAt}); err != nil {
			return err
		}
		k.emitEvent(ctx, types.NewEventUpdatePricePoolPerShare(poolId, scId, price, computedAt))
		return nil
	})
}

// SharePricePoolPerShare returns the latest recorded price for the share
// class, or a zeroed quote when none has been set yet.
func (k *Keeper) SharePricePoolPerShare(ctx context.Context, scId types.ShareClassId) (types.SharePrice, error) {
	price, err := k.SharePrices.Get(ctx, scId.Bytes())
	switch {
	case err == nil:
		return price, nil
	case sdkerrors.IsOf(err, collections.ErrNotFound):
		return types.SharePrice{Price: sdkmath.LegacyZeroDec()}, nil
	default:
		return types.SharePrice{}, err
	}
}

// UpdateShares applies a direct mint or burn reported by a spoke network,
// outside the epoch settlement flow. It moves both the class total and the
// signed per-network counter; the counter is allowed to go negative here and
// only fails on read.
func (k *Keeper) UpdateShares(ctx sdk.Context, networkId types.NetworkId, poolId types.PoolId, scId types.ShareClassId, amount sdkmath.Int, isIssuance bool) error {
	return k.branch(ctx, func(ctx sdk.Context) error {
		if amount.IsNil() || !amount.IsPositive() {
			return sdkerrors.Wrapf(types.ErrInvalidRequest, "share delta must be positive, got %v", amount)
		}
		sc, err := k.GetShareClass(ctx, poolId, scId)
		if err != nil {
			return err
		}

		delta := amount
		if !isIssuance {
			delta = amount.Neg()
		}

		issuance, err := k.networkIssuance(ctx, scId, networkId)
		if err != nil {
			return err
		}
		if err := k.NetworkIssuance.Set(ctx, collections.Join(scId.Bytes(), uint32(networkId)), issuance.Add(delta)); err != nil {
			return err
		}

		sc.TotalIssuance = sc.TotalIssuance.Add(delta)
		if err := k.ShareClasses.Set(ctx, scId.Bytes(), sc); err != nil {
			return err
		}

		if isIssuance {
			k.emitEvent(ctx, types.NewEventRemoteIssueShares(networkId, poolId, scId, amount))
		} else {
			k.emitEvent(ctx, types.NewEventRemoteRevokeShares(networkId, poolId, scId, amount))
		}
		return nil
	})
}

// Issuance returns the share amount attributed to a single network. Reads of
// a counter driven negative by unordered cross-network burns fail with
// NegativeIssuance until a later mint restores it.
func (k *Keeper) Issuance(ctx context.Context, poolId types.PoolId, scId types.ShareClassId, networkId types.NetworkId) (sdkmath.Int, error) {
	if _, err := k.GetShareClass(ctx, poolId, scId); err != nil {
		return sdkmath.Int{}, err
	}
	issuance, err := k.networkIssuance(ctx, scId, networkId)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if issuance.IsNegative() {
		return sdkmath.Int{}, sdkerrors.Wrapf(types.ErrNegativeIssuance, "network %d holds %v shares of %s", networkId, issuance, scId)
	}
	return issuance, nil
}

// TotalIssuance returns the share class total across all networks.
func (k *Keeper) TotalIssuance(ctx context.Context, poolId types.PoolId, scId types.ShareClassId) (sdkmath.Int, error) {
	sc, err := k.GetShareClass(ctx, poolId, scId)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return sc.TotalIssuance, nil
}

// PreviewShareClassId computes the id a class at the given index would get,
// without touching state.
func (k *Keeper) PreviewShareClassId(poolId types.PoolId, index uint32) types.ShareClassId {
	return types.NewShareClassId(poolId, index)
}

func (k *Keeper) networkIssuance(ctx context.Context, scId types.ShareClassId, networkId types.NetworkId) (sdkmath.Int, error) {
	issuance, err := k.NetworkIssuance.Get(ctx, collections.Join(scId.Bytes(), uint32(networkId)))
	switch {
	case err == nil:
		return issuance, nil
	case sdkerrors.IsOf(err, collections.ErrNotFound):
		return sdkmath.ZeroInt(), nil
	default:
		return sdkmath.Int{}, err
	}
}
