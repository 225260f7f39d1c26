package keeper

import (
	"cosmossdk.io/collections"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/fundlabs/shareclass/types"
)

// InitGenesis loads the genesis state into the store. The state is assumed
// to have passed Validate.
func (k *Keeper) InitGenesis(ctx sdk.Context, gs *types.GenesisState) error {
	for _, sc := range gs.ShareClasses {
		if err := k.ShareClasses.Set(ctx, sc.Id.Bytes(), sc); err != nil {
			return err
		}
	}
	for _, rec := range gs.ShareClassCounts {
		if err := k.ShareClassCount.Set(ctx, uint64(rec.PoolId), rec.Count); err != nil {
			return err
		}
	}
	for _, salt := range gs.Salts {
		if err := k.Salts.Set(ctx, salt.Bytes()); err != nil {
			return err
		}
	}
	for _, rec := range gs.Epochs {
		if err := k.Epochs.Set(ctx, uint64(rec.PoolId), rec.EpochId); err != nil {
			return err
		}
	}
	for _, rec := range gs.EpochPointers {
		if err := k.EpochPointers.Set(ctx, collections.Join(rec.ShareClassId.Bytes(), rec.Asset), rec.Pointers); err != nil {
			return err
		}
	}
	for _, rec := range gs.EpochAmounts {
		if err := k.EpochAmounts.Set(ctx, collections.Join3(rec.ShareClassId.Bytes(), rec.Asset, rec.EpochId), rec.Amounts); err != nil {
			return err
		}
	}
	if err := k.initOrders(ctx, k.DepositRequests, gs.DepositRequests); err != nil {
		return err
	}
	if err := k.initOrders(ctx, k.RedeemRequests, gs.RedeemRequests); err != nil {
		return err
	}
	for _, rec := range gs.PendingDeposits {
		if err := k.PendingDeposits.Set(ctx, collections.Join(rec.ShareClassId.Bytes(), rec.Asset), rec.Amount); err != nil {
			return err
		}
	}
	for _, rec := range gs.PendingRedeems {
		if err := k.PendingRedeems.Set(ctx, collections.Join(rec.ShareClassId.Bytes(), rec.Asset), rec.Amount); err != nil {
			return err
		}
	}
	for _, rec := range gs.SharePrices {
		if err := k.SharePrices.Set(ctx, rec.ShareClassId.Bytes(), rec.Price); err != nil {
			return err
		}
	}
	for _, rec := range gs.NetworkIssuance {
		if err := k.NetworkIssuance.Set(ctx, collections.Join(rec.ShareClassId.Bytes(), uint32(rec.NetworkId)), rec.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (k *Keeper) initOrders(ctx sdk.Context, requests collections.Map[collections.Triple[[]byte, string, sdk.AccAddress], types.UserOrder], records []types.UserOrderRecord) error {
	for _, rec := range records {
		investor, err := k.addressCodec.StringToBytes(rec.Investor)
		if err != nil {
			return err
		}
		if err := requests.Set(ctx, collections.Join3(rec.ShareClassId.Bytes(), rec.Asset, sdk.AccAddress(investor)), rec.Order); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis walks every collection into an exportable genesis state.
func (k *Keeper) ExportGenesis(ctx sdk.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesisState()

	err := k.ShareClasses.Walk(ctx, nil, func(_ []byte, sc types.ShareClass) (bool, error) {
		gs.ShareClasses = append(gs.ShareClasses, sc)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.ShareClassCount.Walk(ctx, nil, func(poolId uint64, count uint32) (bool, error) {
		gs.ShareClassCounts = append(gs.ShareClassCounts, types.ShareClassCountRecord{PoolId: types.PoolId(poolId), Count: count})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.Salts.Walk(ctx, nil, func(raw []byte) (bool, error) {
		var salt types.Salt
		copy(salt[:], raw)
		gs.Salts = append(gs.Salts, salt)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.Epochs.Walk(ctx, nil, func(poolId, epochId uint64) (bool, error) {
		gs.Epochs = append(gs.Epochs, types.EpochRecord{PoolId: types.PoolId(poolId), EpochId: epochId})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.EpochPointers.Walk(ctx, nil, func(key collections.Pair[[]byte, string], pointers types.EpochPointers) (bool, error) {
		scId, err := types.ShareClassIdFromBytes(key.K1())
		if err != nil {
			return true, err
		}
		gs.EpochPointers = append(gs.EpochPointers, types.EpochPointersRecord{ShareClassId: scId, Asset: key.K2(), Pointers: pointers})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.EpochAmounts.Walk(ctx, nil, func(key collections.Triple[[]byte, string, uint64], amounts types.EpochAmounts) (bool, error) {
		scId, err := types.ShareClassIdFromBytes(key.K1())
		if err != nil {
			return true, err
		}
		gs.EpochAmounts = append(gs.EpochAmounts, types.EpochAmountsRecord{ShareClassId: scId, Asset: key.K2(), EpochId: key.K3(), Amounts: amounts})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	gs.DepositRequests, err = k.exportOrders(ctx, k.DepositRequests)
	if err != nil {
		return nil, err
	}
	gs.RedeemRequests, err = k.exportOrders(ctx, k.RedeemRequests)
	if err != nil {
		return nil, err
	}
	gs.PendingDeposits, err = k.exportPendings(ctx, k.PendingDeposits)
	if err != nil {
		return nil, err
	}
	gs.PendingRedeems, err = k.exportPendings(ctx, k.PendingRedeems)
	if err != nil {
		return nil, err
	}
	err = k.SharePrices.Walk(ctx, nil, func(raw []byte, price types.SharePrice) (bool, error) {
		scId, err := types.ShareClassIdFromBytes(raw)
		if err != nil {
			return true, err
		}
		gs.SharePrices = append(gs.SharePrices, types.SharePriceRecord{ShareClassId: scId, Price: price})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	err = k.NetworkIssuance.Walk(ctx, nil, func(key collections.Pair[[]byte, uint32], amount sdkmath.Int) (bool, error) {
		scId, err := types.ShareClassIdFromBytes(key.K1())
		if err != nil {
			return true, err
		}
		gs.NetworkIssuance = append(gs.NetworkIssuance, types.NetworkIssuanceRecord{ShareClassId: scId, NetworkId: types.NetworkId(key.K2()), Amount: amount})
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return gs, nil
}

func (k *Keeper) exportOrders(ctx sdk.Context, requests collections.Map[collections.Triple[[]byte, string, sdk.AccAddress], types.UserOrder]) ([]types.UserOrderRecord, error) {
	var records []types.UserOrderRecord
	err := requests.Walk(ctx, nil, func(key collections.Triple[[]byte, string, sdk.AccAddress], order types.UserOrder) (bool, error) {
		scId, err := types.ShareClassIdFromBytes(key.K1())
		if err != nil {
			return true, err
		}
		investor, err := k.addressCodec.BytesToString(key.K3())
		if err != nil {
			return true, err
		}
		records = append(records, types.UserOrderRecord{ShareClassId: scId, Asset: key.K2(), Investor: investor, Order: order})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (k *Keeper) exportPendings(ctx sdk.Context, pendings collections.Map[collections.Pair[[]byte, string], sdkmath.Int]) ([]types.PendingRecord, error) {
	var records []types.PendingRecord
	err := pendings.Walk(ctx, nil, func(key collections.Pair[[]byte, string], amount sdkmath.Int) (bool, error) {
		scId, err := types.ShareClassIdFromBytes(key.K1())
		if err != nil {
			return true, err
		}
		records = append(records, types.PendingRecord{ShareClassId: scId, Asset: key.K2(), Amount: amount})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
