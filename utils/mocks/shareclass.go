package mocks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/core/header"
	sdkmath "cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"

	addresscodec "github.com/cosmos/cosmos-sdk/codec/address"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/fundlabs/shareclass/keeper"
	"github.com/fundlabs/shareclass/types"
)

// NewShareClassKeeper returns an instance of the Keeper with all
// dependencies mocked, including a mutable fixed-rate price source.
func NewShareClassKeeper(
	t testing.TB,
) (sdk.Context, *keeper.Keeper, *FixedPriceSource) {
	key := storetypes.NewKVStoreKey(types.ModuleName)
	tkey := storetypes.NewTransientStoreKey(fmt.Sprintf("transient_%s", types.ModuleName))
	wrapper := testutil.DefaultContextWithDB(t, key, tkey)

	prices := NewFixedPriceSource()

	k := keeper.NewKeeper(
		runtime.NewKVStoreService(key),
		runtime.ProvideEventService(),
		addresscodec.NewBech32Codec("cosmos"),
		prices,
		authtypes.NewModuleAddress(govtypes.ModuleName),
	)

	now := time.Now().UTC()
	ctx := wrapper.Ctx.WithBlockTime(now).WithHeaderInfo(header.Info{Time: now})
	return ctx, k, prices
}

// AssetQuote is a fixed conversion rate for one asset denomination.
type AssetQuote struct {
	// Decimals is the asset's decimal precision.
	Decimals uint32
	// Price is the pool units of value per whole asset unit.
	Price sdkmath.LegacyDec
}

// FixedPriceSource is a deterministic price source for tests. Conversions
// rescale between the asset's decimals and the pool's 18 decimals and apply
// the configured rate, rounding down in both directions.
type FixedPriceSource struct {
	PoolDecimals uint32
	Quotes       map[string]AssetQuote
}

var _ types.PriceSource = (*FixedPriceSource)(nil)

// NewFixedPriceSource returns an empty price source with 18 pool decimals.
func NewFixedPriceSource() *FixedPriceSource {
	return &FixedPriceSource{
		PoolDecimals: 18,
		Quotes:       make(map[string]AssetQuote),
	}
}

// SetQuote registers or replaces the rate for an asset denomination.
func (ps *FixedPriceSource) SetQuote(assetId string, decimals uint32, price sdkmath.LegacyDec) {
	ps.Quotes[assetId] = AssetQuote{Decimals: decimals, Price: price}
}

// AssetToPool converts an asset amount into pool units, rounding down.
func (ps *FixedPriceSource) AssetToPool(_ context.Context, _ types.PoolId, assetId string, amount sdkmath.Int) (sdkmath.Int, error) {
	quote, ok := ps.Quotes[assetId]
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("no quote for asset %q", assetId)
	}
	value := sdkmath.LegacyNewDecFromInt(amount).Mul(quote.Price)
	return rescale(value, quote.Decimals, ps.PoolDecimals).TruncateInt(), nil
}

// PoolToAsset converts a pool amount into asset units, rounding down.
func (ps *FixedPriceSource) PoolToAsset(_ context.Context, _ types.PoolId, assetId string, amount sdkmath.Int) (sdkmath.Int, error) {
	quote, ok := ps.Quotes[assetId]
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("no quote for asset %q", assetId)
	}
	value := sdkmath.LegacyNewDecFromInt(amount).QuoTruncate(quote.Price)
	return rescale(value, ps.PoolDecimals, quote.Decimals).TruncateInt(), nil
}

func rescale(value sdkmath.LegacyDec, fromDecimals, toDecimals uint32) sdkmath.LegacyDec {
	if toDecimals >= fromDecimals {
		return value.MulInt(sdkmath.NewIntWithDecimal(1, int(toDecimals-fromDecimals)))
	}
	return value.QuoInt(sdkmath.NewIntWithDecimal(1, int(fromDecimals-toDecimals)))
}
