package keeper

import (
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/fundlabs/shareclass/types"
)

type Keeper struct {
	schema       collections.Schema
	eventService event.Service
	addressCodec address.Codec
	priceSource  types.PriceSource
	authority    []byte

	// ShareClasses holds every share class ever created, keyed by id.
	ShareClasses collections.Map[[]byte, types.ShareClass]
	// ShareClassCount holds the per-pool sequential index of the last share class.
	ShareClassCount collections.Map[uint64, uint32]
	// Salts is the set of salts ever used; a salt is never released.
	Salts collections.KeySet[[]byte]
	// Epochs holds the current epoch id per pool, starting at 1.
	Epochs collections.Map[uint64, uint64]
	// EpochPointers tracks settlement progress per (share class, asset).
	EpochPointers collections.Map[collections.Pair[[]byte, string], types.EpochPointers]
	// EpochAmounts holds the write-once settlement snapshot per (share class, asset, epoch).
	EpochAmounts collections.Map[collections.Triple[[]byte, string, uint64], types.EpochAmounts]
	// DepositRequests holds investor deposit orders per (share class, asset, investor).
	DepositRequests collections.Map[collections.Triple[[]byte, string, sdk.AccAddress], types.UserOrder]
	// RedeemRequests holds investor redeem orders per (share class, asset, investor).
	RedeemRequests collections.Map[collections.Triple[[]byte, string, sdk.AccAddress], types.UserOrder]
	// PendingDeposits holds the not-yet-approved deposit total per (share class, asset).
	PendingDeposits collections.Map[collections.Pair[[]byte, string], sdkmath.Int]
	// PendingRedeems holds the not-yet-approved redeem total per (share class, asset).
	PendingRedeems collections.Map[collections.Pair[[]byte, string], sdkmath.Int]
	// SharePrices holds the latest pool-per-share price per share class.
	SharePrices collections.Map[[]byte, types.SharePrice]
	// NetworkIssuance holds the signed per-network issuance counter per share class.
	NetworkIssuance collections.Map[collections.Pair[[]byte, uint32], sdkmath.Int]
}

func NewKeeper(
	storeService store.KVStoreService,
	eventService event.Service,
	addressCodec address.Codec,
	priceSource types.PriceSource,
	authority []byte,
) *Keeper {
	if _, err := addressCodec.BytesToString(authority); err != nil {
		panic(fmt.Sprintf("invalid authority address %s: %s", authority, err))
	}
	if priceSource == nil {
		panic("price source cannot be nil")
	}

	builder := collections.NewSchemaBuilder(storeService)

	keeper := &Keeper{
		eventService: eventService,
		addressCodec: addressCodec,
		priceSource:  priceSource,
		authority:    authority,
		ShareClasses: collections.NewMap(builder, types.ShareClassesKeyPrefix, types.ShareClassesName,
			collections.BytesKey, types.JSONValue[types.ShareClass](types.ShareClassesName)),
		ShareClassCount: collections.NewMap(builder, types.ShareClassCountKeyPrefix, types.ShareClassCountName,
			collections.Uint64Key, collections.Uint32Value),
		Salts: collections.NewKeySet(builder, types.SaltsKeyPrefix, types.SaltsName, collections.BytesKey),
		Epochs: collections.NewMap(builder, types.EpochsKeyPrefix, types.EpochsName,
			collections.Uint64Key, collections.Uint64Value),
		EpochPointers: collections.NewMap(builder, types.EpochPointersKeyPrefix, types.EpochPointersName,
			collections.PairKeyCodec(collections.BytesKey, collections.StringKey),
			types.JSONValue[types.EpochPointers](types.EpochPointersName)),
		EpochAmounts: collections.NewMap(builder, types.EpochAmountsKeyPrefix, types.EpochAmountsName,
			collections.TripleKeyCodec(collections.BytesKey, collections.StringKey, collections.Uint64Key),
			types.JSONValue[types.EpochAmounts](types.EpochAmountsName)),
		DepositRequests: collections.NewMap(builder, types.DepositRequestsKeyPrefix, types.DepositRequestsName,
			collections.TripleKeyCodec(collections.BytesKey, collections.StringKey, sdk.AccAddressKey),
			types.JSONValue[types.UserOrder](types.DepositRequestsName)),
		RedeemRequests: collections.NewMap(builder, types.RedeemRequestsKeyPrefix, types.RedeemRequestsName,
			collections.TripleKeyCodec(collections.BytesKey, collections.StringKey, sdk.AccAddressKey),
			types.JSONValue[types.UserOrder](types.RedeemRequestsName)),
		PendingDeposits: collections.NewMap(builder, types.PendingDepositsKeyPrefix, types.PendingDepositsName,
			collections.PairKeyCodec(collections.BytesKey, collections.StringKey), sdk.IntValue),
		PendingRedeems: collections.NewMap(builder, types.PendingRedeemsKeyPrefix, types.PendingRedeemsName,
			collections.PairKeyCodec(collections.BytesKey, collections.StringKey), sdk.IntValue),
		SharePrices: collections.NewMap(builder, types.SharePricesKeyPrefix, types.SharePricesName,
			collections.BytesKey, types.JSONValue[types.SharePrice](types.SharePricesName)),
		NetworkIssuance: collections.NewMap(builder, types.NetworkIssuanceKeyPrefix, types.NetworkIssuanceName,
			collections.PairKeyCodec(collections.BytesKey, collections.Uint32Key), sdk.IntValue),
	}

	schema, err := builder.Build()
	if err != nil {
		panic(err)
	}

	keeper.schema = schema
	return keeper
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() []byte {
	return k.authority
}

// getLogger returns a logger with shareclass module context.
func (k Keeper) getLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// emitEvent emits a typed module event through the event service.
func (k Keeper) emitEvent(ctx sdk.Context, ev types.Event) {
	if err := k.eventService.EventManager(ctx).EmitKV(ctx, ev.EventType(), ev.Attributes()...); err != nil {
		k.getLogger(ctx).Error("failed to emit event", "type", ev.EventType(), "err", err)
	}
}

// branch runs fn against a branched context and writes through only when fn
// succeeds, giving every public operation all-or-nothing semantics.
func (k Keeper) branch(ctx sdk.Context, fn func(sdk.Context) error) error {
	cacheCtx, writeCache := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	writeCache()
	return nil
}
