package types

import (
	"strconv"

	"cosmossdk.io/core/event"
	sdkmath "cosmossdk.io/math"
)

// Event is implemented by every shareclass module event. Events are emitted
// as attribute lists; their wire encoding is owned by the host chain.
type Event interface {
	EventType() string
	Attributes() []event.Attribute
}

func eventName(name string) string {
	return ModuleName + ".v1." + name
}

func attr(key, value string) event.Attribute {
	return event.Attribute{Key: key, Value: value}
}

func uintAttr(key string, value uint64) event.Attribute {
	return attr(key, strconv.FormatUint(value, 10))
}

// EventNewEpoch signals that a pool moved to a new epoch.
type EventNewEpoch struct {
	PoolId  PoolId
	EpochId uint64
}

// NewEventNewEpoch creates a new EventNewEpoch event.
func NewEventNewEpoch(poolId PoolId, epochId uint64) *EventNewEpoch {
	return &EventNewEpoch{PoolId: poolId, EpochId: epochId}
}

func (e *EventNewEpoch) EventType() string { return eventName("EventNewEpoch") }

func (e *EventNewEpoch) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		uintAttr("epoch_id", e.EpochId),
	}
}

// EventApprovedDeposits reports the deposit approval snapshot of an epoch.
type EventApprovedDeposits struct {
	PoolId        PoolId
	ShareClassId  ShareClassId
	EpochId       uint64
	Asset         string
	ApprovedAsset string
	ApprovedPool  string
	PendingAfter  string
}

// NewEventApprovedDeposits creates a new EventApprovedDeposits event.
func NewEventApprovedDeposits(poolId PoolId, scId ShareClassId, epochId uint64, asset string, approvedAsset, approvedPool, pendingAfter sdkmath.Int) *EventApprovedDeposits {
	return &EventApprovedDeposits{
		PoolId:        poolId,
		ShareClassId:  scId,
		EpochId:       epochId,
		Asset:         asset,
		ApprovedAsset: approvedAsset.String(),
		ApprovedPool:  approvedPool.String(),
		PendingAfter:  pendingAfter.String(),
	}
}

func (e *EventApprovedDeposits) EventType() string { return eventName("EventApprovedDeposits") }

func (e *EventApprovedDeposits) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		uintAttr("epoch_id", e.EpochId),
		attr("asset", e.Asset),
		attr("approved_asset_amount", e.ApprovedAsset),
		attr("approved_pool_amount", e.ApprovedPool),
		attr("pending_after", e.PendingAfter),
	}
}

// EventApprovedRedeems reports the redeem approval snapshot of an epoch.
type EventApprovedRedeems struct {
	PoolId         PoolId
	ShareClassId   ShareClassId
	EpochId        uint64
	Asset          string
	ApprovedShares string
	PendingAfter   string
}

// NewEventApprovedRedeems creates a new EventApprovedRedeems event.
func NewEventApprovedRedeems(poolId PoolId, scId ShareClassId, epochId uint64, asset string, approvedShares, pendingAfter sdkmath.Int) *EventApprovedRedeems {
	return &EventApprovedRedeems{
		PoolId:         poolId,
		ShareClassId:   scId,
		EpochId:        epochId,
		Asset:          asset,
		ApprovedShares: approvedShares.String(),
		PendingAfter:   pendingAfter.String(),
	}
}

func (e *EventApprovedRedeems) EventType() string { return eventName("EventApprovedRedeems") }

func (e *EventApprovedRedeems) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		uintAttr("epoch_id", e.EpochId),
		attr("asset", e.Asset),
		attr("approved_share_amount", e.ApprovedShares),
		attr("pending_after", e.PendingAfter),
	}
}

// EventIssuedShares reports the share delta minted for one settled epoch.
type EventIssuedShares struct {
	PoolId       PoolId
	ShareClassId ShareClassId
	EpochId      uint64
	Asset        string
	NavPerShare  string
	IssuedShares string
}

// NewEventIssuedShares creates a new EventIssuedShares event.
func NewEventIssuedShares(poolId PoolId, scId ShareClassId, epochId uint64, asset string, navPerShare sdkmath.LegacyDec, issuedShares sdkmath.Int) *EventIssuedShares {
	return &EventIssuedShares{
		PoolId:       poolId,
		ShareClassId: scId,
		EpochId:      epochId,
		Asset:        asset,
		NavPerShare:  navPerShare.String(),
		IssuedShares: issuedShares.String(),
	}
}

func (e *EventIssuedShares) EventType() string { return eventName("EventIssuedShares") }

func (e *EventIssuedShares) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		uintAttr("epoch_id", e.EpochId),
		attr("asset", e.Asset),
		attr("nav_per_share", e.NavPerShare),
		attr("issued_shares", e.IssuedShares),
	}
}

// EventRevokedShares reports the share burn and payout of one settled epoch.
type EventRevokedShares struct {
	PoolId        PoolId
	ShareClassId  ShareClassId
	EpochId       uint64
	Asset         string
	NavPerShare   string
	RevokedShares string
	PayoutAsset   string
	PayoutPool    string
}

// NewEventRevokedShares creates a new EventRevokedShares event.
func NewEventRevokedShares(poolId PoolId, scId ShareClassId, epochId uint64, asset string, navPerShare sdkmath.LegacyDec, revokedShares, payoutAsset, payoutPool sdkmath.Int) *EventRevokedShares {
	return &EventRevokedShares{
		PoolId:        poolId,
		ShareClassId:  scId,
		EpochId:       epochId,
		Asset:         asset,
		NavPerShare:   navPerShare.String(),
		RevokedShares: revokedShares.String(),
		PayoutAsset:   payoutAsset.String(),
		PayoutPool:    payoutPool.String(),
	}
}

func (e *EventRevokedShares) EventType() string { return eventName("EventRevokedShares") }

func (e *EventRevokedShares) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		uintAttr("epoch_id", e.EpochId),
		attr("asset", e.Asset),
		attr("nav_per_share", e.NavPerShare),
		attr("revoked_shares", e.RevokedShares),
		attr("payout_asset_amount", e.PayoutAsset),
		attr("payout_pool_amount", e.PayoutPool),
	}
}

// EventClaimedDeposit reports an investor's settled deposit claim.
type EventClaimedDeposit struct {
	PoolId       PoolId
	ShareClassId ShareClassId
	Asset        string
	Investor     string
	PaymentAsset string
	PayoutShares string
	LastUpdate   uint64
}

// NewEventClaimedDeposit creates a new EventClaimedDeposit event.
func NewEventClaimedDeposit(poolId PoolId, scId ShareClassId, asset, investor string, paymentAsset, payoutShares sdkmath.Int, lastUpdate uint64) *EventClaimedDeposit {
	return &EventClaimedDeposit{
		PoolId:       poolId,
		ShareClassId: scId,
		Asset:        asset,
		Investor:     investor,
		PaymentAsset: paymentAsset.String(),
		PayoutShares: payoutShares.String(),
		LastUpdate:   lastUpdate,
	}
}

func (e *EventClaimedDeposit) EventType() string { return eventName("EventClaimedDeposit") }

func (e *EventClaimedDeposit) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("asset", e.Asset),
		attr("investor", e.Investor),
		attr("payment_asset_amount", e.PaymentAsset),
		attr("payout_share_amount", e.PayoutShares),
		uintAttr("last_update", e.LastUpdate),
	}
}

// EventClaimedRedeem reports an investor's settled redeem claim.
type EventClaimedRedeem struct {
	PoolId        PoolId
	ShareClassId  ShareClassId
	Asset         string
	Investor      string
	PaymentShares string
	PayoutAsset   string
	LastUpdate    uint64
}

// NewEventClaimedRedeem creates a new EventClaimedRedeem event.
func NewEventClaimedRedeem(poolId PoolId, scId ShareClassId, asset, investor string, paymentShares, payoutAsset sdkmath.Int, lastUpdate uint64) *EventClaimedRedeem {
	return &EventClaimedRedeem{
		PoolId:        poolId,
		ShareClassId:  scId,
		Asset:         asset,
		Investor:      investor,
		PaymentShares: paymentShares.String(),
		PayoutAsset:   payoutAsset.String(),
		LastUpdate:    lastUpdate,
	}
}

func (e *EventClaimedRedeem) EventType() string { return eventName("EventClaimedRedeem") }

func (e *EventClaimedRedeem) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("asset", e.Asset),
		attr("investor", e.Investor),
		attr("payment_share_amount", e.PaymentShares),
		attr("payout_asset_amount", e.PayoutAsset),
		uintAttr("last_update", e.LastUpdate),
	}
}

// EventUpdatedDepositRequest reports the new pending state of a deposit order.
type EventUpdatedDepositRequest struct {
	PoolId       PoolId
	ShareClassId ShareClassId
	Asset        string
	Investor     string
	Pending      string
	LastUpdate   uint64
}

// NewEventUpdatedDepositRequest creates a new EventUpdatedDepositRequest event.
func NewEventUpdatedDepositRequest(poolId PoolId, scId ShareClassId, asset, investor string, pending sdkmath.Int, lastUpdate uint64) *EventUpdatedDepositRequest {
	return &EventUpdatedDepositRequest{
		PoolId:       poolId,
		ShareClassId: scId,
		Asset:        asset,
		Investor:     investor,
		Pending:      pending.String(),
		LastUpdate:   lastUpdate,
	}
}

func (e *EventUpdatedDepositRequest) EventType() string {
	return eventName("EventUpdatedDepositRequest")
}

func (e *EventUpdatedDepositRequest) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("asset", e.Asset),
		attr("investor", e.Investor),
		attr("pending", e.Pending),
		uintAttr("last_update", e.LastUpdate),
	}
}

// EventUpdatedRedeemRequest reports the new pending state of a redeem order.
type EventUpdatedRedeemRequest struct {
	PoolId       PoolId
	ShareClassId ShareClassId
	Asset        string
	Investor     string
	Pending      string
	LastUpdate   uint64
}

// NewEventUpdatedRedeemRequest creates a new EventUpdatedRedeemRequest event.
func NewEventUpdatedRedeemRequest(poolId PoolId, scId ShareClassId, asset, investor string, pending sdkmath.Int, lastUpdate uint64) *EventUpdatedRedeemRequest {
	return &EventUpdatedRedeemRequest{
		PoolId:       poolId,
		ShareClassId: scId,
		Asset:        asset,
		Investor:     investor,
		Pending:      pending.String(),
		LastUpdate:   lastUpdate,
	}
}

func (e *EventUpdatedRedeemRequest) EventType() string {
	return eventName("EventUpdatedRedeemRequest")
}

func (e *EventUpdatedRedeemRequest) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("asset", e.Asset),
		attr("investor", e.Investor),
		attr("pending", e.Pending),
		uintAttr("last_update", e.LastUpdate),
	}
}

// EventAddShareClass reports a newly created share class.
type EventAddShareClass struct {
	PoolId       PoolId
	ShareClassId ShareClassId
	Index        uint32
	Name         string
	Symbol       string
	Salt         string
}

// NewEventAddShareClass creates a new EventAddShareClass event.
func NewEventAddShareClass(sc ShareClass) *EventAddShareClass {
	return &EventAddShareClass{
		PoolId:       sc.PoolId,
		ShareClassId: sc.Id,
		Index:        sc.Index,
		Name:         sc.Name,
		Symbol:       sc.Symbol,
		Salt:         sc.Salt.String(),
	}
}

func (e *EventAddShareClass) EventType() string { return eventName("EventAddShareClass") }

func (e *EventAddShareClass) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		uintAttr("index", uint64(e.Index)),
		attr("name", e.Name),
		attr("symbol", e.Symbol),
		attr("salt", e.Salt),
	}
}

// EventUpdateMetadata reports a share class metadata change.
type EventUpdateMetadata struct {
	PoolId       PoolId
	ShareClassId ShareClassId
	Name         string
	Symbol       string
}

// NewEventUpdateMetadata creates a new EventUpdateMetadata event.
func NewEventUpdateMetadata(poolId PoolId, scId ShareClassId, name, symbol string) *EventUpdateMetadata {
	return &EventUpdateMetadata{PoolId: poolId, ShareClassId: scId, Name: name, Symbol: symbol}
}

func (e *EventUpdateMetadata) EventType() string { return eventName("EventUpdateMetadata") }

func (e *EventUpdateMetadata) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("name", e.Name),
		attr("symbol", e.Symbol),
	}
}

// EventUpdatePricePoolPerShare reports a share price update.
type EventUpdatePricePoolPerShare struct {
	PoolId       PoolId
	ShareClassId ShareClassId
	Price        string
	ComputedAt   int64
}

// NewEventUpdatePricePoolPerShare creates a new EventUpdatePricePoolPerShare event.
func NewEventUpdatePricePoolPerShare(poolId PoolId, scId ShareClassId, price sdkmath.LegacyDec, computedAt int64) *EventUpdatePricePoolPerShare {
	return &EventUpdatePricePoolPerShare{
		PoolId:       poolId,
		ShareClassId: scId,
		Price:        price.String(),
		ComputedAt:   computedAt,
	}
}

func (e *EventUpdatePricePoolPerShare) EventType() string {
	return eventName("EventUpdatePricePoolPerShare")
}

func (e *EventUpdatePricePoolPerShare) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("price", e.Price),
		attr("computed_at", strconv.FormatInt(e.ComputedAt, 10)),
	}
}

// EventRemoteIssueShares reports a direct non-epoch mint driven by a network.
type EventRemoteIssueShares struct {
	NetworkId    NetworkId
	PoolId       PoolId
	ShareClassId ShareClassId
	Amount       string
}

// NewEventRemoteIssueShares creates a new EventRemoteIssueShares event.
func NewEventRemoteIssueShares(networkId NetworkId, poolId PoolId, scId ShareClassId, amount sdkmath.Int) *EventRemoteIssueShares {
	return &EventRemoteIssueShares{
		NetworkId:    networkId,
		PoolId:       poolId,
		ShareClassId: scId,
		Amount:       amount.String(),
	}
}

func (e *EventRemoteIssueShares) EventType() string { return eventName("EventRemoteIssueShares") }

func (e *EventRemoteIssueShares) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("network_id", uint64(e.NetworkId)),
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("amount", e.Amount),
	}
}

// EventRemoteRevokeShares reports a direct non-epoch burn driven by a network.
type EventRemoteRevokeShares struct {
	NetworkId    NetworkId
	PoolId       PoolId
	ShareClassId ShareClassId
	Amount       string
}

// NewEventRemoteRevokeShares creates a new EventRemoteRevokeShares event.
func NewEventRemoteRevokeShares(networkId NetworkId, poolId PoolId, scId ShareClassId, amount sdkmath.Int) *EventRemoteRevokeShares {
	return &EventRemoteRevokeShares{
		NetworkId:    networkId,
		PoolId:       poolId,
		ShareClassId: scId,
		Amount:       amount.String(),
	}
}

func (e *EventRemoteRevokeShares) EventType() string { return eventName("EventRemoteRevokeShares") }

func (e *EventRemoteRevokeShares) Attributes() []event.Attribute {
	return []event.Attribute{
		uintAttr("network_id", uint64(e.NetworkId)),
		uintAttr("pool_id", uint64(e.PoolId)),
		attr("share_class_id", e.ShareClassId.String()),
		attr("amount", e.Amount),
	}
}
