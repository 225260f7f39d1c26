package types

import (
	sdkmath "cosmossdk.io/math"
)

// UserOrder tracks a single investor's outstanding request for one
// (share class, asset, direction). Pending accumulates across epochs until
// approved amounts are claimed; LastUpdate is the epoch id up to which the
// order has been accounted for.
type UserOrder struct {
	Pending    sdkmath.Int `json:"pending"`
	LastUpdate uint64      `json:"last_update"`
}

// NewUserOrder returns an empty order anchored at the given epoch.
func NewUserOrder(epochId uint64) UserOrder {
	return UserOrder{Pending: sdkmath.ZeroInt(), LastUpdate: epochId}
}

// EpochDeposits is the deposit-side settlement snapshot of one epoch. It is
// written once at approval time and completed once at issuance time; it is
// never mutated afterwards.
type EpochDeposits struct {
	// ApprovalRate is the fraction of the pending deposit total accepted.
	ApprovalRate sdkmath.LegacyDec `json:"approval_rate"`
	// ApprovedAsset is the asset-denominated amount accepted for settlement.
	ApprovedAsset sdkmath.Int `json:"approved_asset"`
	// ApprovedPool is ApprovedAsset converted into the pool denomination.
	ApprovedPool sdkmath.Int `json:"approved_pool"`
	// IssuedShares is the share delta minted for this epoch.
	IssuedShares sdkmath.Int `json:"issued_shares"`
	// Issued records that issuance ran for this epoch.
	Issued bool `json:"issued"`
}

// EpochRedeems is the redeem-side settlement snapshot of one epoch.
// Approval records share amounts; asset conversion happens at revocation.
type EpochRedeems struct {
	// ApprovalRate is the fraction of the pending redeem total accepted.
	ApprovalRate sdkmath.LegacyDec `json:"approval_rate"`
	// ApprovedShares is the share-denominated amount accepted for settlement.
	ApprovedShares sdkmath.Int `json:"approved_shares"`
	// PayoutAsset is the asset amount owed to redeemers, set at revocation.
	PayoutAsset sdkmath.Int `json:"payout_asset"`
	// PayoutPool is the pool-denominated value revoked, set at revocation.
	PayoutPool sdkmath.Int `json:"payout_pool"`
	// Revoked records that revocation ran for this epoch.
	Revoked bool `json:"revoked"`
}

// EpochAmounts holds both settlement snapshots of one
// (share class, asset, epoch). Each side is single-assignment per epoch.
type EpochAmounts struct {
	Deposits EpochDeposits `json:"deposits"`
	Redeems  EpochRedeems  `json:"redeems"`
}

// NewEpochAmounts returns a snapshot with all amounts zeroed.
func NewEpochAmounts() EpochAmounts {
	return EpochAmounts{
		Deposits: EpochDeposits{
			ApprovalRate:  sdkmath.LegacyZeroDec(),
			ApprovedAsset: sdkmath.ZeroInt(),
			ApprovedPool:  sdkmath.ZeroInt(),
			IssuedShares:  sdkmath.ZeroInt(),
		},
		Redeems: EpochRedeems{
			ApprovalRate:   sdkmath.LegacyZeroDec(),
			ApprovedShares: sdkmath.ZeroInt(),
			PayoutAsset:    sdkmath.ZeroInt(),
			PayoutPool:     sdkmath.ZeroInt(),
		},
	}
}

// EpochPointers tracks the settlement progress of one (share class, asset).
// All four pointers are monotonically non-decreasing, bounded by the pool's
// current epoch, and each execution pointer trails its approval pointer:
// LatestIssuance <= LatestDepositApproval and
// LatestRevocation <= LatestRedeemApproval.
type EpochPointers struct {
	LatestDepositApproval uint64 `json:"latest_deposit_approval"`
	LatestRedeemApproval  uint64 `json:"latest_redeem_approval"`
	LatestIssuance        uint64 `json:"latest_issuance"`
	LatestRevocation      uint64 `json:"latest_revocation"`
}

// SharePrice is the latest recorded pool-per-share price. ComputedAt may
// move backwards; only future timestamps are rejected.
type SharePrice struct {
	Price      sdkmath.LegacyDec `json:"price"`
	ComputedAt int64             `json:"computed_at"`
}

// EpochContext is the per-call epoch latch. Approvals executed within one
// top-level call share a single epoch increment per pool; callers create a
// fresh context at the start of each external call and thread it through
// every nested approval. It is never persisted.
type EpochContext struct {
	bumped map[PoolId]uint64
}

// NewEpochContext returns an empty latch for one top-level call.
func NewEpochContext() *EpochContext {
	return &EpochContext{bumped: make(map[PoolId]uint64)}
}

// ApprovalEpoch returns the epoch already latched for the pool during this
// call, if any.
func (ec *EpochContext) ApprovalEpoch(poolId PoolId) (uint64, bool) {
	epochId, ok := ec.bumped[poolId]
	return epochId, ok
}

// Latch records the approval epoch for the pool so that further approvals
// within the same call reuse it instead of incrementing again.
func (ec *EpochContext) Latch(poolId PoolId, epochId uint64) {
	ec.bumped[poolId] = epochId
}
