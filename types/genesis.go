package types

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// GenesisState holds the full exported state of the shareclass module.
type GenesisState struct {
	ShareClasses     []ShareClass            `json:"share_classes"`
	ShareClassCounts []ShareClassCountRecord `json:"share_class_counts"`
	Salts            []Salt                  `json:"salts"`
	Epochs           []EpochRecord           `json:"epochs"`
	EpochPointers    []EpochPointersRecord   `json:"epoch_pointers"`
	EpochAmounts     []EpochAmountsRecord    `json:"epoch_amounts"`
	DepositRequests  []UserOrderRecord       `json:"deposit_requests"`
	RedeemRequests   []UserOrderRecord       `json:"redeem_requests"`
	PendingDeposits  []PendingRecord         `json:"pending_deposits"`
	PendingRedeems   []PendingRecord         `json:"pending_redeems"`
	SharePrices      []SharePriceRecord      `json:"share_prices"`
	NetworkIssuance  []NetworkIssuanceRecord `json:"network_issuance"`
}

// ShareClassCountRecord is the exported per-pool share class count.
type ShareClassCountRecord struct {
	PoolId PoolId `json:"pool_id"`
	Count  uint32 `json:"count"`
}

// EpochRecord is the exported per-pool epoch counter.
type EpochRecord struct {
	PoolId  PoolId `json:"pool_id"`
	EpochId uint64 `json:"epoch_id"`
}

// EpochPointersRecord is the exported settlement progress of one
// (share class, asset).
type EpochPointersRecord struct {
	ShareClassId ShareClassId  `json:"share_class_id"`
	Asset        string        `json:"asset"`
	Pointers     EpochPointers `json:"pointers"`
}

// EpochAmountsRecord is the exported settlement snapshot of one epoch.
type EpochAmountsRecord struct {
	ShareClassId ShareClassId `json:"share_class_id"`
	Asset        string       `json:"asset"`
	EpochId      uint64       `json:"epoch_id"`
	Amounts      EpochAmounts `json:"amounts"`
}

// UserOrderRecord is an exported investor order.
type UserOrderRecord struct {
	ShareClassId ShareClassId `json:"share_class_id"`
	Asset        string       `json:"asset"`
	Investor     string       `json:"investor"`
	Order        UserOrder    `json:"order"`
}

// PendingRecord is an exported aggregate pending total.
type PendingRecord struct {
	ShareClassId ShareClassId `json:"share_class_id"`
	Asset        string       `json:"asset"`
	Amount       sdkmath.Int  `json:"amount"`
}

// SharePriceRecord is an exported share price.
type SharePriceRecord struct {
	ShareClassId ShareClassId `json:"share_class_id"`
	Price        SharePrice   `json:"price"`
}

// NetworkIssuanceRecord is an exported signed per-network issuance counter.
type NetworkIssuanceRecord struct {
	ShareClassId ShareClassId `json:"share_class_id"`
	NetworkId    NetworkId    `json:"network_id"`
	Amount       sdkmath.Int  `json:"amount"`
}

// DefaultGenesisState returns the module's default (empty) genesis state.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic sanity checks on the genesis state.
func (gs GenesisState) Validate() error {
	seen := make(map[ShareClassId]struct{}, len(gs.ShareClasses))
	for i, sc := range gs.ShareClasses {
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("invalid share class at index %d: %w", i, err)
		}
		if _, ok := seen[sc.Id]; ok {
			return fmt.Errorf("duplicate share class id %s", sc.Id)
		}
		seen[sc.Id] = struct{}{}
	}
	for i, salt := range gs.Salts {
		if salt.IsZero() {
			return fmt.Errorf("zero salt at index %d", i)
		}
	}
	for _, rec := range gs.EpochPointers {
		p := rec.Pointers
		if p.LatestIssuance > p.LatestDepositApproval || p.LatestRevocation > p.LatestRedeemApproval {
			return fmt.Errorf("epoch pointers out of order for %s/%s", rec.ShareClassId, rec.Asset)
		}
	}
	for _, rec := range gs.PendingDeposits {
		if rec.Amount.IsNil() || rec.Amount.IsNegative() {
			return fmt.Errorf("negative pending deposit for %s/%s", rec.ShareClassId, rec.Asset)
		}
	}
	for _, rec := range gs.PendingRedeems {
		if rec.Amount.IsNil() || rec.Amount.IsNegative() {
			return fmt.Errorf("negative pending redeem for %s/%s", rec.ShareClassId, rec.Asset)
		}
	}
	return nil
}
