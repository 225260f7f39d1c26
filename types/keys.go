package types

import (
	"cosmossdk.io/collections"
)

const (
	// ModuleName defines the module name
	ModuleName = "shareclass"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// ShareClassesKeyPrefix is the prefix to retrieve all ShareClasses
	ShareClassesKeyPrefix = collections.NewPrefix(0)
	// ShareClassesName is a human-readable name for the share classes collection.
	ShareClassesName = "share_classes"
	// ShareClassCountKeyPrefix is the prefix for per-pool share class counts.
	ShareClassCountKeyPrefix = collections.NewPrefix(1)
	// ShareClassCountName is a human-readable name for the share class count collection.
	ShareClassCountName = "share_class_count"
	// SaltsKeyPrefix is the prefix for the set of salts ever used by a share class.
	SaltsKeyPrefix = collections.NewPrefix(2)
	// SaltsName is a human-readable name for the salts collection.
	SaltsName = "salts"
	// EpochsKeyPrefix is the prefix for per-pool epoch counters.
	EpochsKeyPrefix = collections.NewPrefix(3)
	// EpochsName is a human-readable name for the epochs collection.
	EpochsName = "epochs"
	// EpochPointersKeyPrefix is the prefix for per (share class, asset) epoch pointers.
	EpochPointersKeyPrefix = collections.NewPrefix(4)
	// EpochPointersName is a human-readable name for the epoch pointers collection.
	EpochPointersName = "epoch_pointers"
	// EpochAmountsKeyPrefix is the prefix for per (share class, asset, epoch) settlement snapshots.
	EpochAmountsKeyPrefix = collections.NewPrefix(5)
	// EpochAmountsName is a human-readable name for the epoch amounts collection.
	EpochAmountsName = "epoch_amounts"
	// DepositRequestsKeyPrefix is the prefix for investor deposit orders.
	DepositRequestsKeyPrefix = collections.NewPrefix(6)
	// DepositRequestsName is a human-readable name for the deposit requests collection.
	DepositRequestsName = "deposit_requests"
	// RedeemRequestsKeyPrefix is the prefix for investor redeem orders.
	RedeemRequestsKeyPrefix = collections.NewPrefix(7)
	// RedeemRequestsName is a human-readable name for the redeem requests collection.
	RedeemRequestsName = "redeem_requests"
	// PendingDepositsKeyPrefix is the prefix for aggregate pending deposit totals.
	PendingDepositsKeyPrefix = collections.NewPrefix(8)
	// PendingDepositsName is a human-readable name for the pending deposits collection.
	PendingDepositsName = "pending_deposits"
	// PendingRedeemsKeyPrefix is the prefix for aggregate pending redeem totals.
	PendingRedeemsKeyPrefix = collections.NewPrefix(9)
	// PendingRedeemsName is a human-readable name for the pending redeems collection.
	PendingRedeemsName = "pending_redeems"
	// SharePricesKeyPrefix is the prefix for per share class price records.
	SharePricesKeyPrefix = collections.NewPrefix(10)
	// SharePricesName is a human-readable name for the share prices collection.
	SharePricesName = "share_prices"
	// NetworkIssuanceKeyPrefix is the prefix for per-network signed issuance counters.
	NetworkIssuanceKeyPrefix = collections.NewPrefix(11)
	// NetworkIssuanceName is a human-readable name for the network issuance collection.
	NetworkIssuanceName = "network_issuance"
)
