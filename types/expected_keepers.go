package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// PriceSource converts amounts between an asset denomination and a pool's
// unit of account, including decimal rescaling. Implementations must be
// deterministic and synchronous; conversion failures propagate unretried.
type PriceSource interface {
	// AssetToPool converts an asset-denominated amount into the pool
	// denomination, rounding down.
	AssetToPool(ctx context.Context, poolId PoolId, assetId string, amount sdkmath.Int) (sdkmath.Int, error)

	// PoolToAsset converts a pool-denominated amount into the asset
	// denomination, rounding down. It is the reciprocal of AssetToPool.
	PoolToAsset(ctx context.Context, poolId PoolId, assetId string, amount sdkmath.Int) (sdkmath.Int, error)
}
