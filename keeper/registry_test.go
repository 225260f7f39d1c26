package keeper_test

import (
	"strings"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/types"
)

func TestAddShareClass(t *testing.T) {
	ctx, k, _ := setupKeeper(t)

	scId1 := addTestShareClass(t, ctx, k)
	require.Equal(t, testPool, scId1.PoolId(), "id should embed the pool id")
	require.Equal(t, uint32(1), scId1.Index(), "the first class of a pool gets index 1")

	scId2, err := k.AddShareClass(ctx, testPool, "Junior Tranche", "JNR", randomSalt(t))
	require.NoError(t, err)
	require.Equal(t, uint32(2), scId2.Index(), "indices are sequential within a pool")

	count, err := k.GetShareClassCount(ctx, testPool)
	require.NoError(t, err)
	require.Equal(t, uint32(2), count)

	next, err := k.PreviewNextShareClassId(ctx, testPool)
	require.NoError(t, err)
	require.Equal(t, types.NewShareClassId(testPool, 3), next, "preview should match the next assigned id")

	sc, err := k.GetShareClass(ctx, testPool, scId1)
	require.NoError(t, err)
	require.Equal(t, "Senior Tranche", sc.Name)
	require.Equal(t, "SNR", sc.Symbol)
	require.True(t, sc.TotalIssuance.IsZero(), "a new class starts with no issued shares")

	exists, err := k.ShareClassExists(ctx, testPool, scId1)
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = k.ShareClassExists(ctx, types.PoolId(42), scId1)
	require.NoError(t, err)
	require.False(t, exists, "existence is scoped to the owning pool")
}

func TestAddShareClassValidation(t *testing.T) {
	ctx, k, _ := setupKeeper(t)

	cases := []struct {
		name    string
		scName  string
		symbol  string
		wantErr error
	}{
		{"empty name", "", "SNR", types.ErrInvalidMetadataName},
		{"name too long", strings.Repeat("n", 129), "SNR", types.ErrInvalidMetadataName},
		{"empty symbol", "Senior", "", types.ErrInvalidMetadataSymbol},
		{"symbol too long", "Senior", strings.Repeat("s", 33), types.ErrInvalidMetadataSymbol},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := k.AddShareClass(ctx, testPool, tc.scName, tc.symbol, randomSalt(t))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Boundary lengths are accepted.
	_, err := k.AddShareClass(ctx, testPool, strings.Repeat("n", 128), strings.Repeat("s", 32), randomSalt(t))
	require.NoError(t, err, "maximum-length metadata should be accepted")

	var zeroSalt types.Salt
	_, err = k.AddShareClass(ctx, testPool, "Senior", "SNR", zeroSalt)
	require.ErrorIs(t, err, types.ErrInvalidSalt, "zero salt should be rejected")

	salt := randomSalt(t)
	_, err = k.AddShareClass(ctx, testPool, "Senior", "SNR", salt)
	require.NoError(t, err)
	_, err = k.AddShareClass(ctx, types.PoolId(42), "Other Pool", "OTH", salt)
	require.ErrorIs(t, err, types.ErrAlreadyUsedSalt, "salts are unique across all pools")
}

func TestUpdateMetadata(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)

	require.NoError(t, k.UpdateMetadata(ctx, testPool, scId, "Renamed", "RNM"))

	sc, err := k.GetShareClass(ctx, testPool, scId)
	require.NoError(t, err)
	require.Equal(t, "Renamed", sc.Name)
	require.Equal(t, "RNM", sc.Symbol)

	err = k.UpdateMetadata(ctx, testPool, scId, "", "RNM")
	require.ErrorIs(t, err, types.ErrInvalidMetadataName, "updates run the same validation as creation")

	err = k.UpdateMetadata(ctx, testPool, types.NewShareClassId(testPool, 99), "Renamed", "RNM")
	require.ErrorIs(t, err, types.ErrShareClassNotFound)
}

func TestUpdateSharePrice(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	now := ctx.BlockTime().Unix()

	err := k.UpdateSharePrice(ctx, testPool, scId, dec(t, "1.5"), now+60)
	require.ErrorIs(t, err, types.ErrCannotSetFuturePrice, "prices dated after block time are rejected")

	require.NoError(t, k.UpdateSharePrice(ctx, testPool, scId, dec(t, "1.5"), now))

	price, err := k.SharePricePoolPerShare(ctx, scId)
	require.NoError(t, err)
	require.Equal(t, dec(t, "1.5").String(), price.Price.String())
	require.Equal(t, now, price.ComputedAt)

	// No monotonicity: an older, lower quote still overwrites.
	require.NoError(t, k.UpdateSharePrice(ctx, testPool, scId, dec(t, "0.9"), now-600), "stale quotes overwrite freely")

	price, err = k.SharePricePoolPerShare(ctx, scId)
	require.NoError(t, err)
	require.Equal(t, dec(t, "0.9").String(), price.Price.String())
	require.Equal(t, now-600, price.ComputedAt)

	err = k.UpdateSharePrice(ctx, testPool, scId, dec(t, "-1"), now)
	require.ErrorIs(t, err, types.ErrInvalidRequest, "negative prices are rejected")
}

func TestUpdateSharesAndIssuance(t *testing.T) {
	ctx, k, _ := setupKeeper(t)
	scId := addTestShareClass(t, ctx, k)
	networkA, networkB := types.NetworkId(1), types.NetworkId(2)

	// A burn can land before the matching mint when networks report out of
	// order. The total moves immediately; only the per-network read fails.
	require.NoError(t, k.UpdateShares(ctx, networkA, testPool, scId, sdkmath.NewInt(50), false))

	_, err := k.Issuance(ctx, testPool, scId, networkA)
	require.ErrorIs(t, err, types.ErrNegativeIssuance, "a net-negative network should not be readable")

	total, err := k.TotalIssuance(ctx, testPool, scId)
	require.NoError(t, err)
	require.Equal(t, "-50", total.String(), "the class total tracks the signed sum")

	require.NoError(t, k.UpdateShares(ctx, networkA, testPool, scId, sdkmath.NewInt(80), true))

	issuance, err := k.Issuance(ctx, testPool, scId, networkA)
	require.NoError(t, err, "the read should recover once the mint lands")
	require.Equal(t, "30", issuance.String())

	issuance, err = k.Issuance(ctx, testPool, scId, networkB)
	require.NoError(t, err, "an untouched network reads as zero")
	require.True(t, issuance.IsZero())

	total, err = k.TotalIssuance(ctx, testPool, scId)
	require.NoError(t, err)
	require.Equal(t, "30", total.String())

	err = k.UpdateShares(ctx, networkA, testPool, scId, sdkmath.ZeroInt(), true)
	require.ErrorIs(t, err, types.ErrInvalidRequest, "zero deltas are rejected")
}
