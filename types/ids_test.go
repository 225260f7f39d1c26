package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/types"
)

func TestShareClassIdPacking(t *testing.T) {
	tests := []struct {
		name   string
		poolId types.PoolId
		index  uint32
	}{
		{"first class of pool 1", 1, 1},
		{"large pool id", types.PoolId(1) << 63, 1},
		{"large index", 42, 1<<32 - 1},
		{"both maxed", types.PoolId(1<<64 - 1), 1<<32 - 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id := types.NewShareClassId(tc.poolId, tc.index)
			require.Equal(t, tc.poolId, id.PoolId(), "pool id should round-trip")
			require.Equal(t, tc.index, id.Index(), "index should round-trip")
			require.False(t, id.IsZero())

			decoded, err := types.ShareClassIdFromBytes(id.Bytes())
			require.NoError(t, err)
			require.Equal(t, id, decoded, "byte round trip should be lossless")
		})
	}
}

func TestShareClassIdDistinctness(t *testing.T) {
	// Packing must not collide across the pool/index boundary.
	a := types.NewShareClassId(1, 2)
	b := types.NewShareClassId(2, 1)
	require.NotEqual(t, a, b, "swapped pool and index must yield distinct ids")
}

func TestShareClassIdFromBytesRejectsBadLength(t *testing.T) {
	_, err := types.ShareClassIdFromBytes([]byte{1, 2, 3})
	require.Error(t, err, "short input should be rejected")
	_, err = types.ShareClassIdFromBytes(make([]byte, 17))
	require.Error(t, err, "long input should be rejected")
}

func TestShareClassIdString(t *testing.T) {
	id := types.NewShareClassId(1, 1)
	require.Equal(t, "0x00000000000000010000000000000001", id.String())
}

func TestSaltIsZero(t *testing.T) {
	var zero types.Salt
	require.True(t, zero.IsZero())

	var salt types.Salt
	salt[31] = 1
	require.False(t, salt.IsZero())
}
