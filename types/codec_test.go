package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/types"
)

// State values round-trip through the JSON codec, including the big-integer
// fields that encode as strings.
func TestJSONValueCodec(t *testing.T) {
	codec := types.JSONValue[types.EpochAmounts]("epoch_amounts")

	amounts := types.NewEpochAmounts()
	amounts.Deposits.ApprovalRate = sdkmath.LegacyMustNewDecFromStr("0.25")
	amounts.Deposits.ApprovedAsset = sdkmath.NewInt(1_000_000)
	amounts.Deposits.ApprovedPool = sdkmath.NewIntWithDecimal(1, 21)
	amounts.Deposits.IssuedShares = sdkmath.NewIntWithDecimal(5, 20)
	amounts.Deposits.Issued = true

	bz, err := codec.Encode(amounts)
	require.NoError(t, err, "encode should succeed")

	decoded, err := codec.Decode(bz)
	require.NoError(t, err, "decode should succeed")
	require.Equal(t, amounts, decoded, "round trip should be lossless")

	_, err = codec.Decode([]byte("{not json"))
	require.ErrorContains(t, err, "epoch_amounts", "decode errors should name the value type")

	require.Equal(t, "epoch_amounts", codec.ValueType())
	require.Contains(t, codec.Stringify(amounts), "1000000", "stringify should render field values")
}
