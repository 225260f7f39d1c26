package utils_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/utils"
)

func dec(t *testing.T, s string) sdkmath.LegacyDec {
	t.Helper()
	d, err := sdkmath.LegacyNewDecFromStr(s)
	require.NoError(t, err, "LegacyNewDecFromStr(%q)", s)
	return d
}

func TestApplyRatio(t *testing.T) {
	tests := []struct {
		name      string
		amount    sdkmath.Int
		ratio     string
		expected  string
		expectErr bool
	}{
		{name: "full ratio", amount: sdkmath.NewInt(1000), ratio: "1", expected: "1000"},
		{name: "zero ratio", amount: sdkmath.NewInt(1000), ratio: "0", expected: "0"},
		{name: "exact fraction", amount: sdkmath.NewInt(1000), ratio: "0.2", expected: "200"},
		{name: "rounds down", amount: sdkmath.NewInt(999), ratio: "0.7", expected: "699"},
		{name: "rounds down small", amount: sdkmath.NewInt(1), ratio: "0.999999999999999999", expected: "0"},
		{name: "zero amount", amount: sdkmath.ZeroInt(), ratio: "0.5", expected: "0"},
		{name: "negative amount", amount: sdkmath.NewInt(-1), ratio: "0.5", expectErr: true},
		{name: "ratio above one", amount: sdkmath.NewInt(100), ratio: "1.1", expectErr: true},
		{name: "negative ratio", amount: sdkmath.NewInt(100), ratio: "-0.5", expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := utils.ApplyRatio(tc.amount, dec(t, tc.ratio))
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got.String())
		})
	}
}

func TestSharesForPoolAmount(t *testing.T) {
	tests := []struct {
		name      string
		pool      sdkmath.Int
		nav       string
		expected  string
		expectErr bool
	}{
		{name: "par price", pool: sdkmath.NewInt(1000), nav: "1", expected: "1000"},
		{name: "premium price halves shares", pool: sdkmath.NewInt(1000), nav: "2", expected: "500"},
		{name: "discount price", pool: sdkmath.NewInt(1000), nav: "0.5", expected: "2000"},
		{name: "rounds down", pool: sdkmath.NewInt(10), nav: "3", expected: "3"},
		{name: "18 decimal round trip", pool: sdkmath.NewIntWithDecimal(1, 21), nav: "2", expected: sdkmath.NewIntWithDecimal(5, 20).String()},
		{name: "zero price", pool: sdkmath.NewInt(10), nav: "0", expectErr: true},
		{name: "negative price", pool: sdkmath.NewInt(10), nav: "-1", expectErr: true},
		{name: "negative pool amount", pool: sdkmath.NewInt(-10), nav: "1", expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := utils.SharesForPoolAmount(tc.pool, dec(t, tc.nav))
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got.String())
		})
	}
}

func TestPoolAmountForShares(t *testing.T) {
	tests := []struct {
		name      string
		shares    sdkmath.Int
		nav       string
		expected  string
		expectErr bool
	}{
		{name: "par price", shares: sdkmath.NewInt(500), nav: "1", expected: "500"},
		{name: "premium price", shares: sdkmath.NewInt(500), nav: "2", expected: "1000"},
		{name: "rounds down", shares: sdkmath.NewInt(1), nav: "0.3", expected: "0"},
		{name: "zero price values nothing", shares: sdkmath.NewInt(500), nav: "0", expected: "0"},
		{name: "negative price", shares: sdkmath.NewInt(500), nav: "-1", expectErr: true},
		{name: "negative shares", shares: sdkmath.NewInt(-5), nav: "1", expectErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := utils.PoolAmountForShares(tc.shares, dec(t, tc.nav))
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, got.String())
		})
	}
}

func TestProRata(t *testing.T) {
	tests := []struct {
		name        string
		amount      int64
		numerator   int64
		denominator int64
		expected    string
	}{
		{name: "even split", amount: 100, numerator: 50, denominator: 100, expected: "50"},
		{name: "full entitlement", amount: 100, numerator: 100, denominator: 100, expected: "100"},
		{name: "rounds down", amount: 1, numerator: 1, denominator: 3, expected: "0"},
		{name: "rounds down uneven", amount: 233, numerator: 233, denominator: 699, expected: "77"},
		{name: "zero denominator", amount: 100, numerator: 50, denominator: 0, expected: "0"},
		{name: "zero amount", amount: 0, numerator: 50, denominator: 100, expected: "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := utils.ProRata(sdkmath.NewInt(tc.amount), sdkmath.NewInt(tc.numerator), sdkmath.NewInt(tc.denominator))
			require.Equal(t, tc.expected, got.String())
		})
	}
}
