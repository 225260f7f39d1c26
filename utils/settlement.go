package utils

import (
	"fmt"

	"cosmossdk.io/math"
)

// Settlement arithmetic.
//
// Every division in the settlement path rounds toward zero. Rounding down
// amounts owed to the party being computed guarantees that the sum of all
// per-investor claims never exceeds an epoch's issued or approved total; the
// leftover (at most a few atomic units per epoch) stays inside the system as
// an unclaimable surplus.

// ApplyRatio returns floor(amount * ratio) for a fixed-point ratio.
// Error if amount is negative or the ratio is outside [0,1].
func ApplyRatio(amount math.Int, ratio math.LegacyDec) (math.Int, error) {
	if amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid input: negative amount %s", amount)
	}
	if ratio.IsNil() || ratio.IsNegative() || ratio.GT(math.LegacyOneDec()) {
		return math.Int{}, fmt.Errorf("invalid ratio: %v", ratio)
	}
	return ratio.MulInt(amount).TruncateInt(), nil
}

// SharesForPoolAmount returns the share delta minted for a pool-denominated
// amount at the given price:
//
//	shares = floor( poolAmount / navPerShare )
//
// Error if navPerShare is not strictly positive.
func SharesForPoolAmount(poolAmount math.Int, navPerShare math.LegacyDec) (math.Int, error) {
	if navPerShare.IsNil() || !navPerShare.IsPositive() {
		return math.Int{}, fmt.Errorf("invalid nav per share: %v", navPerShare)
	}
	if poolAmount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid input: negative pool amount %s", poolAmount)
	}
	return math.LegacyNewDecFromInt(poolAmount).QuoTruncate(navPerShare).TruncateInt(), nil
}

// PoolAmountForShares returns the pool-denominated value of a share amount
// at the given price:
//
//	poolAmount = floor( shares * navPerShare )
func PoolAmountForShares(shares math.Int, navPerShare math.LegacyDec) (math.Int, error) {
	if navPerShare.IsNil() || navPerShare.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid nav per share: %v", navPerShare)
	}
	if shares.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid input: negative share amount %s", shares)
	}
	return navPerShare.MulInt(shares).TruncateInt(), nil
}

// ProRata returns floor(amount * numerator / denominator), the investor's
// portion of an epoch total. A zero denominator yields zero rather than an
// error: an epoch with nothing approved owes nothing.
func ProRata(amount, numerator, denominator math.Int) math.Int {
	if denominator.IsZero() || amount.IsZero() || numerator.IsZero() {
		return math.ZeroInt()
	}
	return amount.Mul(numerator).Quo(denominator)
}
