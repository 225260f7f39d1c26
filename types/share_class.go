package types

import (
	sdkmath "cosmossdk.io/math"

	"cosmossdk.io/errors"
)

const (
	// MaxNameLength is the longest allowed share class name.
	MaxNameLength = 128
	// MaxSymbolLength is the longest allowed share class symbol.
	MaxSymbolLength = 32
)

// ShareClass is a named, priced bucket of ownership units within a pool.
// A share class is immutable once created; only its metadata mutates.
type ShareClass struct {
	Id            ShareClassId `json:"id"`
	PoolId        PoolId       `json:"pool_id"`
	Index         uint32       `json:"index"`
	Name          string       `json:"name"`
	Symbol        string       `json:"symbol"`
	Salt          Salt         `json:"salt"`
	TotalIssuance sdkmath.Int  `json:"total_issuance"`
}

// NewShareClass creates a share class with zero issuance for the given pool.
func NewShareClass(poolId PoolId, index uint32, name, symbol string, salt Salt) ShareClass {
	return ShareClass{
		Id:            NewShareClassId(poolId, index),
		PoolId:        poolId,
		Index:         index,
		Name:          name,
		Symbol:        symbol,
		Salt:          salt,
		TotalIssuance: sdkmath.ZeroInt(),
	}
}

// Validate verifies the share class's integrity and internal fields.
func (sc ShareClass) Validate() error {
	if sc.Id.IsZero() || sc.Id != NewShareClassId(sc.PoolId, sc.Index) {
		return errors.Wrapf(ErrShareClassNotFound, "id %s does not match pool %d index %d", sc.Id, sc.PoolId, sc.Index)
	}
	if err := ValidateMetadata(sc.Name, sc.Symbol); err != nil {
		return err
	}
	if sc.Salt.IsZero() {
		return errors.Wrap(ErrInvalidSalt, "salt cannot be zero")
	}
	if sc.TotalIssuance.IsNil() {
		return errors.Wrapf(ErrInvalidRequest, "total issuance must be set for %s", sc.Id)
	}
	return nil
}

// ValidateMetadata checks the display metadata bounds for a share class:
// name length in (0,128] and symbol length in (0,32].
func ValidateMetadata(name, symbol string) error {
	if len(name) == 0 || len(name) > MaxNameLength {
		return errors.Wrapf(ErrInvalidMetadataName, "name length %d must be in (0,%d]", len(name), MaxNameLength)
	}
	if len(symbol) == 0 || len(symbol) > MaxSymbolLength {
		return errors.Wrapf(ErrInvalidMetadataSymbol, "symbol length %d must be in (0,%d]", len(symbol), MaxSymbolLength)
	}
	return nil
}
