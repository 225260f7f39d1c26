package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/types"
)

func validGenesisState() types.GenesisState {
	var salt types.Salt
	salt[0] = 1
	sc := types.NewShareClass(1, 1, "Senior Tranche", "SNR", salt)
	return types.GenesisState{
		ShareClasses:     []types.ShareClass{sc},
		ShareClassCounts: []types.ShareClassCountRecord{{PoolId: 1, Count: 1}},
		Salts:            []types.Salt{salt},
		Epochs:           []types.EpochRecord{{PoolId: 1, EpochId: 3}},
		EpochPointers: []types.EpochPointersRecord{{
			ShareClassId: sc.Id,
			Asset:        "uusdc",
			Pointers:     types.EpochPointers{LatestDepositApproval: 2, LatestIssuance: 1},
		}},
		PendingDeposits: []types.PendingRecord{{ShareClassId: sc.Id, Asset: "uusdc", Amount: sdkmath.NewInt(100)}},
	}
}

func TestGenesisValidate(t *testing.T) {
	require.NoError(t, types.DefaultGenesisState().Validate(), "the default genesis should validate")
	require.NoError(t, validGenesisState().Validate(), "a populated genesis should validate")
}

func TestGenesisValidateRejectsDuplicates(t *testing.T) {
	gs := validGenesisState()
	gs.ShareClasses = append(gs.ShareClasses, gs.ShareClasses[0])
	require.ErrorContains(t, gs.Validate(), "duplicate share class")
}

func TestGenesisValidateRejectsZeroSalt(t *testing.T) {
	gs := validGenesisState()
	gs.Salts = append(gs.Salts, types.Salt{})
	require.ErrorContains(t, gs.Validate(), "zero salt")
}

func TestGenesisValidateRejectsPointerDisorder(t *testing.T) {
	gs := validGenesisState()
	gs.EpochPointers[0].Pointers.LatestIssuance = 5
	require.ErrorContains(t, gs.Validate(), "out of order", "issuance may not lead approval")
}

func TestGenesisValidateRejectsNegativePending(t *testing.T) {
	gs := validGenesisState()
	gs.PendingDeposits[0].Amount = sdkmath.NewInt(-1)
	require.ErrorContains(t, gs.Validate(), "negative pending")
}
