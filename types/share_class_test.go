package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/types"
)

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name     string
		scName   string
		symbol   string
		expected error
	}{
		{"valid", "Senior Tranche", "SNR", nil},
		{"single char fields", "n", "s", nil},
		{"max lengths", strings.Repeat("n", 128), strings.Repeat("s", 32), nil},
		{"empty name", "", "SNR", types.ErrInvalidMetadataName},
		{"name over limit", strings.Repeat("n", 129), "SNR", types.ErrInvalidMetadataName},
		{"empty symbol", "Senior", "", types.ErrInvalidMetadataSymbol},
		{"symbol over limit", "Senior", strings.Repeat("s", 33), types.ErrInvalidMetadataSymbol},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := types.ValidateMetadata(tc.scName, tc.symbol)
			if tc.expected == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestShareClassValidate(t *testing.T) {
	var salt types.Salt
	salt[0] = 0xab
	sc := types.NewShareClass(3, 1, "Senior Tranche", "SNR", salt)
	require.NoError(t, sc.Validate(), "a freshly constructed class should validate")

	mismatched := sc
	mismatched.Index = 2
	require.ErrorIs(t, mismatched.Validate(), types.ErrShareClassNotFound, "id must match pool and index")

	noSalt := types.NewShareClass(3, 1, "Senior Tranche", "SNR", types.Salt{})
	require.ErrorIs(t, noSalt.Validate(), types.ErrInvalidSalt)
}
