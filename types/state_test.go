package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fundlabs/shareclass/types"
)

func TestEpochContextLatch(t *testing.T) {
	ectx := types.NewEpochContext()

	_, ok := ectx.ApprovalEpoch(1)
	require.False(t, ok, "a fresh context has nothing latched")

	ectx.Latch(1, 7)
	epochId, ok := ectx.ApprovalEpoch(1)
	require.True(t, ok)
	require.Equal(t, uint64(7), epochId, "the latched epoch is returned as-is")

	_, ok = ectx.ApprovalEpoch(2)
	require.False(t, ok, "latches are per pool")
}

func TestNewUserOrder(t *testing.T) {
	order := types.NewUserOrder(5)
	require.True(t, order.Pending.IsZero(), "a new order carries no pending amount")
	require.Equal(t, uint64(5), order.LastUpdate)
}
