package types

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// PoolId identifies a pool across all networks.
type PoolId uint64

// NetworkId identifies the network on which shares are held.
type NetworkId uint32

// ShareClassId identifies a share class. Ids are derived deterministically
// from the pool id and a per-pool sequential index, packed big-endian as
// (poolId << 64) | index.
type ShareClassId [16]byte

// Salt uniquely identifies a share class deployment. A salt may never be
// reused, even across pools.
type Salt [32]byte

// NewShareClassId packs a pool id and a 1-based index into a share class id.
func NewShareClassId(poolId PoolId, index uint32) ShareClassId {
	var id ShareClassId
	binary.BigEndian.PutUint64(id[:8], uint64(poolId))
	binary.BigEndian.PutUint64(id[8:], uint64(index))
	return id
}

// ShareClassIdFromBytes converts a raw store key back into a ShareClassId.
func ShareClassIdFromBytes(bz []byte) (ShareClassId, error) {
	var id ShareClassId
	if len(bz) != len(id) {
		return id, fmt.Errorf("invalid share class id length: %d", len(bz))
	}
	copy(id[:], bz)
	return id, nil
}

// PoolId extracts the pool id embedded in the share class id.
func (id ShareClassId) PoolId() PoolId {
	return PoolId(binary.BigEndian.Uint64(id[:8]))
}

// Index extracts the per-pool sequential index embedded in the share class id.
func (id ShareClassId) Index() uint32 {
	return uint32(binary.BigEndian.Uint64(id[8:]))
}

// Bytes returns the id as a raw store key.
func (id ShareClassId) Bytes() []byte {
	return id[:]
}

// IsZero reports whether the id is unset.
func (id ShareClassId) IsZero() bool {
	return id == ShareClassId{}
}

func (id ShareClassId) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// Bytes returns the salt as a raw store key.
func (s Salt) Bytes() []byte {
	return s[:]
}

// IsZero reports whether the salt is the all-zero value, which is never valid.
func (s Salt) IsZero() bool {
	return s == Salt{}
}

func (s Salt) String() string {
	return "0x" + hex.EncodeToString(s[:])
}
