// Package merkle implements the binary Merkle tree primitives the rest of
// the fraud-proof engine is built on: a Keccak-256 pair hash, a lazily
// materialized zero-hash sequence, and an immutable, structurally shared
// node representation addressed by generalized index.
package merkle

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Root is a 32-byte Merkle root or chunk value.
type Root = common.Hash

// HashPair computes the internal node hash keccak256(left || right).
func HashPair(left, right Root) Root {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return Root(crypto.Keccak256Hash(buf[:]))
}

var (
	zeroHashMu    sync.Mutex
	zeroHashCache = []Root{{}} // Z[0] = 0x00..00
)

// ZeroHash returns Z[depth], the Keccak-256 root of an all-zero subtree of
// the given depth. Z[0] is the all-zero chunk; Z[d+1] = keccak(Z[d]||Z[d]).
// The sequence is materialized lazily and cached, so repeated calls for
// shallow depths (by far the common case) are O(1).
func ZeroHash(depth int) Root {
	if depth < 0 {
		panic("merkle: negative zero-hash depth")
	}
	zeroHashMu.Lock()
	defer zeroHashMu.Unlock()
	for len(zeroHashCache) <= depth {
		last := zeroHashCache[len(zeroHashCache)-1]
		zeroHashCache = append(zeroHashCache, HashPair(last, last))
	}
	return zeroHashCache[depth]
}
