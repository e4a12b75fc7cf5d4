// Package mpc models the narrow seam this engine needs onto the external
// multi-protocol-commitment library: a Merkle structure that commits many
// bundle identifiers under one root. The commitment scheme itself (proof
// construction, verification against a tapret/opret output) is out of
// scope; only the shape merge-reveal and bundle-lookup need is modeled.
package mpc

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnp-bp/rgbcore/seal"
)

// ErrRootMismatch is returned by MergeReveal when two blocks commit to
// different roots and so cannot be the same logical object.
var ErrRootMismatch = errors.New("mpc: merkle block root mismatch")

// MerkleBlock is the revealable portion of an MPC commitment: its root,
// plus whatever (bundle id -> message hash) pairs have been disclosed so
// far. A fully concealed block has an empty Known map; reveals add to it
// monotonically.
type MerkleBlock struct {
	Root  chainhash.Hash
	Known map[seal.BundleId]chainhash.Hash
}

// NewMerkleBlock returns a concealed block committing to root.
func NewMerkleBlock(root chainhash.Hash) MerkleBlock {
	return MerkleBlock{Root: root, Known: make(map[seal.BundleId]chainhash.Hash)}
}

// KnownBundleIDs returns every bundle id this block currently discloses,
// ported from anchors.rs's SealWitness::known_bundle_ids.
func (m MerkleBlock) KnownBundleIDs() []seal.BundleId {
	ids := make([]seal.BundleId, 0, len(m.Known))
	for id := range m.Known {
		ids = append(ids, id)
	}
	return ids
}

// MergeReveal unions m's and other's known messages. Roots must match
// exactly; a mismatch means the two blocks do not describe the same
// commitment and cannot be merged.
func (m MerkleBlock) MergeReveal(other MerkleBlock) (MerkleBlock, error) {
	if m.Root != other.Root {
		return MerkleBlock{}, ErrRootMismatch
	}
	merged := MerkleBlock{Root: m.Root, Known: make(map[seal.BundleId]chainhash.Hash, len(m.Known)+len(other.Known))}
	for id, msg := range m.Known {
		merged.Known[id] = msg
	}
	for id, msg := range other.Known {
		merged.Known[id] = msg
	}
	return merged, nil
}
