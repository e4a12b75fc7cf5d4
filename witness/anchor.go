package witness

import (
	"github.com/lnp-bp/rgbcore/dbc"
	"github.com/lnp-bp/rgbcore/mpc"
	"github.com/lnp-bp/rgbcore/seal"
)

// SealWitness binds a public witness transaction to the commitment that
// proves a transition bundle was anchored into it.
type SealWitness struct {
	Public      PubWitness
	MerkleBlock mpc.MerkleBlock
	DbcProof    dbc.Proof
}

// WitnessId returns the witness transaction's identifier.
func (w SealWitness) WitnessId() seal.Txid { return w.Public.Txid() }

// MergeReveal merges other into w. DbcProof must match exactly
// (ErrDbcMismatch otherwise); Public and MerkleBlock merge recursively.
func (w SealWitness) MergeReveal(other SealWitness) (SealWitness, error) {
	if !w.DbcProof.Equal(other.DbcProof) {
		return SealWitness{}, ErrDbcMismatch
	}
	pub, err := w.Public.MergeReveal(other.Public)
	if err != nil {
		return SealWitness{}, err
	}
	mb, err := w.MerkleBlock.MergeReveal(other.MerkleBlock)
	if err != nil {
		return SealWitness{}, err
	}
	return SealWitness{Public: pub, MerkleBlock: mb, DbcProof: w.DbcProof}, nil
}

// Anchor pairs an MPC proof with the DBC proof variant that embeds it in
// a witness transaction. D models the DBC proof shape; this engine only
// needs the one concrete dbc.Proof shape (see SPEC_FULL's MPC/DBC
// stand-ins note), so Anchor is not made generic over D.
type Anchor struct {
	MpcProof mpc.MerkleBlock
	DbcProof dbc.Proof
}

// WitnessBundle pairs a witness transaction with its anchor and the
// transition bundle it commits to. Equal and ordered by PubWitness only.
type WitnessBundle struct {
	PubWitness PubWitness
	Anchor     Anchor
	Bundle     TransitionBundle
}

// Compare orders WitnessBundle values by PubWitness (i.e. by txid) only.
func (b WitnessBundle) Compare(other WitnessBundle) int {
	return b.PubWitness.Compare(other.PubWitness)
}

// KnownBundleIDs returns every bundle id the anchor's MPC block currently
// discloses, ported from anchors.rs's SealWitness::known_bundle_ids
// (supplemented feature, see SPEC_FULL §6).
func (b WitnessBundle) KnownBundleIDs() []seal.BundleId {
	return b.Anchor.MpcProof.KnownBundleIDs()
}
