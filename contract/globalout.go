package contract

import (
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

// OpWitness tags where a global-state item's operation came from: the
// contract genesis, or a state transition anchored to a given witness
// transaction under a given assignment type. Ported from memory.rs's
// OpWitness::from(OrdOpRef).
type OpWitness struct {
	genesis bool
	txid    seal.Txid
	ty      AssignmentType
}

// AssignmentType identifies an owned-state slot a schema declares
// (rights/fungible/data), reusing seal.AssignmentType's width.
type AssignmentType = seal.AssignmentType

// GenesisWitness is the OpWitness carried by every item produced by a
// contract's genesis operation.
var GenesisWitness = OpWitness{genesis: true}

// TransitionWitness tags a global-state item produced by a state
// transition anchored to txid under assignment type ty.
func TransitionWitness(txid seal.Txid, ty AssignmentType) OpWitness {
	return OpWitness{txid: txid, ty: ty}
}

// IsGenesis reports whether w originates from the contract genesis.
func (w OpWitness) IsGenesis() bool { return w.genesis }

// Transition returns the anchoring txid and assignment type, valid only
// when !w.IsGenesis().
func (w OpWitness) Transition() (seal.Txid, AssignmentType) { return w.txid, w.ty }

// GlobalOut is the full ordering key for one item of global state: which
// operation produced it, at which index within that operation's declared
// values, via which witness, and the operation's replay nonce (used to
// break ties between transitions sharing one witness ordinal).
type GlobalOut struct {
	OpId      seal.OpId
	Index     uint16
	OpWitness OpWitness
	Nonce     uint64
}

// GlobalOrd is the externally comparable ordinal used by global-state
// iteration. Genesis items always compare lowest; transition items order
// by (WitnessOrd, Nonce, OpId, Index) so that a reorg changing a
// WitnessOrd::Mined position deterministically reorders history.
type GlobalOrd struct {
	genesis bool
	ord     witness.WitnessOrd
	nonce   uint64
	opid    seal.OpId
	index   uint16
}

// GenesisOrd is the sentinel ordinal for a global-state item produced by
// genesis: it sorts before every transition-derived ordinal.
func GenesisOrd(index uint16) GlobalOrd {
	return GlobalOrd{genesis: true, index: index}
}

// TransitionOrd builds the ordinal for a transition-derived global-state
// item anchored at witness ordinal ord.
func TransitionOrd(opid seal.OpId, index uint16, nonce uint64, ord witness.WitnessOrd) GlobalOrd {
	return GlobalOrd{ord: ord, nonce: nonce, opid: opid, index: index}
}

// Compare orders two GlobalOrd values: genesis items first (equal to one
// another save for Index), then by WitnessOrd, then Nonce, then OpId,
// then Index.
func (o GlobalOrd) Compare(other GlobalOrd) int {
	if o.genesis != other.genesis {
		if o.genesis {
			return -1
		}
		return 1
	}
	if o.genesis {
		return compareUint16(o.index, other.index)
	}
	if c := o.ord.Compare(other.ord); c != 0 {
		return c
	}
	if o.nonce != other.nonce {
		if o.nonce < other.nonce {
			return -1
		}
		return 1
	}
	if c := o.opid.Compare(other.opid); c != 0 {
		return c
	}
	return compareUint16(o.index, other.index)
}

func compareUint16(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
