package contract

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/lnp-bp/rgbcore/seal"
)

// GraphSeal is a transition-output seal definition: either bound to a
// concrete prior transaction (Txid set) or left to default to whichever
// transaction ultimately anchors the operation that carries it (Txid
// nil), per spec.md §4.3's index_transition_assignments note. Genesis has
// no anchoring witness to default to, so a genesis seal with a nil Txid
// resolves against the zero Txid.
type GraphSeal struct {
	Txid *seal.Txid
	Vout uint32
}

// Resolve turns g into a concrete OutputSeal, defaulting to witnessID
// when g carries no txid of its own.
func (g GraphSeal) Resolve(witnessID seal.Txid) seal.OutputSeal {
	txid := witnessID
	if g.Txid != nil {
		txid = *g.Txid
	}
	return seal.OutputSeal{Hash: txid, Index: g.Vout}
}

// Conceal derives the SecretSeal commitment that hides g's concrete
// outpoint, the property stash.SealSecret's reveal lookup and
// AddSecretSeal's presence check both key off (spec.md §4.2's
// seal_secret: "finds the revealed seal whose concealment equals the
// argument"; memory.rs's `GraphSeal::conceal`). The blinding-factor
// scheme concealment actually uses is out of scope here (the
// strict-encoding/schema layer, spec.md §1); this models the one
// property the rest of the engine depends on — two structurally equal
// GraphSeals conceal to the same value, distinct ones don't — as a
// content digest over the seal's own fields, the same chainhash.HashH
// single-round-SHA256 helper the teacher's own zpay32 package uses for
// content commitments.
func (g GraphSeal) Conceal() seal.SecretSeal {
	var buf bytes.Buffer
	if g.Txid != nil {
		buf.WriteByte(1)
		buf.Write(g.Txid[:])
	} else {
		buf.WriteByte(0)
	}
	_ = binary.Write(&buf, binary.BigEndian, g.Vout)
	return seal.SecretSeal(chainhash.HashH(buf.Bytes()))
}

// RawAssign is one not-yet-indexed operation output: either a revealed
// (seal, state) pair, or a confidential assignment that only discloses a
// SecretSeal terminal until a later reveal. Exactly one of Seal or
// Concealed is set.
type RawAssign[S KnownState] struct {
	Seal      *GraphSeal
	Concealed *seal.SecretSeal
	State     S
}

// IsRevealed reports whether a carries a concrete seal (as opposed to a
// confidential terminal awaiting reveal).
func (a RawAssign[S]) IsRevealed() bool { return a.Seal != nil }

// Assignments groups an operation's owned-state outputs by category, the
// three buckets spec.md §4.4 names: declarative (rights), fungible,
// structured data.
type Assignments struct {
	Rights    map[AssignmentType][]RawAssign[VoidState]
	Fungibles map[AssignmentType][]RawAssign[RevealedValue]
	Data      map[AssignmentType][]RawAssign[RevealedData]
}

// NewAssignments returns an empty Assignments ready to be populated.
func NewAssignments() Assignments {
	return Assignments{
		Rights:    make(map[AssignmentType][]RawAssign[VoidState]),
		Fungibles: make(map[AssignmentType][]RawAssign[RevealedValue]),
		Data:      make(map[AssignmentType][]RawAssign[RevealedData]),
	}
}

// Genesis is the one operation every contract starts from: it has no
// witness transaction and no bundle, so every assignment it produces
// carries Witness=nil and BundleID=nil.
type Genesis struct {
	OpID        seal.OpId
	SchemaID    seal.SchemaId
	ContractID  seal.ContractId
	Globals     map[GlobalStateType][]RevealedData
	Assignments Assignments
}

// Transition is a state-transition operation, always carried inside a
// TransitionBundle and anchored by exactly one witness transaction once
// the bundle is mined or seen.
type Transition struct {
	OpID        seal.OpId
	Globals     map[GlobalStateType][]RevealedData
	Assignments Assignments
	// Nonce disambiguates transitions replayed with an identical
	// WitnessOrd, the final tiebreak key in GlobalOrd's ordering.
	Nonce uint64
}
