package witness

import (
	"sort"

	"github.com/lnp-bp/rgbcore/seal"
)

// TransitionBundle groups every state transition that consumes inputs
// from a single witness transaction. It is the minimal Go stand-in for
// the external rgb-core TransitionBundle type referenced, but never
// defined, by anchors.rs: here it carries just enough shape for the
// stash/index layers this engine does own — content addressing, the
// input-outpoint-to-operation map, and the set of known transition
// payloads — without reaching into the schema/VM layer that interprets
// a transition's actual semantics (out of scope per SPEC_FULL §1).
type TransitionBundle struct {
	BundleID seal.BundleId
	// InputMap records which operation each previously-owned outpoint
	// this bundle spends belongs to. index/mem.go's OpoutsByOutputs does
	// not read it; that query is built from operations' assignments.
	InputMap map[seal.OutputSeal]seal.OpId
	// KnownTransitions holds the opaque strict-encoded payload for each
	// transition this bundle discloses; a transition may be known by
	// id (as an InputMap target) without its payload being disclosed
	// yet, the same confidential/revealed distinction RawAssign models
	// for assignments.
	KnownTransitions map[seal.OpId][]byte
}

// NewTransitionBundle returns an empty bundle ready to be populated by
// the stash-layer writer that assembles it from a consignment.
func NewTransitionBundle(bundleID seal.BundleId) *TransitionBundle {
	return &TransitionBundle{
		BundleID:         bundleID,
		InputMap:         make(map[seal.OutputSeal]seal.OpId),
		KnownTransitions: make(map[seal.OpId][]byte),
	}
}

// OpIds returns every operation id this bundle references, sorted, the
// order KnownBundleIDs-style diagnostics want to print in.
func (b *TransitionBundle) OpIds() []seal.OpId {
	seen := make(map[seal.OpId]struct{})
	for _, opid := range b.InputMap {
		seen[opid] = struct{}{}
	}
	for opid := range b.KnownTransitions {
		seen[opid] = struct{}{}
	}
	out := make([]seal.OpId, 0, len(seen))
	for opid := range seen {
		out = append(out, opid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

// Reveal records a transition's disclosed payload, returning true iff
// this bundle did not already know it (the content-addressed
// idempotent-insert convention every stash write follows).
func (b *TransitionBundle) Reveal(opid seal.OpId, payload []byte) bool {
	if _, ok := b.KnownTransitions[opid]; ok {
		return false
	}
	b.KnownTransitions[opid] = payload
	return true
}
