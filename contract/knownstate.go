// Package contract implements the per-contract state projection: global
// state, owned-rights, fungible and structured-data assignments, and their
// filtered read path over a witness-ordinal map and invalid-bundle set.
package contract

import "bytes"

// KnownState is implemented by every concrete assignment payload type
// (VoidState, RevealedValue, RevealedData). Ported from assignments.rs's
// KnownState trait.
type KnownState interface {
	// IsFungible reports whether this state carries a fungible amount
	// (true for RevealedValue, false for VoidState and RevealedData).
	IsFungible() bool
	// ValueEqual compares two state values for the debug-only consistency
	// check OutputAssignment.Equal performs under AssertInvariants.
	ValueEqual(other any) bool
}

// VoidState is the payload of a declarative owned-right assignment: it
// carries no data beyond the assignment's existence.
type VoidState struct{}

// IsFungible implements KnownState.
func (VoidState) IsFungible() bool { return false }

// ValueEqual implements KnownState.
func (VoidState) ValueEqual(other any) bool { _, ok := other.(VoidState); return ok }

// RevealedValue is the payload of a fungible assignment: a concealable
// amount. Concealment/blinding itself is out of scope (strict-encoding
// layer); only the revealed amount is modeled.
type RevealedValue struct {
	Amount uint64
}

// IsFungible implements KnownState.
func (RevealedValue) IsFungible() bool { return true }

// ValueEqual implements KnownState.
func (v RevealedValue) ValueEqual(other any) bool {
	o, ok := other.(RevealedValue)
	return ok && v.Amount == o.Amount
}

// RevealedData is the payload of a structured-data assignment: an
// arbitrary schema-defined byte blob (the strict-encoded value, opaque to
// this engine).
type RevealedData struct {
	Value []byte
}

// IsFungible implements KnownState.
func (RevealedData) IsFungible() bool { return false }

// ValueEqual implements KnownState.
func (d RevealedData) ValueEqual(other any) bool {
	o, ok := other.(RevealedData)
	return ok && bytes.Equal(d.Value, o.Value)
}
