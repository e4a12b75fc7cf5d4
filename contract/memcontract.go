package contract

import (
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

// MemContractState accumulates raw operation data for one contract over
// a series of consignments. It performs the consensus ordering of state
// data but, per spec.md §9's Open Question, never interprets or
// validates it against the schema: callers are assumed to hand over
// already schema-validated operations. MemContractState itself carries
// no filtering; reads always go through a MemContract built by
// State.ContractState.
type MemContractState struct {
	SchemaID   seal.SchemaId
	ContractID seal.ContractId

	Global    map[GlobalStateType]*GlobalState
	Rights    []OutputAssignment[VoidState]
	Fungibles []OutputAssignment[RevealedValue]
	Data      []OutputAssignment[RevealedData]
}

// NewMemContractState creates the state shell for a freshly registered
// contract, with the global map pre-populated from the schema's declared
// types and their max_items limits.
func NewMemContractState(schema *Schema, contractID seal.ContractId) *MemContractState {
	global := make(map[GlobalStateType]*GlobalState, len(schema.GlobalTypes))
	for ty, gs := range schema.GlobalTypes {
		global[ty] = NewGlobalState(gs.MaxItems)
	}
	return &MemContractState{
		SchemaID:   schema.SchemaID,
		ContractID: contractID,
		Global:     global,
	}
}

// addGlobals records one operation's declared global-state values.
//
// Panics if a value targets a GlobalStateType the schema never declared:
// per spec.md §9's Open Question, the stash is assumed pre-validated, so
// this is treated as a programmer-error diagnostic rather than silent
// corruption.
func (c *MemContractState) addGlobals(opid seal.OpId, opWitness OpWitness, nonce uint64, globals map[GlobalStateType][]RevealedData) {
	for ty, values := range globals {
		gs, ok := c.Global[ty]
		if !ok {
			panic("rgbcore: global state type not declared by contract's schema; stash was not pre-validated")
		}
		for idx, data := range values {
			out := GlobalOut{
				OpId:      opid,
				Index:     uint16(idx),
				OpWitness: opWitness,
				Nonce:     nonce,
			}
			gs.Known[out] = data
		}
	}
}

// addAssignments records one operation's owned-state outputs into the
// three category slices, resolving each seal against witnessID when the
// operation carries one (a transition) or leaving it nil (genesis).
func (c *MemContractState) addAssignments(bundleID *seal.BundleId, witnessID *seal.Txid, opid seal.OpId, assigns Assignments) {
	c.Rights = appendRevealed(c.Rights, assigns.Rights, bundleID, witnessID, opid)
	c.Fungibles = appendRevealed(c.Fungibles, assigns.Fungibles, bundleID, witnessID, opid)
	c.Data = appendRevealed(c.Data, assigns.Data, bundleID, witnessID, opid)
}

func appendRevealed[S KnownState](
	dst []OutputAssignment[S], raw map[AssignmentType][]RawAssign[S],
	bundleID *seal.BundleId, witnessID *seal.Txid, opid seal.OpId,
) []OutputAssignment[S] {
	for ty, items := range raw {
		for no, item := range items {
			if !item.IsRevealed() {
				// Confidential: the index's terminal map tracks it until
				// a reveal supplies the concrete seal (invariant 4).
				continue
			}
			var resolveTxid seal.Txid
			if witnessID != nil {
				resolveTxid = *witnessID
			}
			sealOut := item.Seal.Resolve(resolveTxid)
			var assignment OutputAssignment[S]
			if witnessID != nil {
				assignment = WithWitness(opid, ty, uint16(no), sealOut, *witnessID, item.State, bundleID)
			} else {
				assignment = WithNoWitness(opid, ty, uint16(no), sealOut, item.State)
			}
			dst = append(dst, assignment)
		}
	}
	return dst
}

// MemContract is the filtered read view over a MemContractState: the
// witness-ordinal map (restricted to txids this contract's data actually
// references) and invalid-bundle set narrow every read. Construct via
// State.ContractState, never directly.
type MemContract struct {
	filter         map[seal.Txid]witness.WitnessOrd
	invalidBundles map[seal.BundleId]struct{}
	unfiltered     *MemContractState
}

// ContractID returns the contract this view projects.
func (m *MemContract) ContractID() seal.ContractId { return m.unfiltered.ContractID }

// SchemaID returns the schema this contract was registered against.
func (m *MemContract) SchemaID() seal.SchemaId { return m.unfiltered.SchemaID }

// WitnessOrd returns the ordinal this view has recorded for txid, if any.
func (m *MemContract) WitnessOrd(txid seal.Txid) (witness.WitnessOrd, bool) {
	ord, ok := m.filter[txid]
	return ord, ok
}

// Global returns the filtered, descending, limit-capped iterator over
// the given global state type's known values.
func (m *MemContract) Global(ty GlobalStateType) (*GlobalStateIter, error) {
	state, ok := m.unfiltered.Global[ty]
	if !ok {
		return nil, ErrUnknownGlobalStateType{Type: ty}
	}
	visible := func(out GlobalOut) (GlobalOrd, bool) {
		if out.OpWitness.IsGenesis() {
			return GenesisOrd(out.Index), true
		}
		txid, _ := out.OpWitness.Transition()
		ord, ok := m.filter[txid]
		if !ok {
			return GlobalOrd{}, false
		}
		return TransitionOrd(out.OpId, out.Index, out.Nonce, ord), true
	}
	return newGlobalStateIter(state, visible), nil
}

// Rights counts the visible declarative assignments of type ty at
// outpoint.
func (m *MemContract) Rights(outpoint seal.OutputSeal, ty AssignmentType) int {
	n := 0
	for _, a := range m.unfiltered.Rights {
		if a.Seal == outpoint && a.Opout.Type == ty && isVisible(m, a) {
			n++
		}
	}
	return n
}

// Fungible returns every visible fungible amount of type ty at outpoint.
func (m *MemContract) Fungible(outpoint seal.OutputSeal, ty AssignmentType) []RevealedValue {
	var out []RevealedValue
	for _, a := range m.unfiltered.Fungibles {
		if a.Seal == outpoint && a.Opout.Type == ty && isVisible(m, a) {
			out = append(out, a.State)
		}
	}
	return out
}

// Data returns every visible structured-data payload of type ty at
// outpoint.
func (m *MemContract) Data(outpoint seal.OutputSeal, ty AssignmentType) []RevealedData {
	var out []RevealedData
	for _, a := range m.unfiltered.Data {
		if a.Seal == outpoint && a.Opout.Type == ty && isVisible(m, a) {
			out = append(out, a.State)
		}
	}
	return out
}

// RightsAll iterates every visible declarative assignment in the
// contract.
func (m *MemContract) RightsAll() []OutputAssignment[VoidState] {
	return filterVisible(m, m.unfiltered.Rights)
}

// FungibleAll iterates every visible fungible assignment in the
// contract.
func (m *MemContract) FungibleAll() []OutputAssignment[RevealedValue] {
	return filterVisible(m, m.unfiltered.Fungibles)
}

// DataAll iterates every visible structured-data assignment in the
// contract.
func (m *MemContract) DataAll() []OutputAssignment[RevealedData] {
	return filterVisible(m, m.unfiltered.Data)
}

func filterVisible[S KnownState](m *MemContract, src []OutputAssignment[S]) []OutputAssignment[S] {
	out := make([]OutputAssignment[S], 0, len(src))
	for _, a := range src {
		if isVisible(m, a) {
			out = append(out, a)
		}
	}
	return out
}

// isVisible applies spec.md §4.4's two-part visibility test: the witness
// filter, then the invalid-bundle set. A free function, not a method,
// since Go methods cannot carry their own type parameters.
func isVisible[S KnownState](m *MemContract, a OutputAssignment[S]) bool {
	return checkWitness(a, m.filter) && checkBundle(a, m.invalidBundles)
}
