package contract

import (
	"sync"

	"github.com/lnp-bp/rgbcore/rgblog"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

// State is the top-level, single-owner container for every contract's
// materialized projection, plus the shared witness-ordinal map and
// invalid-bundle set spec.md §4.4 describes living above the per-contract
// state. It is the Go realization of memory.rs's MemState.
type State struct {
	mu             sync.RWMutex
	witnesses      map[seal.Txid]witness.WitnessOrd
	invalidBundles map[seal.BundleId]struct{}
	contracts      map[seal.ContractId]*MemContractState
}

// NewState returns an empty State ready to register contracts into.
func NewState() *State {
	return &State{
		witnesses:      make(map[seal.Txid]witness.WitnessOrd),
		invalidBundles: make(map[seal.BundleId]struct{}),
		contracts:      make(map[seal.ContractId]*MemContractState),
	}
}

// MemContractWriter is a write handle on one contract's state, returned
// by RegisterContract/UpdateContract. It accepts AddGenesis/AddTransition
// calls that replay operations in consensus order.
type MemContractWriter struct {
	state    *State
	contract *MemContractState
}

// AddGenesis replays a contract's genesis operation into its state.
// Genesis assignments never carry a witness or bundle id.
//
// Panics if genesis targets a global type the schema didn't declare
// (spec.md §9's Open Question: the stash is assumed pre-validated).
func (w *MemContractWriter) AddGenesis(g *Genesis) error {
	w.contract.addGlobals(g.OpID, GenesisWitness, 0, g.Globals)
	w.contract.addAssignments(nil, nil, g.OpID, g.Assignments)
	return nil
}

// AddTransition replays a state transition into its contract's state.
// It first upserts (witnessID -> ord) into the shared top-level witness
// map, then appends one OutputAssignment per revealed assignment into
// the appropriate category, exactly spec.md §4.4's write path.
func (w *MemContractWriter) AddTransition(t *Transition, witnessID seal.Txid, ord witness.WitnessOrd, bundleID seal.BundleId) error {
	w.state.UpsertWitness(witnessID, ord)
	opWitness := TransitionWitness(witnessID, 0)
	w.contract.addGlobals(t.OpID, opWitness, t.Nonce, t.Globals)
	w.contract.addAssignments(&bundleID, &witnessID, t.OpID, t.Assignments)
	return nil
}

// RegisterContract creates the state shell for a new contract (idempotent
// on its ContractId) and replays its genesis, returning a writer on the
// freshly created or already-present contract.
func (s *State) RegisterContract(schema *Schema, genesis *Genesis) (*MemContractWriter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract, ok := s.contracts[genesis.ContractID]
	if !ok {
		contract = NewMemContractState(schema, genesis.ContractID)
		s.contracts[genesis.ContractID] = contract
		rgblog.Contract().Infof("registered new contract %s under schema %s", genesis.ContractID, schema.SchemaID)
	}
	w := &MemContractWriter{state: s, contract: contract}
	if err := w.AddGenesis(genesis); err != nil {
		return nil, err
	}
	return w, nil
}

// UpdateContract returns a writer on an already-registered contract, or
// (nil, false) if contractID has no state yet.
func (s *State) UpdateContract(contractID seal.ContractId) (*MemContractWriter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contract, ok := s.contracts[contractID]
	if !ok {
		return nil, false
	}
	return &MemContractWriter{state: s, contract: contract}, true
}

// UpsertWitness rewrites the ordinal recorded for txid without touching
// any assignment; subsequent ContractState reads observe the new ordinal
// immediately (spec.md §5's concurrency guarantee).
func (s *State) UpsertWitness(txid seal.Txid, ord witness.WitnessOrd) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.witnesses[txid] = ord
}

// UpdateBundle toggles bundleID's membership in the invalid-bundle set:
// valid=false hides every assignment produced by that bundle from
// subsequent filtered reads; valid=true restores them. Both directions
// are idempotent.
func (s *State) UpdateBundle(bundleID seal.BundleId, valid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if valid {
		delete(s.invalidBundles, bundleID)
	} else {
		rgblog.Contract().Warnf("marking bundle %s invalid", bundleID)
		s.invalidBundles[bundleID] = struct{}{}
	}
}

// Witnesses returns a snapshot copy of the shared witness-ordinal map.
func (s *State) Witnesses() map[seal.Txid]witness.WitnessOrd {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[seal.Txid]witness.WitnessOrd, len(s.witnesses))
	for k, v := range s.witnesses {
		out[k] = v
	}
	return out
}

// InvalidBundles returns a snapshot copy of the invalid-bundle set.
func (s *State) InvalidBundles() map[seal.BundleId]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[seal.BundleId]struct{}, len(s.invalidBundles))
	for k := range s.invalidBundles {
		out[k] = struct{}{}
	}
	return out
}

// ContractState builds the filtered read view for contractID: the
// witness-ordinal filter restricted to txids this contract's global,
// rights, fungible or data entries actually reference, plus the current
// invalid-bundle set. Per spec.md §4.4, *not* the whole top-level witness
// map — only the subset this contract's data could possibly care about.
func (s *State) ContractState(contractID seal.ContractId) (*MemContract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contract, ok := s.contracts[contractID]
	if !ok {
		return nil, ErrUnknownContract{ContractID: contractID}
	}

	referenced := referencedTxids(contract)
	filter := make(map[seal.Txid]witness.WitnessOrd, len(referenced))
	for txid := range referenced {
		if ord, ok := s.witnesses[txid]; ok {
			filter[txid] = ord
		}
	}
	invalid := make(map[seal.BundleId]struct{}, len(s.invalidBundles))
	for bid := range s.invalidBundles {
		invalid[bid] = struct{}{}
	}
	return &MemContract{filter: filter, invalidBundles: invalid, unfiltered: contract}, nil
}

func referencedTxids(c *MemContractState) map[seal.Txid]struct{} {
	out := make(map[seal.Txid]struct{})
	for _, gs := range c.Global {
		for k := range gs.Known {
			if !k.OpWitness.IsGenesis() {
				txid, _ := k.OpWitness.Transition()
				out[txid] = struct{}{}
			}
		}
	}
	addWitnesses := func(id *seal.Txid) {
		if id != nil {
			out[*id] = struct{}{}
		}
	}
	for _, a := range c.Rights {
		addWitnesses(a.Witness)
	}
	for _, a := range c.Fungibles {
		addWitnesses(a.Witness)
	}
	for _, a := range c.Data {
		addWitnesses(a.Witness)
	}
	return out
}
