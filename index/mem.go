package index

import (
	"sync"

	"github.com/lnp-bp/rgbcore/contract"
	"github.com/lnp-bp/rgbcore/rgblog"
	"github.com/lnp-bp/rgbcore/seal"
)

// contractIndex is the per-contract slice of the index: every publicly
// disclosed opout, and the reverse map from output to the opouts it
// carries. Grounded on memory.rs's ContractIndex.
type contractIndex struct {
	publicOpouts   *opoutSet
	outpointOpouts map[seal.OutputSeal]*opoutSet
}

func newContractIndex() *contractIndex {
	return &contractIndex{
		publicOpouts:   newOpoutSet(),
		outpointOpouts: make(map[seal.OutputSeal]*opoutSet),
	}
}

// Mem is the in-memory IndexProvider implementation, grounded on
// memory.rs's MemIndex: a set of maps from operation/bundle/contract ids
// to each other, plus the terminal index tracking confidential seals
// awaiting reveal.
type Mem struct {
	mu sync.RWMutex

	opBundleChildren map[seal.OpId]*bundleIDSet
	opBundle         map[seal.OpId]seal.BundleId
	bundleContract   map[seal.BundleId]seal.ContractId
	bundleWitness    map[seal.BundleId]*txidSet
	contracts        map[seal.ContractId]*contractIndex
	terminals        map[seal.SecretSeal]*opoutSet
}

// NewMem returns an empty index ready to be populated.
func NewMem() *Mem {
	return &Mem{
		opBundleChildren: make(map[seal.OpId]*bundleIDSet),
		opBundle:         make(map[seal.OpId]seal.BundleId),
		bundleContract:   make(map[seal.BundleId]seal.ContractId),
		bundleWitness:    make(map[seal.BundleId]*txidSet),
		contracts:        make(map[seal.ContractId]*contractIndex),
		terminals:        make(map[seal.SecretSeal]*opoutSet),
	}
}

// Begin/Commit/Rollback satisfy persistence.StoreTransaction; like
// MemIndex's own StoreTransaction impl, the in-memory index has nothing
// to roll back to, so Rollback is unsupported (mirrors the Rust
// original's `unreachable!()`).
func (m *Mem) Begin() error  { return nil }
func (m *Mem) Commit() error { return nil }
func (m *Mem) Rollback() error {
	panic("index: in-memory index has no transaction log to roll back")
}

// RegisterContract creates the index shell for contractID if it is not
// already present; registering an existing contract again is a no-op.
// It always returns nil.
func (m *Mem) RegisterContract(contractID seal.ContractId, _ seal.SchemaId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contracts[contractID]; !ok {
		m.contracts[contractID] = newContractIndex()
	}
	return nil
}

// RegisterBundle associates bundleID with contractID; the witness it was
// disclosed under is recorded separately by RegisterBundleWitness.
// Returns ErrDistinctBundleContract
// if bundleID was already registered under a different contract —
// invariant: two contracts never share a bundle id.
func (m *Mem) RegisterBundle(contractID seal.ContractId, bundleID seal.BundleId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if alt, ok := m.bundleContract[bundleID]; ok && alt.Compare(contractID) != 0 {
		rgblog.Index().Warnf("bundle %s already registered under contract %s, rejecting %s", bundleID, alt, contractID)
		return ErrDistinctBundleContract{BundleID: bundleID, Present: alt, Expected: contractID}
	}
	m.bundleContract[bundleID] = contractID
	return nil
}

// RegisterBundleWitness records that bundleID was disclosed under
// witnessID, the bundle_witness_index half of register_bundle.
func (m *Mem) RegisterBundleWitness(bundleID seal.BundleId, witnessID seal.Txid) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.bundleWitness[bundleID]
	if !ok {
		set = newTxidSet()
		m.bundleWitness[bundleID] = set
	}
	set.Add(witnessID)
}

// RegisterOperation associates opid with bundleID. Returns
// ErrDistinctBundleOp if opid was already registered under a different
// bundle.
func (m *Mem) RegisterOperation(bundleID seal.BundleId, opid seal.OpId) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if alt, ok := m.opBundle[opid]; ok && alt.Compare(bundleID) != 0 {
		rgblog.Index().Warnf("operation %s already registered under bundle %s, rejecting %s", opid, alt, bundleID)
		return ErrDistinctBundleOp{OpId: opid, Present: alt, Expected: bundleID}
	}
	m.opBundle[opid] = bundleID
	return nil
}

// RegisterSpending records that childBundleID spends (at least one
// output produced by) opid. Returns true iff opid already had at least
// one recorded child bundle before this call.
func (m *Mem) RegisterSpending(opid seal.OpId, childBundleID seal.BundleId) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, present := m.opBundleChildren[opid]
	if !present {
		set = newBundleIDSet()
		m.opBundleChildren[opid] = set
	}
	set.Add(childBundleID)
	return present, nil
}

// IndexGenesisAssignments records every revealed genesis assignment's
// opout against the outpoint it occupies, and every confidential one
// against its terminal secret seal.
func (m *Mem) IndexGenesisAssignments(genesis *contract.Genesis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.contracts[genesis.ContractID]
	if !ok {
		return ErrContractAbsent{ContractID: genesis.ContractID}
	}
	indexRaw(idx, m.terminals, genesis.Assignments.Rights, genesis.OpID, seal.Txid{})
	indexRawFungible(idx, m.terminals, genesis.Assignments.Fungibles, genesis.OpID, seal.Txid{})
	indexRawData(idx, m.terminals, genesis.Assignments.Data, genesis.OpID, seal.Txid{})
	return nil
}

// IndexTransitionAssignments records every revealed transition
// assignment's opout against the outpoint it resolves to under
// witnessID, and every confidential one against its terminal seal.
func (m *Mem) IndexTransitionAssignments(contractID seal.ContractId, transition *contract.Transition, witnessID seal.Txid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx, ok := m.contracts[contractID]
	if !ok {
		return ErrContractAbsent{ContractID: contractID}
	}
	indexRaw(idx, m.terminals, transition.Assignments.Rights, transition.OpID, witnessID)
	indexRawFungible(idx, m.terminals, transition.Assignments.Fungibles, transition.OpID, witnessID)
	indexRawData(idx, m.terminals, transition.Assignments.Data, transition.OpID, witnessID)
	return nil
}

func indexRaw(idx *contractIndex, terminals map[seal.SecretSeal]*opoutSet, raw map[contract.AssignmentType][]contract.RawAssign[contract.VoidState], opid seal.OpId, witnessID seal.Txid) {
	for ty, items := range raw {
		for no, item := range items {
			opout := seal.Opout{OpId: opid, Type: ty, Index: uint16(no)}
			addOpout(idx, terminals, item.Seal, item.Concealed, witnessID, opout)
		}
	}
}

func indexRawFungible(idx *contractIndex, terminals map[seal.SecretSeal]*opoutSet, raw map[contract.AssignmentType][]contract.RawAssign[contract.RevealedValue], opid seal.OpId, witnessID seal.Txid) {
	for ty, items := range raw {
		for no, item := range items {
			opout := seal.Opout{OpId: opid, Type: ty, Index: uint16(no)}
			addOpout(idx, terminals, item.Seal, item.Concealed, witnessID, opout)
		}
	}
}

func indexRawData(idx *contractIndex, terminals map[seal.SecretSeal]*opoutSet, raw map[contract.AssignmentType][]contract.RawAssign[contract.RevealedData], opid seal.OpId, witnessID seal.Txid) {
	for ty, items := range raw {
		for no, item := range items {
			opout := seal.Opout{OpId: opid, Type: ty, Index: uint16(no)}
			addOpout(idx, terminals, item.Seal, item.Concealed, witnessID, opout)
		}
	}
}

func addOpout(idx *contractIndex, terminals map[seal.SecretSeal]*opoutSet, graphSeal *contract.GraphSeal, concealed *seal.SecretSeal, witnessID seal.Txid, opout seal.Opout) {
	if graphSeal != nil {
		output := graphSeal.Resolve(witnessID)
		set, ok := idx.outpointOpouts[output]
		if !ok {
			set = newOpoutSet()
			idx.outpointOpouts[output] = set
		}
		set.Add(opout)
		idx.publicOpouts.Add(opout)
		return
	}
	if concealed != nil {
		set, ok := terminals[*concealed]
		if !ok {
			set = newOpoutSet()
			terminals[*concealed] = set
		}
		set.Add(opout)
	}
}

// ContractsAssigning returns every contract id whose index references
// at least one of the given outpoints.
func (m *Mem) ContractsAssigning(outpoints []seal.OutputSeal) []seal.ContractId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []seal.ContractId
	for cid, idx := range m.contracts {
		for _, op := range outpoints {
			if _, ok := idx.outpointOpouts[op]; ok {
				out = append(out, cid)
				break
			}
		}
	}
	return out
}

// PublicOpouts returns every publicly disclosed opout registered for
// contractID.
func (m *Mem) PublicOpouts(contractID seal.ContractId) ([]seal.Opout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.contracts[contractID]
	if !ok {
		return nil, ErrContractAbsent{ContractID: contractID}
	}
	return idx.publicOpouts.Slice(), nil
}

// OpoutsByOutputs returns every opout recorded against each of the given
// outpoints within contractID.
func (m *Mem) OpoutsByOutputs(contractID seal.ContractId, outpoints []seal.OutputSeal) ([]seal.Opout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.contracts[contractID]
	if !ok {
		return nil, ErrContractAbsent{ContractID: contractID}
	}
	var out []seal.Opout
	for _, op := range outpoints {
		set, ok := idx.outpointOpouts[op]
		if !ok {
			return nil, ErrOutpointUnknown{Outpoint: op, ContractID: contractID}
		}
		out = append(out, set.Slice()...)
	}
	return out, nil
}

// OpoutsByTerminals returns every opout recorded under each of the given
// confidential terminal seals, regardless of contract.
func (m *Mem) OpoutsByTerminals(terminals []seal.SecretSeal) []seal.Opout {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []seal.Opout
	for _, t := range terminals {
		if set, ok := m.terminals[t]; ok {
			out = append(out, set.Slice()...)
		}
	}
	return out
}

// BundleIDForOp returns the bundle opid was registered under.
func (m *Mem) BundleIDForOp(opid seal.OpId) (seal.BundleId, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.opBundle[opid]
	if !ok {
		return seal.BundleId{}, ErrBundleAbsent{OpId: opid}
	}
	return id, nil
}

// BundleIDsChildrenOfOp returns every bundle id that spends an output
// produced by opid.
func (m *Mem) BundleIDsChildrenOfOp(opid seal.OpId) ([]seal.BundleId, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.opBundleChildren[opid]
	if !ok {
		return nil, ErrBundleAbsent{OpId: opid}
	}
	return set.Slice(), nil
}

// BundleInfo returns the set of witness transactions bundleID has been
// disclosed under, plus the contract it belongs to.
func (m *Mem) BundleInfo(bundleID seal.BundleId) ([]seal.Txid, seal.ContractId, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	witnesses, ok := m.bundleWitness[bundleID]
	if !ok {
		return nil, seal.ContractId{}, ErrBundleWitnessUnknown{BundleID: bundleID}
	}
	contractID, ok := m.bundleContract[bundleID]
	if !ok {
		return nil, seal.ContractId{}, ErrBundleContractUnknown{BundleID: bundleID}
	}
	return witnesses.Slice(), contractID, nil
}
