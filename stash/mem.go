package stash

import (
	"sync"

	"github.com/lnp-bp/rgbcore/contract"
	"github.com/lnp-bp/rgbcore/rgblog"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

// Mem is the in-memory StashProvider implementation, grounded on
// memory.rs's MemStash: every Replace* write follows the content-
// addressed idempotent-insert convention (invariant 6) — a call returns
// true iff the value was not already present, and a second identical
// insert is always a safe no-op.
type Mem struct {
	mu sync.RWMutex

	schemata    map[seal.SchemaId]*contract.Schema
	geneses     map[seal.ContractId]*contract.Genesis
	bundles     map[seal.BundleId]*witness.TransitionBundle
	witnesses   map[seal.Txid]witness.SealWitness
	secretSeals map[seal.SecretSeal]contract.GraphSeal
	libs        map[seal.LibId][]byte
	types       contract.TypeSystem
}

// NewMem returns an empty stash ready to be populated.
func NewMem() *Mem {
	return &Mem{
		schemata:    make(map[seal.SchemaId]*contract.Schema),
		geneses:     make(map[seal.ContractId]*contract.Genesis),
		bundles:     make(map[seal.BundleId]*witness.TransitionBundle),
		witnesses:   make(map[seal.Txid]witness.SealWitness),
		secretSeals: make(map[seal.SecretSeal]contract.GraphSeal),
		libs:        make(map[seal.LibId][]byte),
		types:       contract.NewTypeSystem(),
	}
}

// Begin/Commit/Rollback satisfy persistence.StoreTransaction; like the
// in-memory index, the in-memory stash has no transaction log, so
// Rollback is unsupported.
func (m *Mem) Begin() error  { return nil }
func (m *Mem) Commit() error { return nil }
func (m *Mem) Rollback() error {
	panic("stash: in-memory stash has no transaction log to roll back")
}

// Schema returns the schema stored under id, if any.
func (m *Mem) Schema(id seal.SchemaId) (*contract.Schema, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schemata[id]
	return s, ok
}

// Genesis returns the genesis stored for contractID, if any.
func (m *Mem) Genesis(contractID seal.ContractId) (*contract.Genesis, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.geneses[contractID]
	return g, ok
}

// Bundle returns the transition bundle stored under id, if any.
func (m *Mem) Bundle(id seal.BundleId) (*witness.TransitionBundle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bundles[id]
	return b, ok
}

// Witness returns the seal witness stored under txid, if any.
func (m *Mem) Witness(txid seal.Txid) (*witness.SealWitness, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.witnesses[txid]
	if !ok {
		return nil, false
	}
	return &w, true
}

// Lib returns the AluVM library payload stored under id, if any.
func (m *Mem) Lib(id seal.LibId) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.libs[id]
	return l, ok
}

// SecretSeal reports whether concealed has ever been registered.
func (m *Mem) SecretSeal(concealed seal.SecretSeal) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.secretSeals[concealed]
	return ok
}

// SealSecret finds the revealed GraphSeal whose concealment equals
// secret, if any has been registered.
func (m *Mem) SealSecret(secret seal.SecretSeal) (contract.GraphSeal, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.secretSeals[secret]
	return g, ok
}

// TypeSystem returns the stash's accumulated strict-type definitions.
func (m *Mem) TypeSystem() contract.TypeSystem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := contract.NewTypeSystem()
	out.Extend(m.types)
	return out
}

// Schemata returns every schema currently stored.
func (m *Mem) Schemata() []*contract.Schema {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*contract.Schema, 0, len(m.schemata))
	for _, s := range m.schemata {
		out = append(out, s)
	}
	return out
}

// Geneses returns every genesis currently stored.
func (m *Mem) Geneses() []*contract.Genesis {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*contract.Genesis, 0, len(m.geneses))
	for _, g := range m.geneses {
		out = append(out, g)
	}
	return out
}

// WitnessIDs returns every witness txid currently stored.
func (m *Mem) WitnessIDs() []seal.Txid {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]seal.Txid, 0, len(m.witnesses))
	for id := range m.witnesses {
		out = append(out, id)
	}
	return out
}

// BundleIDs returns every bundle id currently stored.
func (m *Mem) BundleIDs() []seal.BundleId {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]seal.BundleId, 0, len(m.bundles))
	for id := range m.bundles {
		out = append(out, id)
	}
	return out
}

// ReplaceSchema inserts schema if its id is not already present.
func (m *Mem) ReplaceSchema(schema *contract.Schema) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schemata[schema.SchemaID]; ok {
		rgblog.Stash().Tracef("schema %s already present, replace is a no-op", schema.SchemaID)
		return false, nil
	}
	m.schemata[schema.SchemaID] = schema
	rgblog.Stash().Debugf("stored new schema %s", schema.SchemaID)
	return true, nil
}

// ReplaceGenesis inserts or overwrites the genesis stored for its
// contract id; returns true iff no genesis was previously stored there.
func (m *Mem) ReplaceGenesis(genesis *contract.Genesis) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, present := m.geneses[genesis.ContractID]
	m.geneses[genesis.ContractID] = genesis
	return !present, nil
}

// ReplaceBundle inserts or overwrites the bundle stored under its id;
// returns true iff no bundle was previously stored there.
func (m *Mem) ReplaceBundle(bundle *witness.TransitionBundle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, present := m.bundles[bundle.BundleID]
	m.bundles[bundle.BundleID] = bundle
	return !present, nil
}

// ReplaceWitness merges w into any witness already stored under the
// same txid via SealWitness.MergeReveal (invariant 5); returns true for a
// brand-new witness, or when the merge revealed the transaction body or
// disclosed additional bundle ids. A merge of two revealed transactions
// that only takes longer input witness data stores the merged value but
// returns false.
func (m *Mem) ReplaceWitness(w witness.SealWitness) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := w.WitnessId()
	existing, ok := m.witnesses[id]
	if !ok {
		m.witnesses[id] = w
		return true, nil
	}
	merged, err := existing.MergeReveal(w)
	if err != nil {
		rgblog.Stash().Warnf("merging witness %s: %s", id, err)
		return false, err
	}
	changed := merged.Public.IsRevealed() != existing.Public.IsRevealed() ||
		len(merged.MerkleBlock.Known) != len(existing.MerkleBlock.Known)
	if changed {
		rgblog.Stash().Debugf("witness %s merge-revealed new data", id)
	}
	m.witnesses[id] = merged
	return changed, nil
}

// ReplaceLib inserts or overwrites the library payload stored under id;
// returns true iff no library was previously stored there.
func (m *Mem) ReplaceLib(id seal.LibId, lib []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, present := m.libs[id]
	m.libs[id] = lib
	return !present, nil
}

// AddSecretSeal registers revealed's seal as a confidential terminal's
// reveal, keyed by its own concealment; returns true iff that
// concealment was not already registered. Per invariant 4, this may be
// called with no corresponding SecretSeal yet recorded in the index -
// the reveal and the terminal coexist independently.
func (m *Mem) AddSecretSeal(revealed contract.GraphSeal) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	concealed := revealed.Conceal()
	if _, ok := m.secretSeals[concealed]; ok {
		return false, nil
	}
	m.secretSeals[concealed] = revealed
	return true, nil
}

// ConsumeTypes additively merges types into the stash's accumulated
// type system.
func (m *Mem) ConsumeTypes(types contract.TypeSystem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types.Extend(types)
	return nil
}
