// Package persistence declares the storage contracts the stash, index
// and state layers implement, the seam memory.rs's StashProvider/
// IndexProvider/StateProvider trait bounds occupy in the Rust original.
// Grounded structurally on contractcourt's ContractResolver interface
// shape and the ArbitratorLog persistence interface (other_examples,
// reference only) — a compile-time `var _ Interface = (*impl)(nil)`
// assertion belongs alongside every concrete implementation.
package persistence

import (
	"github.com/lnp-bp/rgbcore/contract"
	"github.com/lnp-bp/rgbcore/index"
	"github.com/lnp-bp/rgbcore/resolver"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/stash"
	"github.com/lnp-bp/rgbcore/witness"
)

// StoreTransaction brackets a sequence of writes that must commit or
// roll back together, the same shape memory.rs's StoreTransaction trait
// bound gives every write provider.
type StoreTransaction interface {
	// Begin starts a transaction; Commit/Rollback end it. The in-memory
	// stores (stash.Mem, index.Mem) implement Begin/Commit as no-ops and
	// panic on Rollback, since they keep no log to roll back to;
	// stash.Bolt implements all three as no-ops.
	Begin() error
	Commit() error
	Rollback() error
}

// StashReadProvider is the read half of the content-addressed stash:
// schemata, genesis operations, transition bundles, witnesses and
// libraries, each looked up by their content-derived id.
type StashReadProvider interface {
	Schema(id seal.SchemaId) (*contract.Schema, bool)
	Genesis(id seal.ContractId) (*contract.Genesis, bool)
	Bundle(id seal.BundleId) (*witness.TransitionBundle, bool)
	Witness(txid seal.Txid) (*witness.SealWitness, bool)
	Lib(id seal.LibId) ([]byte, bool)
	// SecretSeal reports whether concealed has ever been registered as a
	// confidential terminal awaiting reveal.
	SecretSeal(concealed seal.SecretSeal) bool
	// SealSecret finds the revealed GraphSeal whose concealment equals
	// secret, the reveal lookup spec.md §4.2's seal_secret names
	// (memory.rs's seal_secret: "finds the revealed seal whose
	// concealment equals the argument").
	SealSecret(secret seal.SecretSeal) (contract.GraphSeal, bool)
	// TypeSystem returns the accumulated strict-type definitions the
	// stash has consumed so far (spec.md §4.2's type_system).
	TypeSystem() contract.TypeSystem
}

// StashWriteProvider is the write half: every Replace* call follows the
// content-addressed idempotent-insert convention (invariant 6) — it
// returns true iff the value was not already present.
type StashWriteProvider interface {
	StoreTransaction

	ReplaceSchema(schema *contract.Schema) (bool, error)
	ReplaceGenesis(genesis *contract.Genesis) (bool, error)
	ReplaceBundle(bundle *witness.TransitionBundle) (bool, error)
	// ReplaceWitness merges w into any witness already stored under the
	// same txid via SealWitness.MergeReveal, per invariant 5; it returns
	// true for a brand-new witness, or when the merge revealed the
	// transaction body or disclosed additional bundle ids.
	ReplaceWitness(w witness.SealWitness) (bool, error)
	ReplaceLib(id seal.LibId, lib []byte) (bool, error)
	// AddSecretSeal registers revealed as a confidential terminal's
	// reveal, keyed by its own concealment (memory.rs's
	// add_secret_seal(seal: GraphSeal)); it returns true iff that
	// concealment was not already registered. Per invariant 4, a
	// SecretSeal recorded in the index is not required to have a
	// matching revealed GraphSeal here yet — a later reveal adds one and
	// the two coexist.
	AddSecretSeal(revealed contract.GraphSeal) (bool, error)
	// ConsumeTypes additively merges types into the stash's accumulated
	// type system (memory.rs's consume_types).
	ConsumeTypes(types contract.TypeSystem) error
}

// StashProvider composes both halves, the bound memory.rs's MemStash
// satisfies as a whole.
type StashProvider interface {
	StashReadProvider
	StashWriteProvider
}

// IndexProvider is the derived acceleration structure built from the
// stash's content: which contract a bundle/operation belongs to, which
// bundle an operation is grouped under, and which operation an output
// is spent by.
type IndexProvider interface {
	StoreTransaction

	RegisterContract(contractID seal.ContractId, schemaID seal.SchemaId) error
	RegisterBundle(contractID seal.ContractId, bundleID seal.BundleId) error
	RegisterBundleWitness(bundleID seal.BundleId, witnessID seal.Txid)
	RegisterOperation(bundleID seal.BundleId, opid seal.OpId) error
	// RegisterSpending records that childBundleID spends an output
	// produced by opid; returns true iff opid already had at least one
	// recorded child bundle before this call.
	RegisterSpending(opid seal.OpId, childBundleID seal.BundleId) (bool, error)

	IndexGenesisAssignments(genesis *contract.Genesis) error
	IndexTransitionAssignments(contractID seal.ContractId, transition *contract.Transition, witnessID seal.Txid) error

	ContractsAssigning(outpoints []seal.OutputSeal) []seal.ContractId
	PublicOpouts(contractID seal.ContractId) ([]seal.Opout, error)
	OpoutsByOutputs(contractID seal.ContractId, outpoints []seal.OutputSeal) ([]seal.Opout, error)
	OpoutsByTerminals(terminals []seal.SecretSeal) []seal.Opout
	BundleIDForOp(opid seal.OpId) (seal.BundleId, error)
	BundleIDsChildrenOfOp(opid seal.OpId) ([]seal.BundleId, error)
	BundleInfo(bundleID seal.BundleId) ([]seal.Txid, seal.ContractId, error)
}

// StateProvider is the materialized per-contract projection over the
// index's referential structure: global state, rights, fungibles and
// data, filtered by witness ordinal and bundle validity. contract.State
// satisfies this shape directly — see contract/state.go.
type StateProvider interface {
	RegisterContract(schema *contract.Schema, genesis *contract.Genesis) (*contract.MemContractWriter, error)
	UpdateContract(contractID seal.ContractId) (*contract.MemContractWriter, bool)
	UpsertWitness(txid seal.Txid, ord witness.WitnessOrd)
	UpdateBundle(bundleID seal.BundleId, valid bool)

	ContractState(contractID seal.ContractId) (*contract.MemContract, error)
}

var _ StateProvider = (*contract.State)(nil)
var _ IndexProvider = (*index.Mem)(nil)
var _ StashReadProvider = (*stash.Mem)(nil)
var _ StashWriteProvider = (*stash.Mem)(nil)

// WitnessResolver mirrors the contract/witness-confirmation oracle boundary
// (spec.md §3's WitnessResolver): given a witness id, report whether and
// how it has confirmed. This is an alias, not a redeclaration, so any
// resolver.Resolver (Electrum, Esplora, AnyResolver, ...) satisfies it
// directly.
type WitnessResolver = resolver.Resolver

var _ WitnessResolver = (*resolver.AnyResolver)(nil)
