// Package stash implements the content-addressed append-only store:
// schemata, genesis operations, transition bundles, witnesses, secret
// seals and AluVM libraries, each looked up by their content-derived id.
// Grounded on memory.rs's MemStash and, for the persistent backend,
// channeldb's bbolt-based db.go.
package stash

import (
	"fmt"

	"github.com/lnp-bp/rgbcore/seal"
)

// ErrSchemaAbsent reports a schema id the stash has never stored. The
// lookups in this package (Mem.Schema and its siblings) signal absence
// with a false flag and do not return this or the other *Absent errors
// below. Grounded on channeldb/error.go's flat sentinel-error
// idiom, upgraded to carry the offending id the way StashInconsistency
// does in the Rust original.
type ErrSchemaAbsent struct{ SchemaID seal.SchemaId }

func (e ErrSchemaAbsent) Error() string { return fmt.Sprintf("stash: unknown schema %s", e.SchemaID) }

// ErrContractAbsent reports a contract id the stash has no genesis for.
type ErrContractAbsent struct{ ContractID seal.ContractId }

func (e ErrContractAbsent) Error() string {
	return fmt.Sprintf("stash: unknown contract %s", e.ContractID)
}

// ErrBundleAbsent reports a bundle id the stash has never stored.
type ErrBundleAbsent struct{ BundleID seal.BundleId }

func (e ErrBundleAbsent) Error() string { return fmt.Sprintf("stash: unknown bundle %s", e.BundleID) }

// ErrWitnessAbsent reports a witness txid the stash has never stored.
type ErrWitnessAbsent struct{ Txid seal.Txid }

func (e ErrWitnessAbsent) Error() string {
	return fmt.Sprintf("stash: unknown witness %s", e.Txid)
}

// ErrLibAbsent reports a library id the stash has never stored.
type ErrLibAbsent struct{ LibID seal.LibId }

func (e ErrLibAbsent) Error() string { return fmt.Sprintf("stash: unknown library %s", e.LibID) }
