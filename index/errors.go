// Package index implements the derived acceleration structure built on
// top of the stash: which contract a bundle belongs to, which bundle an
// operation is grouped under, and which outputs an operation spends or
// produces. Grounded on memory.rs's MemIndex.
package index

import (
	"fmt"

	"github.com/lnp-bp/rgbcore/seal"
)

// ErrContractAbsent is returned when a read targets a ContractId the
// index has never registered.
type ErrContractAbsent struct {
	ContractID seal.ContractId
}

func (e ErrContractAbsent) Error() string {
	return fmt.Sprintf("index: contract %s not registered", e.ContractID)
}

// ErrOutpointUnknown is returned when OpoutsByOutputs is asked about an
// outpoint the contract's index never recorded.
type ErrOutpointUnknown struct {
	Outpoint   seal.OutputSeal
	ContractID seal.ContractId
}

func (e ErrOutpointUnknown) Error() string {
	return fmt.Sprintf("index: outpoint %s:%d unknown to contract %s", e.Outpoint.Hash, e.Outpoint.Index, e.ContractID)
}

// ErrBundleAbsent is returned when BundleIDForOp/BundleIDsChildrenOfOp is
// asked about an operation the index has no bundle record for.
type ErrBundleAbsent struct {
	OpId seal.OpId
}

func (e ErrBundleAbsent) Error() string {
	return fmt.Sprintf("index: no bundle recorded for operation %s", e.OpId)
}

// ErrBundleWitnessUnknown is returned when BundleInfo is asked about a
// bundle the index has registered no witness transaction for.
type ErrBundleWitnessUnknown struct {
	BundleID seal.BundleId
}

func (e ErrBundleWitnessUnknown) Error() string {
	return fmt.Sprintf("index: bundle %s has no known witness", e.BundleID)
}

// ErrBundleContractUnknown is returned when BundleInfo is asked about a
// bundle the index has never associated with a contract.
type ErrBundleContractUnknown struct {
	BundleID seal.BundleId
}

func (e ErrBundleContractUnknown) Error() string {
	return fmt.Sprintf("index: bundle %s has no known contract", e.BundleID)
}

// ErrDistinctBundleContract is returned when RegisterBundle is called
// for a bundle id the index already associated with a different
// contract — two contracts can never share one bundle id.
type ErrDistinctBundleContract struct {
	BundleID seal.BundleId
	Present  seal.ContractId
	Expected seal.ContractId
}

func (e ErrDistinctBundleContract) Error() string {
	return fmt.Sprintf("index: bundle %s already registered under contract %s, got %s", e.BundleID, e.Present, e.Expected)
}

// ErrDistinctBundleOp is returned when RegisterOperation is called for
// an operation id the index already associated with a different bundle.
type ErrDistinctBundleOp struct {
	OpId     seal.OpId
	Present  seal.BundleId
	Expected seal.BundleId
}

func (e ErrDistinctBundleOp) Error() string {
	return fmt.Sprintf("index: operation %s already registered under bundle %s, got %s", e.OpId, e.Present, e.Expected)
}
