package contract

import (
	"fmt"

	"github.com/lnp-bp/rgbcore/seal"
)

// ErrUnknownContract is returned when a read or write targets a
// ContractId the state has never registered, per spec.md §7's state
// inconsistency taxonomy.
type ErrUnknownContract struct {
	ContractID seal.ContractId
}

func (e ErrUnknownContract) Error() string {
	return fmt.Sprintf("contract: unknown contract %s", e.ContractID)
}

// ErrUnknownGlobalStateType is returned when Global(ty) is called for a
// type the contract's schema never declared.
type ErrUnknownGlobalStateType struct {
	Type GlobalStateType
}

func (e ErrUnknownGlobalStateType) Error() string {
	return fmt.Sprintf("contract: unknown global state type %d", e.Type)
}

// ErrConfinementExceeded describes a write that exceeds a collection's
// declared maximum (spec.md §7's Capacity taxonomy). No code in this
// module returns it: the index and state collections are unbounded maps,
// slices and btrees, and their writes never fail on size. Distinct from a
// schema's own GlobalStateType max_items, which the global-state iterator
// enforces via its limit/take instead of failing the write.
type ErrConfinementExceeded struct {
	Collection string
	Max, Got   int
}

func (e ErrConfinementExceeded) Error() string {
	return fmt.Sprintf("contract: %s exceeded confinement bound (max %d, got %d)", e.Collection, e.Max, e.Got)
}
