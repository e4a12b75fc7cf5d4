package contract

import "github.com/lnp-bp/rgbcore/seal"

// GlobalStateType identifies a schema-declared global state slot, the
// same way AssignmentType identifies an owned-state slot.
type GlobalStateType uint16

// GlobalStateSchema carries the schema-declared constraints on a global
// state type: how many items of it a contract may ever accumulate.
// max_items is kept as a value below 2^24 (spec.md §9's 24-bit cap);
// MaxItems24 is the validating constructor.
type GlobalStateSchema struct {
	MaxItems uint32
}

const maxItems24Bound = 1 << 24

// MaxItems24 validates n fits the 24-bit max_items field before it is
// stored as a GlobalStateSchema.MaxItems. A schema is out-of-scope data
// handed to us pre-validated (spec.md §9's Open Question), but this one
// cheap shape check is worth keeping since a corrupt schema would
// otherwise silently cap global state at a bogus value.
func MaxItems24(n uint32) (uint32, bool) {
	if n >= maxItems24Bound {
		return 0, false
	}
	return n, true
}

// Schema is the narrow stand-in for the external schema/VM layer (out of
// scope per spec.md §1): just enough shape for contract-state
// initialization to know which global types exist and their max_items,
// plus the optional parent/child link declaration (SPEC_FULL §6).
type Schema struct {
	SchemaID    seal.SchemaId
	GlobalTypes map[GlobalStateType]GlobalStateSchema
	Link        LinkSchema
}
