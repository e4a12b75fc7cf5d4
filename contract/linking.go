package contract

import (
	"github.com/go-errors/errors"

	"github.com/lnp-bp/rgbcore/seal"
)

// LinkError is the contract-linking validation failure taxonomy, ported
// from linking.rs's LinkError. A schema may declare that one of its
// global state types carries the ContractId of a parent or child
// contract (LinkTo/LinkFrom); these are the ways that declaration can
// fail to resolve to exactly one consistent id.
type LinkError struct {
	kind string
}

func (e LinkError) Error() string { return "contract: link " + e.kind }

var (
	// ErrLinkMultipleValues is raised when a link global-state type
	// carries more than one revealed value: a link must name exactly
	// one contract.
	ErrLinkMultipleValues = LinkError{kind: "carries more than one value"}
	// ErrLinkNoValue is raised when a link global-state type carries no
	// revealed value at all.
	ErrLinkNoValue = LinkError{kind: "carries no value"}
	// ErrLinkValueMismatch is raised when a resolved link disagrees with
	// an independently expected ContractId (e.g. a child contract whose
	// declared parent doesn't match the parent it was actually issued
	// under).
	ErrLinkValueMismatch = LinkError{kind: "value does not match expected contract"}
	// ErrLinkInvalid is raised when the link global-state value isn't a
	// well-formed ContractId (wrong byte length).
	ErrLinkInvalid = LinkError{kind: "value is not a valid contract id"}
)

// LinkKind distinguishes the two directions a schema can declare a
// contract link in.
type LinkKind uint8

const (
	// LinkTo marks a global state type whose value names this
	// contract's parent.
	LinkTo LinkKind = iota
	// LinkFrom marks a global state type whose value names a contract
	// that declares this one as its parent.
	LinkFrom
)

// LinkSchema is the optional link declaration a Schema carries per
// SPEC_FULL §6: at most one global state type in each direction.
type LinkSchema struct {
	LinkTo   *GlobalStateType
	LinkFrom *GlobalStateType
}

// ResolveLink extracts the single ContractId a link global-state type's
// revealed values must resolve to. Exactly one value, 32 bytes long, is
// the only accepted shape.
func ResolveLink(values []RevealedData) (seal.ContractId, error) {
	var id seal.ContractId
	switch len(values) {
	case 0:
		return id, ErrLinkNoValue
	case 1:
		// fallthrough to decode below
	default:
		return id, ErrLinkMultipleValues
	}
	raw := values[0].Value
	if len(raw) != seal.IDLen {
		return id, ErrLinkInvalid
	}
	copy(id[:], raw)
	return id, nil
}

// ValidateLink resolves a link global-state type's values and, when
// expected is non-nil, additionally checks the resolved id against it
// (the child-declares-its-parent cross-check linking.rs's
// LinkableSchemaWrapper exists to support).
func ValidateLink(values []RevealedData, expected *seal.ContractId) (seal.ContractId, error) {
	id, err := ResolveLink(values)
	if err != nil {
		return id, err
	}
	if expected != nil && id.Compare(*expected) != 0 {
		return id, ErrLinkValueMismatch
	}
	return id, nil
}

// LinkTo returns the ContractId this contract's state declares as its
// parent, if the schema declares a LinkTo type and the contract's
// global state resolves it validly.
func (m *MemContract) LinkTo(link LinkSchema) (seal.ContractId, error) {
	var id seal.ContractId
	if link.LinkTo == nil {
		return id, errors.New("contract: schema declares no link-to type")
	}
	it, err := m.Global(*link.LinkTo)
	if err != nil {
		return id, err
	}
	return ResolveLink(collectGlobal(it))
}

// LinkFrom returns the ContractId this contract's state declares as a
// child, if the schema declares a LinkFrom type and the contract's
// global state resolves it validly.
func (m *MemContract) LinkFrom(link LinkSchema) (seal.ContractId, error) {
	var id seal.ContractId
	if link.LinkFrom == nil {
		return id, errors.New("contract: schema declares no link-from type")
	}
	it, err := m.Global(*link.LinkFrom)
	if err != nil {
		return id, err
	}
	return ResolveLink(collectGlobal(it))
}

func collectGlobal(it *GlobalStateIter) []RevealedData {
	out := make([]RevealedData, 0, it.Size())
	for {
		_, data, ok := it.Prev()
		if !ok {
			break
		}
		out = append(out, data)
	}
	return out
}
