package contract

// TypeSystem is the narrow stand-in for the external strict_types
// TypeSystem crate (out of scope per spec.md §1: the type *language* is
// external, only the fact that the stash accumulates type *definitions*
// is in scope, per spec.md §2). It is keyed by the content-derived
// library identifiers spec.md §6 shows the form of (e.g.
// "stl:HNePR5_o-...#lunar-present-torso"), each mapping to that
// library's opaque encoded type definitions.
type TypeSystem map[string][]byte

// NewTypeSystem returns an empty TypeSystem ready to be extended.
func NewTypeSystem() TypeSystem {
	return make(TypeSystem)
}

// Extend additively merges other into ts, matching memory.rs's
// consume_types(types) -> self.type_system.extend(types): entries
// already present under the same library id are left untouched, new
// ones are added.
func (ts TypeSystem) Extend(other TypeSystem) {
	for id, def := range other {
		if _, ok := ts[id]; ok {
			continue
		}
		ts[id] = def
	}
}
