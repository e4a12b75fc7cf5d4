package contract

import "sort"

// GlobalState accumulates every revealed value ever seen for one
// schema-declared global state type, keyed by the GlobalOut that
// produced it. Limit is the schema's declared max_items (spec.md §9's
// 24-bit cap, carried here widened to uint32 per SPEC_FULL §4.4).
type GlobalState struct {
	Known map[GlobalOut]RevealedData
	Limit uint32
}

// NewGlobalState returns an empty GlobalState bounded by limit.
func NewGlobalState(limit uint32) *GlobalState {
	return &GlobalState{Known: make(map[GlobalOut]RevealedData), Limit: limit}
}

// globalPair is one materialized (ordinal, value) entry.
type globalPair struct {
	Ord  GlobalOrd
	Data RevealedData
}

// GlobalStateIter walks a GlobalState's entries in descending GlobalOrd
// order, filtered by the witness map the contract-state read path built.
// Per spec.md §9's own design note, this is materialized as a bounded
// slice up front rather than ported as the Rust original's closure-based
// lazy iterator: simpler, and explicitly sanctioned as equivalent.
type GlobalStateIter struct {
	pairs []globalPair
	depth int
	last  *globalPair
}

// newGlobalStateIter builds the filtered, descending, limit-capped view
// of state for one Global(ty) read.
func newGlobalStateIter(state *GlobalState, visible func(GlobalOut) (GlobalOrd, bool)) *GlobalStateIter {
	pairs := make([]globalPair, 0, len(state.Known))
	for out, data := range state.Known {
		ord, ok := visible(out)
		if !ok {
			continue
		}
		pairs = append(pairs, globalPair{Ord: ord, Data: data})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Ord.Compare(pairs[j].Ord) > 0
	})
	if uint32(len(pairs)) > state.Limit {
		pairs = pairs[:state.Limit]
	}
	return &GlobalStateIter{pairs: pairs}
}

// Size returns the current visible item count (bounded by the type's
// limit), per spec.md §4.4.
func (it *GlobalStateIter) Size() int { return len(it.pairs) }

// Prev advances the cursor by one step and returns the item there,
// or (zero, false) once the walk is exhausted.
func (it *GlobalStateIter) Prev() (GlobalOrd, RevealedData, bool) {
	if it.depth >= len(it.pairs) {
		it.last = nil
		return GlobalOrd{}, RevealedData{}, false
	}
	p := it.pairs[it.depth]
	it.last = &p
	it.depth++
	return p.Ord, p.Data, true
}

// Last returns the pair most recently returned by Prev, or (zero, false)
// if Prev has not been called since construction or since Reset(0), or
// if the last Prev call found the walk exhausted. After Reset(depth) with
// depth > 0 it returns the pair at position depth-1, the one Prev would
// have returned last when walking to that depth.
func (it *GlobalStateIter) Last() (GlobalOrd, RevealedData, bool) {
	if it.last == nil {
		return GlobalOrd{}, RevealedData{}, false
	}
	return it.last.Ord, it.last.Data, true
}

// Reset rewinds the cursor to depth, the way spec.md §4.4 describes:
// subsequent Prev calls resume from that point in the materialized walk.
func (it *GlobalStateIter) Reset(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth > len(it.pairs) {
		depth = len(it.pairs)
	}
	it.depth = depth
	if depth == 0 {
		it.last = nil
		return
	}
	p := it.pairs[depth-1]
	it.last = &p
}
