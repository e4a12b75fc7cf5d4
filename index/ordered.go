package index

import (
	"github.com/google/btree"

	"github.com/lnp-bp/rgbcore/seal"
)

// This file wires github.com/google/btree (the teacher's own indirect
// dependency, promoted to direct here) as the ordered-set backing for
// every index collection that spec.md §9 asks to support O(log n)
// insert/lookup — LargeOrdSet<Opout>/MediumOrdSet<Opout>/
// LargeOrdSet<Txid>/SmallOrdSet<BundleId> in memory.rs all become one of
// the three typed wrappers below over btree.BTree, using the teacher's
// pinned v1.0.1 btree.Item interface rather than the newer generic API
// so the promoted dependency needs no version bump.

const btreeDegree = 32

type opoutItem seal.Opout

func (o opoutItem) Less(than btree.Item) bool {
	return seal.Opout(o).Compare(seal.Opout(than.(opoutItem))) < 0
}

// opoutSet is an ordered, duplicate-free collection of Opout values.
type opoutSet struct{ t *btree.BTree }

func newOpoutSet() *opoutSet { return &opoutSet{t: btree.New(btreeDegree)} }

func (s *opoutSet) Add(o seal.Opout) { s.t.ReplaceOrInsert(opoutItem(o)) }

func (s *opoutSet) Len() int { return s.t.Len() }

func (s *opoutSet) Slice() []seal.Opout {
	out := make([]seal.Opout, 0, s.t.Len())
	s.t.Ascend(func(it btree.Item) bool {
		out = append(out, seal.Opout(it.(opoutItem)))
		return true
	})
	return out
}

type bundleIDItem seal.BundleId

func (b bundleIDItem) Less(than btree.Item) bool {
	return seal.BundleId(b).Compare(seal.BundleId(than.(bundleIDItem))) < 0
}

// bundleIDSet is an ordered, duplicate-free collection of BundleId
// values.
type bundleIDSet struct{ t *btree.BTree }

func newBundleIDSet() *bundleIDSet { return &bundleIDSet{t: btree.New(btreeDegree)} }

func (s *bundleIDSet) Add(b seal.BundleId) { s.t.ReplaceOrInsert(bundleIDItem(b)) }

func (s *bundleIDSet) Len() int { return s.t.Len() }

func (s *bundleIDSet) Slice() []seal.BundleId {
	out := make([]seal.BundleId, 0, s.t.Len())
	s.t.Ascend(func(it btree.Item) bool {
		out = append(out, seal.BundleId(it.(bundleIDItem)))
		return true
	})
	return out
}

type txidItem seal.Txid

func (t txidItem) Less(than btree.Item) bool {
	a, b := seal.Txid(t), seal.Txid(than.(txidItem))
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// txidSet is an ordered, duplicate-free collection of witness Txid
// values, the set of witnesses a bundle has ever been disclosed under.
type txidSet struct{ t *btree.BTree }

func newTxidSet() *txidSet { return &txidSet{t: btree.New(btreeDegree)} }

func (s *txidSet) Add(id seal.Txid) { s.t.ReplaceOrInsert(txidItem(id)) }

func (s *txidSet) Len() int { return s.t.Len() }

func (s *txidSet) Slice() []seal.Txid {
	out := make([]seal.Txid, 0, s.t.Len())
	s.t.Ascend(func(it btree.Item) bool {
		out = append(out, seal.Txid(it.(txidItem)))
		return true
	})
	return out
}
