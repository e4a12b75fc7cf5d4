package witness

import "github.com/btcsuite/btcd/wire"

// MergeReveal merges other into w, monotonically revealing data without
// ever losing any. Ported from anchors.rs's PubWitness::merge_reveal,
// with one deliberate departure: the original's fast path short-circuits
// on its custom Eq impl, which compares txid only — so two Tx values
// sharing a txid (same inputs/outputs, different witness stacks, the
// exact segwit case this method exists to resolve) would skip merging
// entirely. Here the no-op fast path is restricted to the case it's
// actually safe for: both sides still concealed.
//   - both concealed, same txid: no-op,
//   - differing txids: ErrTxidMismatch,
//   - self concealed, other revealed: adopt other's transaction body,
//   - both revealed: per input position, keep whichever side has the
//     longer total witness data; ties broken by the longer sig-script.
func (w PubWitness) MergeReveal(other PubWitness) (PubWitness, error) {
	if !w.IsRevealed() && !other.IsRevealed() && w.Equal(other) {
		return w, nil
	}
	if w.txid != other.txid {
		return PubWitness{}, ErrTxidMismatch
	}
	switch {
	case !w.IsRevealed() && other.IsRevealed():
		return other, nil
	case w.IsRevealed() && !other.IsRevealed():
		return w, nil
	case !w.IsRevealed() && !other.IsRevealed():
		return w, nil
	default:
		merged := mergeTxInputs(w.tx, other.tx)
		return PubWitness{txid: w.txid, tx: merged}, nil
	}
}

// mergeTxInputs builds a new transaction identical to a except that each
// input position is replaced by whichever of a/b's inputs at that
// position carries more total witness data, ties broken by sig-script
// length.
func mergeTxInputs(a, b *wire.MsgTx) *wire.MsgTx {
	merged := a.Copy()
	for i := range merged.TxIn {
		if i >= len(b.TxIn) {
			break
		}
		aw, bw := inputRevealWeight(a.TxIn[i]), inputRevealWeight(b.TxIn[i])
		if bw > aw || (bw == aw && len(b.TxIn[i].SignatureScript) > len(a.TxIn[i].SignatureScript)) {
			merged.TxIn[i] = copyTxIn(b.TxIn[i])
		}
	}
	return merged
}

// copyTxIn deep-copies a TxIn's mutable fields; wire.TxIn has no exported
// Copy method of its own (only wire.MsgTx does), so this mirrors what
// MsgTx.Copy does for each input.
func copyTxIn(in *wire.TxIn) *wire.TxIn {
	out := &wire.TxIn{
		PreviousOutPoint: in.PreviousOutPoint,
		Sequence:         in.Sequence,
	}
	if in.SignatureScript != nil {
		out.SignatureScript = append([]byte(nil), in.SignatureScript...)
	}
	if in.Witness != nil {
		out.Witness = make(wire.TxWitness, len(in.Witness))
		for i, item := range in.Witness {
			out.Witness[i] = append([]byte(nil), item...)
		}
	}
	return out
}

// inputRevealWeight is the total witness-stack byte length of an input,
// the primary comparison key in PubWitness merge-reveal.
func inputRevealWeight(in *wire.TxIn) int {
	total := 0
	for _, item := range in.Witness {
		total += len(item)
	}
	return total
}
