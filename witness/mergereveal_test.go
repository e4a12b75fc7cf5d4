package witness_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/dbc"
	"github.com/lnp-bp/rgbcore/mpc"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

func testTx(inputWitness [][]byte) *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	in := wire.NewTxIn(&wire.OutPoint{Index: 0}, nil, nil)
	in.Witness = inputWitness
	tx.AddTxIn(in)
	return tx
}

func TestPubWitnessMergeRevealConcealedToRevealed(t *testing.T) {
	tx := testTx([][]byte{{1, 2, 3}})
	revealed := witness.PubWitnessFromTx(tx)
	concealed := witness.PubWitnessFromTxid(revealed.Txid())

	merged, err := concealed.MergeReveal(revealed)
	require.NoError(t, err)
	require.True(t, merged.IsRevealed())
	require.Equal(t, revealed.Txid(), merged.Txid())
}

func TestPubWitnessMergeRevealIsCommutative(t *testing.T) {
	tx := testTx([][]byte{{1, 2, 3}})
	revealed := witness.PubWitnessFromTx(tx)
	concealed := witness.PubWitnessFromTxid(revealed.Txid())

	a, err := concealed.MergeReveal(revealed)
	require.NoError(t, err)
	b, err := revealed.MergeReveal(concealed)
	require.NoError(t, err)
	require.Equal(t, a.IsRevealed(), b.IsRevealed())
	require.Equal(t, a.Txid(), b.Txid())
}

func TestPubWitnessMergeRevealKeepsLongerWitnessPerInput(t *testing.T) {
	// wire.MsgTx.TxHash() is the legacy (non-witness) transaction id, so
	// two transactions that differ only in witness-stack contents share a
	// txid — exactly the "same object, different reveal depth" case
	// anchors.rs's merge_reveal resolves by keeping the input with more
	// witness data per position.
	short := testTx([][]byte{{1, 2}})
	long := testTx([][]byte{{1, 2, 3, 4, 5}})
	require.Equal(t, short.TxHash(), long.TxHash())

	a := witness.PubWitnessFromTx(short)
	b := witness.PubWitnessFromTx(long)

	merged, err := a.MergeReveal(b)
	require.NoError(t, err)
	mergedTx, ok := merged.Tx()
	require.True(t, ok)
	require.Equal(t, long.TxIn[0].Witness, mergedTx.TxIn[0].Witness)

	// Symmetric: merging the other direction keeps the same winner.
	mergedReverse, err := b.MergeReveal(a)
	require.NoError(t, err)
	mergedReverseTx, ok := mergedReverse.Tx()
	require.True(t, ok)
	require.Equal(t, long.TxIn[0].Witness, mergedReverseTx.TxIn[0].Witness)
}

func TestPubWitnessMergeRevealRejectsTxidMismatch(t *testing.T) {
	txA := testTx([][]byte{{1}})
	txB := testTx([][]byte{{2}})
	txB.LockTime = txA.LockTime + 1 // ensure distinct hash

	a := witness.PubWitnessFromTx(txA)
	b := witness.PubWitnessFromTx(txB)
	_, err := a.MergeReveal(b)
	require.ErrorIs(t, err, witness.ErrTxidMismatch)
}

func TestSealWitnessMergeRevealUnionsKnownBundles(t *testing.T) {
	root := chainhash.Hash{1, 2, 3}
	var bundleA, bundleB seal.BundleId
	bundleA[0] = 0xAA
	bundleB[0] = 0xBB

	txid := chainhash.Hash{9, 9, 9}
	base := witness.SealWitness{
		Public:      witness.PubWitnessFromTxid(txid),
		MerkleBlock: mpc.NewMerkleBlock(root),
		DbcProof:    dbc.Proof{Opret: &dbc.OpretProof{}},
	}
	base.MerkleBlock.Known[bundleA] = chainhash.Hash{1}

	other := base
	other.MerkleBlock = mpc.NewMerkleBlock(root)
	other.MerkleBlock.Known[bundleB] = chainhash.Hash{2}

	merged, err := base.MergeReveal(other)
	require.NoError(t, err)
	require.Len(t, merged.MerkleBlock.Known, 2)
	require.Contains(t, merged.MerkleBlock.Known, bundleA)
	require.Contains(t, merged.MerkleBlock.Known, bundleB)
}

func TestSealWitnessMergeRevealRejectsDbcMismatch(t *testing.T) {
	root := chainhash.Hash{1}
	txid := chainhash.Hash{2}
	a := witness.SealWitness{
		Public:      witness.PubWitnessFromTxid(txid),
		MerkleBlock: mpc.NewMerkleBlock(root),
		DbcProof:    dbc.Proof{Opret: &dbc.OpretProof{}},
	}
	b := a
	b.DbcProof = dbc.Proof{Tapret: &dbc.TapretProof{Nonce: 1}}

	_, err := a.MergeReveal(b)
	require.ErrorIs(t, err, witness.ErrDbcMismatch)
}
