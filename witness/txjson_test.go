package witness_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/witness"
)

func TestTxJSONRoundTrip(t *testing.T) {
	prevHash := chainhash.Hash{1, 2, 3}
	tx := wire.NewMsgTx(2)
	tx.LockTime = 99

	in := wire.NewTxIn(&wire.OutPoint{Hash: prevHash, Index: 1}, []byte{0xAB}, nil)
	in.Sequence = 0xFFFFFFFE
	in.Witness = wire.TxWitness{{1, 2, 3}, {4, 5}}
	tx.AddTxIn(in)
	tx.AddTxOut(wire.NewTxOut(5000, []byte{0xCD, 0xEF}))

	raw, err := witness.TxJSON{Tx: tx}.MarshalJSON()
	require.NoError(t, err)

	var decoded witness.TxJSON
	require.NoError(t, decoded.UnmarshalJSON(raw))

	require.Equal(t, tx.Version, decoded.Tx.Version)
	require.Equal(t, tx.LockTime, decoded.Tx.LockTime)
	require.Len(t, decoded.Tx.TxIn, 1)
	require.Equal(t, tx.TxIn[0].PreviousOutPoint, decoded.Tx.TxIn[0].PreviousOutPoint)
	require.Equal(t, tx.TxIn[0].SignatureScript, decoded.Tx.TxIn[0].SignatureScript)
	require.Equal(t, tx.TxIn[0].Sequence, decoded.Tx.TxIn[0].Sequence)
	require.Equal(t, tx.TxIn[0].Witness, decoded.Tx.TxIn[0].Witness)
	require.Len(t, decoded.Tx.TxOut, 1)
	require.Equal(t, tx.TxOut[0].Value, decoded.Tx.TxOut[0].Value)
	require.Equal(t, tx.TxOut[0].PkScript, decoded.Tx.TxOut[0].PkScript)
}

func TestTxJSONRoundTripWithNoWitnessData(t *testing.T) {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: 0}, nil, nil))

	raw, err := witness.TxJSON{Tx: tx}.MarshalJSON()
	require.NoError(t, err)

	var decoded witness.TxJSON
	require.NoError(t, decoded.UnmarshalJSON(raw))
	require.Empty(t, decoded.Tx.TxIn[0].Witness)
}
