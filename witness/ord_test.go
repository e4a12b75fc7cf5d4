package witness_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/witness"
)

func TestWitnessOrdTotalOrder(t *testing.T) {
	low := witness.Mined(witness.WitnessPos{Height: 100, Timestamp: 1000})
	high := witness.Mined(witness.WitnessPos{Height: 200, Timestamp: 500})

	require.Negative(t, witness.Archived.Compare(witness.Tentative))
	require.Negative(t, witness.Tentative.Compare(low))
	require.Negative(t, low.Compare(high))
	require.Positive(t, high.Compare(witness.Tentative))
	require.Positive(t, witness.Tentative.Compare(witness.Archived))
	require.Zero(t, witness.Archived.Compare(witness.Archived))
}

func TestWitnessOrdMinedAtSameHeightOrdersByTimestamp(t *testing.T) {
	earlier := witness.Mined(witness.WitnessPos{Height: 100, Timestamp: 10})
	later := witness.Mined(witness.WitnessPos{Height: 100, Timestamp: 20})
	require.Negative(t, earlier.Compare(later))
}

func TestWitnessOrdAccessors(t *testing.T) {
	require.True(t, witness.Archived.IsArchived())
	require.False(t, witness.Tentative.IsArchived())

	pos := witness.WitnessPos{Height: 42, Timestamp: 99}
	mined := witness.Mined(pos)
	gotPos, ok := mined.IsMined()
	require.True(t, ok)
	require.Equal(t, pos, gotPos)

	_, ok = witness.Tentative.IsMined()
	require.False(t, ok)
}
