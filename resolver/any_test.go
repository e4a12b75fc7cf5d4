package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/resolver"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

// fakeResolver is a minimal resolver.Resolver stub for exercising
// AnyResolver without touching the network.
type fakeResolver struct {
	calls   int
	status  resolver.WitnessStatus
	err     error
	chainOK error
}

func (f *fakeResolver) CheckChainNet(ctx context.Context, net resolver.ChainNet) error {
	return f.chainOK
}

func (f *fakeResolver) ResolveWitness(ctx context.Context, txid seal.Txid) (resolver.WitnessStatus, error) {
	f.calls++
	return f.status, f.err
}

func testTx() *wire.MsgTx {
	tx := wire.NewMsgTx(wire.TxVersion)
	tx.AddTxIn(wire.NewTxIn(&wire.OutPoint{Index: 0}, nil, nil))
	return tx
}

func TestAnyResolverResolvesFromConsignmentCacheWithoutCallingInner(t *testing.T) {
	inner := &fakeResolver{}
	a := resolver.NewAnyResolver(inner)

	tx := testTx()
	a.AddConsignmentTx(tx)

	status, err := a.ResolveWitness(context.Background(), seal.Txid(tx.TxHash()))
	require.NoError(t, err)
	require.True(t, status.Resolved)
	require.Equal(t, witness.Tentative, status.Ord)
	require.Equal(t, 0, inner.calls)
}

func TestAnyResolverFallsBackToInnerWhenTxNotInCache(t *testing.T) {
	var txid seal.Txid
	txid[0] = 1
	want := resolver.Resolved(testTx(), witness.Mined(witness.WitnessPos{Height: 10, Timestamp: 1}))
	inner := &fakeResolver{status: want}
	a := resolver.NewAnyResolver(inner)

	status, err := a.ResolveWitness(context.Background(), txid)
	require.NoError(t, err)
	require.Equal(t, want, status)
	require.Equal(t, 1, inner.calls)
}

func TestAnyResolverStrictModeSkipsConsignmentCache(t *testing.T) {
	inner := &fakeResolver{err: errors.New("not found")}
	a := resolver.NewAnyResolver(inner)
	a.StrictMode = true

	tx := testTx()
	a.AddConsignmentTx(tx)

	_, err := a.ResolveWitness(context.Background(), seal.Txid(tx.TxHash()))
	require.Error(t, err)
	require.Equal(t, 1, inner.calls)
}

func TestAnyResolverCheckChainNetDelegates(t *testing.T) {
	wantErr := errors.New("wrong chain")
	inner := &fakeResolver{chainOK: wantErr}
	a := resolver.NewAnyResolver(inner)

	err := a.CheckChainNet(context.Background(), resolver.Mainnet)
	require.ErrorIs(t, err, wantErr)
}
