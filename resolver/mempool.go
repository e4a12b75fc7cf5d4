package resolver

import (
	"context"

	"github.com/lnp-bp/rgbcore/seal"
)

// MempoolClient resolves witnesses against mempool.space, which exposes
// the same REST shape as Esplora. Grounded verbatim on
// mempool_blocking.rs's MemPoolClient: a thin wrapper delegating every
// call to an inner EsploraClient so a future divergence between the two
// APIs only needs changing in one place.
type MempoolClient struct {
	inner *EsploraClient
}

// NewMempoolClient returns a client against baseURL (e.g.
// "https://mempool.space/api", or "https://mempool.space/testnet4/api").
func NewMempoolClient(baseURL string) *MempoolClient {
	return &MempoolClient{inner: NewEsploraClient(baseURL)}
}

func (c *MempoolClient) CheckChainNet(ctx context.Context, net ChainNet) error {
	return c.inner.CheckChainNet(ctx, net)
}

func (c *MempoolClient) ResolveWitness(ctx context.Context, txid seal.Txid) (WitnessStatus, error) {
	return c.inner.ResolveWitness(ctx, txid)
}
