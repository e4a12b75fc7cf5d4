package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/resolver"
)

func TestChainNetStringAndGenesisHash(t *testing.T) {
	cases := []struct {
		net  resolver.ChainNet
		name string
	}{
		{resolver.Mainnet, "mainnet"},
		{resolver.Testnet3, "testnet3"},
		{resolver.Testnet4, "testnet4"},
		{resolver.Signet, "signet"},
		{resolver.Regtest, "regtest"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.name, c.net.String())
			require.NotNil(t, c.net.GenesisHash())
		})
	}
}

func TestChainNetUnknownValueStringsAsUnknown(t *testing.T) {
	var n resolver.ChainNet = 99
	require.Equal(t, "unknown", n.String())
	require.Nil(t, n.GenesisHash())
}

func TestMainnetAndTestnetGenesisHashesDiffer(t *testing.T) {
	require.NotEqual(t, resolver.Mainnet.GenesisHash(), resolver.Testnet3.GenesisHash())
	require.NotEqual(t, resolver.Mainnet.GenesisHash(), resolver.Testnet4.GenesisHash())
}
