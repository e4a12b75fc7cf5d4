package stash_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/contract"
	"github.com/lnp-bp/rgbcore/dbc"
	"github.com/lnp-bp/rgbcore/mpc"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/stash"
	"github.com/lnp-bp/rgbcore/witness"
)

func TestReplaceSchemaIsIdempotent(t *testing.T) {
	m := stash.NewMem()
	var schemaID seal.SchemaId
	schemaID[0] = 1
	schema := &contract.Schema{SchemaID: schemaID}

	created, err := m.ReplaceSchema(schema)
	require.NoError(t, err)
	require.True(t, created)

	createdAgain, err := m.ReplaceSchema(schema)
	require.NoError(t, err)
	require.False(t, createdAgain)

	got, ok := m.Schema(schemaID)
	require.True(t, ok)
	require.Same(t, schema, got)
}

func TestReplaceGenesisReturnsTrueOnlyForFirstInsert(t *testing.T) {
	m := stash.NewMem()
	var contractID seal.ContractId
	contractID[0] = 1
	genesis := &contract.Genesis{ContractID: contractID}

	created, err := m.ReplaceGenesis(genesis)
	require.NoError(t, err)
	require.True(t, created)

	overwritten, err := m.ReplaceGenesis(&contract.Genesis{ContractID: contractID})
	require.NoError(t, err)
	require.False(t, overwritten)

	_, ok := m.Genesis(contractID)
	require.True(t, ok)
}

func TestReplaceBundleReturnsTrueOnlyForFirstInsert(t *testing.T) {
	m := stash.NewMem()
	var bundleID seal.BundleId
	bundleID[0] = 1
	bundle := witness.NewTransitionBundle(bundleID)

	created, err := m.ReplaceBundle(bundle)
	require.NoError(t, err)
	require.True(t, created)

	createdAgain, err := m.ReplaceBundle(bundle)
	require.NoError(t, err)
	require.False(t, createdAgain)
}

func TestReplaceLibReturnsTrueOnlyForFirstInsert(t *testing.T) {
	m := stash.NewMem()
	var libID seal.LibId
	libID[0] = 1

	created, err := m.ReplaceLib(libID, []byte("payload"))
	require.NoError(t, err)
	require.True(t, created)

	createdAgain, err := m.ReplaceLib(libID, []byte("payload-v2"))
	require.NoError(t, err)
	require.False(t, createdAgain)

	got, ok := m.Lib(libID)
	require.True(t, ok)
	require.Equal(t, []byte("payload-v2"), got)
}

func TestAddSecretSealReturnsTrueOnlyForFirstInsert(t *testing.T) {
	m := stash.NewMem()
	txid := chainhash.Hash{1}
	revealed := contract.GraphSeal{Txid: &txid, Vout: 3}

	created, err := m.AddSecretSeal(revealed)
	require.NoError(t, err)
	require.True(t, created)

	createdAgain, err := m.AddSecretSeal(revealed)
	require.NoError(t, err)
	require.False(t, createdAgain)

	concealed := revealed.Conceal()
	require.True(t, m.SecretSeal(concealed))

	got, ok := m.SealSecret(concealed)
	require.True(t, ok)
	require.Equal(t, revealed, got)
}

func TestSealSecretUnknownReturnsFalse(t *testing.T) {
	m := stash.NewMem()
	var concealed seal.SecretSeal
	_, ok := m.SealSecret(concealed)
	require.False(t, ok)
}

func TestConsumeTypesExtendsTypeSystemWithoutOverwriting(t *testing.T) {
	m := stash.NewMem()
	require.NoError(t, m.ConsumeTypes(contract.TypeSystem{"stl:a": []byte("v1")}))
	require.NoError(t, m.ConsumeTypes(contract.TypeSystem{"stl:a": []byte("v2"), "stl:b": []byte("v3")}))

	got := m.TypeSystem()
	require.Equal(t, []byte("v1"), got["stl:a"])
	require.Equal(t, []byte("v3"), got["stl:b"])
}

func sealWitness(txid seal.Txid, root chainhash.Hash) witness.SealWitness {
	return witness.SealWitness{
		Public:      witness.PubWitnessFromTxid(txid),
		MerkleBlock: mpc.NewMerkleBlock(root),
		DbcProof:    dbc.Proof{Opret: &dbc.OpretProof{}},
	}
}

func TestReplaceWitnessFirstInsertAlwaysChanges(t *testing.T) {
	m := stash.NewMem()
	txid := chainhash.Hash{1}
	root := chainhash.Hash{2}

	changed, err := m.ReplaceWitness(sealWitness(txid, root))
	require.NoError(t, err)
	require.True(t, changed)
}

func TestReplaceWitnessMergesAndReportsChangeOnlyWhenMoreRevealed(t *testing.T) {
	m := stash.NewMem()
	txid := chainhash.Hash{3}
	root := chainhash.Hash{4}

	first := sealWitness(txid, root)
	var bundleA seal.BundleId
	bundleA[0] = 0xAA
	first.MerkleBlock.Known[bundleA] = chainhash.Hash{5}

	changed, err := m.ReplaceWitness(first)
	require.NoError(t, err)
	require.True(t, changed)

	// Re-inserting the exact same witness carries no new disclosure.
	changed, err = m.ReplaceWitness(first)
	require.NoError(t, err)
	require.False(t, changed)

	// Disclosing an additional bundle id is a genuine reveal.
	second := sealWitness(txid, root)
	var bundleB seal.BundleId
	bundleB[0] = 0xBB
	second.MerkleBlock.Known[bundleB] = chainhash.Hash{6}

	changed, err = m.ReplaceWitness(second)
	require.NoError(t, err)
	require.True(t, changed)

	stored, ok := m.Witness(txid)
	require.True(t, ok)
	require.Len(t, stored.MerkleBlock.Known, 2)
}

func TestReplaceWitnessRejectsDbcMismatch(t *testing.T) {
	m := stash.NewMem()
	txid := chainhash.Hash{7}
	root := chainhash.Hash{8}

	first := sealWitness(txid, root)
	_, err := m.ReplaceWitness(first)
	require.NoError(t, err)

	mismatched := first
	mismatched.DbcProof = dbc.Proof{Tapret: &dbc.TapretProof{Nonce: 1}}
	_, err = m.ReplaceWitness(mismatched)
	require.ErrorIs(t, err, witness.ErrDbcMismatch)
}

func TestSchemataAndGenesesAndBundleIDsAndWitnessIDsListStoredContent(t *testing.T) {
	m := stash.NewMem()
	var schemaID seal.SchemaId
	schemaID[0] = 1
	_, err := m.ReplaceSchema(&contract.Schema{SchemaID: schemaID})
	require.NoError(t, err)

	var contractID seal.ContractId
	contractID[0] = 1
	_, err = m.ReplaceGenesis(&contract.Genesis{ContractID: contractID})
	require.NoError(t, err)

	var bundleID seal.BundleId
	bundleID[0] = 1
	_, err = m.ReplaceBundle(witness.NewTransitionBundle(bundleID))
	require.NoError(t, err)

	txid := chainhash.Hash{9}
	_, err = m.ReplaceWitness(sealWitness(txid, chainhash.Hash{10}))
	require.NoError(t, err)

	require.Len(t, m.Schemata(), 1)
	require.Len(t, m.Geneses(), 1)
	require.Equal(t, []seal.BundleId{bundleID}, m.BundleIDs())
	require.Equal(t, []seal.Txid{txid}, m.WitnessIDs())
}
