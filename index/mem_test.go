package index_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/contract"
	"github.com/lnp-bp/rgbcore/index"
	"github.com/lnp-bp/rgbcore/seal"
)

func TestRegisterContractIsIdempotent(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	contractID[0] = 1
	var schemaID seal.SchemaId
	schemaID[0] = 1

	require.NoError(t, m.RegisterContract(contractID, schemaID))
	require.NoError(t, m.RegisterContract(contractID, schemaID))

	opouts, err := m.PublicOpouts(contractID)
	require.NoError(t, err)
	require.Empty(t, opouts)
}

func TestRegisterBundleRejectsDistinctContract(t *testing.T) {
	m := index.NewMem()
	var contractA, contractB seal.ContractId
	contractA[0] = 1
	contractB[0] = 2
	var bundleID seal.BundleId
	bundleID[0] = 1

	require.NoError(t, m.RegisterBundle(contractA, bundleID))
	err := m.RegisterBundle(contractB, bundleID)
	require.Error(t, err)
	require.ErrorAs(t, err, &index.ErrDistinctBundleContract{})

	// Re-registering under the original contract is still fine.
	require.NoError(t, m.RegisterBundle(contractA, bundleID))
}

func TestRegisterOperationRejectsDistinctBundle(t *testing.T) {
	m := index.NewMem()
	var bundleA, bundleB seal.BundleId
	bundleA[0] = 1
	bundleB[0] = 2
	var opid seal.OpId
	opid[0] = 1

	require.NoError(t, m.RegisterOperation(bundleA, opid))
	err := m.RegisterOperation(bundleB, opid)
	require.Error(t, err)
	require.ErrorAs(t, err, &index.ErrDistinctBundleOp{})

	bundleID, err := m.BundleIDForOp(opid)
	require.NoError(t, err)
	require.Equal(t, bundleA, bundleID)
}

func TestRegisterSpendingReportsWhetherOpidAlreadyHadChildren(t *testing.T) {
	m := index.NewMem()
	var opid seal.OpId
	opid[0] = 1
	var childA, childB seal.BundleId
	childA[0] = 1
	childB[0] = 2

	hadChildren, err := m.RegisterSpending(opid, childA)
	require.NoError(t, err)
	require.False(t, hadChildren)

	hadChildren, err = m.RegisterSpending(opid, childB)
	require.NoError(t, err)
	require.True(t, hadChildren)

	children, err := m.BundleIDsChildrenOfOp(opid)
	require.NoError(t, err)
	require.ElementsMatch(t, []seal.BundleId{childA, childB}, children)
}

func TestBundleIDsChildrenOfOpUnknownErrors(t *testing.T) {
	m := index.NewMem()
	var opid seal.OpId
	_, err := m.BundleIDsChildrenOfOp(opid)
	require.Error(t, err)
	require.ErrorAs(t, err, &index.ErrBundleAbsent{})
}

func TestIndexGenesisAssignmentsUnregisteredContractErrors(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	genesis := &contract.Genesis{ContractID: contractID}
	err := m.IndexGenesisAssignments(genesis)
	require.Error(t, err)
	require.ErrorAs(t, err, &index.ErrContractAbsent{})
}

func testOutpoint(b byte, vout uint32) seal.OutputSeal {
	var h [32]byte
	h[0] = b
	return seal.OutputSeal{Hash: h, Index: vout}
}

func TestIndexGenesisAssignmentsRecordsRevealedOpouts(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	contractID[0] = 1
	var opid seal.OpId
	opid[0] = 1

	require.NoError(t, m.RegisterContract(contractID, seal.SchemaId{}))

	assigns := contract.NewAssignments()
	assigns.Rights[0] = []contract.RawAssign[contract.VoidState]{
		{Seal: &contract.GraphSeal{Vout: 0}, State: contract.VoidState{}},
	}
	genesis := &contract.Genesis{OpID: opid, ContractID: contractID, Assignments: assigns}
	require.NoError(t, m.IndexGenesisAssignments(genesis))

	opouts, err := m.PublicOpouts(contractID)
	require.NoError(t, err)
	require.Len(t, opouts, 1)
	require.Equal(t, opid, opouts[0].OpId)

	// Genesis assignments resolve against the zero txid, since genesis
	// seals carry no witness transaction to default to.
	out := seal.OutputSeal{Hash: seal.Txid{}, Index: 0}
	byOutput, err := m.OpoutsByOutputs(contractID, []seal.OutputSeal{out})
	require.NoError(t, err)
	require.Equal(t, opouts, byOutput)
}

func TestIndexTransitionAssignmentsResolveAgainstWitnessID(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	contractID[0] = 2
	var opid seal.OpId
	opid[0] = 2
	var txid seal.Txid
	txid[0] = 0xAA

	require.NoError(t, m.RegisterContract(contractID, seal.SchemaId{}))

	assigns := contract.NewAssignments()
	assigns.Fungibles[0] = []contract.RawAssign[contract.RevealedValue]{
		{Seal: &contract.GraphSeal{Vout: 3}, State: contract.RevealedValue{Amount: 7}},
	}
	transition := &contract.Transition{OpID: opid, Assignments: assigns}
	require.NoError(t, m.IndexTransitionAssignments(contractID, transition, txid))

	out := seal.OutputSeal{Hash: txid, Index: 3}
	opouts, err := m.OpoutsByOutputs(contractID, []seal.OutputSeal{out})
	require.NoError(t, err)
	require.Len(t, opouts, 1)
	require.Equal(t, opid, opouts[0].OpId)
}

func TestIndexAssignmentsRecordsConcealedUnderTerminal(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	contractID[0] = 3
	var opid seal.OpId
	opid[0] = 3
	var concealed seal.SecretSeal
	concealed[0] = 0xCC

	require.NoError(t, m.RegisterContract(contractID, seal.SchemaId{}))

	assigns := contract.NewAssignments()
	assigns.Data[0] = []contract.RawAssign[contract.RevealedData]{
		{Concealed: &concealed, State: contract.RevealedData{Value: []byte("x")}},
	}
	genesis := &contract.Genesis{OpID: opid, ContractID: contractID, Assignments: assigns}
	require.NoError(t, m.IndexGenesisAssignments(genesis))

	// A concealed assignment is not publicly disclosed...
	opouts, err := m.PublicOpouts(contractID)
	require.NoError(t, err)
	require.Empty(t, opouts)

	// ...but is findable by its terminal secret seal.
	byTerminal := m.OpoutsByTerminals([]seal.SecretSeal{concealed})
	require.Len(t, byTerminal, 1)
	require.Equal(t, opid, byTerminal[0].OpId)
}

func TestOpoutsByOutputsUnknownOutpointErrors(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	contractID[0] = 4
	require.NoError(t, m.RegisterContract(contractID, seal.SchemaId{}))

	_, err := m.OpoutsByOutputs(contractID, []seal.OutputSeal{testOutpoint(1, 0)})
	require.Error(t, err)
	require.ErrorAs(t, err, &index.ErrOutpointUnknown{})
}

func TestContractsAssigningFindsContractsReferencingOutpoint(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	contractID[0] = 5
	var opid seal.OpId
	opid[0] = 5

	require.NoError(t, m.RegisterContract(contractID, seal.SchemaId{}))
	assigns := contract.NewAssignments()
	assigns.Rights[0] = []contract.RawAssign[contract.VoidState]{
		{Seal: &contract.GraphSeal{Vout: 0}, State: contract.VoidState{}},
	}
	genesis := &contract.Genesis{OpID: opid, ContractID: contractID, Assignments: assigns}
	require.NoError(t, m.IndexGenesisAssignments(genesis))

	out := seal.OutputSeal{Hash: seal.Txid{}, Index: 0}
	contracts := m.ContractsAssigning([]seal.OutputSeal{out})
	require.Equal(t, []seal.ContractId{contractID}, contracts)

	other := testOutpoint(0x99, 1)
	require.Empty(t, m.ContractsAssigning([]seal.OutputSeal{other}))
}

func TestBundleInfoReturnsWitnessesAndContract(t *testing.T) {
	m := index.NewMem()
	var contractID seal.ContractId
	contractID[0] = 6
	var bundleID seal.BundleId
	bundleID[0] = 6
	var txidA, txidB seal.Txid
	txidA[0] = 1
	txidB[0] = 2

	require.NoError(t, m.RegisterBundle(contractID, bundleID))
	m.RegisterBundleWitness(bundleID, txidA)
	m.RegisterBundleWitness(bundleID, txidB)

	witnesses, gotContract, err := m.BundleInfo(bundleID)
	require.NoError(t, err)
	require.Equal(t, contractID, gotContract)
	require.ElementsMatch(t, []seal.Txid{txidA, txidB}, witnesses)
}

func TestBundleInfoUnknownBundleErrors(t *testing.T) {
	m := index.NewMem()
	var bundleID seal.BundleId
	_, _, err := m.BundleInfo(bundleID)
	require.Error(t, err)
	require.ErrorAs(t, err, &index.ErrBundleWitnessUnknown{})
}
