package contract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lnp-bp/rgbcore/contract"
	"github.com/lnp-bp/rgbcore/seal"
	"github.com/lnp-bp/rgbcore/witness"
)

func testSchema(globalType contract.GlobalStateType, maxItems uint32) *contract.Schema {
	return &contract.Schema{
		GlobalTypes: map[contract.GlobalStateType]contract.GlobalStateSchema{
			globalType: {MaxItems: maxItems},
		},
	}
}

func testGenesis(contractID seal.ContractId, opid seal.OpId, globalType contract.GlobalStateType, values []contract.RevealedData) *contract.Genesis {
	return &contract.Genesis{
		OpID:       opid,
		ContractID: contractID,
		Globals:    map[contract.GlobalStateType][]contract.RevealedData{globalType: values},
	}
}

func TestStateRegisterContractIsIdempotentOnContractID(t *testing.T) {
	s := contract.NewState()
	schema := testSchema(1, 10)

	var contractID seal.ContractId
	contractID[0] = 1
	var opid seal.OpId
	opid[0] = 1

	_, err := s.RegisterContract(schema, testGenesis(contractID, opid, 1, []contract.RevealedData{{Value: []byte("a")}}))
	require.NoError(t, err)

	// Registering again under the same ContractId must reuse the existing
	// shell rather than reset it.
	var opid2 seal.OpId
	opid2[0] = 2
	_, err = s.RegisterContract(schema, testGenesis(contractID, opid2, 1, []contract.RevealedData{{Value: []byte("b")}}))
	require.NoError(t, err)

	view, err := s.ContractState(contractID)
	require.NoError(t, err)
	it, err := view.Global(1)
	require.NoError(t, err)
	require.Equal(t, 2, it.Size())
}

func TestStateUpdateContractUnknownReturnsFalse(t *testing.T) {
	s := contract.NewState()
	var contractID seal.ContractId
	_, ok := s.UpdateContract(contractID)
	require.False(t, ok)
}

func TestContractStateUnknownContractErrors(t *testing.T) {
	s := contract.NewState()
	var contractID seal.ContractId
	_, err := s.ContractState(contractID)
	require.ErrorAs(t, err, &contract.ErrUnknownContract{})
}

func TestContractStateGlobalVisibleOnceWitnessKnownRegardlessOfOrdinal(t *testing.T) {
	s := contract.NewState()
	schema := testSchema(1, 10)

	var contractID seal.ContractId
	contractID[0] = 2
	var genesisOp seal.OpId
	genesisOp[0] = 2

	w, err := s.RegisterContract(schema, testGenesis(contractID, genesisOp, 1, nil))
	require.NoError(t, err)

	var txid seal.Txid
	txid[0] = 0xAA
	var transOp seal.OpId
	transOp[0] = 3
	var bundleID seal.BundleId
	bundleID[0] = 1

	transition := &contract.Transition{
		OpID: transOp,
		Globals: map[contract.GlobalStateType][]contract.RevealedData{
			1: {{Value: []byte("transition-value")}},
		},
	}
	require.NoError(t, w.AddTransition(transition, txid, witness.Tentative, bundleID))

	view, err := s.ContractState(contractID)
	require.NoError(t, err)
	it, err := view.Global(1)
	require.NoError(t, err)
	require.Equal(t, 1, it.Size())

	// Archiving re-orders (an archived witness sorts lowest) but a global
	// state item stays visible as long as its witness is known at all -
	// only the assignment read path (Rights/Fungible/Data) excludes
	// archived witnesses.
	s.UpsertWitness(txid, witness.Archived)
	view, err = s.ContractState(contractID)
	require.NoError(t, err)
	it, err = view.Global(1)
	require.NoError(t, err)
	require.Equal(t, 1, it.Size())
}

func TestContractStateAssignmentHiddenWhenWitnessArchived(t *testing.T) {
	s := contract.NewState()
	schema := testSchema(1, 10)

	var contractID seal.ContractId
	contractID[0] = 7
	var genesisOp seal.OpId
	genesisOp[0] = 9

	w, err := s.RegisterContract(schema, testGenesis(contractID, genesisOp, 1, nil))
	require.NoError(t, err)

	var txid seal.Txid
	txid[0] = 0xCC
	var transOp seal.OpId
	transOp[0] = 10
	var bundleID seal.BundleId
	bundleID[0] = 3

	out := seal.OutputSeal{Hash: txid, Index: 0}
	assigns := contract.NewAssignments()
	assigns.Rights[0] = []contract.RawAssign[contract.VoidState]{
		{Seal: &contract.GraphSeal{Vout: 0}, State: contract.VoidState{}},
	}
	transition := &contract.Transition{OpID: transOp, Assignments: assigns}
	require.NoError(t, w.AddTransition(transition, txid, witness.Tentative, bundleID))

	view, err := s.ContractState(contractID)
	require.NoError(t, err)
	require.Equal(t, 1, view.Rights(out, 0))

	s.UpsertWitness(txid, witness.Archived)
	view, err = s.ContractState(contractID)
	require.NoError(t, err)
	require.Equal(t, 0, view.Rights(out, 0))
}

func TestContractStateFiltersInvalidBundle(t *testing.T) {
	s := contract.NewState()
	schema := testSchema(1, 10)

	var contractID seal.ContractId
	contractID[0] = 3
	var genesisOp seal.OpId
	genesisOp[0] = 4

	w, err := s.RegisterContract(schema, testGenesis(contractID, genesisOp, 1, nil))
	require.NoError(t, err)

	var txid seal.Txid
	txid[0] = 0xBB
	var transOp seal.OpId
	transOp[0] = 5
	var bundleID seal.BundleId
	bundleID[0] = 2

	// GraphSeal.Txid is nil, so the assignment resolves against the
	// transition's own anchoring witness, txid.
	out := seal.OutputSeal{Hash: txid, Index: 0}
	assigns := contract.NewAssignments()
	assigns.Rights[0] = []contract.RawAssign[contract.VoidState]{
		{Seal: &contract.GraphSeal{Vout: 0}, State: contract.VoidState{}},
	}
	transition := &contract.Transition{OpID: transOp, Assignments: assigns}
	require.NoError(t, w.AddTransition(transition, txid, witness.Mined(witness.WitnessPos{Height: 100, Timestamp: 1}), bundleID))

	view, err := s.ContractState(contractID)
	require.NoError(t, err)
	require.Equal(t, 1, view.Rights(out, 0))

	s.UpdateBundle(bundleID, false)
	view, err = s.ContractState(contractID)
	require.NoError(t, err)
	require.Equal(t, 0, view.Rights(out, 0))

	// Restoring the bundle makes the assignment visible again.
	s.UpdateBundle(bundleID, true)
	view, err = s.ContractState(contractID)
	require.NoError(t, err)
	require.Equal(t, 1, view.Rights(out, 0))
}

func TestGenesisAssignmentsAreAlwaysVisible(t *testing.T) {
	s := contract.NewState()
	schema := testSchema(1, 10)

	var contractID seal.ContractId
	contractID[0] = 4
	var genesisOp seal.OpId
	genesisOp[0] = 6

	// Genesis assignments carry no witness, so GraphSeal.Txid defaults to
	// the zero Txid rather than any concrete anchoring transaction.
	out := seal.OutputSeal{Hash: seal.Txid{}, Index: 1}
	genesis := testGenesis(contractID, genesisOp, 1, nil)
	genesis.Assignments = contract.NewAssignments()
	genesis.Assignments.Fungibles[0] = []contract.RawAssign[contract.RevealedValue]{
		{Seal: &contract.GraphSeal{Vout: 1}, State: contract.RevealedValue{Amount: 42}},
	}

	_, err := s.RegisterContract(schema, genesis)
	require.NoError(t, err)

	view, err := s.ContractState(contractID)
	require.NoError(t, err)
	amounts := view.Fungible(out, 0)
	require.Len(t, amounts, 1)
	require.Equal(t, uint64(42), amounts[0].Amount)
}

func TestGlobalStateIterOrdersDescendingAndRespectsLimit(t *testing.T) {
	s := contract.NewState()
	schema := testSchema(1, 1)

	var contractID seal.ContractId
	contractID[0] = 5
	var genesisOp seal.OpId
	genesisOp[0] = 7

	genesis := testGenesis(contractID, genesisOp, 1, []contract.RevealedData{
		{Value: []byte("first")},
		{Value: []byte("second")},
	})
	_, err := s.RegisterContract(schema, genesis)
	require.NoError(t, err)

	view, err := s.ContractState(contractID)
	require.NoError(t, err)
	it, err := view.Global(1)
	require.NoError(t, err)
	// Limit is 1, so only the highest-index genesis entry survives.
	require.Equal(t, 1, it.Size())
	_, data, ok := it.Prev()
	require.True(t, ok)
	require.Equal(t, []byte("second"), data.Value)
}

func TestUnknownGlobalStateTypeErrors(t *testing.T) {
	s := contract.NewState()
	schema := testSchema(1, 10)

	var contractID seal.ContractId
	contractID[0] = 6
	var genesisOp seal.OpId
	genesisOp[0] = 8

	_, err := s.RegisterContract(schema, testGenesis(contractID, genesisOp, 1, nil))
	require.NoError(t, err)

	view, err := s.ContractState(contractID)
	require.NoError(t, err)
	_, err = view.Global(99)
	require.ErrorAs(t, err, &contract.ErrUnknownGlobalStateType{})
}
