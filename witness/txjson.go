package witness

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/goccy/go-json"
)

// TxJSON wraps a *wire.MsgTx with the compact version/inputs/outputs/
// lockTime shape anchors.rs's tx_compat_serde module defines, so a
// revealed PubWitness transaction round-trips through a consignment's
// JSON envelope (spec.md §6's optional JSON codec) the same way the
// Rust original does.
type TxJSON struct {
	Tx *wire.MsgTx
}

type bpTxInput struct {
	PrevOutput string   `json:"prevOutput"`
	SigScript  string   `json:"sigScript"`
	Sequence   uint32   `json:"sequence"`
	Witness    []string `json:"witness"`
}

type bpTxOutput struct {
	Value        int64  `json:"value"`
	ScriptPubkey string `json:"scriptPubkey"`
}

type bpTx struct {
	Version  int32        `json:"version"`
	Inputs   []bpTxInput  `json:"inputs"`
	Outputs  []bpTxOutput `json:"outputs"`
	LockTime uint32       `json:"lockTime"`
}

// MarshalJSON implements json.Marshaler in the tx_compat_serde shape.
func (t TxJSON) MarshalJSON() ([]byte, error) {
	tx := t.Tx
	out := bpTx{
		Version:  tx.Version,
		LockTime: tx.LockTime,
	}
	for _, in := range tx.TxIn {
		witness := make([]string, len(in.Witness))
		for i, w := range in.Witness {
			witness[i] = hex.EncodeToString(w)
		}
		out.Inputs = append(out.Inputs, bpTxInput{
			PrevOutput: fmt.Sprintf("%s:%d", in.PreviousOutPoint.Hash, in.PreviousOutPoint.Index),
			SigScript:  hex.EncodeToString(in.SignatureScript),
			Sequence:   in.Sequence,
			Witness:    witness,
		})
	}
	for _, o := range tx.TxOut {
		out.Outputs = append(out.Outputs, bpTxOutput{
			Value:        o.Value,
			ScriptPubkey: hex.EncodeToString(o.PkScript),
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler in the tx_compat_serde shape.
func (t *TxJSON) UnmarshalJSON(data []byte) error {
	var in bpTx
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	tx := wire.NewMsgTx(in.Version)
	tx.LockTime = in.LockTime
	for _, bi := range in.Inputs {
		outpoint, err := parsePrevOutput(bi.PrevOutput)
		if err != nil {
			return err
		}
		sigScript, err := hex.DecodeString(bi.SigScript)
		if err != nil {
			return err
		}
		txIn := wire.NewTxIn(&outpoint, sigScript, nil)
		txIn.Sequence = bi.Sequence
		for _, w := range bi.Witness {
			elem, err := hex.DecodeString(w)
			if err != nil {
				return err
			}
			txIn.Witness = append(txIn.Witness, elem)
		}
		tx.AddTxIn(txIn)
	}
	for _, bo := range in.Outputs {
		pkScript, err := hex.DecodeString(bo.ScriptPubkey)
		if err != nil {
			return err
		}
		tx.AddTxOut(wire.NewTxOut(bo.Value, pkScript))
	}
	t.Tx = tx
	return nil
}

func parsePrevOutput(s string) (wire.OutPoint, error) {
	var out wire.OutPoint
	var idx uint32
	txidHex := s
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			txidHex = s[:i]
			if _, err := fmt.Sscanf(s[i+1:], "%d", &idx); err != nil {
				return out, err
			}
			break
		}
	}
	hash, err := chainhash.NewHashFromStr(txidHex)
	if err != nil {
		return out, err
	}
	out.Hash = *hash
	out.Index = idx
	return out, nil
}
