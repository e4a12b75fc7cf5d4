// Package seal defines the fixed-width, content-derived identifiers and
// seal types shared by the stash, index and contract-state packages.
package seal

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// IDLen is the byte width of every identifier in this package.
const IDLen = chainhash.HashSize

// Txid is a witness transaction identifier, reusing the teacher's own hash
// type rather than introducing a parallel one.
type Txid = chainhash.Hash

// OpId is the content-derived identifier of a single operation (genesis or
// state transition).
type OpId [IDLen]byte

// BundleId identifies a TransitionBundle: a set of operations sharing one
// witness transaction.
type BundleId [IDLen]byte

// ContractId identifies a contract, derived from its genesis operation.
type ContractId [IDLen]byte

// SchemaId identifies a schema definition.
type SchemaId [IDLen]byte

// LibId identifies a VM library. The library's bytes are out of scope for
// this engine; only the identifier is ever carried here.
type LibId [IDLen]byte

// String implementations render the lowercase hex form, matching
// chainhash.Hash's own String() convention used throughout the teacher
// codebase for txids and block hashes.

func (id OpId) String() string       { return hashString(id[:]) }
func (id BundleId) String() string   { return hashString(id[:]) }
func (id ContractId) String() string { return hashString(id[:]) }
func (id SchemaId) String() string   { return hashString(id[:]) }
func (id LibId) String() string      { return hashString(id[:]) }

func hashString(b []byte) string {
	var h chainhash.Hash
	copy(h[:], b)
	return h.String()
}

// Compare returns -1, 0 or 1 as id is less than, equal to, or greater than
// other, comparing raw byte value. All identifiers in this package are
// totally ordered by byte value per the data model.
func (id OpId) Compare(other OpId) int       { return bytes.Compare(id[:], other[:]) }
func (id BundleId) Compare(other BundleId) int       { return bytes.Compare(id[:], other[:]) }
func (id ContractId) Compare(other ContractId) int   { return bytes.Compare(id[:], other[:]) }
func (id SchemaId) Compare(other SchemaId) int       { return bytes.Compare(id[:], other[:]) }
func (id LibId) Compare(other LibId) int             { return bytes.Compare(id[:], other[:]) }

// Encode writes the fixed 32-byte identifier to w.
func (id OpId) Encode(w io.Writer) error       { return writeFixed(w, id[:]) }
func (id BundleId) Encode(w io.Writer) error   { return writeFixed(w, id[:]) }
func (id ContractId) Encode(w io.Writer) error { return writeFixed(w, id[:]) }
func (id SchemaId) Encode(w io.Writer) error   { return writeFixed(w, id[:]) }
func (id LibId) Encode(w io.Writer) error      { return writeFixed(w, id[:]) }

// DecodeOpId reads a fixed 32-byte OpId from r.
func DecodeOpId(r io.Reader) (OpId, error) {
	var id OpId
	return id, readFixed(r, id[:])
}

// DecodeBundleId reads a fixed 32-byte BundleId from r.
func DecodeBundleId(r io.Reader) (BundleId, error) {
	var id BundleId
	return id, readFixed(r, id[:])
}

// DecodeContractId reads a fixed 32-byte ContractId from r.
func DecodeContractId(r io.Reader) (ContractId, error) {
	var id ContractId
	return id, readFixed(r, id[:])
}

// DecodeSchemaId reads a fixed 32-byte SchemaId from r.
func DecodeSchemaId(r io.Reader) (SchemaId, error) {
	var id SchemaId
	return id, readFixed(r, id[:])
}

// DecodeLibId reads a fixed 32-byte LibId from r.
func DecodeLibId(r io.Reader) (LibId, error) {
	var id LibId
	return id, readFixed(r, id[:])
}

// writeFixed and readFixed follow the teacher's elkrem/serdes.go style:
// a plain w.Write / io.ReadFull over a fixed-size field, no length framing.
func writeFixed(w io.Writer, b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return fmt.Errorf("short write: wrote %d bytes, expected %d", n, len(b))
	}
	return nil
}

func readFixed(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	return err
}

// AssignmentType is the schema-declared type tag of an operation output
// (an owned-rights/fungible/global/data slot).
type AssignmentType uint16

// Opout is an operation output address: (OpId, AssignmentType, index).
// Totally ordered primarily by OpId, then by Type, then by Index.
type Opout struct {
	OpId  OpId
	Type  AssignmentType
	Index uint16
}

// Compare orders Opout by OpId, then Type, then Index.
func (o Opout) Compare(other Opout) int {
	if c := o.OpId.Compare(other.OpId); c != 0 {
		return c
	}
	if o.Type != other.Type {
		if o.Type < other.Type {
			return -1
		}
		return 1
	}
	if o.Index != other.Index {
		if o.Index < other.Index {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether o orders strictly before other; index/ordered.go
// wraps Opout in an item type to satisfy google/btree's Item interface.
func (o Opout) Less(other Opout) bool { return o.Compare(other) < 0 }

// Encode writes an Opout in its fixed 36-byte wire form: 32-byte OpId,
// 2-byte big-endian Type, 2-byte big-endian Index.
func (o Opout) Encode(w io.Writer) error {
	if err := o.OpId.Encode(w); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, o.Type); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, o.Index)
}

// DecodeOpout reads an Opout from its fixed 36-byte wire form.
func DecodeOpout(r io.Reader) (Opout, error) {
	var o Opout
	id, err := DecodeOpId(r)
	if err != nil {
		return o, err
	}
	o.OpId = id
	if err := binary.Read(r, binary.BigEndian, &o.Type); err != nil {
		return o, err
	}
	if err := binary.Read(r, binary.BigEndian, &o.Index); err != nil {
		return o, err
	}
	return o, nil
}

// Bytes returns the fixed 36-byte encoding of o.
func (o Opout) Bytes() []byte {
	var buf bytes.Buffer
	// Encode cannot fail writing into a bytes.Buffer.
	_ = o.Encode(&buf)
	return buf.Bytes()
}

func (o Opout) String() string {
	return fmt.Sprintf("%s/%d/%d", o.OpId, o.Type, o.Index)
}
