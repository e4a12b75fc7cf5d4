package seal

import (
	"io"

	"github.com/btcsuite/btcd/wire"
)

// OutputSeal anchors a seal definition to a concrete transaction outpoint.
// Reused directly from the teacher's own wire.OutPoint rather than a new
// type, matching sweep/txgenerator.go's pervasive use of wire.OutPoint as
// the canonical UTXO address.
type OutputSeal = wire.OutPoint

// EncodeOutputSeal writes an OutputSeal as its 32-byte txid followed by a
// 4-byte big-endian output index, the same layout channeldb uses for
// outpoint keys.
func EncodeOutputSeal(w io.Writer, seal OutputSeal) error {
	if err := writeFixed(w, seal.Hash[:]); err != nil {
		return err
	}
	return writeUint32(w, seal.Index)
}

// DecodeOutputSeal reads an OutputSeal in the layout EncodeOutputSeal uses.
func DecodeOutputSeal(r io.Reader) (OutputSeal, error) {
	var seal OutputSeal
	if err := readFixed(r, seal.Hash[:]); err != nil {
		return seal, err
	}
	idx, err := readUint32(r)
	if err != nil {
		return seal, err
	}
	seal.Index = idx
	return seal, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
	return writeFixed(w, b[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFixed(r, b[:]); err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
