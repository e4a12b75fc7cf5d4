package witness

import "fmt"

// WitnessPos is the confirmed position of a witness transaction: block
// height and the block's timestamp.
type WitnessPos struct {
	Height    uint32
	Timestamp int64
}

// Compare orders two positions first by height, then by timestamp.
func (p WitnessPos) Compare(other WitnessPos) int {
	if p.Height != other.Height {
		if p.Height < other.Height {
			return -1
		}
		return 1
	}
	if p.Timestamp != other.Timestamp {
		if p.Timestamp < other.Timestamp {
			return -1
		}
		return 1
	}
	return 0
}

// ordKind disambiguates the three WitnessOrd variants for ordering, since
// Go has no tagged-union Ord derive.
type ordKind uint8

const (
	ordArchived ordKind = iota
	ordTentative
	ordMined
)

// WitnessOrd is the ordinal status of a witness transaction: archived
// (retained but hidden), tentative (seen, unconfirmed), or mined at a given
// position. Total order: Archived < Tentative < Mined(low) < Mined(high).
type WitnessOrd struct {
	kind ordKind
	pos  WitnessPos
}

// Archived reports a witness the caller has chosen to hide without
// forgetting it existed.
var Archived = WitnessOrd{kind: ordArchived}

// Tentative reports a witness seen but not yet confirmed in a block.
var Tentative = WitnessOrd{kind: ordTentative}

// Mined reports a witness confirmed at pos.
func Mined(pos WitnessPos) WitnessOrd {
	return WitnessOrd{kind: ordMined, pos: pos}
}

// IsArchived reports whether ord is the Archived variant.
func (o WitnessOrd) IsArchived() bool { return o.kind == ordArchived }

// IsMined reports whether ord is the Mined variant, returning its position.
func (o WitnessOrd) IsMined() (WitnessPos, bool) {
	return o.pos, o.kind == ordMined
}

// Compare implements the Archived < Tentative < Mined(low) < Mined(high)
// total order.
func (o WitnessOrd) Compare(other WitnessOrd) int {
	if o.kind != other.kind {
		if o.kind < other.kind {
			return -1
		}
		return 1
	}
	if o.kind == ordMined {
		return o.pos.Compare(other.pos)
	}
	return 0
}

func (o WitnessOrd) String() string {
	switch o.kind {
	case ordArchived:
		return "archived"
	case ordTentative:
		return "tentative"
	case ordMined:
		return fmt.Sprintf("mined(height=%d,time=%d)", o.pos.Height, o.pos.Timestamp)
	default:
		return "unknown"
	}
}
