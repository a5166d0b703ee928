// Package history provides the packed three-byte move record, the fixed-size
// move log and board-level forward/back replay.
package history

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Entry is one completed move packed into three bytes:
//
//	Delta:   low nibble row delta, high nibble column delta; in each nibble
//	         bit 3 is set for a negative delta and bits 0-2 hold the magnitude.
//	Indices: low nibble moving index; high nibble captured code, 0 for no
//	         capture, index+1 below the king's index, the index itself above.
//	Special: bits 0-1 promotion type (rook, knight, bishop, queen),
//	         bit 2 promotion flag, bits 5-7 captured type
//	         (pawn, rook, knight, bishop, queen).
type Entry [3]byte

const (
	deltaByte   = 0
	indicesByte = 1
	specialByte = 2

	signBit       = 0x8
	magnitudeMask = 0x7
	promotionFlag = 0x4
	promotionMask = 0x3
	capturedShift = 5
)

// Move is the decoded form of an Entry.
type Move struct {
	RowDelta      int
	ColDelta      int
	Index         int
	Capture       bool
	CapturedIndex int
	CapturedType  chess.PieceType
	Promotion     bool
	PromotionType chess.PieceType
}

// capturedTypes lists the capturable types in codec order.
var capturedTypes = [5]chess.PieceType{chess.Pawn, chess.Rook, chess.Knight, chess.Bishop, chess.Queen}

// Encode packs a move. Moves that cannot be represented are invariant
// violations.
func Encode(m Move) Entry {
	chess.CheckIndex(m.Index)

	var e Entry
	e[deltaByte] = encodeDelta(m.RowDelta) | encodeDelta(m.ColDelta)<<4

	indices := byte(m.Index)
	if m.Capture {
		indices |= encodeCapturedIndex(m.CapturedIndex) << 4
		e[specialByte] |= byte(typeCode(capturedTypes[:], m.CapturedType)) << capturedShift
	}
	e[indicesByte] = indices

	if m.Promotion {
		e[specialByte] |= promotionFlag | byte(typeCode(chess.PromotionTypes[:], m.PromotionType))
	}
	return e
}

// Decode unpacks an entry. Malformed entries are invariant violations.
func Decode(e Entry) Move {
	m := Move{
		RowDelta: decodeDelta(e[deltaByte] & 0xf),
		ColDelta: decodeDelta(e[deltaByte] >> 4),
		Index:    int(e[indicesByte] & 0xf),
	}

	captured := e[specialByte] >> capturedShift
	if code := e[indicesByte] >> 4; code != 0 {
		if int(captured) >= len(capturedTypes) {
			panic(errors.Invariantf("history entry %x: captured type code %d", e, captured))
		}
		m.Capture = true
		m.CapturedIndex = decodeCapturedIndex(code)
		m.CapturedType = capturedTypes[captured]
	} else {
		if captured != 0 {
			panic(errors.Invariantf("history entry %x: captured type without capture", e))
		}
	}

	if e[specialByte]&promotionFlag != 0 {
		m.Promotion = true
		m.PromotionType = chess.PromotionTypes[e[specialByte]&promotionMask]
	} else {
		if e[specialByte]&promotionMask != 0 {
			panic(errors.Invariantf("history entry %x: promotion type without promotion", e))
		}
	}
	return m
}

func encodeDelta(d int) byte {
	if d < -7 || d > 7 {
		panic(errors.Invariantf("delta %d out of range", d))
	}
	if d < 0 {
		return signBit | byte(-d)
	}
	return byte(d)
}

func decodeDelta(nibble byte) int {
	d := int(nibble & magnitudeMask)
	if nibble&signBit != 0 {
		return -d
	}
	return d
}

func encodeCapturedIndex(index int) byte {
	chess.CheckIndex(index)
	if index == chess.KingIndex {
		panic(errors.Invariantf("king recorded as captured"))
	}
	if index < chess.KingIndex {
		return byte(index + 1)
	}
	return byte(index)
}

func decodeCapturedIndex(code byte) int {
	if code <= chess.KingIndex {
		return int(code) - 1
	}
	return int(code)
}

func typeCode(table []chess.PieceType, t chess.PieceType) int {
	for i, candidate := range table {
		if candidate == t {
			return i
		}
	}
	panic(errors.Invariantf("piece type %v cannot be encoded", t))
}
