// Package engine provides legal destination generation and check detection
// over the fixed-slot board.
package engine

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// MaxDestinations bounds the pool for both sides together: 18 queens at 27
// squares, 4 rooks and 4 bishops at 14, 4 knights at 8 and 2 kings at 10
// including castling.
const MaxDestinations = 18*27 + 8*14 + 4*8 + 2*10

// Destination is one legal target square of one piece.
type Destination struct {
	Row     int8
	Column  int8
	Capture bool
}

// Square returns the destination as (row, col).
func (d Destination) Square() (int, int) {
	return int(d.Row), int(d.Column)
}

// Span locates the destinations of one piece inside the pool.
type Span struct {
	Start uint16
	Count uint16
}

// Destinations is the pool of legal destinations for every piece of both
// sides, keyed by (colour, index).
type Destinations struct {
	Count   uint16
	List    [MaxDestinations]Destination
	Spans   [2][chess.PiecesPerSide]Span
	CanMove [2]bool
}

// Reset empties the pool. Used entries are zeroed so two games in the same
// position compare equal whatever they held before.
func (d *Destinations) Reset() {
	for i := range d.List[:d.Count] {
		d.List[i] = Destination{}
	}
	d.Count = 0
	d.Spans = [2][chess.PiecesPerSide]Span{}
	d.CanMove = [2]bool{}
}

// Of returns the destinations of one piece. The slice aliases the pool and
// is valid until the next Recompute.
func (d *Destinations) Of(c chess.Colour, index int) []Destination {
	chess.CheckIndex(index)
	s := d.Spans[c][index]
	return d.List[s.Start : s.Start+s.Count]
}

// Find looks up the destination of a piece on (row, col).
func (d *Destinations) Find(c chess.Colour, index, row, col int) (Destination, bool) {
	for _, dest := range d.Of(c, index) {
		if int(dest.Row) == row && int(dest.Column) == col {
			return dest, true
		}
	}
	return Destination{}, false
}

// Total returns the number of legal destinations of a side.
func (d *Destinations) Total(c chess.Colour) int {
	n := 0
	for _, s := range d.Spans[c] {
		n += int(s.Count)
	}
	return n
}

func (d *Destinations) push(dest Destination) {
	if int(d.Count) >= MaxDestinations {
		panic(errors.Invariantf("destination pool overflow"))
	}
	d.List[d.Count] = dest
	d.Count++
}

// LastMove describes the previous history entry as far as en passant cares:
// which pawn, if any, just advanced two squares.
type LastMove struct {
	PawnDoubleStep bool
	Colour         chess.Colour
	Index          uint8
}
