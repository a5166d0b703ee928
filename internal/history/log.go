package history

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// MaxEntries is the capacity of a game's move log. Filling it ends the game
// as a draw.
const MaxEntries = 1000

// Log is the fixed-size, append-only move record of one game.
type Log struct {
	Count   uint16
	Entries [MaxEntries]Entry
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return int(l.Count)
}

// Full reports whether the log has reached MaxEntries.
func (l *Log) Full() bool {
	return int(l.Count) == MaxEntries
}

// At returns the entry at position i.
func (l *Log) At(i int) Entry {
	errors.Assert(i >= 0 && i < int(l.Count), "history index %d out of range [0,%d)", i, l.Count)
	return l.Entries[i]
}

// Append records a new entry.
func (l *Log) Append(e Entry) {
	errors.Assert(!l.Full(), "history log overflow")
	l.Entries[l.Count] = e
	l.Count++
}

// Truncate discards every entry from position n on.
func (l *Log) Truncate(n int) {
	errors.Assert(n >= 0 && n <= int(l.Count), "truncate to %d of %d entries", n, l.Count)
	for i := n; i < int(l.Count); i++ {
		l.Entries[i] = Entry{}
	}
	l.Count = uint16(n)
}

// SetPromotion patches the deferred promotion choice into the last entry.
func (l *Log) SetPromotion(t chess.PieceType) {
	errors.Assert(l.Count > 0, "promotion with an empty history")
	m := Decode(l.Entries[l.Count-1])
	m.Promotion = true
	m.PromotionType = t
	l.Entries[l.Count-1] = Encode(m)
}

// Mover returns the colour that made the entry at position i. White makes
// the even-numbered entries.
func Mover(i int) chess.Colour {
	if i%2 == 0 {
		return chess.White
	}
	return chess.Black
}
