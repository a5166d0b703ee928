package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// placed describes one piece of a synthetic test position.
type placed struct {
	colour chess.Colour
	index  int
	typ    chess.PieceType
	square string
}

// setup builds a board holding only the given pieces.
func setup(t *testing.T, pieces ...placed) *chess.Board {
	t.Helper()
	b := &chess.Board{}
	b.Clear()
	for _, p := range pieces {
		row, col, err := chess.ParseSquare(p.square)
		if err != nil {
			t.Fatalf("bad square in test setup: %v", err)
		}
		b.Place(p.colour, p.index, p.typ, row, col)
	}
	return b
}

func wk(sq string) placed { return placed{chess.White, chess.KingIndex, chess.King, sq} }
func bk(sq string) placed { return placed{chess.Black, chess.KingIndex, chess.King, sq} }

// squares lists destination names of one piece.
func squares(d *Destinations, c chess.Colour, index int) map[string]bool {
	out := make(map[string]bool)
	for _, dest := range d.Of(c, index) {
		out[chess.SquareName(dest.Square())] = dest.Capture
	}
	return out
}

func TestIsCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pieces []placed
		want   bool
	}{
		{"rook on open file", []placed{wk("e1"), bk("a8"), {chess.Black, 8, chess.Rook, "e8"}}, true},
		{"rook blocked", []placed{wk("e1"), bk("a8"), {chess.Black, 8, chess.Rook, "e8"}, {chess.White, 4, chess.Pawn, "e2"}}, false},
		{"bishop diagonal", []placed{wk("e1"), bk("a8"), {chess.Black, 10, chess.Bishop, "b4"}}, true},
		{"knight", []placed{wk("e1"), bk("a8"), {chess.Black, 9, chess.Knight, "f3"}}, true},
		{"knight not aligned", []placed{wk("e1"), bk("a8"), {chess.Black, 9, chess.Knight, "f4"}}, false},
		{"black pawn attacks downwards", []placed{wk("e1"), bk("a8"), {chess.Black, 3, chess.Pawn, "d2"}}, true},
		{"black pawn behind king", []placed{wk("e4"), bk("a8"), {chess.Black, 3, chess.Pawn, "d3"}}, false},
		{"queen diagonal blocked", []placed{wk("e1"), bk("a8"), {chess.Black, 11, chess.Queen, "a5"}, {chess.White, 3, chess.Pawn, "d2"}}, false},
		{"queen diagonal open", []placed{wk("e1"), bk("a8"), {chess.Black, 11, chess.Queen, "a5"}}, true},
		{"adjacent kings", []placed{wk("e1"), bk("e2")}, true},
		{"captured rook ignored", []placed{wk("e1"), bk("a8"), {chess.Black, 8, chess.Empty, "e8"}}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := setup(t, tt.pieces...)
			if got := IsCheck(b, chess.White); got != tt.want {
				t.Errorf("IsCheck(White) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecompute_InitialPosition(t *testing.T) {
	t.Parallel()
	b := chess.NewBoard()
	var d Destinations
	Recompute(b, LastMove{}, &d)

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if got := d.Total(c); got != 20 {
			t.Errorf("Total(%v) = %d, want 20", c, got)
		}
		if !d.CanMove[c] {
			t.Errorf("CanMove[%v] = false, want true", c)
		}
	}

	want := map[string]bool{"a3": false, "c3": false}
	if diff := cmp.Diff(want, squares(&d, chess.White, chess.QueensideKnight)); diff != "" {
		t.Errorf("b1 knight destinations mismatch (-want +got):\n%s", diff)
	}
	want = map[string]bool{"e3": false, "e4": false}
	if diff := cmp.Diff(want, squares(&d, chess.White, 4)); diff != "" {
		t.Errorf("e2 pawn destinations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecompute_LeavesBoardUntouched(t *testing.T) {
	t.Parallel()
	b := setup(t,
		wk("e1"), bk("e8"),
		placed{chess.White, 8, chess.Rook, "a1"},
		placed{chess.White, 15, chess.Rook, "h1"},
		placed{chess.White, 4, chess.Pawn, "e5"},
		placed{chess.Black, 3, chess.Pawn, "d5"},
		placed{chess.Black, 11, chess.Queen, "b4"},
		placed{chess.Black, 9, chess.Knight, "g3"},
	)
	before := *b

	var d Destinations
	Recompute(b, LastMove{PawnDoubleStep: true, Colour: chess.Black, Index: 3}, &d)

	if diff := cmp.Diff(before, *b); diff != "" {
		t.Errorf("Recompute mutated the board (-before +after):\n%s", diff)
	}
}

func TestRecompute_Pins(t *testing.T) {
	t.Parallel()
	b := setup(t,
		wk("e1"), bk("a8"),
		placed{chess.White, 8, chess.Rook, "e4"},
		placed{chess.Black, 8, chess.Rook, "e8"},
	)
	var d Destinations
	Recompute(b, LastMove{}, &d)

	want := map[string]bool{"e2": false, "e3": false, "e5": false, "e6": false, "e7": false, "e8": true}
	if diff := cmp.Diff(want, squares(&d, chess.White, 8)); diff != "" {
		t.Errorf("pinned rook destinations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecompute_CheckEvasion(t *testing.T) {
	t.Parallel()
	b := setup(t, wk("e1"), bk("a8"), placed{chess.Black, 8, chess.Rook, "e8"})
	var d Destinations
	Recompute(b, LastMove{}, &d)

	want := map[string]bool{"d1": false, "f1": false, "d2": false, "f2": false}
	if diff := cmp.Diff(want, squares(&d, chess.White, chess.KingIndex)); diff != "" {
		t.Errorf("king evasions mismatch (-want +got):\n%s", diff)
	}
}

func TestRecompute_NeverCapturesKing(t *testing.T) {
	t.Parallel()
	b := setup(t, wk("a1"), bk("e8"), placed{chess.White, 11, chess.Queen, "e7"})
	var d Destinations
	Recompute(b, LastMove{}, &d)

	if _, ok := d.Find(chess.White, 11, 7, 4); ok {
		t.Error("queen may capture the king")
	}
	if _, ok := d.Find(chess.Black, chess.KingIndex, 6, 4); !ok {
		t.Error("king cannot take the undefended queen")
	}
}

func TestRecompute_EnPassant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		last LastMove
		want map[string]bool
	}{
		{"after double step", LastMove{PawnDoubleStep: true, Colour: chess.Black, Index: 3}, map[string]bool{"e6": false, "d6": true}},
		{"no double step", LastMove{}, map[string]bool{"e6": false}},
		{"other pawn moved", LastMove{PawnDoubleStep: true, Colour: chess.Black, Index: 6}, map[string]bool{"e6": false}},
		{"own pawn moved", LastMove{PawnDoubleStep: true, Colour: chess.White, Index: 3}, map[string]bool{"e6": false}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := setup(t, wk("e1"), bk("e8"),
				placed{chess.White, 4, chess.Pawn, "e5"},
				placed{chess.Black, 3, chess.Pawn, "d5"},
				placed{chess.Black, 6, chess.Pawn, "g7"},
			)
			var d Destinations
			Recompute(b, tt.last, &d)
			if diff := cmp.Diff(tt.want, squares(&d, chess.White, 4)); diff != "" {
				t.Errorf("destinations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecompute_EnPassantDiscoveredCheck(t *testing.T) {
	t.Parallel()
	b := setup(t, wk("a5"), bk("e8"),
		placed{chess.White, 3, chess.Pawn, "d5"},
		placed{chess.Black, 4, chess.Pawn, "e5"},
		placed{chess.Black, 15, chess.Rook, "h5"},
	)
	var d Destinations
	Recompute(b, LastMove{PawnDoubleStep: true, Colour: chess.Black, Index: 4}, &d)

	want := map[string]bool{"d6": false}
	if diff := cmp.Diff(want, squares(&d, chess.White, 3)); diff != "" {
		t.Errorf("destinations mismatch (-want +got):\n%s", diff)
	}
}

func TestRecompute_Castling(t *testing.T) {
	t.Parallel()

	base := []placed{
		wk("e1"),
		{chess.White, 8, chess.Rook, "a1"},
		{chess.White, 15, chess.Rook, "h1"},
	}

	tests := []struct {
		name      string
		extra     []placed
		moved     int
		kingside  bool
		queenside bool
	}{
		{"both sides", []placed{bk("e8")}, -1, true, true},
		{"f1 attacked", []placed{bk("e8"), {chess.Black, 10, chess.Bishop, "a6"}}, -1, false, true},
		{"king in check", []placed{bk("a8"), {chess.Black, 8, chess.Rook, "e7"}}, -1, false, false},
		{"kingside rook moved", []placed{bk("e8")}, 15, false, true},
		{"king moved", []placed{bk("e8")}, chess.KingIndex, false, false},
		{"b1 occupied", []placed{bk("e8"), {chess.White, 9, chess.Knight, "b1"}}, -1, true, false},
		{"b1 attacked only", []placed{bk("e8"), {chess.Black, 8, chess.Rook, "b8"}}, -1, true, true},
		{"c1 attacked", []placed{bk("e8"), {chess.Black, 8, chess.Rook, "c8"}}, -1, true, false},
		{"rook captured", []placed{bk("e8"), {chess.White, 15, chess.Empty, "h1"}}, -1, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := setup(t, append(append([]placed{}, base...), tt.extra...)...)
			if tt.moved >= 0 {
				b.Pieces[chess.White][tt.moved].MoveCount = 2
			}
			var d Destinations
			Recompute(b, LastMove{}, &d)

			if _, got := d.Find(chess.White, chess.KingIndex, 0, 6); got != tt.kingside {
				t.Errorf("kingside castle = %v, want %v", got, tt.kingside)
			}
			if _, got := d.Find(chess.White, chess.KingIndex, 0, 2); got != tt.queenside {
				t.Errorf("queenside castle = %v, want %v", got, tt.queenside)
			}
		})
	}
}

func TestRecompute_ReusedPoolMatchesFresh(t *testing.T) {
	t.Parallel()
	var reused Destinations
	Recompute(chess.NewBoard(), LastMove{}, &reused)

	b := setup(t, bk("a8"), wk("e1"), placed{chess.White, 11, chess.Queen, "b5"})
	Recompute(b, LastMove{}, &reused)
	var fresh Destinations
	Recompute(b, LastMove{}, &fresh)

	if reused != fresh {
		t.Errorf("pool reused from a busier position holds stale entries: %d used, %d fresh", reused.Count, fresh.Count)
	}
}

func TestRecompute_Stalemate(t *testing.T) {
	t.Parallel()
	b := setup(t, bk("a8"), wk("e1"), placed{chess.White, 11, chess.Queen, "b6"})
	var d Destinations
	Recompute(b, LastMove{}, &d)

	if d.CanMove[chess.Black] {
		t.Errorf("CanMove[Black] = true, destinations %v", squares(&d, chess.Black, chess.KingIndex))
	}
	if IsCheck(b, chess.Black) {
		t.Error("IsCheck(Black) = true in a stalemate")
	}
}

func TestRecompute_PanicsOnPawnOnLastRank(t *testing.T) {
	b := setup(t, wk("e1"), bk("e8"), placed{chess.White, 0, chess.Pawn, "a8"})
	defer func() {
		if recover() == nil {
			t.Error("Recompute accepted a pawn on the last rank")
		}
	}()
	var d Destinations
	Recompute(b, LastMove{}, &d)
}

func BenchmarkRecompute(b *testing.B) {
	board := chess.NewBoard()
	var d Destinations
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Recompute(board, LastMove{}, &d)
	}
}
