package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
	"github.com/lgbarn/chessplay-go/internal/testutil"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

// heldQueue keeps submitted entries until the test runs them. While full
// is set it refuses new entries.
type heldQueue struct {
	entries []worker.Entry
	full    bool
}

func (q *heldQueue) TrySubmit(e worker.Entry) bool {
	if q.full {
		return false
	}
	q.entries = append(q.entries, e)
	return true
}

func (q *heldQueue) runAll() {
	for _, e := range q.entries {
		e.Callback(e.Data)
	}
	q.entries = nil
}

func testConfig(white, black config.PlayerType) *config.Config {
	return config.NewConfigBuilder().
		WithPlayers(white, black).
		WithSaveFile("", false).
		WithSeed(1).
		WithVerbosity(0).
		Build()
}

func TestNew(t *testing.T) {
	cfg := testConfig(config.Human, 3)
	s := New(cfg, worker.Inline{})

	if s.Len() != 1 || s.Index() != 0 {
		t.Fatalf("Len/Index = %d/%d; want 1/0", s.Len(), s.Index())
	}
	slot := s.CurrentSlot()
	if slot.GameName() == "" {
		t.Error("game has no name")
	}
	if slot.Player(chess.White) != config.Human || slot.Player(chess.Black) != 3 {
		t.Errorf("players = %v", slot.Players)
	}
	if s.Current().Ply() != 0 || s.Current().ToMove != chess.White {
		t.Error("first game is not at the starting position")
	}
}

func TestSlotName(t *testing.T) {
	var slot Slot
	slot.SetName(strings.Repeat("x", NameSize+10))
	if got := slot.GameName(); len(got) != NameSize {
		t.Errorf("len(GameName()) = %d; want %d", len(got), NameSize)
	}
	slot.SetName("brave-otter")
	if got := slot.GameName(); got != "brave-otter" {
		t.Errorf("GameName() = %q", got)
	}
}

func TestGameSlots(t *testing.T) {
	s := New(testConfig(config.Human, config.Human), worker.Inline{})
	if err := s.PlayUCI("e2e4"); err != nil {
		t.Fatal(err)
	}

	i, err := s.Duplicate()
	if err != nil || i != 1 {
		t.Fatalf("Duplicate() = %d, %v", i, err)
	}
	if s.Current().Ply() != 1 {
		t.Errorf("duplicate ply = %d; want 1", s.Current().Ply())
	}
	if err := s.PlayUCI("e7e5"); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Slot(0)
	if first.Game.Ply() != 1 {
		t.Error("playing on the duplicate changed the original")
	}

	if _, err := s.NewGame(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 || s.Current().Ply() != 0 {
		t.Errorf("after NewGame: len %d ply %d", s.Len(), s.Current().Ply())
	}

	if err := s.Select(1); err != nil {
		t.Fatal(err)
	}
	if s.Current().Ply() != 2 {
		t.Errorf("selected game ply = %d; want 2", s.Current().Ply())
	}
	if err := s.Select(3); !errors.Is(err, errors.ErrNoGame) {
		t.Errorf("Select(3) error = %v; want ErrNoGame", err)
	}

	s.Delete()
	if s.Len() != 2 || s.Index() != 1 || s.Current().Ply() != 0 {
		t.Errorf("after Delete: len %d index %d ply %d", s.Len(), s.Index(), s.Current().Ply())
	}
	s.Delete()
	s.Delete()
	if s.Len() != 1 || s.Current().Ply() != 0 {
		t.Errorf("deleting the last game: len %d ply %d", s.Len(), s.Current().Ply())
	}
}

func TestSessionFull(t *testing.T) {
	s := New(testConfig(config.Human, config.Human), worker.Inline{})
	for s.Len() < MaxGames {
		if _, err := s.NewGame(); err != nil {
			t.Fatalf("NewGame at %d: %v", s.Len(), err)
		}
	}
	if _, err := s.NewGame(); !errors.Is(err, errors.ErrSessionFull) {
		t.Errorf("NewGame on a full session: %v", err)
	}
	if _, err := s.Duplicate(); !errors.Is(err, errors.ErrSessionFull) {
		t.Errorf("Duplicate on a full session: %v", err)
	}
}

func TestPlayUCIErrors(t *testing.T) {
	s := New(testConfig(config.Human, config.RandomPlayer), worker.Inline{})

	err := s.PlayUCI("e2e5")
	var ge *errors.GameError
	if !errors.As(err, &ge) || !errors.Is(err, errors.ErrIllegalMove) {
		t.Fatalf("PlayUCI(e2e5) = %v; want a GameError wrapping ErrIllegalMove", err)
	}
	if ge.GameNum != 1 || ge.PlyNum != 1 || ge.MoveText != "e2e5" {
		t.Errorf("GameError = %+v", ge)
	}

	if err := s.PlayUCI("e2e4"); err != nil {
		t.Fatal(err)
	}
	if err := s.PlayUCI("e7e5"); !errors.Is(err, errors.ErrSearchPending) {
		t.Errorf("human move for the computer side: %v", err)
	}
}

func TestHandleRespectsPlayers(t *testing.T) {
	s := New(testConfig(config.RandomPlayer, config.Human), worker.Inline{})
	g := s.Current()

	s.Handle(game.Intent{Kind: game.SelectSquare, Row: 1, Column: 4})
	s.Handle(game.Intent{Kind: game.Confirm})
	s.Handle(game.Intent{Kind: game.SelectSquare, Row: 3, Column: 4})
	if s.Handle(game.Intent{Kind: game.Confirm}) {
		t.Error("confirm accepted for a computer side")
	}
	if g.Ply() != 0 {
		t.Errorf("ply = %d; want 0", g.Ply())
	}
}

func TestTickPlaysComputerMoves(t *testing.T) {
	s := New(testConfig(config.Human, config.RandomPlayer), worker.Inline{})

	if s.Tick() {
		t.Error("Tick moved for a human side")
	}
	if err := s.PlayUCI("d2d4"); err != nil {
		t.Fatal(err)
	}
	if s.Tick() {
		t.Error("submitting a search should not move")
	}
	if !s.Thinking() {
		t.Error("Thinking() = false after submit")
	}
	if !s.Tick() {
		t.Fatal("finished search was not applied")
	}
	if g := s.Current(); g.Ply() != 2 || g.ToMove != chess.White {
		t.Errorf("ply %d, %v to move; want 2, White", g.Ply(), g.ToMove)
	}
	if s.Thinking() {
		t.Error("still thinking after the move")
	}
}

func TestTickWaitsWhileReviewing(t *testing.T) {
	s := New(testConfig(config.Human, config.Human), worker.Inline{})
	for _, m := range []string{"e2e4", "e7e5", "g1f3"} {
		if err := s.PlayUCI(m); err != nil {
			t.Fatal(err)
		}
	}
	s.Handle(game.Intent{Kind: game.StepBack})
	if err := s.SetPlayer(chess.White, config.RandomPlayer); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if s.Tick() {
			t.Fatal("computer moved while the cursor is behind the log")
		}
	}
	if s.Current().History.Len() != 3 {
		t.Errorf("log length %d; want 3", s.Current().History.Len())
	}
}

func TestCancelledSearchIsDiscarded(t *testing.T) {
	q := &heldQueue{}
	s := New(testConfig(2, 2), q)

	s.Tick()
	if !s.Thinking() || len(q.entries) != 1 {
		t.Fatalf("Thinking %v with %d queued; want a queued search", s.Thinking(), len(q.entries))
	}
	if _, err := s.NewGame(); err != nil {
		t.Fatal(err)
	}
	if s.Thinking() {
		t.Error("switching games kept the search")
	}

	// The abandoned search runs later and must not touch either game.
	q.runAll()
	if err := s.Select(0); err != nil {
		t.Fatal(err)
	}
	if s.Tick() {
		t.Error("abandoned search result was applied")
	}
	if s.Current().Ply() != 0 {
		t.Errorf("ply = %d; want 0", s.Current().Ply())
	}
	if s.Searches() != 2 {
		t.Errorf("Searches() = %d; want 2", s.Searches())
	}
}

func TestTickRetriesWhenQueueIsFull(t *testing.T) {
	q := &heldQueue{full: true}
	s := New(testConfig(config.RandomPlayer, config.Human), q)

	for i := 0; i < 3; i++ {
		if s.Tick() {
			t.Fatal("Tick moved without running a search")
		}
	}
	if !s.Thinking() || len(q.entries) != 0 || s.Searches() != 1 {
		t.Fatalf("Thinking %v, %d queued, %d searches; want one pending search", s.Thinking(), len(q.entries), s.Searches())
	}

	q.full = false
	s.Tick()
	if len(q.entries) != 1 || s.Searches() != 1 {
		t.Fatalf("%d queued, %d searches after the queue drained; want 1, 1", len(q.entries), s.Searches())
	}
	q.runAll()
	if !s.Tick() {
		t.Fatal("search result not applied")
	}
	if s.Current().Ply() != 1 {
		t.Errorf("ply = %d; want 1", s.Current().Ply())
	}
}

func TestNoSearchQueuedBeforeCancelledOneExits(t *testing.T) {
	q := &heldQueue{}
	s := New(testConfig(2, config.Human), q)

	s.Tick()
	if len(q.entries) != 1 {
		t.Fatalf("%d queued; want 1", len(q.entries))
	}
	if err := s.SetPlayer(chess.White, 3); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if len(q.entries) != 1 || s.Searches() != 1 {
		t.Fatalf("%d queued, %d searches while the old search is running; want 1, 1", len(q.entries), s.Searches())
	}

	q.runAll()
	s.Tick()
	if len(q.entries) != 1 || s.Searches() != 2 {
		t.Fatalf("%d queued, %d searches after the old search returned; want 1, 2", len(q.entries), s.Searches())
	}
	q.runAll()
	if !s.Tick() || s.Current().Ply() != 1 {
		t.Errorf("new search not applied; ply %d", s.Current().Ply())
	}
}

func TestComputerFinishesPendingPromotion(t *testing.T) {
	tests := []struct {
		name   string
		player config.PlayerType
		want   string
	}{
		{"alpha-beta promotes to a queen", 4, "Q"},
		{"random promotes to any type", config.RandomPlayer, "QRNB"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New(testConfig(config.Human, config.Human), worker.Inline{})
			s.CurrentSlot().Game = *testutil.MustFEN(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

			for _, in := range []game.Intent{
				{Kind: game.SelectSquare, Row: 6, Column: 0},
				{Kind: game.Confirm},
				{Kind: game.SelectSquare, Row: 7, Column: 0},
				{Kind: game.Confirm},
			} {
				s.Handle(in)
			}
			g := s.Current()
			if !g.PromotingPawn {
				t.Fatal("pawn move to the last rank left no promotion pending")
			}

			if err := s.SetPlayer(chess.White, tt.player); err != nil {
				t.Fatal(err)
			}
			if !s.Tick() {
				t.Fatal("computer did not complete the promotion")
			}
			if g.PromotingPawn || g.ToMove != chess.Black {
				t.Errorf("pending %v, %v to move; want false, Black", g.PromotingPawn, g.ToMove)
			}
			placement := strings.Fields(g.FEN())[0]
			if !strings.HasSuffix(placement, "3k3/8/8/8/8/8/8/4K3") || !strings.ContainsRune(tt.want, rune(placement[0])) {
				t.Errorf("placement %s; want one of %q on a8", placement, tt.want)
			}
			if s.Searches() != 0 {
				t.Errorf("Searches() = %d; the promotion needs no search", s.Searches())
			}
			if !s.Handle(game.Intent{Kind: game.StepBack}) {
				t.Error("cannot step back over the promotion")
			}
		})
	}
}

func TestComputerGameOnPool(t *testing.T) {
	pool := worker.NewPoolWithOptions(worker.WithWorkers(2), worker.WithBufferSize(4))
	pool.Start()
	defer pool.Close()

	s := New(testConfig(2, config.RandomPlayer), pool)
	deadline := time.Now().Add(10 * time.Second)
	for s.Current().Ply() < 6 {
		if time.Now().After(deadline) {
			t.Fatalf("only %d plies after 10s", s.Current().Ply())
		}
		s.Tick()
		time.Sleep(time.Millisecond)
	}
}

func TestRandomGameRunsToTheEnd(t *testing.T) {
	s := New(testConfig(config.RandomPlayer, config.RandomPlayer), worker.Inline{})
	for i := 0; i < 2100 && !s.Current().GameOver; i++ {
		s.Tick()
	}
	g := s.Current()
	if !g.GameOver {
		t.Fatalf("game not over after %d plies", g.Ply())
	}
	if !g.Running.IsTerminal() {
		t.Errorf("running state %v after game over", g.Running)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.sav")
	cfg := testConfig(config.Human, config.Human)
	cfg.Session.SaveFile = path

	s := New(cfg, worker.Inline{})
	for _, m := range []string{"e2e4", "d7d5", "e4d5"} {
		if err := s.PlayUCI(m); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Duplicate(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPlayer(chess.Black, 5); err != nil {
		t.Fatal(err)
	}
	s.Handle(game.Intent{Kind: game.StepBack})
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(SaveSize) {
		t.Errorf("save is %d bytes; want %d", info.Size(), SaveSize)
	}

	loaded, err := Load(cfg, worker.Inline{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != 2 || loaded.Index() != 1 {
		t.Fatalf("loaded %d games, current %d", loaded.Len(), loaded.Index())
	}
	for i := 0; i < 2; i++ {
		want, _ := s.Slot(i)
		got, _ := loaded.Slot(i)
		if *got != *want {
			t.Errorf("slot %d differs after load", i)
		}
	}

	// The reloaded game carries on from the saved cursor.
	g := loaded.Current()
	if g.Ply() != 2 || !g.StepForward() || g.FEN() != "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2" {
		t.Errorf("reloaded game at ply %d, FEN %s", g.Ply(), g.FEN())
	}
}

func TestLoadWithoutUsableSave(t *testing.T) {
	dir := t.TempDir()
	good := New(testConfig(config.Human, config.Human), worker.Inline{})
	data, err := good.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	badMagic := append([]byte(nil), data...)
	copy(badMagic, "XXXX")

	tests := []struct {
		name  string
		write []byte
	}{
		{"missing file", nil},
		{"empty file", []byte{}},
		{"truncated", data[:len(data)-1]},
		{"too long", append(append([]byte(nil), data...), 0)},
		{"bad magic", badMagic},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".sav")
			if tt.write != nil {
				if err := os.WriteFile(path, tt.write, 0600); err != nil {
					t.Fatal(err)
				}
			}
			cfg := testConfig(config.Human, config.Human)
			cfg.Session.SaveFile = path

			s, err := Load(cfg, worker.Inline{})
			if !errors.Is(err, errors.ErrNoSave) {
				t.Errorf("case %d: Load error = %v; want ErrNoSave", i, err)
			}
			if s == nil || s.Len() != 1 || s.Current().Ply() != 0 {
				t.Error("expected a fresh session")
			}
		})
	}
}

func TestAutosaveAndLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.sav")
	var log bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithPlayers(config.Human, config.Human).
		WithSaveFile(path, true).
		WithLog(&log).
		WithVerbosity(1).
		Build()

	s := New(cfg, worker.Inline{})
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := s.PlayUCI(m); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("no autosave: %v", err)
	}
	if !strings.Contains(log.String(), "over: Checkmate") {
		t.Errorf("log %q does not report the mate", log.String())
	}
}
