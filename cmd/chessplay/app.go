package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/game"
	"github.com/lgbarn/chessplay-go/internal/output"
	"github.com/lgbarn/chessplay-go/internal/session"
)

const helpText = `Commands:
  <move>              play a move in UCI notation, e.g. e2e4 or a7a8n
  move <move>         same as above
  select <square>     move the cursor to a square
  confirm             pick up the piece under the cursor, or move the picked piece there
  cancel              drop the picked piece
  promote q|r|b|n     choose the piece a pawn promotes to
  back, forward       step through the game history
  new, dup, delete    start, copy or remove a game
  load <n>            switch to game n
  list                list the games of the session
  player white|black <human|random|2-9>
  save                write the session file
  pgn [file]          export the current game as PGN
  json [file]         export the current game as JSON
  fen [file]          print the FEN of the current position
  perft <depth>       count leaf positions from the current position
  board               redraw the board
  help                show this text
  quit                save and leave
`

// app runs the interactive loop over one session.
type app struct {
	cfg  *config.Config
	sess *session.Session
	out  io.Writer
	pal  palette
	now  func() time.Time
	done bool
}

func newApp(cfg *config.Config, sess *session.Session, colour bool) *app {
	return &app{
		cfg:  cfg,
		sess: sess,
		out:  cfg.OutputFile,
		pal:  palette{enabled: colour},
		now:  time.Now,
	}
}

// run reads commands from in until quit or end of input. Between lines it
// polls the session so computer players move while the user is idle.
func (a *app) run(in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		readErr <- sc.Err()
		close(lines)
	}()

	ticker := time.NewTicker(a.cfg.Search.PollInterval)
	defer ticker.Stop()

	a.showBoard()
	for !a.done {
		select {
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			a.handleLine(line)
		case <-ticker.C:
			if a.sess.Tick() {
				a.showBoard()
			}
		}
	}
	return nil
}

// handleLine parses and executes one line, reporting errors to the user.
func (a *app) handleLine(line string) {
	cmd, err := parseCommand(line)
	if err == nil {
		err = a.execute(cmd)
	}
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
}

// execute runs one parsed command against the session.
func (a *app) execute(cmd command) error {
	if in, ok := cmd.intent(); ok {
		changed := a.sess.Handle(in)
		switch in.Kind {
		case game.StepBack, game.StepForward, game.ChoosePromotion:
			if !changed {
				fmt.Fprintf(a.out, "%s: nothing to do\n", in.Kind)
				return nil
			}
		}
		a.showBoard()
		return nil
	}

	switch cmd.kind {
	case cmdNone:
	case cmdMove:
		if err := a.sess.PlayUCI(cmd.move); err != nil {
			return err
		}
		a.showBoard()
	case cmdNew:
		if _, err := a.sess.NewGame(); err != nil {
			return err
		}
		a.showBoard()
	case cmdDuplicate:
		if _, err := a.sess.Duplicate(); err != nil {
			return err
		}
		a.showBoard()
	case cmdDelete:
		a.sess.Delete()
		a.showBoard()
	case cmdLoad:
		if err := a.sess.Select(cmd.n - 1); err != nil {
			return err
		}
		a.showBoard()
	case cmdList:
		a.listGames()
	case cmdPlayer:
		if err := a.sess.SetPlayer(cmd.colour, cmd.player); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%v is now played by %v\n", cmd.colour, cmd.player)
	case cmdSave:
		if a.cfg.Session.SaveFile == "" {
			fmt.Fprintln(a.out, "no session file configured")
			return nil
		}
		if err := a.sess.Save(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "saved %d game(s) to %s\n", a.sess.Len(), a.cfg.Session.SaveFile)
	case cmdPGN:
		return a.export("pgn", cmd.path)
	case cmdJSON:
		return a.export("json", cmd.path)
	case cmdFEN:
		if cmd.path != "" {
			return a.writeFile(cmd.path, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, a.sess.Current().FEN())
				return err
			})
		}
		fmt.Fprintln(a.out, a.sess.Current().FEN())
	case cmdPerft:
		g := *a.sess.Current()
		start := a.now()
		nodes := game.Perft(&g, cmd.n)
		fmt.Fprintf(a.out, "perft(%d) = %d (%v)\n", cmd.n, nodes, a.now().Sub(start).Round(time.Millisecond))
	case cmdBoard:
		a.showBoard()
	case cmdHelp:
		fmt.Fprint(a.out, helpText)
	case cmdQuit:
		a.done = true
	}
	return nil
}

// export writes the current game in format to path, or to the output
// stream when path is empty.
func (a *app) export(format, path string) error {
	rec, err := output.NewRecord(a.sess.CurrentSlot(), a.sess.Index()+1, a.now())
	if err != nil {
		return err
	}
	write := func(w io.Writer) error {
		gw, err := output.NewWriter(format, w, a.cfg)
		if err != nil {
			return err
		}
		if err := gw.WriteGame(rec); err != nil {
			return err
		}
		return gw.Close()
	}
	if path == "" {
		return write(a.out)
	}
	return a.writeFile(path, write)
}

func (a *app) writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path) //nolint:gosec // G304: CLI writes user-specified files
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close() //nolint:errcheck,gosec // G104: already failing
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s\n", path)
	return nil
}

func (a *app) listGames() {
	for i := 0; i < a.sess.Len(); i++ {
		slot, err := a.sess.Slot(i)
		if err != nil {
			continue
		}
		marker := " "
		if i == a.sess.Index() {
			marker = "*"
		}
		g := &slot.Game
		fmt.Fprintf(a.out, "%s %3d %-24s white: %-8v black: %-8v ply %d  %s\n",
			marker, i+1, slot.GameName(), slot.Player(chess.White), slot.Player(chess.Black), g.History.Len(),
			output.Result(g))
	}
}

func (a *app) showBoard() {
	fmt.Fprintln(a.out)
	renderBoard(a.out, a.sess.Current(), a.pal)
	fmt.Fprintln(a.out, statusLine(a.sess))
}
