package main

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
)

// commandKind identifies a REPL command.
type commandKind int

const (
	cmdNone commandKind = iota
	cmdSelect
	cmdConfirm
	cmdCancel
	cmdPromote
	cmdMove
	cmdBack
	cmdForward
	cmdNew
	cmdDuplicate
	cmdDelete
	cmdLoad
	cmdList
	cmdPlayer
	cmdSave
	cmdPGN
	cmdJSON
	cmdFEN
	cmdPerft
	cmdBoard
	cmdHelp
	cmdQuit
)

// maxPerftDepth bounds the perft command so it answers interactively.
const maxPerftDepth = 5

// commandNames maps command words and their aliases to kinds.
var commandNames = map[string]commandKind{
	"select":  cmdSelect,
	"sel":     cmdSelect,
	"confirm": cmdConfirm,
	"ok":      cmdConfirm,
	"cancel":  cmdCancel,
	"promote": cmdPromote,
	"move":    cmdMove,
	"m":       cmdMove,
	"back":    cmdBack,
	"b":       cmdBack,
	"forward": cmdForward,
	"f":       cmdForward,
	"new":     cmdNew,
	"dup":     cmdDuplicate,
	"delete":  cmdDelete,
	"load":    cmdLoad,
	"list":    cmdList,
	"ls":      cmdList,
	"player":  cmdPlayer,
	"save":    cmdSave,
	"pgn":     cmdPGN,
	"json":    cmdJSON,
	"fen":     cmdFEN,
	"perft":   cmdPerft,
	"board":   cmdBoard,
	"help":    cmdHelp,
	"?":       cmdHelp,
	"quit":    cmdQuit,
	"q":       cmdQuit,
	"exit":    cmdQuit,
}

// command is one parsed input line.
type command struct {
	kind commandKind

	row, col  int
	promotion chess.PieceType
	move      string
	colour    chess.Colour
	player    config.PlayerType
	n         int
	path      string
}

// intent returns the game intent of the board commands.
func (c command) intent() (game.Intent, bool) {
	switch c.kind {
	case cmdSelect:
		return game.Intent{Kind: game.SelectSquare, Row: c.row, Column: c.col}, true
	case cmdConfirm:
		return game.Intent{Kind: game.Confirm}, true
	case cmdCancel:
		return game.Intent{Kind: game.Cancel}, true
	case cmdPromote:
		return game.Intent{Kind: game.ChoosePromotion, Promotion: c.promotion}, true
	case cmdBack:
		return game.Intent{Kind: game.StepBack}, true
	case cmdForward:
		return game.Intent{Kind: game.StepForward}, true
	}
	return game.Intent{}, false
}

// token is a word of the input line and its 1-based column.
type token struct {
	text   string
	column int
}

func tokenize(line string) []token {
	var tokens []token
	start := -1
	for i, r := range line {
		if r == ' ' || r == '\t' {
			if start >= 0 {
				tokens = append(tokens, token{line[start:i], start + 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{line[start:], start + 1})
	}
	return tokens
}

// parseCommand parses one REPL line. A blank line is cmdNone and a bare
// move such as "e2e4" is a move command.
func parseCommand(line string) (command, error) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return command{}, nil
	}

	word := strings.ToLower(tokens[0].text)
	kind, ok := commandNames[word]
	if !ok {
		if _, err := game.ParseUCI(word); err == nil && len(tokens) == 1 {
			return command{kind: cmdMove, move: word}, nil
		}
		return command{}, &errors.ParseError{
			Err:    errors.ErrUnknownCommand,
			Input:  line,
			Column: tokens[0].column,
			Got:    tokens[0].text,
		}
	}

	p := argParser{line: line, tokens: tokens[1:], end: len(line) + 1}
	cmd := command{kind: kind}
	switch kind {
	case cmdSelect:
		cmd.row, cmd.col = p.square()
	case cmdPromote:
		cmd.promotion = p.promotion()
	case cmdMove:
		cmd.move = p.move()
	case cmdLoad:
		cmd.n = p.number("game number", 1, 1<<30)
	case cmdPlayer:
		cmd.colour = p.colour()
		cmd.player = p.playerType()
	case cmdPerft:
		cmd.n = p.number("depth", 1, maxPerftDepth)
	case cmdPGN, cmdJSON, cmdFEN:
		cmd.path = p.optional()
	}
	if err := p.finish(); err != nil {
		return command{}, err
	}
	return cmd, nil
}

// argParser consumes command arguments and records the first error.
type argParser struct {
	line   string
	tokens []token
	end    int
	err    error
}

func (p *argParser) next(expected string) (token, bool) {
	if p.err != nil {
		return token{}, false
	}
	if len(p.tokens) == 0 {
		p.fail(p.end, expected, "end of line", nil)
		return token{}, false
	}
	t := p.tokens[0]
	p.tokens = p.tokens[1:]
	return t, true
}

func (p *argParser) fail(column int, expected, got string, err error) {
	if p.err != nil {
		return
	}
	if err == nil {
		err = errors.ErrUnknownCommand
	}
	p.err = &errors.ParseError{Err: err, Input: p.line, Column: column, Expected: expected, Got: got}
}

func (p *argParser) square() (row, col int) {
	t, ok := p.next("square")
	if !ok {
		return 0, 0
	}
	row, col, err := chess.ParseSquare(strings.ToLower(t.text))
	if err != nil {
		p.fail(t.column, "square", t.text, nil)
	}
	return row, col
}

func (p *argParser) promotion() chess.PieceType {
	t, ok := p.next("q, r, b or n")
	if !ok {
		return chess.Empty
	}
	if len(t.text) == 1 {
		if pt, ok := chess.PieceTypeFromLetter(t.text[0]); ok && pt.IsPromotionType() {
			return pt
		}
	}
	p.fail(t.column, "q, r, b or n", t.text, nil)
	return chess.Empty
}

func (p *argParser) move() string {
	t, ok := p.next("move")
	if !ok {
		return ""
	}
	move := strings.ToLower(t.text)
	if _, err := game.ParseUCI(move); err != nil {
		p.fail(t.column, "move", t.text, err)
	}
	return move
}

func (p *argParser) number(expected string, lo, hi int) int {
	t, ok := p.next(expected)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(t.text)
	if err != nil || n < lo || n > hi {
		p.fail(t.column, expected, t.text, nil)
	}
	return n
}

func (p *argParser) colour() chess.Colour {
	t, ok := p.next("white or black")
	if !ok {
		return chess.White
	}
	switch strings.ToLower(t.text) {
	case "white", "w":
		return chess.White
	case "black", "b":
		return chess.Black
	}
	p.fail(t.column, "white or black", t.text, nil)
	return chess.White
}

func (p *argParser) playerType() config.PlayerType {
	t, ok := p.next("player type")
	if !ok {
		return config.Human
	}
	pt, err := config.ParsePlayerType(t.text)
	if err != nil {
		p.fail(t.column, "player type", t.text, errors.ErrInvalidConfig)
	}
	return pt
}

func (p *argParser) optional() string {
	if p.err != nil || len(p.tokens) == 0 {
		return ""
	}
	t := p.tokens[0]
	p.tokens = p.tokens[1:]
	return t.text
}

func (p *argParser) finish() error {
	if p.err == nil && len(p.tokens) > 0 {
		t := p.tokens[0]
		p.fail(t.column, "end of line", t.text, nil)
	}
	return p.err
}
