package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/game"
	"github.com/lgbarn/chessplay-go/internal/session"
)

// Square backgrounds.
const (
	bgLight    = color.BgWhite
	bgDark     = color.BgHiBlack
	bgSelected = color.BgYellow
	bgTarget   = color.BgGreen
	bgCapture  = color.BgRed
	bgCursor   = color.BgCyan
)

// palette paints board squares, or leaves them plain when colour is off.
type palette struct {
	enabled bool
}

// useColour decides whether the board is drawn in colour on stdout.
func useColour(mode config.ColourMode) bool {
	switch mode {
	case config.ColourAlways:
		return true
	case config.ColourNever:
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (p palette) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

// squareMark is how a square is highlighted.
type squareMark int

const (
	markNone squareMark = iota
	markTarget
	markCapture
	markSelected
)

// marks returns the highlight of every square: the selected piece and its
// legal destinations.
func marks(g *game.Game) (m [chess.BoardSize][chess.BoardSize]squareMark) {
	if !g.Selected.Valid {
		return m
	}
	p := g.Piece(g.Selected)
	m[p.Row][p.Column] = markSelected
	for _, d := range g.DestinationsOf(g.Selected) {
		row, col := d.Square()
		if d.Capture {
			m[row][col] = markCapture
		} else {
			m[row][col] = markTarget
		}
	}
	return m
}

// renderBoard draws g with White at the bottom. Without colour, empty
// destinations show as '*' and captures as the captured letter in
// brackets.
func renderBoard(w io.Writer, g *game.Game, pal palette) {
	m := marks(g)
	for row := chess.BoardSize - 1; row >= 0; row-- {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteString(renderSquare(g, row, col, m[row][col], pal))
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
}

func renderSquare(g *game.Game, row, col int, mark squareMark, pal palette) string {
	text := " . "
	fg := color.FgBlack
	if p, c, ok := g.Board.PieceAt(row, col); ok {
		text = " " + string(p.Type.ColouredLetter(c)) + " "
		if c == chess.White {
			fg = color.FgHiWhite
		}
	}

	bg := bgLight
	if (row+col)%2 == 0 {
		bg = bgDark
	}
	switch mark {
	case markTarget:
		bg = bgTarget
		if !pal.enabled {
			text = " * "
		}
	case markCapture:
		bg = bgCapture
		if !pal.enabled {
			text = "[" + strings.TrimSpace(text) + "]"
		}
	case markSelected:
		bg = bgSelected
	}
	if row == int(g.CursorRow) && col == int(g.CursorCol) && mark == markNone {
		bg = bgCursor
	}
	return pal.paint(text, fg, bg, color.Bold)
}

// statusLine summarises the game on screen.
func statusLine(sess *session.Session) string {
	slot := sess.CurrentSlot()
	g := &slot.Game

	parts := []string{fmt.Sprintf("game %d/%d %s", sess.Index()+1, sess.Len(), slot.GameName())}
	parts = append(parts, fmt.Sprintf("ply %d/%d", g.Ply(), g.History.Len()))

	switch {
	case g.GameOver && g.AtEnd():
		if winner, ok := g.Winner(); ok {
			parts = append(parts, fmt.Sprintf("%v (%v wins)", g.Running, winner))
		} else {
			parts = append(parts, g.Running.String())
		}
	case g.PromotingPawn:
		parts = append(parts, fmt.Sprintf("%v to choose a promotion", g.ToMove))
	default:
		mover := fmt.Sprintf("%v to move (%v)", g.ToMove, slot.Player(g.ToMove))
		if g.Running == chess.Check {
			mover += ", check"
		}
		parts = append(parts, mover)
	}
	if sess.Thinking() {
		parts = append(parts, "thinking")
	}
	return strings.Join(parts, "  ")
}
