package game

import "github.com/lgbarn/chessplay-go/internal/chess"

// IntentKind enumerates the decoded inputs the controller understands.
type IntentKind uint8

const (
	SelectSquare IntentKind = iota
	Confirm
	Cancel
	ChoosePromotion
	StepForward
	StepBack
)

// String returns the string representation of an intent kind.
func (k IntentKind) String() string {
	names := []string{"SelectSquare", "Confirm", "Cancel", "ChoosePromotion", "StepForward", "StepBack"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Intent is one decoded user input.
type Intent struct {
	Kind      IntentKind
	Row       int
	Column    int
	Promotion chess.PieceType
}

// Handle applies an intent and reports whether it changed the position.
//
// SelectSquare moves the cursor and updates the targeted piece. Confirm
// moves the selected piece to the cursor when that is a legal destination,
// otherwise it selects the targeted piece. Cancel drops the selection.
func (g *Game) Handle(in Intent) bool {
	switch in.Kind {
	case SelectSquare:
		chess.CheckSquare(in.Row, in.Column)
		g.CursorRow, g.CursorCol = int8(in.Row), int8(in.Column)
		g.Targeted, _, _ = g.PieceAt(in.Row, in.Column)
		return false

	case Confirm:
		return g.confirm()

	case Cancel:
		g.Selected = NoRef
		return false

	case ChoosePromotion:
		return g.ChoosePromotion(in.Promotion)

	case StepForward:
		return g.StepForward()

	case StepBack:
		return g.StepBack()
	}
	return false
}

func (g *Game) confirm() bool {
	if g.PromotingPawn {
		return false
	}
	if s := g.Selected; s.Valid && s.Colour == g.ToMove && !g.GameOver {
		if g.TryMove(int(s.Index), int(g.CursorRow), int(g.CursorCol)) {
			g.Targeted = NoRef
			return true
		}
	}
	g.Selected = g.Targeted
	return false
}
