package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Name       string            `json:"name,omitempty"`
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result"`
	State      string            `json:"state"`
	PlyCount   int               `json:"plyCount"`
	FinalFEN   string            `json:"finalFEN"`
	InitialFEN string            `json:"initialFEN,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// OutputGameJSON outputs a single game in JSON format.
func OutputGameJSON(rec *Record, cfg *config.Config) error {
	enc := json.NewEncoder(cfg.OutputFile)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(rec, cfg))
}

// OutputGamesJSON outputs multiple games as a JSON array.
func OutputGamesJSON(recs []*Record, cfg *config.Config, w io.Writer) error {
	out := &JSONOutput{Games: make([]*JSONGame, len(recs))}
	for i, rec := range recs {
		out.Games[i] = GameToJSON(rec, cfg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// GameToJSON converts a record to its JSON form.
func GameToJSON(rec *Record, cfg *config.Config) *JSONGame {
	jg := &JSONGame{
		Name:     rec.Name,
		Tags:     make(map[string]string),
		Result:   rec.Result,
		State:    strings.ToLower(rec.State.String()),
		PlyCount: len(rec.Plies),
		FinalFEN: rec.FinalFEN,
	}
	for _, tag := range Tags(rec, cfg) {
		jg.Tags[tag[0]] = tag[1]
	}
	if rec.InitialFEN != "" && jg.Tags["FEN"] != "" {
		jg.InitialFEN = rec.InitialFEN
	}

	for _, p := range rec.Plies {
		m := JSONMove{
			MoveNumber: p.Number,
			Color:      colorName(p.Colour),
			SAN:        p.SAN,
			UCI:        p.UCI,
			Piece:      pieceTypeName(p.Piece),
			Captured:   pieceTypeName(p.Captured),
			Promotion:  pieceTypeName(p.Promotion),
		}
		if cfg.Output.FENPerMove {
			m.FEN = p.FEN
		}
		jg.Moves = append(jg.Moves, m)
	}
	return jg
}

// colorName returns the color name for JSON output.
func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// pieceTypeName returns the lower-case piece name, or "" for Empty.
func pieceTypeName(t chess.PieceType) string {
	if t == chess.Empty {
		return ""
	}
	return strings.ToLower(t.String())
}
