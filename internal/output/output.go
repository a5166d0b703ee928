// Package output provides game export as PGN, JSON and FEN.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/game"
)

// SevenTagRoster lists the mandatory PGN tags in their required order.
var SevenTagRoster = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame writes rec as PGN to cfg.OutputFile.
func OutputGame(rec *Record, cfg *config.Config) {
	writePGN(cfg.OutputFile, rec, cfg)
}

func writePGN(w io.Writer, rec *Record, cfg *config.Config) {
	// Output tags
	if cfg.Output.TagFormat != config.NoTags {
		outputTags(rec, cfg, w)
		// Blank line between tags and moves
		fmt.Fprintln(w)
	}

	outputMoves(rec, cfg, w)

	// Blank line between games
	fmt.Fprintln(w)
}

// Tags returns the tag pairs of rec in output order.
func Tags(rec *Record, cfg *config.Config) [][2]string {
	roster := map[string]string{
		"Event":  cfg.Output.Event,
		"Site":   cfg.Output.Site,
		"Date":   "????.??.??",
		"Round":  strconv.Itoa(rec.Round),
		"White":  rec.White,
		"Black":  rec.Black,
		"Result": rec.Result,
	}
	if !rec.Date.IsZero() {
		roster["Date"] = rec.Date.Format("2006.01.02")
	}

	tags := make([][2]string, 0, len(SevenTagRoster)+5)
	for _, tag := range SevenTagRoster {
		value := roster[tag]
		if value == "" {
			value = "?"
		}
		tags = append(tags, [2]string{tag, value})
	}

	if cfg.Output.TagFormat == config.SevenTagRoster {
		return tags
	}
	if rec.Name != "" {
		tags = append(tags, [2]string{"Annotator", rec.Name})
	}
	if rec.InitialFEN != game.InitialFEN {
		tags = append(tags, [2]string{"SetUp", "1"}, [2]string{"FEN", rec.InitialFEN})
	}
	tags = append(tags, [2]string{"PlyCount", strconv.Itoa(len(rec.Plies))})
	termination := "unterminated"
	if rec.Over {
		termination = "normal"
	}
	tags = append(tags, [2]string{"Termination", termination})
	return tags
}

// outputTags outputs the game tags.
func outputTags(rec *Record, cfg *config.Config, w io.Writer) {
	for _, tag := range Tags(rec, cfg) {
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag[0], escapeTagValue(tag[1]))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// outputMoves outputs the movetext.
func outputMoves(rec *Record, cfg *config.Config, w io.Writer) {
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))

	for i, p := range rec.Plies {
		if cfg.Output.KeepMoveNumbers {
			if p.Colour == chess.White {
				ow.Write(fmt.Sprintf("%d.", p.Number))
			} else if i == 0 {
				// Black to move at start
				ow.Write(fmt.Sprintf("%d...", p.Number))
			}
		}

		if cfg.Output.Notation == config.UCI {
			ow.Write(p.UCI)
		} else {
			ow.Write(p.SAN)
		}
	}

	if cfg.Output.KeepResults {
		ow.Write(rec.Result)
	}

	ow.NewLine()
}
