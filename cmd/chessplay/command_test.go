package main

import (
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want command
	}{
		{"", command{kind: cmdNone}},
		{"   ", command{kind: cmdNone}},
		{"e2e4", command{kind: cmdMove, move: "e2e4"}},
		{"A7A8N", command{kind: cmdMove, move: "a7a8n"}},
		{"move E2E4", command{kind: cmdMove, move: "e2e4"}},
		{"select e2", command{kind: cmdSelect, row: 1, col: 4}},
		{"  SEL   h8 ", command{kind: cmdSelect, row: 7, col: 7}},
		{"confirm", command{kind: cmdConfirm}},
		{"promote n", command{kind: cmdPromote, promotion: chess.Knight}},
		{"promote Q", command{kind: cmdPromote, promotion: chess.Queen}},
		{"b", command{kind: cmdBack}},
		{"forward", command{kind: cmdForward}},
		{"load 3", command{kind: cmdLoad, n: 3}},
		{"player black random", command{kind: cmdPlayer, colour: chess.Black, player: config.RandomPlayer}},
		{"player w 5", command{kind: cmdPlayer, colour: chess.White, player: 5}},
		{"perft 2", command{kind: cmdPerft, n: 2}},
		{"pgn", command{kind: cmdPGN}},
		{"pgn games/out.pgn", command{kind: cmdPGN, path: "games/out.pgn"}},
		{"fen now.fen", command{kind: cmdFEN, path: "now.fen"}},
		{"quit", command{kind: cmdQuit}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			got, err := parseCommand(tt.line)
			if err != nil {
				t.Fatalf("parseCommand(%q) = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("parseCommand(%q) = %+v; want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		line   string
		column int
		target error
	}{
		{"dance", 1, errors.ErrUnknownCommand},
		{"e2e4 e7e5", 1, errors.ErrUnknownCommand},
		{"select", 7, errors.ErrUnknownCommand},
		{"select z9", 8, errors.ErrUnknownCommand},
		{"promote k", 9, errors.ErrUnknownCommand},
		{"move e2", 6, errors.ErrIllegalMove},
		{"perft 9", 7, errors.ErrUnknownCommand},
		{"load zero", 6, errors.ErrUnknownCommand},
		{"player green 3", 8, errors.ErrUnknownCommand},
		{"player white 12", 14, errors.ErrInvalidConfig},
		{"back now", 6, errors.ErrUnknownCommand},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			_, err := parseCommand(tt.line)
			var pe *errors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("parseCommand(%q) = %v; want *ParseError", tt.line, err)
			}
			if pe.Column != tt.column {
				t.Errorf("Column = %d; want %d (%v)", pe.Column, tt.column, err)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("error %v does not wrap %v", err, tt.target)
			}
		})
	}
}

func TestCommandIntent(t *testing.T) {
	tests := []struct {
		cmd  command
		want game.Intent
		ok   bool
	}{
		{command{kind: cmdSelect, row: 3, col: 2}, game.Intent{Kind: game.SelectSquare, Row: 3, Column: 2}, true},
		{command{kind: cmdConfirm}, game.Intent{Kind: game.Confirm}, true},
		{command{kind: cmdCancel}, game.Intent{Kind: game.Cancel}, true},
		{command{kind: cmdPromote, promotion: chess.Rook}, game.Intent{Kind: game.ChoosePromotion, Promotion: chess.Rook}, true},
		{command{kind: cmdBack}, game.Intent{Kind: game.StepBack}, true},
		{command{kind: cmdForward}, game.Intent{Kind: game.StepForward}, true},
		{command{kind: cmdMove, move: "e2e4"}, game.Intent{}, false},
		{command{kind: cmdList}, game.Intent{}, false},
	}

	for _, tt := range tests {
		got, ok := tt.cmd.intent()
		if ok != tt.ok || got != tt.want {
			t.Errorf("%+v.intent() = %+v, %v; want %+v, %v", tt.cmd, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("  player\tblack  3")
	want := []token{{"player", 3}, {"black", 10}, {"3", 17}}
	if len(got) != len(want) {
		t.Fatalf("tokenize() = %+v; want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v; want %+v", i, got[i], want[i])
		}
	}
}
