package session

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

const saveVersion = 1

var saveMagic = [4]byte{'C', 'P', 'L', 'Y'}

// saveBlock is the on-disk layout: a fixed-size little-endian image of every
// slot. Pieces are referenced by (side, index) so nothing needs rebasing
// after a load.
type saveBlock struct {
	Magic   [4]byte
	Version uint32
	Count   uint32
	Current uint32
	Slots   [MaxGames]Slot
}

// SaveSize is the exact size of a save file.
var SaveSize = binary.Size(saveBlock{})

// MarshalBinary encodes the session as one fixed-size block.
func (s *Session) MarshalBinary() ([]byte, error) {
	block := &saveBlock{
		Magic:   saveMagic,
		Version: saveVersion,
		Count:   uint32(len(s.slots)),
		Current: uint32(s.current),
	}
	for i, slot := range s.slots {
		block.Slots[i] = *slot
	}
	var buf bytes.Buffer
	buf.Grow(SaveSize)
	if err := binary.Write(&buf, binary.LittleEndian, block); err != nil {
		return nil, errors.Wrap(err, "encode session")
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the session's games with a saved block. A block
// of the wrong size or with an unknown header is reported as ErrNoSave and
// leaves the session unchanged.
func (s *Session) UnmarshalBinary(data []byte) error {
	if len(data) != SaveSize {
		return fmt.Errorf("save is %d bytes, want %d: %w", len(data), SaveSize, errors.ErrNoSave)
	}
	block := &saveBlock{}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, block); err != nil {
		return fmt.Errorf("decode session: %v: %w", err, errors.ErrNoSave)
	}
	if block.Magic != saveMagic || block.Version != saveVersion {
		return fmt.Errorf("unknown save header %q v%d: %w", block.Magic[:], block.Version, errors.ErrNoSave)
	}
	if block.Count == 0 || block.Count > MaxGames || block.Current >= block.Count {
		return fmt.Errorf("save holds %d games, current %d: %w", block.Count, block.Current, errors.ErrNoSave)
	}

	s.Cancel()
	s.slots = make([]*Slot, block.Count)
	for i := range s.slots {
		slot := block.Slots[i]
		s.slots[i] = &slot
	}
	s.current = int(block.Current)
	return nil
}

// Save writes the session to the configured save file.
func (s *Session) Save() error {
	path := s.cfg.Session.SaveFile
	if path == "" {
		return nil
	}
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil { //nolint:gosec // G306: save files are not secret
		return errors.Wrapf(err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	s.logf(2, "saved %d games to %s\n", len(s.slots), path)
	return nil
}

// Load opens the configured save file. It always returns a usable session:
// when there is no usable save the session is fresh and the error wraps
// ErrNoSave.
func Load(cfg *config.Config, queue worker.Queue) (*Session, error) {
	s := New(cfg, queue)
	path := cfg.Session.SaveFile
	if path == "" {
		return s, fmt.Errorf("no save file configured: %w", errors.ErrNoSave)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: the user chooses the save file
	if err != nil {
		return s, fmt.Errorf("%v: %w", err, errors.ErrNoSave)
	}
	if err := s.UnmarshalBinary(data); err != nil {
		return s, err
	}
	s.logf(1, "loaded %d games from %s\n", len(s.slots), path)
	return s, nil
}
