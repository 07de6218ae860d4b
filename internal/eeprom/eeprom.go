// Package eeprom emulates the Jaguar cartridge EEPROM: eight little-endian
// 16-bit words carrying the game's start skill, start map, volumes, control
// scheme and level progress, guarded by an additive checksum.
package eeprom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const (
	// WordCount is the record length in words. It must be even.
	WordCount = 8

	IDWord       uint16 = 'D'<<8 + '1'
	ChecksumSeed uint16 = 12345

	// Size is the on-disk record length in bytes.
	Size = WordCount * 2
)

// Words is the raw record.
type Words [WordCount]uint16

// Checksum returns the seed plus the sum of every word but the last,
// truncated to 16 bits.
func Checksum(w Words) uint16 {
	sum := ChecksumSeed
	for _, v := range w[:WordCount-1] {
		sum += v
	}
	return sum
}

// Bytes returns the little-endian encoding of w.
func (w Words) Bytes() []byte {
	b := make([]byte, Size)
	for i, v := range w {
		binary.LittleEndian.PutUint16(b[i*2:], v)
	}
	return b
}

// WordsFromBytes decodes up to Size bytes. Missing trailing words read as
// zero.
func WordsFromBytes(b []byte) Words {
	var w Words
	for i := range w {
		if len(b) < i*2+2 {
			break
		}
		w[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return w
}

// State reports how the last read went.
type State int

const (
	StateValid State = iota
	StateDefaulted
)

func (s State) String() string {
	if s == StateValid {
		return "valid"
	}
	return "defaulted"
}

// Record holds the settings the EEPROM carries.
type Record struct {
	Skill       Skill `json:"skill" yaml:"skill"`
	StartMap    int   `json:"start_map" yaml:"start_map"`
	SFXVolume   int   `json:"sfx_volume" yaml:"sfx_volume"`
	MusicVolume int   `json:"music_volume" yaml:"music_volume"`
	ControlType int   `json:"control_type" yaml:"control_type"`
	MaxLevel    int   `json:"max_level" yaml:"max_level"`
}

const (
	MinStartMap = 1
	MaxStartMap = 26
	MinMaxLevel = 1
	MaxMaxLevel = 25
	MaxVolume   = 255
)

// Defaults returns the first-run record.
func Defaults() Record {
	return Record{
		Skill:       SkillMedium,
		StartMap:    1,
		SFXVolume:   200,
		MusicVolume: 128,
		ControlType: 0,
		MaxLevel:    1,
	}
}

// Encode lays r out as words with a fresh identity marker and checksum.
func (r Record) Encode() Words {
	w := Words{
		IDWord,
		uint16(r.Skill),
		uint16(r.StartMap),
		uint16(r.SFXVolume),
		uint16(r.MusicVolume),
		uint16(r.ControlType),
		uint16(r.MaxLevel),
	}
	w[WordCount-1] = Checksum(w)
	return w
}

// Decode validates w. A checksum mismatch discards every field. Otherwise
// each field failing its own range check falls back to its own default.
func Decode(w Words) (Record, State) {
	if Checksum(w) != w[WordCount-1] {
		return Defaults(), StateDefaulted
	}

	d := Defaults()
	r := Record{
		Skill:       Skill(w[1]),
		StartMap:    int(w[2]),
		SFXVolume:   int(w[3]),
		MusicVolume: int(w[4]),
		ControlType: int(w[5]),
		MaxLevel:    int(w[6]),
	}
	state := StateValid
	fix := func(ok bool, field *int, def int) {
		if !ok {
			*field = def
			state = StateDefaulted
		}
	}
	if !r.Skill.Valid() {
		r.Skill = d.Skill
		state = StateDefaulted
	}
	fix(r.StartMap >= MinStartMap && r.StartMap <= MaxStartMap, &r.StartMap, d.StartMap)
	fix(r.SFXVolume >= 0 && r.SFXVolume <= MaxVolume, &r.SFXVolume, d.SFXVolume)
	fix(r.MusicVolume >= 0 && r.MusicVolume <= MaxVolume, &r.MusicVolume, d.MusicVolume)
	fix(r.ControlType >= 0 && r.ControlType < NumControlSchemes, &r.ControlType, d.ControlType)
	fix(r.MaxLevel >= MinMaxLevel && r.MaxLevel <= MaxMaxLevel, &r.MaxLevel, d.MaxLevel)
	return r, state
}

// Medium is the backing store. Each call opens a fresh handle that the
// caller closes before returning.
type Medium interface {
	Open() (io.ReadCloser, error)
	Create() (io.WriteCloser, error)
}

// EEPROM is the in-memory copy of the record plus its backing medium.
type EEPROM struct {
	medium Medium
	Record Record
	state  State
}

// New returns an EEPROM holding defaults. Call Read to load the medium.
func New(m Medium) *EEPROM {
	return &EEPROM{medium: m, Record: Defaults(), state: StateDefaulted}
}

// State reports the outcome of the last Read.
func (e *EEPROM) State() State { return e.state }

// Read loads and validates the record. A missing, short or corrupt store is
// not an error: the record simply comes back as defaults.
func (e *EEPROM) Read() State {
	w, err := e.readWords()
	if err != nil {
		slog.Debug("eeprom store unreadable, using defaults", "error", err)
	}
	e.Record, e.state = Decode(w)
	if e.state == StateDefaulted {
		slog.Debug("eeprom record defaulted", "checksum", w[WordCount-1], "want", Checksum(w))
	}
	return e.state
}

func (e *EEPROM) readWords() (Words, error) {
	f, err := e.medium.Open()
	if err != nil {
		return Words{}, err
	}
	defer f.Close()

	buf := make([]byte, Size)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return WordsFromBytes(buf[:n]), err
	}
	return WordsFromBytes(buf[:n]), nil
}

// Write encodes the current record and rewrites the whole store.
func (e *EEPROM) Write() error {
	f, err := e.medium.Create()
	if err != nil {
		return fmt.Errorf("opening eeprom store: %w", err)
	}
	if _, err := f.Write(e.Record.Encode().Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("writing eeprom store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing eeprom store: %w", err)
	}
	return nil
}

// Reset restores the in-memory record to defaults without touching the store.
func (e *EEPROM) Reset() {
	e.Record = Defaults()
}
