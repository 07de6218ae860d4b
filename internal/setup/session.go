// Package setup ties the settings registry, the binding tables and the
// EEPROM record into one editing session over a write directory.
package setup

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/cfgfile"
	"github.com/kalambet/calico/internal/config"
	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/platform"
)

// Session owns everything the front end edits. It is not safe for
// concurrent use; callers that share one serialize access themselves.
type Session struct {
	Paths    platform.Paths
	Settings *config.Settings
	Registry *config.Registry
	EEPROM   *eeprom.EEPROM

	namer binding.KeyNamer
	env   bool
	doc   *cfgfile.Document
}

type Option func(*Session)

// WithEnvOverrides controls whether Load applies CALICO_<NAME> variables
// after the file. The default is on.
func WithEnvOverrides(on bool) Option {
	return func(s *Session) { s.env = on }
}

// New returns a session holding compiled-in defaults. Nothing is read
// until Load.
func New(paths platform.Paths, namer binding.KeyNamer, opts ...Option) *Session {
	s := &Session{Paths: paths, namer: namer, env: true}
	for _, o := range opts {
		o(s)
	}
	s.reset()
	return s
}

func (s *Session) reset() {
	s.Settings = config.New(s.namer)
	s.Registry = config.ForSettings(s.Settings)
	s.Settings.Bindings.InitFromNames()
	s.EEPROM = eeprom.New(eeprom.FileMedium{Path: s.Paths.EEPROM()})
	s.doc = cfgfile.New()
}

// Bindings is shorthand for Settings.Bindings.
func (s *Session) Bindings() *binding.Set { return s.Settings.Bindings }

// Load reads calico.cfg and the EEPROM record. A missing config file is
// not an error. Any other read failure is returned after the session has
// been populated with defaults, env overrides and the EEPROM record, so
// callers may warn and carry on.
func (s *Session) Load() error {
	var loadErr error
	doc, err := cfgfile.LoadFile(s.Paths.Config())
	switch {
	case err == nil:
		s.doc = doc
		s.Registry.Load(doc)
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("no config file, using defaults", "path", s.Paths.Config())
	default:
		loadErr = fmt.Errorf("loading config: %w", err)
	}

	if s.env {
		s.Registry.ApplyEnvOverrides()
	}
	s.Settings.Bindings.InitFromNames()

	st := s.EEPROM.Read()
	slog.Debug("session loaded", "dir", s.Paths.Dir, "vars", s.Registry.Len(), "eeprom", st)
	return loadErr
}

// Save writes calico.cfg and the EEPROM record. Entries in the file that
// no variable claims are carried over untouched. Both stores are attempted
// even if the first fails.
func (s *Session) Save() error {
	if err := s.Paths.Ensure(); err != nil {
		return err
	}
	s.Registry.Save(s.doc)

	var cfgErr, romErr error
	if err := cfgfile.WriteFile(s.Paths.Config(), s.doc); err != nil {
		cfgErr = fmt.Errorf("saving config: %w", err)
	}
	if err := s.EEPROM.Write(); err != nil {
		romErr = fmt.Errorf("saving eeprom: %w", err)
	}
	if err := errors.Join(cfgErr, romErr); err != nil {
		return err
	}
	slog.Debug("session saved", "config", s.Paths.Config(), "eeprom", s.Paths.EEPROM())
	return nil
}

// Reload drops every in-memory change and loads both stores again.
func (s *Session) Reload() error {
	s.reset()
	return s.Load()
}

// Apply assigns each name to its value through the registry's checked
// entry point and then re-resolves the binding tables. Every failing
// entry is reported; the others are still applied.
func (s *Session) Apply(values map[string]string) error {
	var errs []error
	for _, name := range s.Registry.Names() {
		raw, ok := values[name]
		if !ok {
			continue
		}
		if err := s.Registry.Set(name, raw); err != nil {
			errs = append(errs, err)
		}
	}
	for name := range values {
		if _, ok := s.Registry.Lookup(name); !ok {
			errs = append(errs, fmt.Errorf("%q: %w", name, config.ErrUnknownVariable))
		}
	}
	s.Settings.Bindings.InitFromNames()
	return errors.Join(errs...)
}

// Snapshot is a portable copy of a session: calico.cfg text plus the raw
// EEPROM bytes.
type Snapshot struct {
	Config []byte
	EEPROM []byte
}

// Snapshot captures the current in-memory state.
func (s *Session) Snapshot() (Snapshot, error) {
	doc := cfgfile.New()
	s.Registry.Save(doc)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return Snapshot{}, fmt.Errorf("encoding config: %w", err)
	}
	return Snapshot{Config: buf.Bytes(), EEPROM: s.EEPROM.Record.Encode().Bytes()}, nil
}

// Restore replaces the in-memory state with snap. Values the snapshot does
// not carry take compiled-in defaults, and an EEPROM blob that fails
// validation yields the default record. Nothing is written to disk.
func (s *Session) Restore(snap Snapshot) (eeprom.State, error) {
	doc, err := cfgfile.Parse(bytes.NewReader(snap.Config))
	if err != nil {
		return eeprom.StateDefaulted, fmt.Errorf("decoding config: %w", err)
	}
	settings := config.New(s.namer)
	reg := config.ForSettings(settings)
	reg.Load(doc)
	settings.Bindings.InitFromNames()

	rec, st := eeprom.Decode(eeprom.WordsFromBytes(snap.EEPROM))
	s.Settings, s.Registry = settings, reg
	s.EEPROM.Record = rec
	return st, nil
}
