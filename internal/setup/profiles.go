package setup

import (
	"fmt"

	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/storage"
)

// ProfileStore is the part of storage.Store that named profiles need.
type ProfileStore interface {
	SaveProfile(p storage.Profile) (storage.Profile, error)
	GetProfile(name string) (storage.Profile, error)
}

// SaveProfile stores the current in-memory state under name, replacing
// any profile already called that.
func (s *Session) SaveProfile(ps ProfileStore, name, description string) (storage.Profile, error) {
	if name == "" {
		return storage.Profile{}, fmt.Errorf("profile name is required")
	}
	snap, err := s.Snapshot()
	if err != nil {
		return storage.Profile{}, err
	}
	return ps.SaveProfile(storage.Profile{
		Name:        name,
		Description: description,
		ConfigText:  string(snap.Config),
		EEPROM:      snap.EEPROM,
	})
}

// ApplyProfile replaces the in-memory state with the named profile. The
// caller decides whether to Save afterwards.
func (s *Session) ApplyProfile(ps ProfileStore, name string) (eeprom.State, error) {
	p, err := ps.GetProfile(name)
	if err != nil {
		return eeprom.StateDefaulted, fmt.Errorf("profile %q: %w", name, err)
	}
	return s.Restore(Snapshot{Config: []byte(p.ConfigText), EEPROM: p.EEPROM})
}
