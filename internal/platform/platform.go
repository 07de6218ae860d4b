// Package platform resolves where the front end keeps its files.
package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const AppName = "calico"

const (
	ConfigFile = "calico.cfg"
	EEPROMFile = "eeprom.cal"
)

// WriteDir returns the per-user write directory. CALICO_HOME wins, then
// $XDG_DATA_HOME/calico, then ~/.local/share/calico.
func WriteDir() string {
	if dir := os.Getenv("CALICO_HOME"); dir != "" {
		return dir
	}
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return AppName + "-data"
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, AppName)
}

// Paths locates every file under one write directory.
type Paths struct {
	Dir string
}

func DefaultPaths() Paths { return Paths{Dir: WriteDir()} }

func (p Paths) Config() string { return filepath.Join(p.Dir, ConfigFile) }
func (p Paths) EEPROM() string { return filepath.Join(p.Dir, EEPROMFile) }

// Ensure creates the write directory.
func (p Paths) Ensure() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("creating write directory: %w", err)
	}
	return nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overwriting variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
