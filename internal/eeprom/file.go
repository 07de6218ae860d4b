package eeprom

import (
	"io"
	"os"
	"path/filepath"
)

// FileMedium stores the record in a single file, normally eeprom.cal in
// the write directory.
type FileMedium struct {
	Path string
}

func (m FileMedium) Open() (io.ReadCloser, error) {
	return os.Open(m.Path)
}

func (m FileMedium) Create() (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(m.Path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(m.Path)
}

// ReadFile decodes the record at path without keeping an EEPROM around.
func ReadFile(path string) (Record, State) {
	e := New(FileMedium{Path: path})
	st := e.Read()
	return e.Record, st
}
