// Package launch builds the game's command line from the current settings
// and runs it.
package launch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/platform"
)

const (
	MinWarp = 1
	MaxWarp = 25

	MaxWADs      = 10
	MaxExtraArgs = 10
)

var ErrInvalidOptions = errors.New("invalid launch options")

// IWAD is a game data file the launcher knows how to pass along.
type IWAD struct {
	Path string
	Game string
}

// FallbackIWADs are tried in order when no IWAD is named.
var FallbackIWADs = []IWAD{
	{Path: "./jagdoom.wad", Game: "Doom (WAD)"},
	{Path: "./doom.jag", Game: "Doom (ROM)"},
}

// ResolveIWAD returns explicit when it is set, otherwise the first fallback
// that exists. An empty result leaves the choice to the game.
func ResolveIWAD(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, w := range FallbackIWADs {
		if platform.Exists(w.Path) {
			return w.Path
		}
	}
	return ""
}

// Options describes one single-player launch.
type Options struct {
	IWAD       string
	Skill      eeprom.Skill
	NoMonsters bool
	Fast       bool
	Warp       int // 0 starts at the title screen
	WADs       []string
	// Extra comes first on the command line so it can override anything
	// the other fields ask for.
	Extra []string
	// PassThrough is appended verbatim, normally the setup tool's own
	// unparsed arguments.
	PassThrough []string
}

// FromRecord seeds options from the EEPROM record.
func FromRecord(r eeprom.Record) Options {
	return Options{
		Skill: r.Skill,
		Warp:  min(max(r.StartMap, MinWarp), MaxWarp),
	}
}

// Validate checks every field against what the game accepts.
func (o Options) Validate() error {
	var errs []error
	if !o.Skill.Valid() {
		errs = append(errs, fmt.Errorf("skill %d out of range", o.Skill))
	}
	if o.Warp != 0 && (o.Warp < MinWarp || o.Warp > MaxWarp) {
		errs = append(errs, fmt.Errorf("warp %d not in %d..%d", o.Warp, MinWarp, MaxWarp))
	}
	if len(o.WADs) > MaxWADs {
		errs = append(errs, fmt.Errorf("%d wads, at most %d", len(o.WADs), MaxWADs))
	}
	if len(o.Extra) > MaxExtraArgs {
		errs = append(errs, fmt.Errorf("%d extra arguments, at most %d", len(o.Extra), MaxExtraArgs))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}
	return nil
}

// Args returns the argument vector, excluding the program name.
func (o Options) Args() []string {
	var args []string
	for _, e := range o.Extra {
		if e != "" {
			args = append(args, e)
		}
	}
	if o.IWAD != "" {
		args = append(args, "-iwad", o.IWAD)
	}
	args = append(args, "-skill", strconv.Itoa(int(o.Skill)+1))
	if o.NoMonsters {
		args = append(args, "-nomonsters")
	}
	if o.Fast {
		args = append(args, "-fast")
	}
	if o.Warp != 0 {
		args = append(args, "-warp", strconv.Itoa(o.Warp))
	}

	var wads []string
	for _, w := range o.WADs {
		if w != "" {
			wads = append(wads, w)
		}
	}
	if len(wads) > 0 {
		args = append(args, "-file")
		args = append(args, wads...)
	}
	return append(args, o.PassThrough...)
}

// WarpLabel renders a warp target the way the level menu shows it.
func WarpLabel(n int) string {
	if n == 0 {
		return "none"
	}
	return fmt.Sprintf("MAP%02d", n)
}

// Quote wraps arg in double quotes if it contains whitespace.
func Quote(arg string) string {
	if strings.IndexFunc(arg, unicode.IsSpace) < 0 {
		return arg
	}
	return `"` + arg + `"`
}

// CommandLine renders program and args as one display string.
func CommandLine(program string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, Quote(program))
	for _, a := range args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}
