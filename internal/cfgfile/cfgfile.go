// Package cfgfile reads and writes the line-oriented "name = value" text
// format used for calico.cfg.
//
// Each non-blank line holds one entry. Lines starting with '#', ';' or "//"
// are comments. The separator between name and value may be '=' or plain
// whitespace. Values that contain whitespace, quotes or comment characters
// are written double-quoted with backslash escapes.
package cfgfile

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Entry is a single name/value pair in file order.
type Entry struct {
	Name  string
	Value string
}

// Document is an ordered set of entries with unique names. The zero value is
// not usable; call New or Parse.
type Document struct {
	entries []Entry
	index   map[string]int
}

// New returns an empty document.
func New() *Document {
	return &Document{index: make(map[string]int)}
}

// Lookup returns the raw value stored under name.
func (d *Document) Lookup(name string) (string, bool) {
	i, ok := d.index[name]
	if !ok {
		return "", false
	}
	return d.entries[i].Value, true
}

// Put sets name to value. An existing entry keeps its position.
func (d *Document) Put(name, value string) {
	if i, ok := d.index[name]; ok {
		d.entries[i].Value = value
		return
	}
	d.index[name] = len(d.entries)
	d.entries = append(d.entries, Entry{Name: name, Value: value})
}

// Entries returns a copy of all entries in order.
func (d *Document) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Document) Len() int { return len(d.entries) }

// Parse reads a document from r. Malformed lines are skipped; a later entry
// with the same name replaces an earlier one. Only read errors are returned.
func Parse(r io.Reader) (*Document, error) {
	d := New()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || isComment(line) {
			continue
		}
		name, value, err := parseLine(line)
		if err != nil {
			slog.Debug("skipping malformed config line", "line", lineNo, "error", err)
			continue
		}
		d.Put(name, value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading config text: %w", err)
	}
	return d, nil
}

func isComment(line string) bool {
	return line[0] == '#' || line[0] == ';' || strings.HasPrefix(line, "//")
}

func parseLine(line string) (name, value string, err error) {
	end := strings.IndexFunc(line, func(r rune) bool {
		return r == '=' || r == ' ' || r == '\t'
	})
	if end == 0 {
		return "", "", fmt.Errorf("missing name")
	}
	if end < 0 {
		// A bare name is an entry with an empty value.
		return line, "", nil
	}
	name = line[:end]
	rest := strings.TrimLeft(line[end:], " \t")
	if strings.HasPrefix(rest, "=") {
		rest = strings.TrimLeft(rest[1:], " \t")
	}
	if strings.HasPrefix(rest, `"`) {
		value, err = unquote(rest)
		if err != nil {
			return "", "", fmt.Errorf("value for %s: %w", name, err)
		}
		return name, value, nil
	}
	return name, strings.TrimRight(rest, " \t"), nil
}

// unquote decodes a double-quoted value. Anything after the closing quote
// must be blank or a comment.
func unquote(s string) (string, error) {
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if i+1 >= len(s) {
				return "", fmt.Errorf("dangling escape")
			}
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
		case '"':
			tail := strings.TrimSpace(s[i+1:])
			if tail != "" && !isComment(tail) {
				return "", fmt.Errorf("unexpected text after closing quote")
			}
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf("unterminated quote")
}

// NeedsQuote reports whether value must be quoted to survive a round trip.
func NeedsQuote(value string) bool {
	if value == "" {
		return true
	}
	if isComment(value) {
		return true
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return true
	}
	return strings.ContainsAny(value, "\"\\=")
}

// Quote renders value in its on-disk form.
func Quote(value string) string {
	if !NeedsQuote(value) {
		return value
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		switch c := value[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// WriteTo writes every entry as "name = value" in order.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, e := range d.entries {
		n, err := fmt.Fprintf(bw, "%s = %s\n", e.Name, Quote(e.Value))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// LoadFile opens path, parses it and closes it. A missing file yields an
// error satisfying errors.Is(err, fs.ErrNotExist).
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// WriteFile writes d to path through a temporary file in the same directory
// so readers never observe a partial file.
func WriteFile(path string, d *Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".cfg-*")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	if _, err := d.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
