package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

var (
	ErrAlreadyDeclared = errors.New("variable already declared")
	ErrUnknownVariable = errors.New("unknown config variable")
	ErrInvalidValue    = errors.New("invalid value")
)

// Kind is the semantic type of a variable.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	}
	return "unknown"
}

// IntRange is an inclusive bound enforced by clamping.
type IntRange struct{ Min, Max int }

func (r IntRange) clamp(v int) int { return min(max(v, r.Min), r.Max) }

// FloatRange is an inclusive bound enforced by clamping.
type FloatRange struct{ Min, Max float64 }

func (r FloatRange) clamp(v float64) float64 { return math.Min(math.Max(v, r.Min), r.Max) }

var boolRange = IntRange{0, 1}

// Var binds a name to a piece of storage through accessor closures.
type Var struct {
	name  string
	kind  Kind
	bound string
	text  func() string
	parse func(raw string) error
}

func (v *Var) Name() string { return v.name }
func (v *Var) Kind() Kind   { return v.kind }

// Range describes the attached bound, or "" when there is none.
func (v *Var) Range() string { return v.bound }

// Text renders the current value in canonical form.
func (v *Var) Text() string { return v.text() }

// Parse converts raw to the variable's type, clamps it into range and
// stores it. On error the stored value is unchanged.
func (v *Var) Parse(raw string) error { return v.parse(raw) }

func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		// Saturated values are still numbers; clamping decides where they land.
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return n, nil
		}
		return 0, err
	}
	return n, nil
}

func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return 0, err
		}
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("NaN is not a setting value")
	}
	return f, nil
}

// IntFunc declares an integer reached through get and set.
func IntFunc(name string, get func() int, set func(int), r *IntRange) Var {
	v := Var{name: name, kind: KindInt}
	if r != nil {
		v.bound = fmt.Sprintf("%d..%d", r.Min, r.Max)
	}
	v.text = func() string { return strconv.Itoa(get()) }
	v.parse = func(raw string) error {
		n, err := parseInt(raw)
		if err != nil {
			return err
		}
		if r != nil {
			if c := r.clamp(n); c != n {
				slog.Debug("clamped config value", "name", name, "raw", raw, "value", c)
				n = c
			}
		}
		set(n)
		return nil
	}
	return v
}

// IntVar declares an integer stored at p.
func IntVar(name string, p *int, r *IntRange) Var {
	return IntFunc(name, func() int { return *p }, func(n int) { *p = n }, r)
}

// BoolVar declares a flag stored at p. It is written as 0 or 1 and read as
// an integer clamped to [0,1].
func BoolVar(name string, p *bool) Var {
	v := IntFunc(name,
		func() int {
			if *p {
				return 1
			}
			return 0
		},
		func(n int) { *p = n != 0 },
		&boolRange,
	)
	v.kind = KindBool
	return v
}

// FloatVar declares a float stored at p.
func FloatVar(name string, p *float64, r *FloatRange) Var {
	v := Var{name: name, kind: KindFloat}
	if r != nil {
		v.bound = strconv.FormatFloat(r.Min, 'g', -1, 64) + ".." + strconv.FormatFloat(r.Max, 'g', -1, 64)
	}
	v.text = func() string { return strconv.FormatFloat(*p, 'g', -1, 64) }
	v.parse = func(raw string) error {
		f, err := parseFloat(raw)
		if err != nil {
			return err
		}
		if r != nil {
			if c := r.clamp(f); c != f {
				slog.Debug("clamped config value", "name", name, "raw", raw, "value", c)
				f = c
			}
		}
		*p = f
		return nil
	}
	return v
}

// StringFunc declares a string reached through get and set. Each set
// replaces the stored value wholesale; an error from set rejects the value.
func StringFunc(name string, get func() string, set func(string) error) Var {
	return Var{name: name, kind: KindString, text: get, parse: set}
}

// StringVar declares a string stored at p.
func StringVar(name string, p *string) Var {
	return StringFunc(name, func() string { return *p }, func(s string) error {
		*p = s
		return nil
	})
}

// Registry maps names to variables in declaration order.
type Registry struct {
	vars  []*Var
	index map[string]*Var
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*Var)}
}

// Declare adds v. Names are unique.
func (r *Registry) Declare(v Var) error {
	if _, ok := r.index[v.name]; ok {
		return fmt.Errorf("%q: %w", v.name, ErrAlreadyDeclared)
	}
	p := &v
	r.vars = append(r.vars, p)
	r.index[v.name] = p
	return nil
}

// MustDeclare is Declare for static registration; a duplicate is a
// programming error and panics.
func (r *Registry) MustDeclare(vars ...Var) {
	for _, v := range vars {
		if err := r.Declare(v); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the variable called name.
func (r *Registry) Lookup(name string) (*Var, bool) {
	v, ok := r.index[name]
	return v, ok
}

// Names lists every declared name in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.vars))
	for i, v := range r.vars {
		out[i] = v.name
	}
	return out
}

func (r *Registry) Len() int { return len(r.vars) }

// Load assigns every declared variable that src has a value for. Values
// that fail to parse leave the prior value in place, and an empty string
// counts as absent for string variables. Load never fails.
func (r *Registry) Load(src Source) {
	for _, v := range r.vars {
		raw, ok := src.Lookup(v.name)
		if !ok {
			continue
		}
		if v.kind == KindString && raw == "" {
			continue
		}
		if err := v.parse(raw); err != nil {
			slog.Debug("could not parse config value, keeping previous", "name", v.name, "raw", raw, "error", err)
		}
	}
}

// Save writes every declared variable to sink in declaration order.
func (r *Registry) Save(sink Sink) {
	for _, v := range r.vars {
		sink.Put(v.name, v.text())
	}
}

// Get returns the canonical text of one variable.
func (r *Registry) Get(name string) (string, error) {
	v, ok := r.index[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownVariable)
	}
	return v.text(), nil
}

// Set assigns one variable from raw text. Unlike Load it reports parse
// failures to the caller.
func (r *Registry) Set(name, raw string) error {
	v, ok := r.index[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownVariable)
	}
	if err := v.parse(raw); err != nil {
		return fmt.Errorf("%s=%q: %w: %v", name, raw, ErrInvalidValue, err)
	}
	return nil
}

// EnvName is the environment variable that overrides name.
func EnvName(name string) string {
	return "CALICO_" + strings.ToUpper(name)
}

// ApplyEnvOverrides loads CALICO_<NAME> values from the process environment
// on top of whatever is already stored.
func (r *Registry) ApplyEnvOverrides() {
	r.Load(envSource{lookup: os.LookupEnv})
}
