package config

import "fmt"

// Entry describes a variable for display.
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Kind   string `json:"kind" yaml:"kind"`
	Value  string `json:"value" yaml:"value"`
	Range  string `json:"range,omitempty" yaml:"range,omitempty"`
	EnvVar string `json:"env" yaml:"env"`
}

// Entries returns every variable with its current value.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.vars))
	for _, v := range r.vars {
		out = append(out, v.entry())
	}
	return out
}

// Values returns a name to canonical-text map of every variable.
func (r *Registry) Values() map[string]string {
	m := make(MapSink, len(r.vars))
	r.Save(m)
	return m
}

// Entry describes the variable called name.
func (r *Registry) Entry(name string) (Entry, error) {
	v, ok := r.index[name]
	if !ok {
		return Entry{}, fmt.Errorf("%q: %w", name, ErrUnknownVariable)
	}
	return v.entry(), nil
}

func (v *Var) entry() Entry {
	return Entry{
		Name:   v.name,
		Kind:   v.kind.String(),
		Value:  v.text(),
		Range:  v.bound,
		EnvVar: EnvName(v.name),
	}
}
