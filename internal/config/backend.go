package config

// Source supplies raw text values by variable name. cfgfile.Document and
// maps of overrides satisfy it.
type Source interface {
	Lookup(name string) (string, bool)
}

// Sink receives the canonical text of each variable on save.
type Sink interface {
	Put(name, value string)
}

// MapSource adapts a plain map to Source.
type MapSource map[string]string

func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// MapSink collects saved values into a map.
type MapSink map[string]string

func (m MapSink) Put(name, value string) { m[name] = value }

// envSource maps a variable name to CALICO_<NAME>.
type envSource struct {
	lookup func(string) (string, bool)
}

func (e envSource) Lookup(name string) (string, bool) {
	v, ok := e.lookup(EnvName(name))
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
