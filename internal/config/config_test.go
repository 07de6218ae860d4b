package config

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/sdlkey"
)

func newTestRegistry(t *testing.T) (*Settings, *Registry) {
	t.Helper()
	s := New(sdlkey.Namer{})
	return s, ForSettings(s)
}

// TestDefaults verifies the compiled-in values every variable starts with.
func TestDefaults(t *testing.T) {
	_, r := newTestRegistry(t)
	vals := r.Values()

	want := map[string]string{
		"g_autorun":                "0",
		"linear_filtering":         "0",
		"use_gamepad":              "0",
		"gamepad":                  "",
		"gamepad_xythreshold":      "8000",
		"gamepad_triggerthreshold": "3000",
		"gamepad_ltrigger":         "0",
		"gamepad_rtrigger":         "5",
		"useMouse":                 "1",
		"mouseAcceleration":        "2",
		"mouseThreshold":           "10",
		"mouseSensitivity":         "5",
		"s_lowfreq":                "880",
		"s_highfreq":               "5000",
		"s_preampmul":              "0.93896",
		"s_lowgain":                "1.2",
		"s_midgain":                "1",
		"s_highgain":               "0.8",
		"screenwidth":              "320",
		"screenheight":             "224",
		"fullscreen":               "0",
		"monitornum":               "0",
		"aspectnum":                "4",
		"aspectdenom":              "3",
		"renderer":                 "0",
	}
	for name, v := range want {
		if vals[name] != v {
			t.Errorf("%s = %q, want %q", name, vals[name], v)
		}
	}
}

func TestRegistry_DeclaredNames(t *testing.T) {
	_, r := newTestRegistry(t)
	// 2 flags, 29 keys, 7 gamepad, 15 gamepad buttons, 4 mouse, 5 mouse buttons, 6 sound, 7 video.
	if got, want := r.Len(), 2+29+7+15+4+5+6+7; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
	for _, name := range []string{"kb_key_a", "kb_key_speed", "gamepad_button_rshldr", "mouse_button_x2", "renderer"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("%s not declared", name)
		}
	}
	if names := r.Names(); names[0] != "g_autorun" {
		t.Errorf("first name = %q, want g_autorun", names[0])
	}
}

func TestMustDeclare_PanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	var a, b int
	r.MustDeclare(IntVar("dup", &a, nil))

	if err := r.Declare(IntVar("dup", &b, nil)); !errors.Is(err, ErrAlreadyDeclared) {
		t.Errorf("Declare error = %v, want ErrAlreadyDeclared", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate declaration")
		}
	}()
	r.MustDeclare(IntVar("dup", &b, nil))
}

func TestLoad_Clamps(t *testing.T) {
	s, r := newTestRegistry(t)
	r.Load(MapSource{
		"screenwidth":       "100",
		"screenheight":      "99999",
		"fullscreen":        "-7",
		"mouseAcceleration": "9.5",
		"mouseSensitivity":  "0",
		"s_preampmul":       "-0.5",
		"gamepad_rtrigger":  "12",
		"renderer":          "1",
		"g_autorun":         "42",
		"use_gamepad":       "-1",
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"screenwidth", s.Video.ScreenWidth, 320},
		{"screenheight", s.Video.ScreenHeight, 32768},
		{"fullscreen", s.Video.Fullscreen, -1},
		{"mouseAcceleration", s.Mouse.Acceleration, 5.0},
		{"mouseSensitivity", s.Mouse.Sensitivity, 1},
		{"s_preampmul", s.Sound.PreampMul, 0.0},
		{"gamepad_rtrigger", s.Gamepad.RTrigger, binding.TriggerUse},
		{"renderer", s.Video.Renderer, RendererGL4},
		{"g_autorun", s.Game.Autorun, true},
		{"use_gamepad", s.Gamepad.Enabled, false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoad_ParseFailureKeepsPrior(t *testing.T) {
	s, r := newTestRegistry(t)
	r.Load(MapSource{
		"screenwidth":       "wide",
		"mouseAcceleration": "fast",
		"s_lowgain":         "NaN",
		"mouseThreshold":    "3.5",
		"g_autorun":         "yes",
		"monitornum":        "",
	})

	if s.Video.ScreenWidth != 320 {
		t.Errorf("ScreenWidth = %d, want 320", s.Video.ScreenWidth)
	}
	if s.Mouse.Acceleration != 2.0 {
		t.Errorf("Acceleration = %v, want 2", s.Mouse.Acceleration)
	}
	if s.Sound.LowGain != 1.2 {
		t.Errorf("LowGain = %v, want 1.2", s.Sound.LowGain)
	}
	if s.Mouse.Threshold != 10 {
		t.Errorf("Threshold = %d, want 10", s.Mouse.Threshold)
	}
	if s.Game.Autorun {
		t.Error("Autorun = true, want false")
	}
}

func TestLoad_OverflowClamps(t *testing.T) {
	s, r := newTestRegistry(t)
	r.Load(MapSource{
		"screenwidth":  "99999999999999999999999",
		"screenheight": "-99999999999999999999999",
		"s_midgain":    "1e400",
	})
	if s.Video.ScreenWidth != 32768 {
		t.Errorf("ScreenWidth = %d, want 32768", s.Video.ScreenWidth)
	}
	if s.Video.ScreenHeight != 224 {
		t.Errorf("ScreenHeight = %d, want 224", s.Video.ScreenHeight)
	}
	if s.Sound.MidGain != 3.0 {
		t.Errorf("MidGain = %v, want 3", s.Sound.MidGain)
	}
}

func TestLoad_EmptyStringIsAbsent(t *testing.T) {
	s, r := newTestRegistry(t)
	s.Gamepad.Device = "old-guid"
	r.Load(MapSource{"gamepad": "", "kb_key_up": ""})

	if s.Gamepad.Device != "old-guid" {
		t.Errorf("Device = %q, want old-guid", s.Gamepad.Device)
	}
	if got := s.Bindings.Keyboard.Code(binding.Up); got != sdlkey.Up {
		t.Errorf("Up key = %d, want default", got)
	}
}

func TestLoad_BindingNames(t *testing.T) {
	s, r := newTestRegistry(t)
	r.Load(MapSource{
		"kb_key_use":        "Space",
		"gamepad_button_a":  "ATTACK",
		"mouse_button_left": "nothing",
	})
	s.Bindings.InitFromNames()

	if got := s.Bindings.Keyboard.Code(binding.Use); got != sdlkey.Space {
		t.Errorf("Use key = %d, want Space", got)
	}
	if got := s.Bindings.Gamepad.Resolve(binding.PadA); got != binding.Attack {
		t.Errorf("pad a = %d, want Attack", got)
	}
	if got := s.Bindings.Mouse.Resolve(binding.MouseLeft); got != binding.Unbound {
		t.Errorf("mouse left = %d, want Unbound", got)
	}
	if v, _ := r.Get("kb_key_a"); v != "Right Shift" {
		t.Errorf("kb_key_a = %q, want Right Shift", v)
	}
}

func TestSetAndGet(t *testing.T) {
	_, r := newTestRegistry(t)

	if err := r.Set("screenwidth", "640"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := r.Get("screenwidth"); v != "640" {
		t.Errorf("screenwidth = %q, want 640", v)
	}
	if err := r.Set("screenwidth", "abc"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Set(abc) error = %v, want ErrInvalidValue", err)
	}
	if err := r.Set("nope", "1"); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Set(nope) error = %v, want ErrUnknownVariable", err)
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownVariable", err)
	}
}

func TestStringFunc_SetterErrorRejects(t *testing.T) {
	r := NewRegistry()
	stored := "keep"
	r.MustDeclare(StringFunc("picky",
		func() string { return stored },
		func(v string) error {
			if v == "bad" {
				return errors.New("not allowed")
			}
			stored = v
			return nil
		},
	))

	if err := r.Set("picky", "bad"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Set(bad) error = %v, want ErrInvalidValue", err)
	}
	if stored != "keep" {
		t.Errorf("stored = %q after rejected set", stored)
	}
	if err := r.Set("picky", "fine"); err != nil || stored != "fine" {
		t.Errorf("Set(fine) = %v, stored %q", err, stored)
	}
}

func TestEnvOverride(t *testing.T) {
	s, r := newTestRegistry(t)
	r.Load(MapSource{"screenwidth": "640"})

	t.Setenv("CALICO_SCREENWIDTH", "1280")
	t.Setenv("CALICO_MOUSEACCELERATION", "3.5")
	t.Setenv("CALICO_GAMEPAD", "")
	r.ApplyEnvOverrides()

	if s.Video.ScreenWidth != 1280 {
		t.Errorf("ScreenWidth = %d, want 1280", s.Video.ScreenWidth)
	}
	if s.Mouse.Acceleration != 3.5 {
		t.Errorf("Acceleration = %v, want 3.5", s.Mouse.Acceleration)
	}
}

func TestEntries(t *testing.T) {
	_, r := newTestRegistry(t)
	var found bool
	for _, e := range r.Entries() {
		if e.Name != "mouseAcceleration" {
			continue
		}
		found = true
		if e.Kind != "float" || e.Range != "1..5" || e.EnvVar != "CALICO_MOUSEACCELERATION" {
			t.Errorf("entry = %+v", e)
		}
	}
	if !found {
		t.Fatal("mouseAcceleration missing from Entries")
	}
}

func TestResetValues(t *testing.T) {
	s, r := newTestRegistry(t)
	r.Load(MapSource{"screenwidth": "800", "kb_key_up": "W"})
	s.ResetValues()

	if s.Video.ScreenWidth != 320 {
		t.Errorf("ScreenWidth = %d, want 320", s.Video.ScreenWidth)
	}
	// Registry accessors still point at the same storage.
	if v, _ := r.Get("screenwidth"); v != "320" {
		t.Errorf("screenwidth = %q, want 320", v)
	}
	if got := s.Bindings.Keyboard.Code(binding.Up); got != 'w' {
		t.Errorf("Up key = %d, bindings should survive ResetValues", got)
	}
}

var intBounds = map[string]IntRange{
	"g_autorun":        boolRange,
	"gamepad_ltrigger": triggerRange,
	"mouseThreshold":   mouseThreshRng,
	"mouseSensitivity": mouseSenseRange,
	"screenwidth":      widthRange,
	"screenheight":     heightRange,
	"fullscreen":       fullscreenRange,
	"aspectnum":        aspectNumRange,
	"aspectdenom":      aspectDenRange,
	"renderer":         rendererRange,
}

var floatBounds = map[string]FloatRange{
	"mouseAcceleration": mouseAccelRange,
	"s_preampmul":       preampRange,
	"s_lowgain":         gainRange,
	"s_midgain":         gainRange,
	"s_highgain":        gainRange,
}

func TestClamping_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ranged ints stay in range", prop.ForAll(
		func(n int) bool {
			_, r := newTestRegistry(t)
			src := MapSource{}
			for name := range intBounds {
				src[name] = strconv.Itoa(n)
			}
			r.Load(src)
			for name, b := range intBounds {
				v, _ := r.Get(name)
				got, err := strconv.Atoi(v)
				if err != nil || got < b.Min || got > b.Max {
					return false
				}
			}
			return true
		},
		gen.Int(),
	))

	properties.Property("ranged floats stay in range", prop.ForAll(
		func(f float64) bool {
			_, r := newTestRegistry(t)
			src := MapSource{}
			for name := range floatBounds {
				src[name] = strconv.FormatFloat(f, 'g', -1, 64)
			}
			r.Load(src)
			for name, b := range floatBounds {
				v, _ := r.Get(name)
				got, err := strconv.ParseFloat(v, 64)
				if err != nil || math.IsNaN(got) || got < b.Min || got > b.Max {
					return false
				}
			}
			return true
		},
		gen.Float64(),
	))

	properties.Property("garbage leaves values unchanged", prop.ForAll(
		func(junk string) bool {
			_, r := newTestRegistry(t)
			before := r.Values()
			src := MapSource{}
			for name := range intBounds {
				src[name] = "x" + junk
			}
			for name := range floatBounds {
				src[name] = "x" + junk
			}
			r.Load(src)
			after := r.Values()
			for name := range src {
				if before[name] != after[name] {
					return false
				}
			}
			return true
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("save then load reproduces every value", prop.ForAll(
		func(n int, f float64, device string, action int) bool {
			s1, r1 := newTestRegistry(t)
			src := MapSource{"gamepad": device}
			for name := range intBounds {
				src[name] = strconv.Itoa(n)
			}
			for name := range floatBounds {
				src[name] = strconv.FormatFloat(f, 'g', -1, 64)
			}
			src["s_lowfreq"] = strconv.FormatFloat(f*1000, 'g', -1, 64)
			src["monitornum"] = strconv.Itoa(n)
			r1.Load(src)
			s1.Bindings.InitFromNames()
			s1.Bindings.Gamepad.Update(binding.PadX, binding.Action(action))

			saved := MapSink{}
			r1.Save(saved)

			s2, r2 := newTestRegistry(t)
			r2.Load(MapSource(saved))
			s2.Bindings.InitFromNames()

			after := r2.Values()
			for name, v := range saved {
				if after[name] != v {
					t.Logf("%s: saved %q, reloaded %q", name, v, after[name])
					return false
				}
			}
			return *s1.Bindings.Keyboard == *s2.Bindings.Keyboard
		},
		gen.Int(),
		gen.Float64Range(-1e6, 1e6),
		gen.AlphaString(),
		gen.IntRange(0, int(binding.Count)),
	))

	properties.TestingRun(t)
}
