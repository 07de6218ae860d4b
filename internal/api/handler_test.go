package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/config"
	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/platform"
	"github.com/kalambet/calico/internal/sdlkey"
	"github.com/kalambet/calico/internal/setup"
)

func newTestHandler(t *testing.T) (http.Handler, *setup.Session) {
	t.Helper()
	ed, s := newTestEditor(t)
	return NewHandler(Deps{Editor: ed}), s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "body: %s", rr.Body.String())
	return v
}

func errorType(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeJSON[map[string]map[string]string](t, rr)
	return body["error"]["type"]
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rr := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeJSON[map[string]string](t, rr)["status"])
}

func TestBearerAuth(t *testing.T) {
	ed, _ := newTestEditor(t)
	h := NewHandler(Deps{Editor: ed, Token: "sekrit"})

	rr := do(t, h, http.MethodGet, "/settings", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "authentication_error", errorType(t, rr))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code, "health stays open")
}

func TestSettings_ListAndGet(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	entries := decodeJSON[[]config.Entry](t, rr)
	assert.Len(t, entries, s.Registry.Len())
	assert.Equal(t, "g_autorun", entries[0].Name)

	rr = do(t, h, http.MethodGet, "/settings/s_preampmul", "")
	require.Equal(t, http.StatusOK, rr.Code)
	e := decodeJSON[config.Entry](t, rr)
	assert.Equal(t, "0.93896", e.Value)
	assert.Equal(t, "float", e.Kind)
	assert.Equal(t, "CALICO_S_PREAMPMUL", e.EnvVar)

	rr = do(t, h, http.MethodGet, "/settings/bogus", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not_found_error", errorType(t, rr))
}

func TestSettings_Put(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodPut, "/settings/aspectnum", `{"value":"1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "3", decodeJSON[config.Entry](t, rr).Value, "clamped to the minimum")
	assert.Equal(t, 3, s.Settings.Video.AspectNum)

	rr = do(t, h, http.MethodPut, "/settings/aspectnum", `{"value":"wide"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 3, s.Settings.Video.AspectNum)

	rr = do(t, h, http.MethodPut, "/settings/aspectnum", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, "/settings/aspectnum", `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, "/settings/mouse_button_left", `{"value":"use"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, binding.Use, s.Bindings().Mouse.Resolve(binding.MouseLeft))
}

func TestSettings_Patch(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodPatch, "/settings", `{"screenwidth":"800","screenheight":"600"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 800, s.Settings.Video.ScreenWidth)
	assert.Equal(t, 600, s.Settings.Video.ScreenHeight)

	rr = do(t, h, http.MethodPatch, "/settings", `{"nope":"1"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSettings_Reset(t *testing.T) {
	h, s := newTestHandler(t)
	rr := do(t, h, http.MethodPost, "/settings/reset", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, s.Settings.Game.Autorun)
	assert.Equal(t, config.RendererGL4, s.Settings.Video.Renderer)
	assert.Equal(t, sdlkey.Keycode('w'), s.Bindings().Keyboard.Code(binding.Up))
}

func TestBindings(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/bindings", "")
	require.Equal(t, http.StatusOK, rr.Code)
	v := decodeJSON[BindingsView](t, rr)
	require.Len(t, v.Mouse, 5)
	assert.Equal(t, "left", v.Mouse[0].Slot)
	assert.Equal(t, "attack", v.Mouse[0].Action)
	assert.Equal(t, "Fire/Attack", v.Mouse[0].ActionLabel)
	assert.Equal(t, "Right Shift", v.Keyboard[0].Key)
	assert.Equal(t, "kb_key_a", v.Keyboard[0].ConfigName)

	rr = do(t, h, http.MethodPut, "/bindings/gamepad/start", `{"action":"pause"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, binding.Pause, s.Bindings().Gamepad.Resolve(binding.PadStart))

	rr = do(t, h, http.MethodPut, "/bindings/gamepad/start", `{"action":"unbound"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, binding.Unbound, s.Bindings().Gamepad.Resolve(binding.PadStart))

	rr = do(t, h, http.MethodPut, "/bindings/gamepad/start", `{"action":"dance"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, "/bindings/gamepad/paddle", `{"action":"use"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPut, "/bindings/wheel/a", `{"action":"use"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestKeys(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodPut, "/keys/speed", `{"key":"left shift"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	kv := decodeJSON[KeyView](t, rr)
	assert.Equal(t, "Left Shift", kv.Key)
	assert.Equal(t, sdlkey.LShift, s.Bindings().Keyboard.Code(binding.Speed))

	rr = do(t, h, http.MethodPut, "/keys/speed", `{"key":"Hyper"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, "/keys/fly", `{"key":"W"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, "/keys/speed", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, sdlkey.Unknown, s.Bindings().Keyboard.Code(binding.Speed))
}

func TestEEPROM(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/eeprom", "")
	require.Equal(t, http.StatusOK, rr.Code)
	v := decodeJSON[EEPROMView](t, rr)
	assert.Equal(t, eeprom.Defaults(), v.Record)
	assert.Equal(t, "Speed/Fire/Use", v.Scheme)

	rr = do(t, h, http.MethodPut, "/eeprom", `{"start_map":9,"skill":4}`)
	require.Equal(t, http.StatusOK, rr.Code)
	v = decodeJSON[EEPROMView](t, rr)
	assert.Equal(t, 9, v.Record.StartMap)
	assert.Equal(t, eeprom.SkillNightmare, s.EEPROM.Record.Skill)
	assert.Equal(t, 200, s.EEPROM.Record.SFXVolume, "unspecified fields keep their values")

	rr = do(t, h, http.MethodPut, "/eeprom", `{"max_level":30}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 1, s.EEPROM.Record.MaxLevel)
}

func TestEEPROM_RejectsFieldsThatTruncate(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodPut, "/eeprom", `{"start_map":65537}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 1, s.EEPROM.Record.StartMap)

	rr = do(t, h, http.MethodPut, "/eeprom", `{"sfx_volume":65736}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 200, s.EEPROM.Record.SFXVolume)
}

func TestSaveAndReload(t *testing.T) {
	h, s := newTestHandler(t)

	do(t, h, http.MethodPut, "/settings/screenwidth", `{"value":"1024"}`)
	rr := do(t, h, http.MethodPost, "/save", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, platform.Exists(s.Paths.Config()))

	do(t, h, http.MethodPut, "/settings/screenwidth", `{"value":"2048"}`)
	rr = do(t, h, http.MethodPost, "/reload", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodGet, "/settings/screenwidth", "")
	assert.Equal(t, "1024", decodeJSON[config.Entry](t, rr).Value)
}

func TestProfiles(t *testing.T) {
	h, s := newTestHandler(t)

	rr := do(t, h, http.MethodPost, "/profiles", `{"name":"lan party","description":"big screen"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	p := decodeJSON[ProfileView](t, rr)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "lan party", p.Name)

	rr = do(t, h, http.MethodPost, "/profiles", `{"description":"no name"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/profiles", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeJSON[[]ProfileView](t, rr), 1)

	s.Settings.Video.ScreenWidth = 999
	rr = do(t, h, http.MethodPost, "/profiles/lan%20party/apply", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 320, s.Settings.Video.ScreenWidth)

	rr = do(t, h, http.MethodPost, "/profiles/missing/apply", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, "/profiles/lan%20party", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = do(t, h, http.MethodDelete, "/profiles/lan%20party", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProfiles_NoStore(t *testing.T) {
	s := setup.New(platform.Paths{Dir: t.TempDir()}, sdlkey.Namer{}, setup.WithEnvOverrides(false))
	h := NewHandler(Deps{Editor: NewEditor(s, nil)})
	rr := do(t, h, http.MethodGet, "/profiles", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
