package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/config"
	"github.com/kalambet/calico/internal/eeprom"
	"github.com/kalambet/calico/internal/sdlkey"
	"github.com/kalambet/calico/internal/setup"
	"github.com/kalambet/calico/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

type Deps struct {
	Editor *Editor
	// Token enables bearer authentication on every route but /health.
	Token string
}

// NewHandler returns the REST API over the editor's session.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}

		r.Get("/settings", handleListSettings(deps))
		r.Patch("/settings", handlePatchSettings(deps))
		r.Post("/settings/reset", handleResetSettings(deps))
		r.Get("/settings/{name}", handleGetSetting(deps))
		r.Put("/settings/{name}", handlePutSetting(deps))

		r.Get("/bindings", handleGetBindings(deps))
		r.Put("/bindings/{device}/{slot}", handlePutBinding(deps))
		r.Put("/keys/{action}", handlePutKey(deps))
		r.Delete("/keys/{action}", handleDeleteKey(deps))

		r.Get("/eeprom", handleGetEEPROM(deps))
		r.Put("/eeprom", handlePutEEPROM(deps))

		r.Post("/save", handleSave(deps))
		r.Post("/reload", handleReload(deps))

		r.Get("/profiles", handleListProfiles(deps))
		r.Post("/profiles", handleCreateProfile(deps))
		r.Post("/profiles/{name}/apply", handleApplyProfile(deps))
		r.Delete("/profiles/{name}", handleDeleteProfile(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleListSettings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []config.Entry
		deps.Editor.Do(func(s *setup.Session) error {
			entries = s.Registry.Entries()
			return nil
		})
		writeJSON(w, entries)
	}
}

func handleGetSetting(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry config.Entry
		err := deps.Editor.Do(func(s *setup.Session) error {
			var err error
			entry, err = s.Registry.Entry(chi.URLParam(r, "name"))
			return err
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, entry)
	}
}

type setValueRequest struct {
	Value *string `json:"value"`
}

func handlePutSetting(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setValueRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Value == nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "value is required")
			return
		}

		name := chi.URLParam(r, "name")
		var entry config.Entry
		err := deps.Editor.Do(func(s *setup.Session) error {
			if err := s.Registry.Set(name, *req.Value); err != nil {
				return err
			}
			var err error
			entry, err = s.Registry.Entry(name)
			return err
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, entry)
	}
}

func handlePatchSettings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var values map[string]string
		if !decodeBody(w, r, &values) {
			return
		}
		var entries []config.Entry
		err := deps.Editor.Do(func(s *setup.Session) error {
			err := s.Apply(values)
			entries = s.Registry.Entries()
			return err
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, entries)
	}
}

func handleResetSettings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []config.Entry
		deps.Editor.Do(func(s *setup.Session) error {
			s.ResetToDefaults()
			entries = s.Registry.Entries()
			return nil
		})
		writeJSON(w, entries)
	}
}

func handleGetBindings(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v BindingsView
		deps.Editor.Do(func(s *setup.Session) error {
			v = bindingsView(s.Bindings())
			return nil
		})
		writeJSON(w, v)
	}
}

type bindRequest struct {
	Action string `json:"action"`
}

func handlePutBinding(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bindRequest
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := binding.LookupAction(req.Action)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		var v BindingsView
		err = deps.Editor.Do(func(s *setup.Session) error {
			t, err := s.Bindings().Table(chi.URLParam(r, "device"))
			if err != nil {
				return err
			}
			if err := t.Update(binding.SlotID(chi.URLParam(r, "slot")), a); err != nil {
				return err
			}
			v = bindingsView(s.Bindings())
			return nil
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, v)
	}
}

type keyRequest struct {
	Key string `json:"key"`
}

func pathAction(r *http.Request) (binding.Action, error) {
	a, err := binding.LookupAction(chi.URLParam(r, "action"))
	if err == nil && !a.Valid() {
		err = fmt.Errorf("%q: %w", chi.URLParam(r, "action"), binding.ErrUnknownAction)
	}
	return a, err
}

func handlePutKey(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := pathAction(r)
		if err != nil {
			httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
			return
		}
		var req keyRequest
		if !decodeBody(w, r, &req) {
			return
		}
		code := sdlkey.FromName(req.Key)
		if code == sdlkey.Unknown {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown key name %q", req.Key)
			return
		}

		var kv KeyView
		err = deps.Editor.Do(func(s *setup.Session) error {
			kb := s.Bindings().Keyboard
			if err := kb.SetKey(a, code); err != nil {
				return err
			}
			kv = KeyView{Action: a.String(), Label: a.Label(), Key: kb.CurrentBinding(a), ConfigName: binding.ConfigName(a)}
			return nil
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, kv)
	}
}

func handleDeleteKey(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := pathAction(r)
		if err != nil {
			httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
			return
		}
		err = deps.Editor.Do(func(s *setup.Session) error {
			return s.Bindings().Keyboard.ClearKey(a)
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGetEEPROM(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v EEPROMView
		deps.Editor.Do(func(s *setup.Session) error {
			v = eepromView(s.EEPROM)
			return nil
		})
		writeJSON(w, v)
	}
}

// handlePutEEPROM overlays the request body on the current record. Fields
// the body leaves out keep their values.
func handlePutEEPROM(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var v EEPROMView
		var badReq error
		deps.Editor.Do(func(s *setup.Session) error {
			rec := s.EEPROM.Record
			if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
				badReq = fmt.Errorf("invalid request body: %v", err)
				return nil
			}
			if got, st := eeprom.Decode(rec.Encode()); st != eeprom.StateValid || got != rec {
				badReq = fmt.Errorf("record field out of range: %+v", rec)
				return nil
			}
			s.EEPROM.Record = rec
			v = eepromView(s.EEPROM)
			return nil
		})
		if badReq != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", badReq)
			return
		}
		writeJSON(w, v)
	}
}

func handleSave(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Editor.Do((*setup.Session).Save); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save: %v", err)
			return
		}
		writeJSON(w, map[string]string{"status": "saved"})
	}
}

func handleReload(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Editor.Do((*setup.Session).Reload); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to reload: %v", err)
			return
		}
		writeJSON(w, map[string]string{"status": "reloaded"})
	}
}

func requireStore(w http.ResponseWriter, deps Deps) (*storage.Store, bool) {
	st := deps.Editor.Store()
	if st == nil {
		httpError(w, http.StatusServiceUnavailable, "api_error", "profiles are not available")
		return nil, false
	}
	return st, true
}

func handleListProfiles(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := requireStore(w, deps)
		if !ok {
			return
		}
		profiles, err := st.ListProfiles()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list profiles: %v", err)
			return
		}
		out := make([]ProfileView, len(profiles))
		for i, p := range profiles {
			out[i] = profileView(p)
		}
		writeJSON(w, out)
	}
}

type createProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func handleCreateProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := requireStore(w, deps)
		if !ok {
			return
		}
		var req createProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name is required")
			return
		}

		var p storage.Profile
		err := deps.Editor.Do(func(s *setup.Session) error {
			var err error
			p, err = s.SaveProfile(st, req.Name, req.Description)
			return err
		})
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save profile: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(profileView(p))
	}
}

func handleApplyProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := requireStore(w, deps)
		if !ok {
			return
		}
		var state eeprom.State
		err := deps.Editor.Do(func(s *setup.Session) error {
			var err error
			state, err = s.ApplyProfile(st, chi.URLParam(r, "name"))
			return err
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, map[string]string{"status": "applied", "eeprom": state.String()})
	}
}

func handleDeleteProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, ok := requireStore(w, deps)
		if !ok {
			return
		}
		if err := st.DeleteProfile(chi.URLParam(r, "name")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeErr maps domain errors onto HTTP status codes.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, config.ErrUnknownVariable),
		errors.Is(err, binding.ErrUnknownSlot),
		errors.Is(err, binding.ErrUnknownDevice),
		errors.Is(err, storage.ErrNotFound):
		httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
	case errors.Is(err, config.ErrInvalidValue),
		errors.Is(err, binding.ErrUnknownAction):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
