package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/calico/internal/binding"
	"github.com/kalambet/calico/internal/config"
	"github.com/kalambet/calico/internal/sdlkey"
	"github.com/kalambet/calico/internal/setup"
)

// NewMCPServer creates an MCP server exposing the editor's session as tools
// and resources.
func NewMCPServer(ed *Editor, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"calico-setup",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("calico-setup edits the Calico Doom configuration: calico.cfg variables, input bindings and the emulated EEPROM."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("get_setting",
			mcp.WithDescription("Read one calico.cfg variable."),
			mcp.WithString("name", mcp.Description("Variable name, e.g. screenwidth"), mcp.Required()),
		),
		mcpGetSetting(ed),
	)

	s.AddTool(
		mcp.NewTool("set_setting",
			mcp.WithDescription("Assign one calico.cfg variable. Numbers are clamped into range. Call save to persist."),
			mcp.WithString("name", mcp.Description("Variable name"), mcp.Required()),
			mcp.WithString("value", mcp.Description("New value as text"), mcp.Required()),
		),
		mcpSetSetting(ed),
	)

	s.AddTool(
		mcp.NewTool("bind_button",
			mcp.WithDescription("Bind a mouse or gamepad button to a controller action."),
			mcp.WithString("device", mcp.Description("mouse or gamepad"), mcp.Required(), mcp.Enum("mouse", "gamepad")),
			mcp.WithString("slot", mcp.Description("Button slot, e.g. left, x1, a, lshldr"), mcp.Required()),
			mcp.WithString("action", mcp.Description("Action name, e.g. attack, use, unbound"), mcp.Required()),
		),
		mcpBindButton(ed),
	)

	s.AddTool(
		mcp.NewTool("set_key",
			mcp.WithDescription("Bind a keyboard key to a controller action. An empty key clears the binding."),
			mcp.WithString("action", mcp.Description("Action name, e.g. attack"), mcp.Required()),
			mcp.WithString("key", mcp.Description("SDL key name, e.g. Right Ctrl, W, Keypad /")),
		),
		mcpSetKey(ed),
	)

	s.AddTool(
		mcp.NewTool("read_eeprom",
			mcp.WithDescription("Show the emulated EEPROM record and whether it validated."),
		),
		mcpReadEEPROM(ed),
	)

	s.AddTool(
		mcp.NewTool("save",
			mcp.WithDescription("Write calico.cfg and the EEPROM record to disk."),
		),
		mcpSave(ed),
	)

	s.AddResource(
		mcp.NewResource(
			"calico://settings",
			"Settings",
			mcp.WithResourceDescription("Every calico.cfg variable with its current value"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceSettings(ed),
	)

	s.AddResource(
		mcp.NewResource(
			"calico://bindings",
			"Bindings",
			mcp.WithResourceDescription("Keyboard, mouse and gamepad bindings"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceBindings(ed),
	)

	return s
}

func mcpGetSetting(ed *Editor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}
		var entry config.Entry
		err = ed.Do(func(s *setup.Session) error {
			entry, err = s.Registry.Entry(name)
			return err
		})
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpJSON(entry)
	}
}

func mcpSetSetting(ed *Editor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}
		value, err := req.RequireString("value")
		if err != nil {
			return mcpError("value is required"), nil
		}
		var stored string
		err = ed.Do(func(s *setup.Session) error {
			if err := s.Registry.Set(name, value); err != nil {
				return err
			}
			stored, err = s.Registry.Get(name)
			return err
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to set %s: %v", name, err)), nil
		}
		return mcpText(fmt.Sprintf("Set %s = %s", name, stored)), nil
	}
}

func mcpBindButton(ed *Editor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		device, err := req.RequireString("device")
		if err != nil {
			return mcpError("device is required"), nil
		}
		slot, err := req.RequireString("slot")
		if err != nil {
			return mcpError("slot is required"), nil
		}
		name, err := req.RequireString("action")
		if err != nil {
			return mcpError("action is required"), nil
		}
		a, err := binding.LookupAction(name)
		if err != nil {
			return mcpError(err.Error()), nil
		}

		err = ed.Do(func(s *setup.Session) error {
			t, err := s.Bindings().Table(device)
			if err != nil {
				return err
			}
			return t.Update(binding.SlotID(slot), a)
		})
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpText(fmt.Sprintf("Bound %s %s to %s", device, slot, a.Label())), nil
	}
}

func mcpSetKey(ed *Editor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("action")
		if err != nil {
			return mcpError("action is required"), nil
		}
		a, err := binding.LookupAction(name)
		if err != nil || !a.Valid() {
			return mcpError(fmt.Sprintf("unknown action %q", name)), nil
		}
		keyName := req.GetString("key", "")
		code := sdlkey.FromName(keyName)
		if keyName != "" && code == sdlkey.Unknown {
			return mcpError(fmt.Sprintf("unknown key name %q", keyName)), nil
		}

		var shown string
		err = ed.Do(func(s *setup.Session) error {
			kb := s.Bindings().Keyboard
			if err := kb.SetKey(a, code); err != nil {
				return err
			}
			shown = kb.CurrentBinding(a)
			return nil
		})
		if err != nil {
			return mcpError(err.Error()), nil
		}
		if code == sdlkey.Unknown {
			return mcpText(fmt.Sprintf("Cleared key for %s", a.Label())), nil
		}
		return mcpText(fmt.Sprintf("%s = %s", a.Label(), shown)), nil
	}
}

func mcpReadEEPROM(ed *Editor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var v EEPROMView
		ed.Do(func(s *setup.Session) error {
			v = eepromView(s.EEPROM)
			return nil
		})
		return mcpJSON(v)
	}
}

func mcpSave(ed *Editor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var paths string
		err := ed.Do(func(s *setup.Session) error {
			paths = s.Paths.Config() + ", " + s.Paths.EEPROM()
			return s.Save()
		})
		if err != nil {
			return mcpError(fmt.Sprintf("save failed: %v", err)), nil
		}
		return mcpText("Saved " + paths), nil
	}
}

func mcpResourceSettings(ed *Editor) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		var entries []config.Entry
		ed.Do(func(s *setup.Session) error {
			entries = s.Registry.Entries()
			return nil
		})
		return jsonResource(req.Params.URI, entries)
	}
}

func mcpResourceBindings(ed *Editor) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		var v BindingsView
		ed.Do(func(s *setup.Session) error {
			v = bindingsView(s.Bindings())
			return nil
		})
		return jsonResource(req.Params.URI, v)
	}
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcpText(string(b)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
