// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads infinidesk's TOML config file (spec.md §6):
// output scale, startup commands, and the keybind chord table, with
// defaults written to disk on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ThatOtherAndrew/Infinidesk/internal/modkey"
	"github.com/ThatOtherAndrew/Infinidesk/internal/router"
)

// Config is the decoded shape of infinidesk.toml.
type Config struct {
	Scale    float32           `toml:"scale"`
	Startup  []string          `toml:"startup"`
	Keybinds map[string]string `toml:"keybinds"`
}

// defaultDocument is written verbatim to a fresh config file. It omits
// the [keybinds] table entirely, so DefaultKeybinds applies (spec.md
// §6: "Default binds ... applied only when no [keybinds] section
// exists").
const defaultDocument = `# infinidesk configuration
scale = 1.0
startup = []

# Uncomment to override the built-in keybinds (see the default table
# in internal/config for the syntax). Example:
# [keybinds]
# "super + Return" = "exec:kitty"
`

// defaultScale is used when a config omits the scale key or the file
// doesn't exist yet.
const defaultScale = 1.0

// Path returns $HOME/.config/infinidesk/infinidesk.toml.
func Path() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("config: HOME is not set")
	}
	return filepath.Join(home, ".config", "infinidesk", "infinidesk.toml"), nil
}

// Load reads the config file at Path, creating it with documented
// defaults (spec.md §6, Supplemented Feature 1) if absent. diagnostics
// receives one formatted line per skipped keybind entry (Supplemented
// Feature 2); it may be nil.
func Load(diagnostics func(string)) (*Config, []router.Keybind, error) {
	path, err := Path()
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("config: creating config dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultDocument), 0o644); err != nil {
			return nil, nil, fmt.Errorf("config: writing default config: %w", err)
		}
		data = []byte(defaultDocument)
	} else if err != nil {
		return nil, nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var decodeErr *toml.DecodeError
		if errorsAsDecodeError(err, &decodeErr) {
			row, col := decodeErr.Position()
			if diagnostics != nil {
				diagnostics(fmt.Sprintf("config: %d:%d: %s", row, col, decodeErr.Error()))
			}
			cfg = Config{}
		} else {
			return nil, nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if cfg.Scale == 0 {
		cfg.Scale = defaultScale
	}

	var keybinds []router.Keybind
	if cfg.Keybinds == nil {
		keybinds = DefaultKeybinds()
	} else {
		keybinds = parseKeybinds(cfg.Keybinds, diagnostics)
	}

	return &cfg, keybinds, nil
}

// errorsAsDecodeError is the errors.As call factored out so Load reads
// linearly; go-toml/v2 always returns a *toml.DecodeError for malformed
// documents.
func errorsAsDecodeError(err error, target **toml.DecodeError) bool {
	de, ok := err.(*toml.DecodeError)
	if !ok {
		return false
	}
	*target = de
	return true
}

// DefaultKeybinds returns the nine hard-coded chord bindings spec.md §6
// names, applied when a config carries no [keybinds] table.
func DefaultKeybinds() []router.Keybind {
	defaults := map[string]string{
		"super + Return": "exec:kitty",
		"super + q":      "close_window",
		"super + Escape": "exit",
		"super + d":      "toggle_drawing",
		"super + c":      "clear_drawings",
		"super + u":      "undo_stroke",
		"super + r":      "redo_stroke",
		"super + g":      "gather_windows",
		"alt + Tab":      "window_switcher",
	}
	return parseKeybinds(defaults, nil)
}

// parseKeybinds parses every chord→value entry, skipping and reporting
// (via diagnostics, if non-nil) any chord or value it can't parse
// (spec.md §7: "keybind parse failure: single line skipped with log,
// others honored").
func parseKeybinds(entries map[string]string, diagnostics func(string)) []router.Keybind {
	out := make([]router.Keybind, 0, len(entries))
	for chord, value := range entries {
		kb, err := ParseKeybind(chord, value)
		if err != nil {
			if diagnostics != nil {
				diagnostics(fmt.Sprintf("config: keybind %q: %v", chord, err))
			}
			continue
		}
		out = append(out, kb)
	}
	return out
}

// ParseKeybind parses one chord string ("mod1 + mod2 + ... + key") and
// its value ("<action-name>" or "exec:<shell cmd>") into a
// router.Keybind (spec.md §6).
func ParseKeybind(chord, value string) (router.Keybind, error) {
	toks := strings.Split(chord, "+")
	if len(toks) == 0 {
		return router.Keybind{}, fmt.Errorf("empty chord")
	}

	var mods modkey.Modifiers
	var keyTok string
	for i, tok := range toks {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return router.Keybind{}, fmt.Errorf("empty token in chord %q", chord)
		}
		if bit, ok := modkey.ParseModifierToken(tok); ok {
			mods |= bit
			continue
		}
		if i != len(toks)-1 {
			return router.Keybind{}, fmt.Errorf("unrecognized modifier %q", tok)
		}
		keyTok = tok
	}
	if keyTok == "" {
		return router.Keybind{}, fmt.Errorf("chord %q has no terminal key", chord)
	}

	kb := router.Keybind{Modifiers: mods, Key: modkey.ParseName(keyTok)}

	if action, ok := strings.CutPrefix(value, "exec:"); ok {
		kb.Kind = router.BindExec
		kb.Exec = action
		return kb, nil
	}

	action := router.ActionName(value)
	switch action {
	case router.ActionCloseWindow, router.ActionExit, router.ActionToggleDrawing,
		router.ActionClearDrawings, router.ActionUndoStroke, router.ActionRedoStroke,
		router.ActionGatherWindows, router.ActionSwitcher:
		kb.Kind = router.BindAction
		kb.Action = action
		return kb, nil
	default:
		return router.Keybind{}, fmt.Errorf("unrecognized action %q", value)
	}
}
