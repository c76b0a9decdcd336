// SPDX-License-Identifier: Unlicense OR MIT

// Package modkey carries the keyboard modifier bitmask and keysym name
// vocabulary shared by the config keybind grammar and the input router.
//
// It is adapted from gio's io/key package: the same Modifiers bitmask
// and Name string-typed-constant idiom, trimmed of the IME/focus/edit
// machinery a compositor doesn't need and extended with the keysym-name
// lookup a config file's chord grammar requires.
package modkey

import "strings"

// Modifiers is a bitmask of active modifier keys.
type Modifiers uint32

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// Contain reports whether m contains all modifiers in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "+")
}

// Name identifies a keyboard key by its XKB keysym name. For printable
// keys it is the upper-case letter or digit; for the rest it's the XKB
// name such as "Escape" or "Tab".
type Name string

// Names for the keys the compositor itself ever needs to recognize by
// identity: the default keybind targets (spec.md §6) and the switcher's
// fixed Tab/Shift+Tab/Escape bindings (§4.G). Arbitrary other keysym
// names pass through ParseName unrecognized but still usable, since the
// config grammar binds keysyms by name, not by a closed enumeration.
const (
	NameReturn Name = "Return"
	NameEscape Name = "Escape"
	NameTab    Name = "Tab"
	NameSpace  Name = "Space"
)

// ParseName normalizes a keysym name from config-file spelling ("return",
// "Return", "RETURN") to the canonical form compared against event
// names. Single printable characters are upper-cased, matching the XKB
// convention that letter keysyms are named by their upper-case form.
func ParseName(s string) Name {
	if len(s) == 1 {
		r := []rune(s)[0]
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		return Name(r)
	}
	switch strings.ToLower(s) {
	case "return", "enter":
		return NameReturn
	case "escape", "esc":
		return NameEscape
	case "tab":
		return NameTab
	case "space":
		return NameSpace
	default:
		// Not one of the names the compositor special-cases; still a
		// valid keysym name as far as the config grammar and the
		// keyboard event matcher are concerned (e.g. "F1", "Print").
		return Name(s)
	}
}

// ParseModifierToken maps one chord token (case-insensitive) to the
// modifier bit it names, or false if the token isn't a modifier name —
// in which case it's the chord's terminal keysym token.
func ParseModifierToken(tok string) (Modifiers, bool) {
	switch strings.ToLower(tok) {
	case "ctrl", "control":
		return ModCtrl, true
	case "shift":
		return ModShift, true
	case "alt":
		return ModAlt, true
	case "super", "logo", "mod4", "win":
		return ModSuper, true
	default:
		return 0, false
	}
}
