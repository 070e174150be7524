package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an immutable name-to-code lookup built once at startup and
// injected into the report engine. Lookups are case-insensitive and
// whitespace-trimmed; a missed lookup is a normal outcome, not an error.
type Table struct {
	keys       map[string]KeyCode
	keyAlias   map[string]string
	mods       map[string]Modifier
	modAlias   map[string]string
	shiftedKey map[rune]string
}

// New returns the full boot-keyboard table with all documented aliases.
func New() *Table {
	return NewWith(keyNames, keyAliases, modifierNames, modifierAliases, shiftedBase)
}

// NewWith builds a table from custom maps. Intended for tests that want a
// reduced table; production code uses New.
func NewWith(keys map[string]KeyCode, keyAlias map[string]string, mods map[string]Modifier, modAlias map[string]string, shifted map[rune]string) *Table {
	return &Table{
		keys:       keys,
		keyAlias:   keyAlias,
		mods:       mods,
		modAlias:   modAlias,
		shiftedKey: shifted,
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ResolveKey looks up a key name or symbol alias.
func (t *Table) ResolveKey(name string) (KeyCode, bool) {
	n := normalize(name)
	if code, ok := t.keys[n]; ok {
		return code, true
	}
	if canon, ok := t.keyAlias[n]; ok {
		code, ok := t.keys[canon]
		return code, ok
	}
	return 0, false
}

// ResolveModifier looks up a modifier name or alias and returns its bit.
func (t *Table) ResolveModifier(name string) (Modifier, bool) {
	n := normalize(name)
	if bit, ok := t.mods[n]; ok {
		return bit, true
	}
	if canon, ok := t.modAlias[n]; ok {
		bit, ok := t.mods[canon]
		return bit, ok
	}
	return 0, false
}

// IsModifier reports whether name resolves as a modifier.
func (t *Table) IsModifier(name string) bool {
	_, ok := t.ResolveModifier(name)
	return ok
}

// ShiftedBase maps an uppercase letter or shifted symbol to the name of the
// unshifted key that produces it with Shift held.
func (t *Table) ShiftedBase(r rune) (string, bool) {
	name, ok := t.shiftedKey[r]
	return name, ok
}

// KeyName returns the canonical name for a usage code, or its hex form when
// the code is not in the table.
func (t *Table) KeyName(code KeyCode) string {
	for name, c := range t.keys {
		if c == code {
			return name
		}
	}
	return fmt.Sprintf("0x%02x", code)
}

// ModifierNames expands a modifier mask into canonical names, lowest bit
// first.
func (t *Table) ModifierNames(mask Modifier) []string {
	names := make([]string, 0, 2)
	for bit := Modifier(1); bit != 0; bit <<= 1 {
		if mask&bit == 0 {
			continue
		}
		for name, b := range t.mods {
			if b == bit {
				names = append(names, name)
				break
			}
		}
	}
	return names
}

// Catalog partitions the canonical key names into display buckets. The
// result carries names only, never aliases.
type Catalog struct {
	Letters    []string `json:"letters"`
	Digits     []string `json:"digits"`
	Function   []string `json:"function"`
	Navigation []string `json:"navigation"`
	Modifiers  []string `json:"modifiers"`
	Other      []string `json:"other"`
}

var navigationKeys = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
	"insert": true, "delete": true,
}

// Catalog returns the table partitioned into letters, digits, function keys,
// navigation, modifiers and a remainder bucket. Read-only introspection.
func (t *Table) Catalog() Catalog {
	var c Catalog
	for name := range t.keys {
		switch {
		case len(name) == 1 && name[0] >= 'a' && name[0] <= 'z':
			c.Letters = append(c.Letters, name)
		case len(name) == 1 && name[0] >= '0' && name[0] <= '9':
			c.Digits = append(c.Digits, name)
		case isFunctionKey(name):
			c.Function = append(c.Function, name)
		case navigationKeys[name]:
			c.Navigation = append(c.Navigation, name)
		default:
			c.Other = append(c.Other, name)
		}
	}
	for name := range t.mods {
		c.Modifiers = append(c.Modifiers, name)
	}

	sort.Strings(c.Letters)
	sort.Strings(c.Digits)
	sort.Strings(c.Navigation)
	sort.Strings(c.Modifiers)
	sort.Strings(c.Other)
	// f2 before f10
	sort.Slice(c.Function, func(i, j int) bool {
		if len(c.Function[i]) != len(c.Function[j]) {
			return len(c.Function[i]) < len(c.Function[j])
		}
		return c.Function[i] < c.Function[j]
	})
	return c
}

func isFunctionKey(name string) bool {
	if len(name) < 2 || name[0] != 'f' {
		return false
	}
	for _, r := range name[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
