package input

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-sketch/errors"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"equals":    '=',
	"pipe":      '|',
	"plus":      '+',
	"minus":     '-',
}

// keyConfig is the keymap file layout
//
//	[keys]
//	L = "tool_line"
//	[special]
//	"Ctrl-Z" = "undo"
type keyConfig struct {
	Keys    map[string]string `toml:"keys"`
	Special map[string]string `toml:"special"`
}

// LoadKeyConfig parses TOML keymap data into a sparse override KeyTable
// Only keys present in the data are populated
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw keyConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "keymap parse")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "keymap: unknown section or key %q", undecoded[0].String())
	}

	kt := &KeyTable{}
	if raw.Keys != nil {
		kt.Runes = make(map[rune]KeyEntry, len(raw.Keys))
		for keyStr, action := range raw.Keys {
			r, ok := resolveRune(keyStr)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig,
					"[keys] invalid rune key %q (expected single character or alias)", keyStr)
			}
			entry, ok := ActionEntry(normalizeAction(action))
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "[keys] key %q: unknown action %q", keyStr, action)
			}
			kt.Runes[r] = entry
		}
	}
	if raw.Special != nil {
		kt.SpecialKeys = make(map[tcell.Key]KeyEntry, len(raw.Special))
		for keyStr, action := range raw.Special {
			k, ok := keyByName(keyStr)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "[special] unknown key name %q", keyStr)
			}
			entry, ok := ActionEntry(normalizeAction(action))
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "[special] key %q: unknown action %q", keyStr, action)
			}
			kt.SpecialKeys[k] = entry
		}
	}
	return kt, nil
}

// keyByName resolves tcell key names such as "Ctrl-Z", "Esc" or "Delete"
func keyByName(name string) (tcell.Key, bool) {
	for k, n := range tcell.KeyNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

func normalizeAction(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeKeyTable returns base overridden by override
// Entries bound to "none" delete the key
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	for k, v := range override.Runes {
		if v.Intent == IntentNone {
			delete(result.Runes, k)
		} else {
			result.Runes[k] = v
		}
	}
	for k, v := range override.SpecialKeys {
		if v.Intent == IntentNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}
	return result
}
