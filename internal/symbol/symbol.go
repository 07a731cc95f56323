package symbol

import (
    "errors"
    "strings"
)

// ErrNoSymbols is returned when the raw input yields zero usable tokens.
var ErrNoSymbols = errors.New("no symbols provided")

// Normalize parses a raw ";"/"," separated symbol list into a canonical
// ordered set: trimmed, uppercased, empties dropped, duplicates removed
// keeping first appearance. The returned order is the response order.
func Normalize(raw string) ([]string, error) {
    parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' })
    seen := make(map[string]struct{}, len(parts))
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        s := strings.ToUpper(strings.TrimSpace(p))
        if s == "" { continue }
        if _, dup := seen[s]; dup { continue }
        seen[s] = struct{}{}
        out = append(out, s)
    }
    if len(out) == 0 {
        return nil, ErrNoSymbols
    }
    return out, nil
}

// Key joins a normalized set into the cache key. The key preserves request
// order, so reordered sets occupy distinct cache entries.
func Key(symbols []string) string { return strings.Join(symbols, ",") }
