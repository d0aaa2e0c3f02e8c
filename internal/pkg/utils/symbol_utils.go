package utils

import "strings"

// SymbolTable decodes trading pair symbols such as "BTC-USDT" or "BTC/USDT" into
// base and quote asset ids.
type SymbolTable struct {
	assets map[string]string
}

// NewSymbolTable builds a table from a symbol -> asset id map. Symbols are
// matched case-insensitively.
func NewSymbolTable(assets map[string]string) *SymbolTable {
	t := &SymbolTable{assets: make(map[string]string, len(assets))}
	for symbol, id := range assets {
		t.assets[strings.ToUpper(strings.TrimSpace(symbol))] = id
	}
	return t
}

// Decode returns empty ids for any symbol that is not a known pair.
func (t *SymbolTable) Decode(symbol string) (string, string) {
	base, quote, ok := splitPair(symbol)
	if !ok {
		return "", ""
	}
	first, okFirst := t.assets[base]
	second, okSecond := t.assets[quote]
	if !okFirst || !okSecond {
		return "", ""
	}
	return first, second
}

func splitPair(symbol string) (string, string, bool) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, sep := range []string{"/", "-", "_", ":"} {
		if i := strings.Index(s, sep); i > 0 {
			base, quote := s[:i], s[i+len(sep):]
			if base == "" || quote == "" || strings.ContainsAny(quote, "/-_:") {
				return "", "", false
			}
			return base, quote, true
		}
	}
	return "", "", false
}
