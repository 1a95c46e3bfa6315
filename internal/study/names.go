package study

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns name in Unicode NFC with surrounding whitespace
// trimmed. Names are stored normalized so that report queries comparing
// or de-duplicating names treat composed and decomposed forms alike.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
