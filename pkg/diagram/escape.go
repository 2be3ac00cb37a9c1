package diagram

import (
	"fmt"
	"strconv"
	"strings"
)

// EscapeID maps an element id to a string that is safe as an XML id and CSS
// selector. Letters, digits and '-' pass through (a leading digit is
// escaped), '_' is doubled and every other rune becomes _<hex>_.
// The mapping is injective; UnescapeID reverses it.
func EscapeID(id string) string {
	var b strings.Builder
	for i, r := range id {
		switch {
		case r == '_':
			b.WriteString("__")
		case isIDLetter(r) || r == '-' || (r >= '0' && r <= '9' && i > 0):
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_%x_", r)
		}
	}
	return b.String()
}

func isIDLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// UnescapeID reverses EscapeID.
func UnescapeID(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '_' {
			b.WriteByte('_')
			i++
			continue
		}
		end := strings.IndexByte(s[i+1:], '_')
		if end <= 0 {
			return "", fmt.Errorf("invalid escape at offset %d in %q", i, s)
		}
		code, err := strconv.ParseInt(s[i+1:i+1+end], 16, 32)
		if err != nil {
			return "", fmt.Errorf("invalid escape at offset %d in %q: %w", i, s, err)
		}
		b.WriteRune(rune(code))
		i += end + 1
	}
	return b.String(), nil
}
