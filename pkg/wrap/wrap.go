// Package wrap implements the greedy word wrapping used to size node labels.
//
// Each input line (split on explicit newlines) is wrapped independently.
// Words are appended to the current output line while the line, one
// separating space and the word fit into the target width. A word longer
// than the width is emitted on a line of its own and never split.
//
// Lengths are counted in runes. Wrapping is idempotent: wrapping the joined
// output again with the same width yields the same lines.
package wrap

import (
	"strings"
	"unicode/utf8"
)

// Lines wraps text to width and returns the produced lines.
//
// Blank input lines are preserved as empty strings; trailing newlines are
// dropped. A width below 1 disables wrapping, so each input line is only
// normalized to single spaces between words.
func Lines(text string, width int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		out = appendWrapped(out, words, width)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func appendWrapped(out []string, words []string, width int) []string {
	var (
		cur    strings.Builder
		curLen int
	)
	for _, word := range words {
		n := utf8.RuneCountInString(word)
		switch {
		case curLen == 0:
			cur.WriteString(word)
			curLen = n
		case width < 1 || curLen+1+n <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curLen += 1 + n
		default:
			out = append(out, cur.String())
			cur.Reset()
			cur.WriteString(word)
			curLen = n
		}
	}
	return append(out, cur.String())
}

// String wraps text to width and joins the lines with sep.
func String(text string, width int, sep string) string {
	return strings.Join(Lines(text, width), sep)
}

// Longest returns the rune count of the longest line.
func Longest(lines []string) int {
	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	return longest
}
