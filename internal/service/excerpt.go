package service

import "strings"

const excerptMaxLength = 150

// extractExcerpt cuts a window of text around the first case-insensitive
// occurrence of keyword and wraps every occurrence inside the window with
// <mark> tags. Offsets are rune-based so multibyte content windows cleanly.
//
// Window: 50 runes before the match to 100 runes after it. When the window
// does not start at the beginning of the text, the start snaps back to just
// past the nearest space within a 30-rune lookback so a word is not cut
// mid-token. "..." marks a trimmed start or end.
func extractExcerpt(text, keyword string, maxLength int) string {
	runes := []rune(text)
	kw := []rune(keyword)
	lower := lowerRunes(runes)
	kwLower := lowerRunes(kw)

	pos := indexRunes(lower, kwLower)

	var window []rune
	prefix, suffix := false, false
	if pos < 0 {
		window = runes
		if len(window) > maxLength {
			window = window[:maxLength]
		}
	} else {
		start := pos - 50
		if start < 0 {
			start = 0
		}
		end := pos + len(kw) + 100
		if end > len(runes) {
			end = len(runes)
		}
		if start > 0 {
			spacePos := lastSpaceBefore(lower, start+20)
			if spacePos > start-30 {
				start = spacePos + 1
			}
		}
		window = runes[start:end]
		prefix = start > 0
		suffix = end < len(runes)
	}

	excerpt := highlightKeyword(window, keyword)
	if prefix {
		excerpt = "..." + excerpt
	}
	if suffix {
		excerpt = excerpt + "..."
	}
	return excerpt
}

// highlightKeyword wraps each non-overlapping case-insensitive occurrence of
// keyword with <mark> tags. The match is a literal rune comparison; regex
// metacharacters in the keyword have no special meaning.
func highlightKeyword(window []rune, keyword string) string {
	kw := []rune(keyword)
	if len(kw) == 0 {
		return string(window)
	}
	lower := lowerRunes(window)
	kwLower := lowerRunes(kw)

	var b strings.Builder
	for i := 0; i < len(window); {
		if runesHavePrefix(lower[i:], kwLower) {
			b.WriteString("<mark>")
			b.WriteString(keyword)
			b.WriteString("</mark>")
			i += len(kw)
			continue
		}
		b.WriteRune(window[i])
		i++
	}
	return b.String()
}

func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		} else if r > 127 {
			r = []rune(strings.ToLower(string(r)))[0]
		}
		out[i] = r
	}
	return out
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if runesHavePrefix(haystack[i:], needle) {
			return i
		}
	}
	return -1
}

func runesHavePrefix(rs, prefix []rune) bool {
	if len(prefix) > len(rs) {
		return false
	}
	for i := range prefix {
		if rs[i] != prefix[i] {
			return false
		}
	}
	return true
}

// lastSpaceBefore returns the index of the last space before limit, or -1.
func lastSpaceBefore(rs []rune, limit int) int {
	if limit > len(rs) {
		limit = len(rs)
	}
	for i := limit - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}
