// Package display formats sizes, banners and range summaries for the console.
package display

import (
	"fmt"
	"strings"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatToken renders one range token for display: "first:last" becomes
// "first .. last". Drive letters ("C:\...") are not mistaken for the split.
func FormatToken(token string) string {
	if first, last, ok := splitRange(token); ok {
		return first + " .. " + last
	}
	return token
}

// FormatTokenLines renders each token as one line prefixed by indent.
func FormatTokenLines(tokens []string, indent string) []string {
	lines := make([]string, len(tokens))
	for i, t := range tokens {
		lines[i] = indent + FormatToken(t)
	}
	return lines
}

// FormatTokens renders tokens one per line, each prefixed by indent.
func FormatTokens(tokens []string, indent string) string {
	var b strings.Builder
	for _, line := range FormatTokenLines(tokens, indent) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// splitRange splits "first:last" at the first ':' whose halves share a
// directory, which holds for every range the collapser emits.
func splitRange(token string) (string, string, bool) {
	for i := 0; i < len(token); i++ {
		if token[i] != ':' {
			continue
		}
		first, last := token[:i], token[i+1:]
		if first == "" || last == "" {
			continue
		}
		if dirOf(first) == dirOf(last) {
			return first, last, true
		}
	}
	return "", "", false
}

func dirOf(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[:i+1]
	}
	return ""
}
