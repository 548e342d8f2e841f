package naming

import (
	"slices"
	"strings"
)

// SortNatural returns a copy of files in natural, case-insensitive order.
// The sort is stable: names with equal keys (IMG_02 and img_2) keep their
// input order.
func SortNatural(files []string) []string {
	out := slices.Clone(files)
	slices.SortStableFunc(out, CompareNatural)
	return out
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return CompareNatural(a, b) < 0
}

// CompareNatural compares a and b component by component. Each string is
// split into alternating digit and non-digit runs; digit runs compare by
// integer value (any length, no overflow) and text runs compare
// case-insensitively. A digit run sorts before a text run at the same
// position, and a key that is a strict prefix of the other sorts first.
func CompareNatural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		da, db := isDigit(a[i]), isDigit(b[j])
		switch {
		case da && db:
			ra, ni := scanRun(a, i, true)
			rb, nj := scanRun(b, j, true)
			if c := compareDigits(ra, rb); c != 0 {
				return c
			}
			i, j = ni, nj
		case da:
			return -1
		case db:
			return 1
		default:
			ta, ni := scanRun(a, i, false)
			tb, nj := scanRun(b, j, false)
			if c := strings.Compare(strings.ToLower(ta), strings.ToLower(tb)); c != 0 {
				return c
			}
			i, j = ni, nj
		}
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// scanRun returns the run starting at s[i] that is all digits (digits=true)
// or contains no digits, and the index just past it.
func scanRun(s string, i int, digits bool) (string, int) {
	start := i
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[start:i], i
}

// compareDigits compares two decimal digit strings by value.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
