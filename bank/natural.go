package bank

import (
	"strings"
	"unicode"
)

// NaturalLess orders names so that digit runs compare by value: kick2 < kick10
// Text runs compare case-insensitively; ties fall back to byte order
func NaturalLess(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	i, j := 0, 0

	for i < len(ra) && j < len(rb) {
		ca, cb := ra[i], rb[j]

		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			si, sj := i, j
			for i < len(ra) && unicode.IsDigit(ra[i]) {
				i++
			}
			for j < len(rb) && unicode.IsDigit(rb[j]) {
				j++
			}
			if c := compareDigits(ra[si:i], rb[sj:j]); c != 0 {
				return c < 0
			}
			continue
		}

		la, lb := unicode.ToLower(ca), unicode.ToLower(cb)
		if la != lb {
			return la < lb
		}
		i++
		j++
	}

	if len(ra)-i != len(rb)-j {
		return len(ra)-i < len(rb)-j
	}
	return strings.Compare(a, b) < 0
}

// compareDigits compares two digit runs by numeric value without overflow
func compareDigits(a, b []rune) int {
	a = trimZeros(a)
	b = trimZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for k := range a {
		if a[k] != b[k] {
			if a[k] < b[k] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func trimZeros(r []rune) []rune {
	for len(r) > 1 && r[0] == '0' {
		r = r[1:]
	}
	return r
}
