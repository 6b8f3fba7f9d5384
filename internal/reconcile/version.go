package reconcile

import (
	"strconv"
	"strings"
)

// NormalizeVersion splits a dotted version string into exactly four numeric
// segments. Non-numeric or missing segments become 0, extra segments are
// dropped, so "1.2" and "1.2.0.0" normalize identically. Total over all
// inputs; never errors.
func NormalizeVersion(v string) [4]int {
	var out [4]int
	v = strings.TrimSpace(v)
	if v == "" {
		return out
	}
	parts := strings.Split(v, ".")
	for i := 0; i < 4 && i < len(parts); i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 {
			continue
		}
		out[i] = n
	}
	return out
}

// CompareVersions lexicographically compares two normalized versions,
// returning -1, 0 or 1.
func CompareVersions(a, b string) int {
	na := NormalizeVersion(a)
	nb := NormalizeVersion(b)
	for i := 0; i < 4; i++ {
		switch {
		case na[i] < nb[i]:
			return -1
		case na[i] > nb[i]:
			return 1
		}
	}
	return 0
}
