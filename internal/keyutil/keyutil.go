// Package keyutil provides shared helpers for classifying map keys.
package keyutil

import (
	"strconv"
	"strings"
)

// IsCanonicalIndex reports whether key is a canonical base-10 representation
// of a non-negative integer, i.e. converting it to a number and back
// reproduces it exactly. "0" and "42" qualify; "00", "1e2", "-1", and "+7"
// do not. Such keys make a map look array-like to a serializer.
func IsCanonicalIndex(key string) bool {
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return false
	}
	return strconv.FormatUint(n, 10) == key
}

// QuoteJoin returns the keys quoted and joined with ", " for use in
// human-readable messages.
func QuoteJoin(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = strconv.Quote(k)
	}
	return strings.Join(quoted, ", ")
}
