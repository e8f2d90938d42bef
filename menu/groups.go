package menu

import (
	"strconv"
	"strings"
)

// groupOrderPrefix extracts the numeric sort prefix of a group key. A prefix
// counts only when a non-empty run of leading decimal digits is immediately
// followed by an underscore, so "0_hello" and "10_z" carry prefixes while
// "12abc" and "hello" do not.
func groupOrderPrefix(key string) (uint64, bool) {
	i := 0
	for i < len(key) && key[i] >= '0' && key[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(key) || key[i] != '_' {
		return 0, false
	}
	n, err := strconv.ParseUint(key[:i], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// compareGroupKeys defines the total display order over group keys:
// "navigation" first; then keys with a numeric "<digits>_" prefix, ascending
// by prefix; then the rest case-insensitively, with lowercase winning an
// otherwise-equal comparison; the empty group last. Returns <0, 0 or >0.
func compareGroupKeys(a, b string) int {
	if a == b {
		return 0
	}
	if a == GroupNavigation {
		return -1
	}
	if b == GroupNavigation {
		return 1
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}

	an, aok := groupOrderPrefix(a)
	bn, bok := groupOrderPrefix(b)
	switch {
	case aok && !bok:
		return -1
	case !aok && bok:
		return 1
	case aok && bok && an != bn:
		if an < bn {
			return -1
		}
		return 1
	}

	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		if la < lb {
			return -1
		}
		return 1
	}
	// Same letters ignoring case: the lowercase form sorts first, which for
	// ASCII means the byte-wise greater key wins.
	if a > b {
		return -1
	}
	return 1
}

// compareTitles is the in-group secondary key: case-insensitive ascending.
// Equal-fold titles compare equal so the stable sort preserves registration
// order.
func compareTitles(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	}
	return 0
}
