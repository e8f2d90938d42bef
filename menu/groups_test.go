package menu

import (
	"sort"
	"testing"
)

func TestGroupOrderPrefix(t *testing.T) {
	tests := []struct {
		key    string
		want   uint64
		wantOK bool
	}{
		{"0_hello", 0, true},
		{"1_modification", 1, true},
		{"10_z", 10, true},
		{"007_x", 7, true},
		{"12abc", 0, false}, // digits must be followed by an underscore
		{"_x", 0, false},
		{"hello", 0, false},
		{"", 0, false},
		{"5", 0, false}, // bare number, no underscore
	}

	for _, tt := range tests {
		got, ok := groupOrderPrefix(tt.key)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("groupOrderPrefix(%q) = (%d, %v), want (%d, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCompareGroupKeysTotalOrder(t *testing.T) {
	// The canonical order for the canonical key set.
	want := []string{"navigation", "0_hello", "hello", "Hello", ""}

	// Sorting must land on the same order from any starting permutation.
	permutations := [][]string{
		{"0_hello", "hello", "Hello", "", "navigation"},
		{"", "Hello", "hello", "0_hello", "navigation"},
		{"hello", "navigation", "", "0_hello", "Hello"},
		{"Hello", "", "navigation", "hello", "0_hello"},
	}

	for _, perm := range permutations {
		keys := append([]string(nil), perm...)
		sort.Slice(keys, func(i, j int) bool {
			return compareGroupKeys(keys[i], keys[j]) < 0
		})
		for i := range want {
			if keys[i] != want[i] {
				t.Fatalf("starting from %v: got order %v, want %v", perm, keys, want)
			}
		}
	}
}

func TestCompareGroupKeys(t *testing.T) {
	tests := []struct {
		a, b string
		want int // sign only
	}{
		{"navigation", "0_hello", -1},
		{"navigation", "", -1},
		{"0_hello", "navigation", 1},
		{"", "zzz", 1},
		{"zzz", "", -1},
		{"2_a", "10_z", -1},  // numeric, not lexicographic
		{"5_x", "aardvark", -1}, // numeric prefixes sort before plain keys
		{"aardvark", "5_x", 1},
		{"alpha", "Beta", -1}, // case-insensitive primary comparison
		{"Beta", "alpha", 1},
		{"hello", "Hello", -1}, // lowercase wins an equal-fold tie
		{"Hello", "hello", 1},
		{"12abc", "aaa", 1}, // no underscore, plain key comparison
		{"same", "same", 0},
		{"1_a", "1_b", -1}, // equal prefixes fall back to the full key
	}

	for _, tt := range tests {
		got := compareGroupKeys(tt.a, tt.b)
		if !sameSign(got, tt.want) {
			t.Errorf("compareGroupKeys(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompareTitles(t *testing.T) {
	if compareTitles("aaa", "BBB") >= 0 {
		t.Error("aaa should sort before BBB")
	}
	if compareTitles("ZZZ", "aaa") <= 0 {
		t.Error("ZZZ should sort after aaa")
	}
	if compareTitles("Same", "sAME") != 0 {
		t.Error("equal-fold titles should compare equal so stability decides")
	}
}

func sameSign(a, b int) bool {
	switch {
	case a < 0:
		return b < 0
	case a > 0:
		return b > 0
	}
	return b == 0
}
