package fuzzy

import "testing"

func TestScoreBasics(t *testing.T) {
	if _, ok := Score("xyz", "open file"); ok {
		t.Error("non-subsequence should not match")
	}

	m, ok := Score("", "anything")
	if !ok || m.Score <= 0 {
		t.Errorf("empty query = (%v, %v), want neutral match", m, ok)
	}

	m, ok = Score("of", "Open File")
	if !ok {
		t.Fatal("subsequence should match")
	}
	if len(m.Indices) != 2 || m.Indices[0] != 0 || m.Indices[1] != 5 {
		t.Errorf("indices = %v, want [0 5]", m.Indices)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	lower, ok1 := Score("copy", "Copy Selection")
	upper, ok2 := Score("COPY", "Copy Selection")
	if !ok1 || !ok2 {
		t.Fatal("both casings should match")
	}
	if lower.Score != upper.Score {
		t.Errorf("score differs by query case: %v vs %v", lower.Score, upper.Score)
	}
}

func TestScorePrefersWordStarts(t *testing.T) {
	// "nf" hits the word starts of "New File" but mid-word runes of "info"
	wordStart, ok1 := Score("nf", "New File")
	midWord, ok2 := Score("nf", "info")
	if !ok1 || !ok2 {
		t.Fatal("both targets should match")
	}
	if wordStart.Score <= midWord.Score {
		t.Errorf("word-start match %v should beat mid-word %v", wordStart.Score, midWord.Score)
	}
}

func TestScorePrefersAdjacency(t *testing.T) {
	tight, ok1 := Score("cut", "edit.cut")
	spread, ok2 := Score("cut", "calculate output")
	if !ok1 || !ok2 {
		t.Fatal("both targets should match")
	}
	if tight.Score <= spread.Score {
		t.Errorf("contiguous match %v should beat spread match %v", tight.Score, spread.Score)
	}
}

func TestRank(t *testing.T) {
	targets := []string{
		"Toggle Sidebar",
		"New File",
		"nothing here",
		"Find in Files",
	}

	results := Rank("nf", targets)
	if len(results) == 0 {
		t.Fatal("expected matches")
	}
	if results[0].Index != 1 {
		t.Errorf("best match index = %d, want 1 (New File)", results[0].Index)
	}
	for _, r := range results {
		if r.Index == 0 {
			t.Error("Toggle Sidebar contains no n and should be filtered out")
		}
	}

	// empty query keeps everything in input order
	all := Rank("", targets)
	if len(all) != len(targets) {
		t.Fatalf("empty query kept %d of %d", len(all), len(targets))
	}
	for i, r := range all {
		if r.Index != i {
			t.Errorf("empty query order: position %d has index %d", i, r.Index)
		}
	}
}
