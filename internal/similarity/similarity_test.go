package similarity

import (
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"hello", "hello", 0},

		// Empty strings
		{"", "test", 4},
		{"test", "", 4},
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character changes
		{"cat", "bat", 1},
		{"cat", "car", 1},
		{"cat", "cats", 1},
		{"cats", "cat", 1},

		// Multiple changes
		{"kitten", "sitting", 3},
		{"Saturday", "Sunday", 3},

		// Case sensitive: these are real edits
		{"Hello", "hello", 1},
		{"DEV", "dev", 3},

		// Transpositions count as 2 plain edits
		{"dev", "dve", 2},
		{"config", "conifg", 2},
		{"projects", "prjects", 1}, // missing 'o'

		// Multi-byte characters count as single edit units
		{"über", "uber", 1},
		{"日本語", "日本", 1},
		{"héllo", "hello", 1},
		{"🙂", "🙃", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			result := Distance(tt.s1, tt.s2)
			if result != tt.expected {
				t.Errorf("Distance(%q, %q) = %d, expected %d", tt.s1, tt.s2, result, tt.expected)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct {
		s1, s2 string
	}{
		{"kitten", "sitting"},
		{"", "test"},
		{"abc", "xyz"},
		{"日本語", "nihongo"},
		{"short", "a much longer string"},
	}

	for _, tt := range pairs {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			d1 := Distance(tt.s1, tt.s2)
			d2 := Distance(tt.s2, tt.s1)
			if d1 != d2 {
				t.Errorf("Distance(%q, %q) = %d but Distance(%q, %q) = %d", tt.s1, tt.s2, d1, tt.s2, tt.s1, d2)
			}
		})
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	words := []string{"", "a", "ab", "kitten", "sitting", "hello", "world", "héllo"}

	for _, a := range words {
		for _, b := range words {
			for _, c := range words {
				ac := Distance(a, c)
				ab := Distance(a, b)
				bc := Distance(b, c)
				if ac > ab+bc {
					t.Errorf("triangle inequality violated: Distance(%q, %q) = %d > %d + %d", a, c, ac, ab, bc)
				}
			}
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		s1, s2      string
		minExpected float64
		maxExpected float64
	}{
		// Exact matches
		{"hello", "hello", 1.0, 1.0},
		{"same", "same", 1.0, 1.0},
		{"", "", 1.0, 1.0},

		// Slight differences
		{"test", "tost", 0.70001, 0.8}, // 1 edit / 4 chars
		{"hello", "hallo", 0.8, 0.8},   // 1 edit / 5 chars
		{"projects", "prjects", 0.85, 0.9},

		// More different
		{"hello", "world", 0.0, 0.49999},
		{"abc", "xyz", 0.0, 0.1},

		// Completely disjoint, one empty
		{"", "abcd", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			result := Similarity(tt.s1, tt.s2)
			if result < tt.minExpected || result > tt.maxExpected {
				t.Errorf("Similarity(%q, %q) = %f, expected between %f and %f", tt.s1, tt.s2, result, tt.minExpected, tt.maxExpected)
			}
		})
	}
}

func TestSimilarityRange(t *testing.T) {
	// Similarity is always in [0, 1]
	testPairs := []struct {
		s1, s2 string
	}{
		{"", ""},
		{"a", "a"},
		{"abc", "xyz"},
		{"hello", "hello"},
		{"short", "verylongstring"},
		{"verylongstring", "short"},
		{"日本語テキスト", "abc"},
	}

	for _, tt := range testPairs {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			sim := Similarity(tt.s1, tt.s2)
			if sim < 0.0 || sim > 1.0 {
				t.Errorf("Similarity(%q, %q) = %f, expected in range [0, 1]", tt.s1, tt.s2, sim)
			}
		})
	}
}

func TestSimilarityMultiByteNormalization(t *testing.T) {
	// One substitution in a four-character word; the denominator must
	// count characters, not bytes, or the score would be skewed
	sim := Similarity("über", "ober")
	if sim != 0.75 {
		t.Errorf("Similarity(\"über\", \"ober\") = %f, expected 0.75", sim)
	}
}

func TestIsSimilar(t *testing.T) {
	tests := []struct {
		s1, s2    string
		threshold float64
		expected  bool
	}{
		{"hello", "hallo", 0.8, true},
		{"hello", "world", 0.8, false},
		{"same", "same", 1.0, true},

		// Degenerate thresholds are well-defined, not errors
		{"abc", "xyz", 0.0, true},
		{"abc", "xyz", -1.0, true},
		{"same", "same", 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			result := IsSimilar(tt.s1, tt.s2, tt.threshold)
			if result != tt.expected {
				t.Errorf("IsSimilar(%q, %q, %v) = %v, expected %v", tt.s1, tt.s2, tt.threshold, result, tt.expected)
			}
		})
	}
}

func TestFindMatches(t *testing.T) {
	matches := FindMatches("cat", []string{"cat", "cot", "dog"}, 0.5)

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(matches), matches)
	}
	if matches[0].Word != "cat" || matches[0].Similarity != 1.0 || matches[0].Distance != 0 {
		t.Errorf("Expected first match cat/1.0/0, got %+v", matches[0])
	}
	if matches[1].Word != "cot" {
		t.Errorf("Expected second match cot, got %+v", matches[1])
	}
	if matches[1].Similarity < 0.66 || matches[1].Similarity > 0.67 {
		t.Errorf("Expected cot similarity ~0.667, got %f", matches[1].Similarity)
	}
}

func TestFindMatches_Sorting(t *testing.T) {
	candidates := []string{"a", "ab", "abc"}

	matches := FindMatches("abc", candidates, 0.0)

	if len(matches) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(matches))
	}

	// Exact match first
	if matches[0].Word != "abc" {
		t.Errorf("Expected exact match 'abc' first, got %v", matches)
	}

	// Sorted by similarity descending
	for i := 1; i < len(matches); i++ {
		if matches[i].Similarity > matches[i-1].Similarity {
			t.Errorf("Matches not sorted by similarity: %v", matches)
			break
		}
	}
}

func TestFindMatches_StableTies(t *testing.T) {
	// All candidates are one edit away from the query and equally long,
	// so every similarity is identical; input order must be preserved
	candidates := []string{"cot", "cut", "bat", "car"}

	matches := FindMatches("cat", candidates, 0.0)

	if len(matches) != 4 {
		t.Fatalf("Expected 4 matches, got %d", len(matches))
	}

	for i, want := range candidates {
		if matches[i].Word != want {
			t.Errorf("Tie order not stable: position %d = %q, want %q (all: %v)", i, matches[i].Word, want, matches)
		}
	}
}

func TestFindMatches_ThresholdBoundary(t *testing.T) {
	candidates := []string{"one", "two", "three"}

	// Threshold 0.0 accepts everything
	matches := FindMatches("xyz", candidates, 0.0)
	if len(matches) != len(candidates) {
		t.Errorf("Threshold 0.0 should return all candidates, got %d of %d", len(matches), len(candidates))
	}

	// Threshold above 1.0 is unreachable
	matches = FindMatches("one", candidates, 1.1)
	if len(matches) != 0 {
		t.Errorf("Threshold 1.1 should return no matches, got %v", matches)
	}

	// Exact match passes threshold 1.0
	matches = FindMatches("two", candidates, 1.0)
	if len(matches) != 1 || matches[0].Word != "two" {
		t.Errorf("Exact match should pass threshold 1.0, got %v", matches)
	}
}

func TestFindMatches_EmptyInputs(t *testing.T) {
	// Empty candidates
	matches := FindMatches("query", []string{}, 0.5)
	if len(matches) != 0 {
		t.Errorf("Expected no matches for empty candidates, got %v", matches)
	}

	// No candidate meets the threshold
	matches = FindMatches("query", []string{"completely", "unrelated"}, 0.99)
	if len(matches) != 0 {
		t.Errorf("Expected no matches above threshold, got %v", matches)
	}

	// Empty query still matches the empty candidate exactly
	matches = FindMatches("", []string{"", "abc"}, 0.9)
	if len(matches) != 1 || matches[0].Word != "" || matches[0].Similarity != 1.0 {
		t.Errorf("Expected only the empty candidate, got %v", matches)
	}
}

func TestFindMatches_Duplicates(t *testing.T) {
	// Duplicates are scored independently; the core does not dedup
	matches := FindMatches("dev", []string{"dev", "dev", "den"}, 0.5)
	if len(matches) != 3 {
		t.Errorf("Expected 3 matches including duplicates, got %v", matches)
	}
}

func TestFindBestMatch(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates []string
		expectWord string
	}{
		{
			name:       "exact match wins",
			query:      "dev",
			candidates: []string{"docs", "dev", "den"},
			expectWord: "dev",
		},
		{
			name:       "closest match wins",
			query:      "downlods",
			candidates: []string{"documents", "downloads", "desktop"},
			expectWord: "downloads",
		},
		{
			name:       "single candidate",
			query:      "anything",
			candidates: []string{"only"},
			expectWord: "only",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := FindBestMatch(tt.query, tt.candidates)
			if !ok {
				t.Fatalf("Expected a best match for %q, got none", tt.query)
			}
			if best.Word != tt.expectWord {
				t.Errorf("FindBestMatch(%q) = %q, expected %q", tt.query, best.Word, tt.expectWord)
			}
		})
	}
}

func TestFindBestMatch_Empty(t *testing.T) {
	_, ok := FindBestMatch("query", nil)
	if ok {
		t.Error("Expected no best match for empty candidates")
	}

	_, ok = FindBestMatch("query", []string{})
	if ok {
		t.Error("Expected no best match for empty slice")
	}
}

func TestFindBestMatch_TieBreak(t *testing.T) {
	// Both candidates are one edit from the query; first in input order wins
	best, ok := FindBestMatch("cat", []string{"cot", "cut"})
	if !ok {
		t.Fatal("Expected a best match")
	}
	if best.Word != "cot" {
		t.Errorf("Expected first tied candidate 'cot', got %q", best.Word)
	}

	// Same candidates reversed
	best, _ = FindBestMatch("cat", []string{"cut", "cot"})
	if best.Word != "cut" {
		t.Errorf("Expected first tied candidate 'cut', got %q", best.Word)
	}
}
