// Package similarity implements approximate string matching based on
// Levenshtein edit distance.
//
// All functions are pure and operate on Unicode code points, so a
// multi-byte character counts as a single edit unit. The package never
// validates its inputs; callers are expected to pass well-formed UTF-8
// strings.
package similarity

import "sort"

// Match pairs a candidate string with its edit distance and similarity
// score against a query. Values are never mutated after construction.
type Match struct {
	Word       string
	Distance   int
	Similarity float64
}

// Distance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change a into b.
// It is symmetric and returns zero exactly when the two strings are
// equal code-point-wise.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// Two rows are enough for the dynamic programming grid:
	// prev holds row i-1, curr is filled in as row i
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	// First row: transforming the empty prefix into b[:j]
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		// Swap rows
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity returns a score between 0.0 and 1.0.
// 1.0 means the strings are identical, 0.0 means every position differs.
// The distance is normalized by the longer input's length in code
// points, the same unit the distance is measured in.
func Similarity(a, b string) float64 {
	return normalize(Distance(a, b), a, b)
}

// normalize converts an edit distance into a similarity score. Two empty
// strings are defined as identical, since length-based normalization
// would divide by zero.
func normalize(distance int, a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// IsSimilar reports whether a and b score at or above threshold.
// The threshold is not clamped: anything at or below 0.0 always matches
// and anything above 1.0 never does.
func IsSimilar(a, b string, threshold float64) bool {
	return Similarity(a, b) >= threshold
}

// FindMatches scores every candidate against the query and returns those
// with similarity >= threshold, sorted by similarity (highest first).
// Candidates with equal similarity keep their relative input order.
// An empty candidate list yields an empty result, not an error.
func FindMatches(query string, candidates []string, threshold float64) []Match {
	var matches []Match

	for _, candidate := range candidates {
		m := score(query, candidate)
		if m.Similarity >= threshold {
			matches = append(matches, m)
		}
	}

	// Stable so that ties preserve input order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	return matches
}

// FindBestMatch returns the candidate with the highest similarity to the
// query. When several candidates share the maximum, the first one in
// input order wins. The boolean is false when candidates is empty.
func FindBestMatch(query string, candidates []string) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	best := score(query, candidates[0])
	for _, candidate := range candidates[1:] {
		if m := score(query, candidate); m.Similarity > best.Similarity {
			best = m
		}
	}

	return best, true
}

// score builds a Match computing the distance once.
func score(query, candidate string) Match {
	distance := Distance(query, candidate)
	return Match{
		Word:       candidate,
		Distance:   distance,
		Similarity: normalize(distance, query, candidate),
	}
}
