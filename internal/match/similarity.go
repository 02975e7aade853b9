package match

import (
	"strings"
	"unicode"
)

// titleSimilarity scores how close two titles are, in [0, 1].
//
// The score blends normalized Levenshtein distance with token overlap, so
// both character-level typos ("Shpae of You") and reordered or partial
// titles ("Shape of You - Ed Sheeran") score reasonably.
func titleSimilarity(a, b string) float64 {
	a = foldTitle(a)
	b = foldTitle(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	lev := 1 - float64(levenshtein(a, b))/float64(max(len(a), len(b)))
	tok := tokenOverlap(a, b)
	return 0.5*lev + 0.5*tok
}

// artistMatch reports whether any hint matches the candidate artist, with
// a containment check in both directions since catalogs join multiple
// artists into one field ("Ed Sheeran, Stormzy").
func artistMatch(candidateArtist string, hints []string) bool {
	artist := foldTitle(candidateArtist)
	if artist == "" {
		return false
	}
	for _, hint := range hints {
		h := foldTitle(hint)
		if h == "" {
			continue
		}
		if strings.Contains(artist, h) || strings.Contains(h, artist) {
			return true
		}
	}
	return false
}

// durationCloseness maps the gap between two known durations into [0, 1]:
// identical durations score 1, a gap of tolerance seconds or more scores 0.
func durationCloseness(a, b, toleranceSeconds int) float64 {
	gap := a - b
	if gap < 0 {
		gap = -gap
	}
	if gap >= toleranceSeconds {
		return 0
	}
	return 1 - float64(gap)/float64(toleranceSeconds)
}

// foldTitle lower-cases and strips everything except letters, digits and
// single separating spaces.
func foldTitle(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenOverlap(a, b string) float64 {
	ta := strings.Fields(a)
	tb := strings.Fields(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		set[t] = struct{}{}
	}
	shared := 0
	for _, t := range tb {
		if _, ok := set[t]; ok {
			shared++
			delete(set, t)
		}
	}

	union := len(ta) + len(tb) - shared
	return float64(shared) / float64(union)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
