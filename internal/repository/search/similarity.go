package search

import "strings"

const winklerPrefixScale = 0.1

// similarity returns the Jaro-Winkler similarity of a and b in [0, 1],
// case-insensitive. The Winkler prefix bonus keeps name elongations close:
// "john" vs "jonathan" scores 0.8, well above typical fuzzy floors, where a
// set-based measure would bury it.
func similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	j := jaro(ra, rb)
	if j == 0 {
		return 0
	}

	// Common prefix bonus, capped at 4 runes.
	prefix := 0
	for prefix < 4 && prefix < len(ra) && prefix < len(rb) && ra[prefix] == rb[prefix] {
		prefix++
	}
	return j + float64(prefix)*winklerPrefixScale*(1-j)
}

func jaro(ra, rb []rune) float64 {
	window := max(len(ra), len(rb))/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, len(ra))
	matchedB := make([]bool, len(rb))
	matches := 0
	for i, c := range ra {
		lo := max(0, i-window)
		hi := min(len(rb)-1, i+window)
		for k := lo; k <= hi; k++ {
			if !matchedB[k] && rb[k] == c {
				matchedA[i] = true
				matchedB[k] = true
				matches++
				break
			}
		}
	}
	if matches == 0 {
		return 0
	}

	// Half-transpositions: matched runes out of order between the sequences.
	transpositions := 0
	k := 0
	for i := range ra {
		if !matchedA[i] {
			continue
		}
		for !matchedB[k] {
			k++
		}
		if ra[i] != rb[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(len(ra)) + m/float64(len(rb)) + (m-t)/m) / 3
}
