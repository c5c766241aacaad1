package calculator

import (
	"math"
	"portfoliobias/internal/domain"
	"sort"
)

// CosineSimilarity scores how closely a resembles b on a 0-100 scale,
// rounded to 2 places. Keys missing from one side count as 0. If either
// side has zero magnitude the score is 0.
func CosineSimilarity(a, b domain.Distribution) float64 {
	keys := unionKeys(a, b)

	var dot, normA, normB float64
	for _, k := range keys {
		x, y := a[k], b[k]
		dot += x * y
		normA += x * x
		normB += y * y
	}

	magnitudeA := math.Sqrt(normA)
	magnitudeB := math.Sqrt(normB)
	if magnitudeA == 0 || magnitudeB == 0 {
		return 0
	}

	return RoundFloat((dot/(magnitudeA*magnitudeB))*100, 2)
}

func unionKeys(a, b domain.Distribution) []string {
	set := map[string]struct{}{}
	for k := range a {
		set[k] = struct{}{}
	}
	for k := range b {
		set[k] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
