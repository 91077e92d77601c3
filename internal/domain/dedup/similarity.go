package dedup

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"

	"pathmatch/internal/domain/scoring"
)

const (
	maxTitleEditDistance = 3
	wordOverlapThreshold = 0.80
	descRatioThreshold   = 0.85
)

// TitlesSimilar reports whether two job titles refer to the same role.
// True when the edit distance is small, one title contains the other, or
// most words overlap regardless of order.
func TitlesSimilar(a, b string) bool {
	na := scoring.NormalizeTitle(a)
	nb := scoring.NormalizeTitle(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if levenshtein.ComputeDistance(na, nb) <= maxTitleEditDistance {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return wordOverlap(na, nb) >= wordOverlapThreshold
}

// wordOverlap is the share of words in the smaller title that also
// appear in the other, ignoring order.
func wordOverlap(a, b string) float64 {
	wa := strings.Fields(a)
	wb := strings.Fields(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	if len(wa) > len(wb) {
		wa, wb = wb, wa
	}
	set := make(map[string]struct{}, len(wb))
	for _, w := range wb {
		set[w] = struct{}{}
	}
	matched := 0
	for _, w := range wa {
		if _, ok := set[w]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(wa))
}

// DescriptionSimilarity returns a normalized sequence-matching ratio in
// [0, 1] over the word sequences of both descriptions.
func DescriptionSimilarity(a, b string) float64 {
	wa := normalizeWords(a)
	wb := normalizeWords(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	return difflib.NewMatcher(wa, wb).Ratio()
}

// DescriptionsSimilar applies the repost-detection threshold.
func DescriptionsSimilar(a, b string) bool {
	return DescriptionSimilarity(a, b) > descRatioThreshold
}

func normalizeWords(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func sameCompany(a, b string) bool {
	return normalizeCompany(a) != "" && normalizeCompany(a) == normalizeCompany(b)
}

var companySuffixes = []string{" inc", " llc", " ltd", " gmbh", " co", " corp", " ag", " sa", " bv"}

func normalizeCompany(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, ".")
	for _, suf := range companySuffixes {
		s = strings.TrimSuffix(s, suf)
	}
	return strings.Join(strings.Fields(s), " ")
}
