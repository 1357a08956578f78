// Package classifier maps free-text transaction descriptions to a
// best-guess category using a static keyword table and string-similarity
// scoring. Every function is pure and total: the same input always
// produces the same well-formed result, never an error.
package classifier

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// confidenceFloor is the minimum winning score; below it the result
	// falls back to FallbackCategory with confidence 0.
	confidenceFloor = 0.1

	// similarityFloor is the minimum similarity for a fuzzy keyword match
	// to contribute to a category's score.
	similarityFloor = 0.6

	exactWeight     = 1.0
	substringWeight = 0.5
	fuzzyWeight     = 0.3
)

// Alternative is a runner-up category with its own confidence.
type Alternative struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Result is the outcome of a classification. Confidence ranges 0-100;
// Alternatives holds up to two runner-up categories, best first.
type Result struct {
	Category     string        `json:"category"`
	Confidence   float64       `json:"confidence"`
	Alternatives []Alternative `json:"alternatives"`
}

// Normalize lowercases, trims, strips characters that are neither word
// characters nor whitespace, and collapses whitespace runs to single
// spaces. Normalize is idempotent.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it into tokens, dropping tokens of
// length 2 or less.
func Tokenize(text string) []string {
	var tokens []string
	for _, w := range strings.Fields(Normalize(text)) {
		if len([]rune(w)) > 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// Similarity scores how alike two strings are on a 0-1 scale: 1 for equal
// normalized forms, 0.8 when one contains the other, otherwise normalized
// Levenshtein similarity. Symmetric in its arguments.
func Similarity(a, b string) float64 {
	s1 := Normalize(a)
	s2 := Normalize(b)

	if s1 == s2 {
		return 1
	}
	// The empty string is a substring of everything; without this
	// guard a blank input would score 0.8 against every keyword.
	if s1 == "" || s2 == "" {
		return 0
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 0.8
	}

	longer, shorter := []rune(s1), []rune(s2)
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	dist := editDistance(shorter, longer)
	return float64(len(longer)-dist) / float64(len(longer))
}

// editDistance is the classic single-character insert/delete/substitute
// Levenshtein distance, single-row dynamic programming.
func editDistance(a, b []rune) int {
	costs := make([]int, len(b)+1)
	for j := range costs {
		costs[j] = j
	}
	for i := 1; i <= len(a); i++ {
		prev := costs[0]
		costs[0] = i
		for j := 1; j <= len(b); j++ {
			cur := costs[j]
			if a[i-1] == b[j-1] {
				costs[j] = prev
			} else {
				costs[j] = min(min(prev, costs[j-1]), costs[j]) + 1
			}
			prev = cur
		}
	}
	return costs[len(b)]
}

// DetectCategory scores the description against every category's keyword
// list and returns the best match with confidence and up to two ranked
// alternatives.
//
// Per keyword: an exact token match scores 1.0, a substring match 0.5,
// and a fuzzy match above the similarity floor scores similarity*0.3.
// A category's score is the mean over its matched keywords, so long
// keyword lists gain no advantage over short ones. A winning score below
// the confidence floor falls back to FallbackCategory with confidence 0.
func DetectCategory(description string) Result {
	normalized := Normalize(description)
	if normalized == "" {
		return Result{Category: FallbackCategory, Confidence: 0}
	}
	tokens := Tokenize(description)
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}

	best := FallbackCategory
	bestScore := 0.0
	scores := make(map[string]float64, len(table))
	order := make([]string, 0, len(table))

	for _, cat := range table {
		if cat.Name == FallbackCategory {
			continue
		}

		score := 0.0
		matched := 0
		for _, keyword := range cat.Keywords {
			kw := Normalize(keyword)
			switch {
			case tokenSet[kw]:
				score += exactWeight
				matched++
			case kw != "" && strings.Contains(normalized, kw):
				score += substringWeight
				matched++
			default:
				if sim := Similarity(normalized, kw); sim > similarityFloor {
					score += sim * fuzzyWeight
					matched++
				}
			}
		}
		if matched > 0 {
			score /= float64(matched)
		}

		scores[cat.Name] = score
		order = append(order, cat.Name)

		if score > bestScore {
			bestScore = score
			best = cat.Name
		}
	}

	if bestScore < confidenceFloor {
		return Result{Category: FallbackCategory, Confidence: 0, Alternatives: rankAlternatives(scores, order, FallbackCategory)}
	}

	return Result{
		Category:     best,
		Confidence:   math.Min(bestScore*100, 100),
		Alternatives: rankAlternatives(scores, order, best),
	}
}

// rankAlternatives returns the two highest-scoring categories other than
// the winner, best first. Sorting is stable so equal scores keep table
// order.
func rankAlternatives(scores map[string]float64, order []string, winner string) []Alternative {
	var alts []Alternative
	for _, name := range order {
		if name == winner {
			continue
		}
		alts = append(alts, Alternative{
			Category:   name,
			Confidence: math.Min(scores[name]*100, 100),
		})
	}
	sort.SliceStable(alts, func(i, j int) bool {
		return alts[i].Confidence > alts[j].Confidence
	})
	if len(alts) > 2 {
		alts = alts[:2]
	}
	return alts
}

// SuggestionText renders a human hint for a classification, keyed on
// confidence bands.
func SuggestionText(r Result) string {
	switch {
	case r.Confidence > 70:
		return fmt.Sprintf("Kategori terdeteksi: %s (%d%% yakin)", r.Category, int(math.Round(r.Confidence)))
	case r.Confidence > 40 && len(r.Alternatives) > 0:
		return fmt.Sprintf("Kemungkinan: %s atau %s", r.Category, r.Alternatives[0].Category)
	case r.Confidence > 40:
		return fmt.Sprintf("Kemungkinan: %s", r.Category)
	default:
		return "Sulit dideteksi, pilih kategori secara manual"
	}
}
