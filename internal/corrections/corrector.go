// Package corrections cleans up OCR-damaged menu text with a two-layer
// approach: a dictionary of known menu OCR misreads, then fuzzy matching
// against a food vocabulary for errors the dictionary misses.
package corrections

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultThreshold is the minimum similarity ratio for a fuzzy-match
// correction.
const DefaultThreshold = 0.75

// Fuzzy matching only considers vocabulary words within this length
// difference of the input.
const maxLengthDelta = 3

// Options tunes a Corrector beyond the built-in data. The zero value
// gives the defaults.
type Options struct {
	// Extra error→fix entries layered on top of the built-in dictionary;
	// they win over built-ins.
	Extra map[string]string
	// Additional fuzzy-match vocabulary words.
	Vocabulary []string
	// Minimum similarity ratio for a fuzzy correction; 0 means
	// DefaultThreshold.
	Threshold float64
}

// Corrector fixes OCR-damaged words. The zero value is not usable; use
// New.
type Corrector struct {
	replacements map[string]string
	vocabulary   []string
	inVocabulary map[string]bool
	threshold    float64
}

// New returns a Corrector loaded with the built-in dictionary and food
// vocabulary plus anything in opts.
func New(opts Options) *Corrector {
	c := &Corrector{
		replacements: make(map[string]string, len(ocrCorrections)+len(opts.Extra)),
		inVocabulary: make(map[string]bool, len(foodVocabulary)+len(opts.Vocabulary)),
		threshold:    opts.Threshold,
	}
	if c.threshold == 0 {
		c.threshold = DefaultThreshold
	}
	for k, v := range ocrCorrections {
		c.replacements[k] = v
	}
	for k, v := range opts.Extra {
		c.replacements[strings.ToLower(k)] = strings.ToLower(v)
	}
	c.vocabulary = make([]string, 0, len(foodVocabulary)+len(opts.Vocabulary))
	c.vocabulary = append(c.vocabulary, foodVocabulary...)
	for _, w := range opts.Vocabulary {
		c.vocabulary = append(c.vocabulary, strings.ToLower(w))
	}
	sort.Strings(c.vocabulary)
	for _, w := range c.vocabulary {
		c.inVocabulary[w] = true
	}
	return c
}

// Correct runs the full correction over a menu item name. It reports true
// only when the result differs from the input, which makes it usable as a
// repair.NameCorrector.
func (c *Corrector) Correct(name string) (string, bool) {
	fixed := c.CorrectText(name)
	return fixed, fixed != name
}

// Unicode classes rather than \w so confusable non-ASCII letters stay
// inside their word token.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+|\S`)

// CorrectText corrects every word of a menu item string, preserving
// punctuation and the original capitalization pattern.
func (c *Corrector) CorrectText(text string) string {
	if text == "" {
		return text
	}
	words := wordRE.FindAllString(text, -1)
	corrected := make([]string, 0, len(words))
	for _, word := range words {
		if !containsLetter(word) {
			corrected = append(corrected, word)
			continue
		}
		if fixed := c.correctWord(word); fixed != word {
			corrected = append(corrected, fixed)
			continue
		}
		if fuzzy, ok := c.fuzzyMatch(word); ok {
			corrected = append(corrected, matchCase(word, fuzzy))
			continue
		}
		corrected = append(corrected, word)
	}

	var b strings.Builder
	for i, word := range corrected {
		if i > 0 && isAlnum(word) && isAlnum(corrected[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	return b.String()
}

// correctWord applies the dictionary to a single word.
func (c *Corrector) correctWord(word string) string {
	fixed, ok := c.replacements[strings.ToLower(word)]
	if !ok {
		return word
	}
	return matchCase(word, fixed)
}

// fuzzyMatch finds the closest vocabulary word above the similarity
// threshold. Words already in the vocabulary or shorter than 3 runes are
// left alone. The vocabulary is scanned in sorted order so ties resolve
// deterministically.
func (c *Corrector) fuzzyMatch(word string) (string, bool) {
	lower := strings.ToLower(word)
	if len([]rune(lower)) < 3 || c.inVocabulary[lower] {
		return "", false
	}
	best := ""
	bestRatio := c.threshold
	for _, cand := range c.vocabulary {
		if abs(len(cand)-len(lower)) > maxLengthDelta {
			continue
		}
		if r := similarity(lower, cand); r > bestRatio {
			bestRatio = r
			best = cand
		}
	}
	return best, best != ""
}

// similarity is 2*M/T where M is the length of the longest common
// subsequence and T the combined length, mirroring a difflib-style ratio.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	lcs := prev[len(rb)]
	return 2 * float64(lcs) / float64(len(ra)+len(rb))
}

// matchCase transfers the capitalization pattern of the original word to
// its replacement.
func matchCase(original, replacement string) string {
	if original == strings.ToUpper(original) && strings.ContainsFunc(original, unicode.IsLetter) {
		return strings.ToUpper(replacement)
	}
	first := []rune(original)
	if len(first) > 0 && unicode.IsUpper(first[0]) {
		return cases.Title(language.English).String(replacement)
	}
	return replacement
}

// containsLetter reports whether the token has anything correctable in
// it. Pure numbers and punctuation pass through untouched, but tokens
// like "ch1cken" still reach the dictionary.
func containsLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
