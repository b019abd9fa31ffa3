package sentiment

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// negationFactor flips and damps a negated word ("not good" ≈ -0.35).
const negationFactor = -0.5

// negationWindow is how many tokens a negator reaches forward.
const negationWindow = 2

// Lexicon is a word-level polarity estimator. The zero value scores everything 0;
// use NewLexicon for the built-in English + Indonesian word list.
// A Lexicon is read-only after construction and safe for concurrent use.
type Lexicon struct {
	words  map[string]float64
	pre    map[string]float64 // intensifiers placed before the word ("very good")
	post   map[string]float64 // intensifiers placed after the word ("enak banget")
	negate map[string]struct{}
}

// Default is the lexicon used by Classify.
var Default = NewLexicon()

func NewLexicon() *Lexicon {
	l := &Lexicon{
		words:  make(map[string]float64, len(polarityWords)),
		pre:    preIntensifiers,
		post:   postIntensifiers,
		negate: make(map[string]struct{}, len(negators)),
	}
	for w, p := range polarityWords {
		l.words[w] = p
	}
	for _, n := range negators {
		l.negate[n] = struct{}{}
	}
	return l
}

// With returns a copy of l with extra or overridden word scores.
func (l *Lexicon) With(words map[string]float64) *Lexicon {
	cp := &Lexicon{
		words:  make(map[string]float64, len(l.words)+len(words)),
		pre:    l.pre,
		post:   l.post,
		negate: l.negate,
	}
	for w, p := range l.words {
		cp.words[w] = p
	}
	for w, p := range words {
		cp.words[strings.ToLower(w)] = clamp(p)
	}
	return cp
}

// Polarity is the mean score of the sentiment-bearing tokens of text, in [-1, 1].
// Text without any known word scores 0.
func (l *Lexicon) Polarity(text string) float64 {
	toks := Tokenize(text)
	if len(toks) == 0 {
		return 0
	}

	var (
		scores    []float64
		lastAt    = -2 // token index of the last scored word
		negLeft   int
		intensity = 1.0
	)
	for i, tok := range toks {
		if _, ok := l.negate[tok]; ok {
			negLeft = negationWindow
			intensity = 1
			continue
		}
		if f, ok := l.post[tok]; ok && lastAt == i-1 && len(scores) > 0 {
			scores[len(scores)-1] = clamp(scores[len(scores)-1] * f)
			continue
		}
		if f, ok := l.pre[tok]; ok {
			intensity *= f
			continue
		}
		p, ok := l.words[tok]
		if !ok {
			if negLeft > 0 {
				negLeft--
			}
			intensity = 1
			continue
		}
		p = clamp(p * intensity)
		if negLeft > 0 {
			p *= negationFactor
		}
		scores = append(scores, p)
		lastAt = i
		negLeft = 0
		intensity = 1
	}
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return clamp(sum / float64(len(scores)))
}

// Tokenize lower-cases text, strips diacritics and splits it into word tokens.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), text)
	if err != nil {
		folded = text
	}
	fields := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "'"); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func clamp(p float64) float64 {
	switch {
	case p > 1:
		return 1
	case p < -1:
		return -1
	}
	return p
}
