package model

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const defaultTokenPattern = `(?u)\b\w\w+\b`

// VectorizerSpec is the exported form of a fitted TF-IDF vectorizer.
type VectorizerSpec struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Lowercase    *bool          `json:"lowercase,omitempty"`
	StripAccents string         `json:"strip_accents,omitempty"`
	NgramRange   []int          `json:"ngram_range,omitempty"`
	TokenPattern string         `json:"token_pattern,omitempty"`
	StopWords    []string       `json:"stop_words,omitempty"`
	Norm         string         `json:"norm,omitempty"`
	UseIDF       *bool          `json:"use_idf,omitempty"`
	SublinearTF  bool           `json:"sublinear_tf,omitempty"`
	Binary       bool           `json:"binary,omitempty"`
}

// Vectorizer maps text to TF-IDF weighted feature vectors over a fixed vocabulary.
// It is immutable after construction and safe for concurrent use.
type Vectorizer struct {
	vocabulary   map[string]int
	idf          []float64
	lowercase    bool
	stripAccents string
	minN, maxN   int
	minRun       int
	pattern      *regexp.Regexp
	stopWords    map[string]struct{}
	norm         string
	useIDF       bool
	sublinearTF  bool
	binary       bool
}

// NewVectorizer validates spec and builds a Vectorizer.
func NewVectorizer(spec VectorizerSpec) (*Vectorizer, error) {
	dim := len(spec.Vocabulary)
	if dim == 0 {
		return nil, fmt.Errorf("%w: vectorizer vocabulary is empty", ErrInvalidArtifact)
	}
	seen := make([]bool, dim)
	vocab := make(map[string]int, dim)
	for term, idx := range spec.Vocabulary {
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("%w: vocabulary index %d for %q out of range [0,%d)", ErrInvalidArtifact, idx, term, dim)
		}
		if seen[idx] {
			return nil, fmt.Errorf("%w: vocabulary index %d assigned twice", ErrInvalidArtifact, idx)
		}
		seen[idx] = true
		vocab[term] = idx
	}

	v := &Vectorizer{
		vocabulary:   vocab,
		lowercase:    boolOr(spec.Lowercase, true),
		stripAccents: spec.StripAccents,
		minN:         1,
		maxN:         1,
		minRun:       2,
		norm:         spec.Norm,
		useIDF:       boolOr(spec.UseIDF, true),
		sublinearTF:  spec.SublinearTF,
		binary:       spec.Binary,
	}

	if v.useIDF {
		if len(spec.IDF) != dim {
			return nil, fmt.Errorf("%w: idf has %d weights for %d terms", ErrInvalidArtifact, len(spec.IDF), dim)
		}
		v.idf = append([]float64(nil), spec.IDF...)
	}

	switch v.stripAccents {
	case "", "unicode", "ascii":
	default:
		return nil, fmt.Errorf("%w: strip_accents %q", ErrInvalidArtifact, v.stripAccents)
	}

	if len(spec.NgramRange) > 0 {
		if len(spec.NgramRange) != 2 || spec.NgramRange[0] < 1 || spec.NgramRange[1] < spec.NgramRange[0] {
			return nil, fmt.Errorf("%w: ngram_range %v", ErrInvalidArtifact, spec.NgramRange)
		}
		v.minN, v.maxN = spec.NgramRange[0], spec.NgramRange[1]
	}

	switch v.norm {
	case "":
		v.norm = "l2"
	case "l1", "l2", "none":
	default:
		return nil, fmt.Errorf("%w: norm %q", ErrInvalidArtifact, v.norm)
	}

	if p := spec.TokenPattern; p != "" && p != defaultTokenPattern {
		minRun, re, err := compileTokenPattern(p)
		if err != nil {
			return nil, fmt.Errorf("%w: token_pattern: %v", ErrInvalidArtifact, err)
		}
		v.minRun, v.pattern = minRun, re
	}

	if len(spec.StopWords) > 0 {
		v.stopWords = make(map[string]struct{}, len(spec.StopWords))
		for _, w := range spec.StopWords {
			v.stopWords[w] = struct{}{}
		}
	}
	return v, nil
}

// Dim returns the vocabulary size.
func (v *Vectorizer) Dim() int {
	return len(v.vocabulary)
}

// Transform converts text into a normalized TF-IDF vector. Out-of-vocabulary terms are ignored.
func (v *Vectorizer) Transform(text string) Vector {
	counts := map[int]float64{}
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	out := Vector{Dim: v.Dim(), Indices: make([]int, 0, len(counts))}
	for idx := range counts {
		out.Indices = append(out.Indices, idx)
	}
	sort.Ints(out.Indices)

	out.Values = make([]float64, len(out.Indices))
	for i, idx := range out.Indices {
		tf := counts[idx]
		if v.binary {
			tf = 1
		}
		if v.sublinearTF {
			tf = math.Log(tf) + 1
		}
		if v.useIDF {
			tf *= v.idf[idx]
		}
		out.Values[i] = tf
	}
	normalize(out.Values, v.norm)
	return out
}

func (v *Vectorizer) analyze(text string) []string {
	return v.ngrams(v.tokenize(v.preprocess(text)))
}

func (v *Vectorizer) preprocess(text string) string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	switch v.stripAccents {
	case "unicode":
		return stripAccentsUnicode(text)
	case "ascii":
		return stripAccentsASCII(text)
	}
	return text
}

func (v *Vectorizer) tokenize(text string) []string {
	if v.pattern == nil {
		return wordRuns(text, v.minRun)
	}
	if v.pattern.NumSubexp() == 1 {
		matches := v.pattern.FindAllStringSubmatch(text, -1)
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, m[1])
		}
		return out
	}
	return v.pattern.FindAllString(text, -1)
}

func (v *Vectorizer) ngrams(tokens []string) []string {
	if v.stopWords != nil {
		kept := tokens[:0:0]
		for _, t := range tokens {
			if _, stop := v.stopWords[t]; !stop {
				kept = append(kept, t)
			}
		}
		tokens = kept
	}
	if v.maxN == 1 {
		return tokens
	}

	original := tokens
	minN := v.minN
	var out []string
	if minN == 1 {
		out = append(out, original...)
		minN++
	}
	for n := minN; n <= v.maxN && n <= len(original); n++ {
		for i := 0; i+n <= len(original); i++ {
			out = append(out, strings.Join(original[i:i+n], " "))
		}
	}
	return out
}

// wordTokens returns maximal runs of word characters that are at least two runes long.
func wordTokens(text string) []string {
	return wordRuns(text, 2)
}

// wordRuns returns maximal runs of word characters that are at least minLen runes long.
func wordRuns(text string, minLen int) []string {
	var out []string
	start := -1
	runes := 0
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
				runes = 0
			}
			runes++
			continue
		}
		if start >= 0 && runes >= minLen {
			out = append(out, text[start:i])
		}
		start = -1
	}
	if start >= 0 && runes >= minLen {
		out = append(out, text[start:])
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func stripAccentsUnicode(text string) string {
	decomposed := norm.NFKD.String(text)
	if decomposed == text && isASCII(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if norm.NFKD.PropertiesString(string(r)).CCC() != 0 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stripAccentsASCII(text string) string {
	decomposed := norm.NFKD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func normalize(values []float64, kind string) {
	var total float64
	switch kind {
	case "l2":
		for _, x := range values {
			total += x * x
		}
		total = math.Sqrt(total)
	case "l1":
		for _, x := range values {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range values {
		values[i] /= total
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
