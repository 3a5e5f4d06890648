// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrTooFewDocuments is returned when fewer than two documents are vectorized.
	ErrTooFewDocuments = errors.New("tf-idf requires at least two documents")

	// ErrEmptyVocabulary is returned when no term survives tokenization and stop-word removal.
	ErrEmptyVocabulary = errors.New("empty vocabulary; documents contain only stop words")
)

// minTokenRunes is the shortest token kept by the tokenizer.
const minTokenRunes = 2

// TFIDF is a fitted corpus: the sorted vocabulary and one vector per document.
type TFIDF struct {
	Vocabulary []string
	Vectors    []Vector
}

// Vectorizer converts documents to TF-IDF vectors.
//
// Weighting:
//
//	tf(t, d)  = raw count of t in d
//	idf(t)    = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d)   = tf * idf, then each row is L2-normalized
//
// Tokens are maximal runs of letters, numbers and underscores, at least two
// runes long, lowercased, with English stop words removed.
type Vectorizer struct {
	stopWords map[string]struct{}
}

// NewVectorizer creates a vectorizer using the English stop-word list.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{stopWords: englishStopWords}
}

// Tokenize splits text into vocabulary terms, keeping duplicates in order.
func (v *Vectorizer) Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) < minTokenRunes {
			continue
		}
		if _, stop := v.stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// FitTransform learns the vocabulary and idf weights from docs and returns
// one vector per document in input order.
func (v *Vectorizer) FitTransform(docs []string) (*TFIDF, error) {
	if len(docs) < 2 {
		return nil, ErrTooFewDocuments
	}

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tf := make(map[string]int)
		for _, tok := range v.Tokenize(doc) {
			tf[tok]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	column := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(len(docs))
	for j, term := range vocabulary {
		column[term] = j
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tf := range counts {
		vec := make(Vector, len(vocabulary))
		for term, c := range tf {
			j := column[term]
			vec[j] = float64(c) * idf[j]
		}
		normalize(vec)
		vectors[i] = vec
	}

	return &TFIDF{Vocabulary: vocabulary, Vectors: vectors}, nil
}

// normalize scales vec to unit L2 norm in place. Zero vectors are left unchanged.
func normalize(vec Vector) {
	norm := vec.Norm()
	if norm == 0 {
		return
	}
	for i := range vec {
		vec[i] /= norm
	}
}

// Norm returns the L2 norm of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
