// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package recommend

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func TestVectorizer_Tokenize(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "stop words and single letters removed",
			text: "A spy thriller with action and espionage",
			want: []string{"spy", "thriller", "action", "espionage"},
		},
		{
			name: "hyphen splits words",
			text: "An action-packed spy film",
			want: []string{"action", "packed", "spy", "film"},
		},
		{
			name: "lowercased and duplicates kept",
			text: "Robot ROBOT robot",
			want: []string{"robot", "robot", "robot"},
		},
		{
			name: "numbers and underscores are word runes",
			text: "agent_007 returns in 1999",
			want: []string{"agent_007", "returns", "1999"},
		},
		{
			name: "punctuation only",
			text: "... !!! ???",
			want: []string{},
		},
		{
			name: "empty",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := v.Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestVectorizer_FitTransform(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	tfidf, err := v.FitTransform([]string{"Spy thriller", "Romantic comedy"})
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	wantVocab := []string{"comedy", "romantic", "spy", "thriller"}
	if !reflect.DeepEqual(tfidf.Vocabulary, wantVocab) {
		t.Fatalf("Vocabulary = %v, want %v", tfidf.Vocabulary, wantVocab)
	}
	if len(tfidf.Vectors) != 2 {
		t.Fatalf("len(Vectors) = %d, want 2", len(tfidf.Vectors))
	}

	half := 1 / math.Sqrt2
	want := []Vector{
		{0, 0, half, half},
		{half, half, 0, 0},
	}
	for i := range want {
		for j := range want[i] {
			if !almostEqual(tfidf.Vectors[i][j], want[i][j]) {
				t.Errorf("Vectors[%d][%d] = %v, want %v", i, j, tfidf.Vectors[i][j], want[i][j])
			}
		}
	}
}

func TestVectorizer_FitTransformIDFWeighting(t *testing.T) {
	t.Parallel()

	// "spy" occurs in both documents, "heist" only in the first.
	v := NewVectorizer()
	tfidf, err := v.FitTransform([]string{"spy heist", "spy"})
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Vocabulary: heist, spy.
	idfHeist := math.Log(3.0/2.0) + 1
	idfSpy := math.Log(3.0/3.0) + 1
	norm := math.Sqrt(idfHeist*idfHeist + idfSpy*idfSpy)

	row := tfidf.Vectors[0]
	if !almostEqual(row[0], idfHeist/norm) {
		t.Errorf("heist weight = %v, want %v", row[0], idfHeist/norm)
	}
	if !almostEqual(row[1], idfSpy/norm) {
		t.Errorf("spy weight = %v, want %v", row[1], idfSpy/norm)
	}
	if !almostEqual(row.Norm(), 1) {
		t.Errorf("row norm = %v, want 1", row.Norm())
	}
}

func TestVectorizer_FitTransformRawCounts(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	tfidf, err := v.FitTransform([]string{"robot robot dog", "cat"})
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Vocabulary: cat, dog, robot. dog and robot share idf, so robot is twice dog.
	row := tfidf.Vectors[0]
	if !almostEqual(row[2], 2*row[1]) {
		t.Errorf("robot weight = %v, want twice dog weight %v", row[2], row[1])
	}
}

func TestVectorizer_FitTransformZeroRow(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()
	tfidf, err := v.FitTransform([]string{"the and of", "alien invasion"})
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if got := tfidf.Vectors[0].Norm(); got != 0 {
		t.Errorf("stop-word-only row norm = %v, want 0", got)
	}
}

func TestVectorizer_FitTransformErrors(t *testing.T) {
	t.Parallel()

	v := NewVectorizer()

	tests := []struct {
		name    string
		docs    []string
		wantErr error
	}{
		{name: "no documents", docs: nil, wantErr: ErrTooFewDocuments},
		{name: "one document", docs: []string{"spy thriller"}, wantErr: ErrTooFewDocuments},
		{name: "only stop words", docs: []string{"the and of", "it is a"}, wantErr: ErrEmptyVocabulary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := v.FitTransform(tt.docs)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FitTransform() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsStopWord(t *testing.T) {
	t.Parallel()

	for _, w := range []string{"the", "and", "with", "an", "whereafter"} {
		if !IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"spy", "robot", "film", "The"} {
		if IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = true, want false", w)
		}
	}
}
