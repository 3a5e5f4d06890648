// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

type userParams struct {
	UserID string `validate:"required,max=128,printascii"`
}

type rankParams struct {
	MovieID string `validate:"required,imdbid"`
	Limit   int    `validate:"min=1,max=50"`
	Source  string `validate:"omitempty,oneof=omdb cache"`
	BaseURL string `validate:"omitempty,http_url"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantMsg   string
	}{
		{name: "valid user", input: &userParams{UserID: "42"}},
		{name: "valid uuid user", input: &userParams{UserID: "3f2b9c1e-6d1a-4c55-9f3e-0a1b2c3d4e5f"}},
		{name: "missing user", input: &userParams{}, wantField: "UserID", wantMsg: "UserID is required"},
		{name: "long user", input: &userParams{UserID: strings.Repeat("x", 129)}, wantField: "UserID", wantMsg: "at most 128 characters"},
		{name: "non ascii user", input: &userParams{UserID: "usér"}, wantField: "UserID", wantMsg: "printable ASCII"},
		{name: "valid rank", input: &rankParams{MovieID: "tt0133093", Limit: 5, Source: "omdb", BaseURL: "http://www.omdbapi.com/"}},
		{name: "bad imdb id", input: &rankParams{MovieID: "0133093", Limit: 5}, wantField: "MovieID", wantMsg: "IMDb id"},
		{name: "short imdb id", input: &rankParams{MovieID: "tt123", Limit: 5}, wantField: "MovieID", wantMsg: "IMDb id"},
		{name: "limit too big", input: &rankParams{MovieID: "tt0133093", Limit: 51}, wantField: "Limit", wantMsg: "Limit must be at most 50"},
		{name: "bad oneof", input: &rankParams{MovieID: "tt0133093", Limit: 1, Source: "redis"}, wantField: "Source", wantMsg: "one of: omdb cache"},
		{name: "bad url", input: &rankParams{MovieID: "tt0133093", Limit: 1, BaseURL: "not a url"}, wantField: "BaseURL", wantMsg: "http(s) URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() error = nil")
			}
			fields := err.Fields()
			if len(fields) != 1 || fields[0].Field != tt.wantField {
				t.Fatalf("Fields() = %+v, want one error on %s", fields, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&rankParams{Limit: 0})
	if err == nil {
		t.Fatal("ValidateStruct() error = nil")
	}
	if got := len(err.Fields()); got != 2 {
		t.Errorf("len(Fields()) = %d, want 2", got)
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("Error() = %q, want joined messages", err.Error())
	}
}

func TestValidateVar(t *testing.T) {
	t.Parallel()

	if err := ValidateVar("tt0111161", "imdbid"); err != nil {
		t.Errorf("ValidateVar(tt0111161) error = %v", err)
	}
	if err := ValidateVar("nm0000206", "imdbid"); err == nil {
		t.Error("ValidateVar(nm0000206) error = nil, want error")
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	t.Parallel()

	if got := (&RequestValidationError{}).Error(); got != "validation failed" {
		t.Errorf("Error() = %q", got)
	}
}
