// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moviepedia-recommender/internal/logging"
	"github.com/tomtom215/moviepedia-recommender/internal/metrics"
	"github.com/tomtom215/moviepedia-recommender/internal/models"
	"github.com/tomtom215/moviepedia-recommender/internal/recommend"
	"github.com/tomtom215/moviepedia-recommender/internal/validation"
)

// internalErrorMessage is the only failure text clients see for 500s.
const internalErrorMessage = "Internal Server Error"

// userPathParams is validated instead of the raw path segment so that the
// rules live in struct tags like every other validated input.
type userPathParams struct {
	UserID string `validate:"required,max=128,printascii"`
}

// Recommend handles GET /recommend/{userId}.
// Always answers with {"Recommendations": [...]} on success, including an
// empty list when the user has no liked movies or no plots resolve.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	params := userPathParams{UserID: chi.URLParam(r, "userId")}
	if verr := validation.ValidateStruct(&params); verr != nil {
		logging.Ctx(r.Context()).Debug().
			Str("user_id", sanitizeLogValue(params.UserID)).
			Str("reason", verr.Error()).
			Msg("Rejected recommendation request")
		respondError(w, http.StatusBadRequest, "invalid userId")
		return
	}

	ctx := logging.ContextWithUserID(r.Context(), params.UserID)
	if h.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := h.recommender.RecommendForUser(ctx, params.UserID)
	metrics.RecordRecommendation(time.Since(start), rankingOf(result), err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("user_id", sanitizeLogValue(params.UserID)).
			Dur("elapsed", time.Since(start)).
			Msg("Recommendation failed")
		respondError(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	logging.Ctx(ctx).Info().
		Int("liked_documents", result.Stats.LikedDocuments).
		Int("catalog_documents", result.Stats.CatalogDocuments).
		Int("returned", len(result.Recommendations)).
		Str("short_circuit", result.Stats.ShortCircuit).
		Dur("elapsed", time.Since(start)).
		Msg("Recommendations computed")

	respondJSON(w, http.StatusOK, models.NewRecommendationResponse(result.Recommendations))
}

func rankingOf(result *recommend.Result) metrics.Ranking {
	if result == nil {
		return metrics.Ranking{}
	}
	return metrics.Ranking{
		LikedDocuments:   result.Stats.LikedDocuments,
		CatalogDocuments: result.Stats.CatalogDocuments,
		VocabularySize:   result.Stats.VocabularySize,
		Returned:         len(result.Recommendations),
		ShortCircuit:     result.Stats.ShortCircuit,
	}
}
