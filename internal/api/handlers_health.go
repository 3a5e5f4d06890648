// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/moviepedia-recommender/internal/models"
)

// Healthcheck handles GET and HEAD /healthcheck.
// It reports liveness only; upstream availability is not probed.
func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Uptime-Seconds", strconv.FormatInt(int64(time.Since(h.startTime).Seconds()), 10))

	if r.Method == http.MethodHead {
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		return
	}

	respondJSON(w, http.StatusOK, models.HealthResponse{Status: "OK"})
}
