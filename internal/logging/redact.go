// Moviepedia Recommender - Plot Similarity Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviepedia-recommender

package logging

import (
	"net/url"
	"strings"
)

const redacted = "[REDACTED]"

// secretParams are query parameters never written to logs.
var secretParams = []string{"apikey", "api_key", "token", "access_token"}

// RedactSecret masks a credential, keeping the first four characters of
// values long enough to stay unguessable.
//
//	RedactSecret("abcd1234efgh") // "abcd...[REDACTED]"
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return redacted
	}
	return secret[:4] + "..." + redacted
}

// RedactURL masks credential query parameters and userinfo passwords.
// Unparseable input is fully redacted.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}

	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
		}
	}

	q := u.Query()
	changed := false
	for key := range q {
		if isSecretParam(key) {
			q.Set(key, redacted)
			changed = true
		}
	}
	if changed {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func isSecretParam(key string) bool {
	key = strings.ToLower(key)
	for _, p := range secretParams {
		if key == p {
			return true
		}
	}
	return false
}
