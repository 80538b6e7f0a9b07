// Package auth guards the JSON API with statically configured bearer tokens.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

// BearerTokenMiddleware authenticates API requests against a fixed set of
// token hashes. With no tokens configured every request passes.
type BearerTokenMiddleware struct {
	hashes [][]byte
}

// NewBearerTokenMiddleware creates a middleware accepting the given tokens.
// Each entry is a plaintext token or "sha256:" followed by its hex digest.
func NewBearerTokenMiddleware(tokens []string) *BearerTokenMiddleware {
	m := &BearerTokenMiddleware{}
	for _, t := range tokens {
		if h := normalize(t); h != "" {
			m.hashes = append(m.hashes, []byte(h))
		}
	}
	return m
}

// Enabled reports whether any token is configured.
func (m *BearerTokenMiddleware) Enabled() bool { return len(m.hashes) > 0 }

// Authenticate is an http.Handler middleware that requires a valid Bearer
// token when the guard is enabled. Failures get 401 {"error": "unauthorized"}.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		authHeader := r.Header.Get("Authorization")
		plaintext, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(plaintext) == "" {
			writeUnauthorized(w)
			return
		}
		if !m.valid(HashToken(plaintext)) {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// valid compares against every configured hash so timing does not depend
// on which entry matched.
func (m *BearerTokenMiddleware) valid(hash string) bool {
	got := []byte(hash)
	match := 0
	for _, h := range m.hashes {
		match |= subtle.ConstantTimeCompare(got, h)
	}
	return match == 1
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="workflows"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
