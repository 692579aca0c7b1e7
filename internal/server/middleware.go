package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
)

// APISecretFilter validates the X-API-Key header on every /api/v1
// request. An empty secret disables authentication; /healthz and the
// Swagger UI under /docs stay open either way.
func APISecretFilter(secret string) kratoshttp.FilterFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || !strings.HasPrefix(r.URL.Path, "/api/v1") {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				http.Error(w, "invalid or missing X-API-Key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
