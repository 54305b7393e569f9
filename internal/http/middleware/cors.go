package middleware

import (
	"net/http"
	"strings"
)

// Methods and request headers the booking, catalog and chat routes accept
// from browsers. Session ids travel in the path, and X-Request-Id is honoured
// by chi's RequestID middleware.
var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}
	corsHeaders = []string{"Content-Type", "X-Request-Id"}
)

const (
	corsMaxAge         = "600"
	corsExposedHeaders = "X-Request-Id, Retry-After"
)

// CORS provides an allowlist-based CORS middleware for the agency API.
// If allowedOrigins contains "*", any Origin is echoed back. Preflights for
// methods the API does not route are refused with 403.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAny := false
	allow := map[string]struct{}{}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAny = true
			continue
		}
		allow[origin] = struct{}{}
	}

	allowedMethods := strings.Join(corsMethods, ", ")
	allowedHeaders := strings.Join(corsHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			requestedMethod := r.Header.Get("Access-Control-Request-Method")
			preflight := r.Method == http.MethodOptions && origin != "" && requestedMethod != ""

			w.Header().Add("Vary", "Origin")
			if origin == "" || !(allowAny || isAllowedOrigin(allow, origin)) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			if !preflight {
				w.Header().Set("Access-Control-Expose-Headers", corsExposedHeaders)
				next.ServeHTTP(w, r)
				return
			}

			if !methodAllowed(requestedMethod) || !headersAllowed(r.Header.Get("Access-Control-Request-Headers")) {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func isAllowedOrigin(allow map[string]struct{}, origin string) bool {
	_, ok := allow[origin]
	return ok
}

func methodAllowed(method string) bool {
	method = strings.ToUpper(strings.TrimSpace(method))
	for _, m := range corsMethods {
		if m == method {
			return true
		}
	}
	return false
}

// headersAllowed checks a comma separated Access-Control-Request-Headers value.
func headersAllowed(requested string) bool {
	for _, h := range strings.Split(requested, ",") {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		ok := false
		for _, allowed := range corsHeaders {
			if strings.EqualFold(h, allowed) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
