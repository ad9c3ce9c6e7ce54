package middleware

import (
	"net/http"
)

// CorsMiddleware Middleware для поддержки CORS.
// "*" в списке origins разрешает любой источник (без cookie),
// иначе origin запроса должен точно совпасть с одним из списка.
func CorsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]struct{}, len(origins))

	for _, o := range origins {
		if o == "*" {
			allowAny = true
			continue
		}
		allowed[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// запрос не кросс-доменный
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")

			_, isAllowed := allowed[origin]

			switch {
			case isAllowed:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			case allowAny:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			// preflight запрос
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if isAllowed || allowAny {
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, X-Requested-With")
					w.Header().Set("Access-Control-Max-Age", "86400")
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
