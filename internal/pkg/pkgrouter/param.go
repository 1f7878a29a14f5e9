package pkgrouter

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type routeKey struct{}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func GetParam(ctx context.Context, key string) string {
	return httprouter.ParamsFromContext(ctx).ByName(key)
}

// middlewareRoute records the registered route pattern so logs can group
// requests by route rather than by concrete path.
func middlewareRoute(pattern string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), routeKey{}, pattern)))
		})
	}
}

func matchedRoutePath(r *http.Request) string {
	if pattern, ok := r.Context().Value(routeKey{}).(string); ok && pattern != "" {
		return pattern
	}
	return r.URL.Path
}
