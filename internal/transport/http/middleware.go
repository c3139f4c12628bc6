package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"clinicore/pkg/requestcontext"
)

// withRequestContext copies transport metadata into the request context so
// the services can reach it without touching *http.Request.
func withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if requestID := middleware.GetReqID(ctx); requestID != "" {
			ctx = requestcontext.WithRequestID(ctx, requestID)
		}
		ctx = requestcontext.WithClientMetadata(ctx, r.RemoteAddr, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
