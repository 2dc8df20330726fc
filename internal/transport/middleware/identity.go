package middleware

import (
	"net"
	"net/http"

	"github.com/google/uuid"

	"github.com/lexatlas/lexatlas-backend/pkg/ctxutil"
)

// Identity resolves the acting user from the X-User-Id header set by the
// authenticating proxy in front of this service, and records the client
// address as the request origin for the audit trail. Requests without a
// valid header proceed anonymously; per-user operations reject them.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxutil.WithOrigin(r.Context(), clientAddr(r))

		if raw := r.Header.Get("X-User-Id"); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid X-User-Id", http.StatusBadRequest)
				return
			}
			ctx = ctxutil.WithUserID(ctx, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
