package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/sentinelx/breachwatch/internal/common"
	"github.com/sentinelx/breachwatch/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth validates the bearer token and stores the user id in the
// request context.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, common.ErrorUnauthorized)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, a.secretKey)
		if err != nil || userID == "" {
			writeError(w, common.ErrorUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
