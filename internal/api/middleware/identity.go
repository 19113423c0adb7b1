package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/internsim/practice-api/internal/api/shared"
	"github.com/internsim/practice-api/internal/platform/logger"
)

// UserIDHeader carries the caller identity resolved by the upstream
// authentication layer.
const UserIDHeader = "X-User-ID"

// Identity accepts requests that carry a well-formed caller identity and
// stores it in the request context. Authentication itself happens
// upstream; this middleware trusts the header.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if raw == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Missing user identity")
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid user identity")
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		log := logger.FromContext(ctx).With(slog.String("user_id", userID.String()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
