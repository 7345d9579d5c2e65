package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/netfibra/backoffice/internal"
	"github.com/netfibra/backoffice/internal/rbac"
)

// RequireScreen gates a route on the screen permission matrix. Missing
// actors, lookup failures and unknown screens all deny: the matrix fails
// closed.
func RequireScreen(checker *rbac.Service, logger *slog.Logger, screenKey string, action rbac.ScreenAction) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := apperrors.ActorFromContext(r.Context())
			if !ok {
				writeAppError(w, apperrors.NewUnauthorizedError("authentication required", apperrors.ErrCodeInvalidToken))
				return
			}

			allowed, err := checker.Allowed(r.Context(), actor.Role, screenKey, action)
			if err != nil {
				logger.Error("screen permission check failed",
					"role", actor.Role, "screen", screenKey, "action", action, "error", err)
				writeAppError(w, apperrors.NewForbiddenError("permission check failed", apperrors.ErrCodeInsufficientRole))
				return
			}
			if !allowed {
				logger.Warn("screen access denied",
					"user_id", actor.UserID, "role", actor.Role, "screen", screenKey, "action", action)
				writeAppError(w, apperrors.NewForbiddenError("insufficient screen permissions", apperrors.ErrCodeInsufficientRole))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
