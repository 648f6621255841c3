// internal/middleware/identity.go
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"smartcourse/internal/model"
	"smartcourse/internal/webutil"
)

// IdentityMiddleware は auth-sidecar が検証済みのID情報を
// X-User-ID / X-User-Role ヘッダーから取り出してコンテキストに格納します。
// トークン検証そのものはこのサービスの責務ではない (sidecarを信頼する)。
func IdentityMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			userIDStr := r.Header.Get("X-User-ID")
			if userIDStr == "" {
				logger.Warn("Identity missing: X-User-ID header not set")
				appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			userID, err := strconv.ParseUint(userIDStr, 10, 64)
			if err != nil || userID == 0 {
				logger.Warn("Identity invalid: X-User-ID not a valid ID", "value", userIDStr)
				appErr := model.NewAppError("UNAUTHORIZED", "認証情報が不正です。", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			role := r.Header.Get("X-User-Role")
			if role == "" {
				role = model.RoleStudent
			}

			actor := model.Actor{UserID: uint(userID), Role: role}
			ctx := context.WithValue(r.Context(), model.ActorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireInstructor は講師・管理者ロールを要求するミドルウェアです。
// IdentityMiddleware の後段で使用する。
func RequireInstructor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			actor, err := GetActorFromContext(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}
			if !actor.IsPrivileged() {
				logger.Warn("Role check failed", "user_id", actor.UserID, "role", actor.Role)
				appErr := model.NewAppError("FORBIDDEN", "この操作には講師権限が必要です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetActorFromContext はコンテキストから操作主体を取得します
func GetActorFromContext(ctx context.Context) (model.Actor, error) {
	actor, ok := ctx.Value(model.ActorKey).(model.Actor)
	if !ok {
		return model.Actor{}, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return actor, nil
}
