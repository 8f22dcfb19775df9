package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"edutrade/internal/logger"
	"edutrade/internal/reqctx"
	helpers "edutrade/internal/utils/helpers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWTAuth verifies the bearer token against the configured secret and
// attaches the caller's user id to the request context. The secret is
// injected once at startup, not looked up per request.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: missing access token")
				helpers.Error(w, http.StatusUnauthorized, "missing access token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})

			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("JWTAuth: token rejected", zap.Error(err))
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					helpers.Error(w, http.StatusUnauthorized, "token has expired")
				case errors.Is(err, jwt.ErrTokenMalformed):
					helpers.Error(w, http.StatusUnauthorized, "invalid token format")
				default:
					helpers.Error(w, http.StatusUnauthorized, "token verification failed")
				}
				return
			}

			rawID, ok := claims["user_id"].(string)
			if !ok {
				logger.WithCtx(r.Context()).Warn("JWTAuth: invalid payload", zap.Any("claims", claims))
				helpers.Error(w, http.StatusUnauthorized, "invalid token payload")
				return
			}
			userID, err := uuid.Parse(rawID)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: invalid user id in payload", zap.String("user_id", rawID))
				helpers.Error(w, http.StatusUnauthorized, "invalid token payload")
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, userID)
			ctx = reqctx.WithUserID(ctx, userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
