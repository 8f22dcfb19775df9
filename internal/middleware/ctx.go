package middleware

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ContextUserID    ctxKey = "user_id"
	ContextRequestID ctxKey = "request_id"
)

// CallerID returns the authenticated user's id attached by JWTAuth.
func CallerID(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextUserID).(uuid.UUID)
	return v, ok
}
