package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultUserIDHeader is the header the gateway uses to forward the
// authenticated user id
const DefaultUserIDHeader = "X-User-Id"

// Identity is an authenticated caller
type Identity struct {
	UserID string
}

// Provider resolves the caller of the current request, if any
type Provider interface {
	Identify(ctx context.Context) (Identity, bool)
}

type contextKey struct{}

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored on ctx
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// ContextProvider reads the identity placed on the request context by
// HeaderMiddleware
type ContextProvider struct{}

func (ContextProvider) Identify(ctx context.Context) (Identity, bool) {
	return FromContext(ctx)
}

// HeaderMiddleware copies the user id forwarded in header onto the request
// context. Requests without the header continue anonymously; operations that
// need an identity reject them.
func HeaderMiddleware(header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultUserIDHeader
	}
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(header)); userID != "" {
			ctx := WithIdentity(c.Request.Context(), Identity{UserID: userID})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
