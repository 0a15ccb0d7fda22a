package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Xaan1506/NSTrack-Backend/internal/apperror"
	"github.com/Xaan1506/NSTrack-Backend/internal/db"
)

const (
	PrefixBearer   = "Bearer "
	CurrentUserKey = "currentUser"
)

// SessionResolver turns a bearer token into the user it was issued to.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*db.User, error)
}

func Auth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if !strings.HasPrefix(authHeader, PrefixBearer) {
			_ = c.AbortWithError(401, apperror.Unauthorized())
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(PrefixBearer):])
		if tokenString == "" {
			_ = c.AbortWithError(401, apperror.Unauthorized())
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), tokenString)
		if err != nil {
			_ = c.AbortWithError(401, err)
			return
		}

		c.Set(CurrentUserKey, user)

		c.Next()
	}
}

// CurrentUser returns the user stored by Auth. It panics on routes that are
// not behind Auth.
func CurrentUser(c *gin.Context) *db.User {
	return c.MustGet(CurrentUserKey).(*db.User)
}
