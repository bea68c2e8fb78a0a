package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeffandersoncharriot/ByteBoard/internal/auth"
	"github.com/jeffandersoncharriot/ByteBoard/internal/user"
)

// userKey is where RequireAuth parks the resolved account in gin's
// per-request store.
const userKey = "currentUser"

// RequireAuth rejects unauthenticated requests with 401 and makes the
// requester's account available to downstream handlers. Expired sessions
// are purged as a side effect of the lookup.
func RequireAuth(authorizer *auth.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := authorizer.CurrentUser(c.Request.Context(), c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errorMessage": auth.ErrUnauthenticated.Error(),
			})
			return
		}

		c.Set(userKey, u)
		c.Next()
	}
}

// CurrentUser returns the account RequireAuth resolved, or nil when the
// route was not guarded.
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}
