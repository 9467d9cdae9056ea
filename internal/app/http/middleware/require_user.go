package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser guards endpoints that only make sense for an authenticated
// user, like checkout creation. Unauthenticated callers get a distinct
// not_authenticated outcome, never a quota denial.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentActor(c).LoggedIn() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}
		c.Next()
	}
}
