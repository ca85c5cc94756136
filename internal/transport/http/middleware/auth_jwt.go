package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/core/auth"
	"clinic-appointments/internal/transport/http/ez"
	resp "clinic-appointments/internal/transport/http/response"
)

func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Verify(c.Request.Context(), strings.TrimPrefix(ah, "Bearer "))
		switch {
		case errors.Is(err, auth.ErrDisabled):
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "account disabled"))
			return
		case errors.Is(err, auth.ErrRevoked):
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "token revoked"))
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(ez.KeyClaims, claims)
		c.Set(ez.KeyUserID, claims.UID)
		c.Set(ez.KeyRole, claims.Role)
		c.Set(ez.KeyEmail, claims.Email)
		c.Next()
	}
}
