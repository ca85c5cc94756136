package handler

import (
	"github.com/gin-gonic/gin"

	"clinic-appointments/internal/core/auth"
	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/service"
	"clinic-appointments/internal/transport/http/ez"
)

func claimsOf(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ez.KeyClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

func viewerOf(c *gin.Context) service.Viewer {
	return service.Viewer{
		UserID: c.GetString(ez.KeyUserID),
		Email:  c.GetString(ez.KeyEmail),
		Admin:  c.GetString(ez.KeyRole) == domain.RoleAdmin,
	}
}
