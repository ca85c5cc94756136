package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/service"
)

// ProfileHandler /api 下的用户文档接口，不走信封，错误为 {"error": ...} + HTTP 状态码
type ProfileHandler struct {
	users *service.UserService
	log   *zap.Logger
}

func NewProfileHandler(u *service.UserService, l *zap.Logger) *ProfileHandler {
	return &ProfileHandler{users: u, log: l}
}

func (h *ProfileHandler) Mount(g *gin.RouterGroup) {
	g.GET("", h.root)
	g.GET("/users/:uid", h.getUser)
	g.POST("/users/:uid", h.postUser)
}

func (h *ProfileHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend API is running!"})
}

func (h *ProfileHandler) getUser(c *gin.Context) {
	uid := c.Param("uid")
	u, err := h.users.GetUser(c.Request.Context(), uid)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.log.Error("get user", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, u.Document())
}

func (h *ProfileHandler) postUser(c *gin.Context) {
	uid := c.Param("uid")
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || fields == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be a JSON object"})
		return
	}
	if err := h.users.UpsertUser(c.Request.Context(), uid, fields); err != nil {
		if domain.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("upsert user", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User profile updated successfully", "uid": uid})
}
