package httpapi

import (
	"context"
	"errors"
	"net/http"

	"warehouse-platform/internal/auth"
	"warehouse-platform/internal/rbac"
	"warehouse-platform/internal/user"

	"github.com/gin-gonic/gin"
)

// UserStore is the read surface the user-management handlers need.
type UserStore interface {
	List(ctx context.Context) ([]user.User, error)
	FindByIdentity(ctx context.Context, identity string) (user.User, error)
}

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth  *auth.Service
	Users UserStore
}

/* ===================== AUTH ===================== */

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (h Handlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	var actor *rbac.Principal
	if p, ok := rbac.PrincipalFrom(c.Request.Context()); ok {
		actor = &p
	}

	pair, err := h.Auth.Register(c.Request.Context(), auth.RegisterRequest{
		Name:     req.Name,
		Identity: req.Email,
		Secret:   req.Password,
		Role:     req.Role,
	}, actor)
	if err != nil {
		var ve *auth.ValidationError
		switch {
		case errors.As(err, &ve):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
		case errors.Is(err, auth.ErrIdentityTaken):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
		case errors.Is(err, auth.ErrUnknownRole):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	c.JSON(http.StatusCreated, pair)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var ve *auth.ValidationError
		switch {
		case errors.As(err, &ve):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
		case errors.Is(err, auth.ErrInvalidCredentials):
			// One uniform answer for unknown identity and wrong secret.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case errors.Is(err, auth.ErrTooManyAttempts):
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh mints a new access token from a refresh token in the
// Authorization header. An absent or unusable token yields 204, not an
// error: this endpoint is shared with anonymous callers.
func (h Handlers) Refresh(c *gin.Context) {
	pair, issued, err := h.Auth.Refresh(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}
	if !issued {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h Handlers) Logout(c *gin.Context) {
	p, ok := rbac.PrincipalFrom(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), p.Identity); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) Me(c *gin.Context) {
	p, ok := rbac.PrincipalFrom(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"identity":    p.Identity,
		"role":        p.Role,
		"permissions": p.Permissions,
	})
}

/* ===================== USERS ===================== */

func (h Handlers) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user listing failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h Handlers) GetUser(c *gin.Context) {
	identity := c.Param("identity")
	u, err := h.Users.FindByIdentity(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

func (h Handlers) ChangeUserRole(c *gin.Context) {
	p, _ := rbac.PrincipalFrom(c.Request.Context())

	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	identity := c.Param("identity")

	err := h.Auth.ChangeRole(c.Request.Context(), identity, req.Role, p.Identity)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownRole):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		case errors.Is(err, user.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "role change failed"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) DeleteUser(c *gin.Context) {
	p, _ := rbac.PrincipalFrom(c.Request.Context())
	identity := c.Param("identity")

	if err := h.Auth.DeleteUser(c.Request.Context(), identity, p.Identity); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user deletion failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
