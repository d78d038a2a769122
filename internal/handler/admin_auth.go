package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/auth"
	"github.com/iliyamo/house-price-api/internal/middleware"
	"github.com/iliyamo/house-price-api/internal/repository"
	"github.com/iliyamo/house-price-api/internal/utils"
)

// AdminAuthHandler mirrors AuthHandler for admin principals.  It resolves
// against the admins table and issues tokens into the admin registry, a
// namespace fully disjoint from user tokens.
type AdminAuthHandler struct {
	Admins AdminStore
	Tokens *auth.Registry
}

func NewAdminAuthHandler(admins AdminStore, tokens *auth.Registry) *AdminAuthHandler {
	return &AdminAuthHandler{Admins: admins, Tokens: tokens}
}

type adminPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login verifies admin credentials and issues an admin token.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid admin credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid admin credentials"})
	}

	token, err := h.Tokens.Issue(a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"admin": adminPart{ID: a.ID, Email: a.Email, Role: a.Role},
	})
}

// Me returns the authenticated admin's profile.
func (h *AdminAuthHandler) Me(c echo.Context) error {
	adminID, err := getAdminID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Admins.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Admin not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         a.ID,
		"email":      a.Email,
		"role":       a.Role,
		"created_at": a.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Logout revokes the presented admin token.
func (h *AdminAuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.CtxToken).(string)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	h.Tokens.Revoke(token)
	return c.JSON(http.StatusOK, echo.Map{"message": "Admin logged out successfully"})
}
