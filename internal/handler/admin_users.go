package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/repository"
)

// AdminHandler exposes fleet oversight to admin principals.  All methods
// assume the admin guard already ran; none of them applies per-owner
// scoping.
type AdminHandler struct {
	Users       UserStore
	Predictions PredictionStore
}

func NewAdminHandler(users UserStore, predictions PredictionStore) *AdminHandler {
	return &AdminHandler{Users: users, Predictions: predictions}
}

type adminUserItem struct {
	ID              uint64 `json:"id"`
	Email           string `json:"email"`
	IsBlocked       bool   `json:"is_blocked"`
	CreatedAt       string `json:"created_at"`
	PredictionCount int64  `json:"prediction_count"`
}

// ListUsers handles GET /admin/users.  Each user carries a per-user
// prediction count.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := make([]adminUserItem, 0, len(users))
	for _, u := range users {
		n, err := h.Predictions.CountByUser(ctx, u.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		items = append(items, adminUserItem{
			ID:              u.ID,
			Email:           u.Email,
			IsBlocked:       u.IsBlocked,
			CreatedAt:       u.CreatedAt.UTC().Format(time.RFC3339),
			PredictionCount: n,
		})
	}
	return c.JSON(http.StatusOK, items)
}

// DeleteUser handles DELETE /admin/users/:id.  Only the user row is
// removed; the user's predictions stay behind as orphans and show up
// with owner "Unknown" in admin listings.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// ToggleBlockUser handles PUT /admin/users/:id/block and returns the new
// flag value.  The flag is bookkeeping only: nothing in the login path
// or the guards consults it.
func (h *AdminHandler) ToggleBlockUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	blocked, err := h.Users.ToggleBlocked(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "User block status updated",
		"is_blocked": blocked,
	})
}
