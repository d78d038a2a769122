package handler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/middleware"
	"github.com/iliyamo/house-price-api/internal/model"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// UserStore is the slice of the user repository the handlers need.
// Declaring it here lets tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uint64) error
	ToggleBlocked(ctx context.Context, id uint64) (bool, error)
	Count(ctx context.Context) (int64, error)
	RecentCount(ctx context.Context, limit int) (int, error)
}

// AdminStore is the admin repository surface used by handlers.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (model.Admin, error)
	GetByID(ctx context.Context, id uint64) (model.Admin, error)
}

// PredictionStore is the prediction repository surface used by handlers.
type PredictionStore interface {
	Create(ctx context.Context, userID uint64, inputData string, price float64) (uint64, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Prediction, error)
	DeleteOwned(ctx context.Context, userID, id uint64) error
	ToggleFavoriteOwned(ctx context.Context, userID, id uint64) (bool, error)
	ListAll(ctx context.Context) ([]model.PredictionWithOwner, error)
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	Stats(ctx context.Context) (model.PredictionStats, error)
	RecentCount(ctx context.Context, limit int) (int, error)
}

// getUserID extracts the principal id stored by the user guard.
func getUserID(c echo.Context) (uint64, error) {
	return principalID(c, middleware.CtxUserID)
}

// getAdminID extracts the principal id stored by the admin guard.
func getAdminID(c echo.Context) (uint64, error) {
	return principalID(c, middleware.CtxAdminID)
}

func principalID(c echo.Context, key string) (uint64, error) {
	switch t := c.Get(key).(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid " + key + " in context")
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
