package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/model"
	"github.com/iliyamo/house-price-api/internal/repository"
)

// HistoryHandler serves a user's own prediction records.  Every operation
// is scoped to the resolved principal; records owned by someone else are
// reported exactly like records that do not exist.
type HistoryHandler struct {
	Predictions PredictionStore
}

func NewHistoryHandler(predictions PredictionStore) *HistoryHandler {
	return &HistoryHandler{Predictions: predictions}
}

type historyItem struct {
	ID        uint64          `json:"id"`
	Input     json.RawMessage `json:"input"`
	Price     float64         `json:"price"`
	Favorite  bool            `json:"favorite"`
	CreatedAt string          `json:"created_at"`
}

func toHistoryItem(p model.Prediction) historyItem {
	return historyItem{
		ID:        p.ID,
		Input:     json.RawMessage(p.InputData), // stored verbatim, returned verbatim
		Price:     p.Price,
		Favorite:  p.Favorite,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /history: the caller's predictions, newest first.
func (h *HistoryHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	preds, err := h.Predictions.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := make([]historyItem, 0, len(preds))
	for _, p := range preds {
		items = append(items, toHistoryItem(p))
	}
	return c.JSON(http.StatusOK, items)
}

// Delete handles DELETE /history/:id with ownership scoping.
func (h *HistoryHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid prediction id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Predictions.DeleteOwned(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrPredictionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Prediction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

// ToggleFavorite handles PUT /history/:id/favorite and returns the new
// value.  Toggling twice restores the original state.
func (h *HistoryHandler) ToggleFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid prediction id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	fav, err := h.Predictions.ToggleFavoriteOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrPredictionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Prediction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "favorite toggled",
		"favorite": fav,
	})
}
