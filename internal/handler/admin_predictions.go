package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/repository"
)

type adminPredictionItem struct {
	ID        uint64          `json:"id"`
	UserEmail string          `json:"user_email"`
	UserID    uint64          `json:"user_id"`
	Input     json.RawMessage `json:"input"`
	Price     float64         `json:"price"`
	Favorite  bool            `json:"favorite"`
	CreatedAt string          `json:"created_at"`
}

// ListPredictions handles GET /admin/predictions: every stored
// prediction, newest first, annotated with the owner's email or
// "Unknown" when the owner was deleted.
func (h *AdminHandler) ListPredictions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	preds, err := h.Predictions.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := make([]adminPredictionItem, 0, len(preds))
	for _, p := range preds {
		items = append(items, adminPredictionItem{
			ID:        p.ID,
			UserEmail: p.OwnerEmail,
			UserID:    p.UserID,
			Input:     json.RawMessage(p.InputData),
			Price:     p.Price,
			Favorite:  p.Favorite,
			CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, items)
}

// DeletePrediction handles DELETE /admin/predictions/:id, ignoring
// ownership entirely.
func (h *AdminHandler) DeletePrediction(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid prediction id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Predictions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPredictionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Prediction not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Prediction deleted successfully"})
}
