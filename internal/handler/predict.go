package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/queue"
)

// Model is the inference collaborator as seen from the HTTP layer: it
// translates a loosely-typed payload into the fixed-order feature vector
// and evaluates the frozen regression.  inference.Artifact satisfies it.
type Model interface {
	Translate(payload map[string]any) ([]float64, error)
	Predict(features []float64) (float64, error)
}

// PredictHandler runs the inference pipeline and persists the result.
type PredictHandler struct {
	Model       Model
	Predictions PredictionStore
	// Publish emits a prediction.created event after a successful store.
	// Best effort and optional; nil disables eventing.
	Publish func(ctx context.Context, ev queue.PredictionCreatedEvent)
}

func NewPredictHandler(model Model, predictions PredictionStore) *PredictHandler {
	return &PredictHandler{Model: model, Predictions: predictions}
}

// Predict handles POST /predict.  The request body is decoded as a free
// map so the stored record keeps the client's payload verbatim.  Any
// translation or inference failure aborts before persistence — no
// partial record is ever written.
func (h *PredictHandler) Predict(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	features, err := h.Model.Translate(payload)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	price, err := h.Model.Predict(features)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	price = math.Round(price*100) / 100

	raw, err := json.Marshal(payload)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Predictions.Create(ctx, userID, string(raw), price)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save prediction failed"})
	}

	if h.Publish != nil {
		h.Publish(context.WithoutCancel(c.Request().Context()), queue.PredictionCreatedEvent{
			PredictionID: id,
			UserID:       userID,
			Price:        price,
			CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"predicted_price": price,
		"prediction_id":   id,
	})
}
