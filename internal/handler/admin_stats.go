package handler

import (
	"context"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/house-price-api/internal/inference"
)

// recentWindow caps the "recent activity" counts in the stats response.
const recentWindow = 5

// Stats handles GET /admin/stats.  All price aggregates are 0 when no
// predictions exist; the aggregation query guarantees that without a
// division-by-zero path.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	totalUsers, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	stats, err := h.Predictions.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	recentUsers, err := h.Users.RecentCount(ctx, recentWindow)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	recentPreds, err := h.Predictions.RecentCount(ctx, recentWindow)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total_users":              totalUsers,
		"total_predictions":        stats.Total,
		"avg_price":                round2(stats.AvgPrice),
		"max_price":                round2(stats.MaxPrice),
		"min_price":                round2(stats.MinPrice),
		"recent_users_count":       recentUsers,
		"recent_predictions_count": recentPreds,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ModelInfoHandler reports static metadata about the loaded artifact.
// Informational only; nothing is recomputed.
type ModelInfoHandler struct {
	Artifact    *inference.Artifact
	Predictions PredictionStore
}

func NewModelInfoHandler(artifact *inference.Artifact, predictions PredictionStore) *ModelInfoHandler {
	return &ModelInfoHandler{Artifact: artifact, Predictions: predictions}
}

// ModelInfo handles GET /admin/model-info.
func (h *ModelInfoHandler) ModelInfo(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	total, err := h.Predictions.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"model_type":        h.Artifact.ModelType,
		"features_count":    len(h.Artifact.FeatureNames),
		"feature_names":     h.Artifact.FeatureNames,
		"last_trained":      h.Artifact.LastTrained,
		"accuracy":          h.Artifact.Accuracy,
		"total_predictions": total,
	})
}
