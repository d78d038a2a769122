// Package inference adapts loosely-typed JSON prediction requests into
// the fixed-order numeric feature vector the frozen model consumes, and
// evaluates that model.  The model itself is an offline-trained artifact
// loaded once at process start and treated as read-only; this package
// never retrains or refits anything.
package inference

import (
	"encoding/json"
	"fmt"
	"os"
)

// Predictor is the inference collaborator: an opaque function from a
// feature vector to a price.  Handlers depend on this interface so tests
// can swap in a fixed model.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// Artifact is the frozen model as exported by the offline training run:
// the declared model type, the ordered feature names, the fitted
// furnishing-status encoder and the regression coefficients.
type Artifact struct {
	ModelType        string        `json:"model_type"`
	FeatureNames     []string      `json:"feature_names"`
	FurnishingStatus *LabelEncoder `json:"furnishingstatus_encoder"`
	Weights          []float64     `json:"weights"`
	Intercept        float64       `json:"intercept"`
	LastTrained      string        `json:"last_trained"`
	Accuracy         string        `json:"accuracy"`
}

// Load reads and validates a model artifact from a JSON file.  The
// feature name list must match the request translation order exactly;
// a mismatch means the artifact and the service disagree about the
// model's input contract and starting up would serve garbage.
func Load(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	if a.ModelType == "" {
		return fmt.Errorf("model_type is empty")
	}
	if len(a.FeatureNames) != len(featureOrder) {
		return fmt.Errorf("expected %d feature names, got %d", len(featureOrder), len(a.FeatureNames))
	}
	for i, name := range featureOrder {
		if a.FeatureNames[i] != name {
			return fmt.Errorf("feature %d is %q, want %q", i, a.FeatureNames[i], name)
		}
	}
	if len(a.Weights) != len(a.FeatureNames) {
		return fmt.Errorf("%d weights for %d features", len(a.Weights), len(a.FeatureNames))
	}
	if a.FurnishingStatus == nil || len(a.FurnishingStatus.Classes) == 0 {
		return fmt.Errorf("furnishingstatus encoder is missing")
	}
	return nil
}

// Predict evaluates the regression: dot product of the feature vector
// with the trained weights plus the intercept.
func (a *Artifact) Predict(features []float64) (float64, error) {
	if len(features) != len(a.Weights) {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), len(a.Weights))
	}
	price := a.Intercept
	for i, f := range features {
		price += f * a.Weights[i]
	}
	return price, nil
}
