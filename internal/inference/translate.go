package inference

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// featureOrder is the training-time feature order.  Translate builds the
// vector in exactly this order; Load refuses artifacts that disagree.
var featureOrder = []string{
	"area",
	"bedrooms",
	"bathrooms",
	"stories",
	"mainroad",
	"guestroom",
	"basement",
	"hotwaterheating",
	"airconditioning",
	"parking",
	"prefarea",
	"furnishingstatus",
}

// Translate converts a decoded JSON payload into the ordered numeric
// feature vector.  Numeric fields accept JSON numbers and numeric
// strings; the six yes/no fields map case-insensitively ("yes" -> 1,
// anything else -> 0); furnishingstatus goes through the fitted encoder.
// Any missing key, unparseable number or unknown furnishing category is
// an error and nothing is predicted.
func (a *Artifact) Translate(payload map[string]any) ([]float64, error) {
	area, err := floatField(payload, "area")
	if err != nil {
		return nil, err
	}
	bedrooms, err := intField(payload, "bedrooms")
	if err != nil {
		return nil, err
	}
	bathrooms, err := intField(payload, "bathrooms")
	if err != nil {
		return nil, err
	}
	stories, err := intField(payload, "stories")
	if err != nil {
		return nil, err
	}
	parking, err := intField(payload, "parking")
	if err != nil {
		return nil, err
	}

	var yn [6]float64
	for i, key := range []string{"mainroad", "guestroom", "basement", "hotwaterheating", "airconditioning", "prefarea"} {
		v, err := yesNoField(payload, key)
		if err != nil {
			return nil, err
		}
		yn[i] = v
	}

	furnishing, err := stringField(payload, "furnishingstatus")
	if err != nil {
		return nil, err
	}
	code, err := a.FurnishingStatus.Transform(furnishing)
	if err != nil {
		return nil, fmt.Errorf("furnishingstatus: %w", err)
	}

	return []float64{
		area,
		bedrooms,
		bathrooms,
		stories,
		yn[0], // mainroad
		yn[1], // guestroom
		yn[2], // basement
		yn[3], // hotwaterheating
		yn[4], // airconditioning
		parking,
		yn[5], // prefarea
		float64(code),
	}, nil
}

// floatField parses a required numeric field that may arrive as a JSON
// number or a numeric string.
func floatField(payload map[string]any, key string) (float64, error) {
	v, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number", key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

// intField parses a required integer field.  JSON numbers are truncated
// toward zero; strings must be whole numbers.
func intField(payload map[string]any, key string) (float64, error) {
	v, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch t := v.(type) {
	case float64:
		return math.Trunc(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}

// yesNoField maps a required binary categorical field: "yes" in any case
// becomes 1, any other value becomes 0.  Only absence is an error.
func yesNoField(payload map[string]any, key string) (float64, error) {
	v, ok := payload[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	if strings.EqualFold(strings.TrimSpace(fmt.Sprint(v)), "yes") {
		return 1, nil
	}
	return 0, nil
}

// stringField extracts a required string field.
func stringField(payload map[string]any, key string) (string, error) {
	v, ok := payload[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}
