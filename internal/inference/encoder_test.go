package inference

import "testing"

func TestTransformKnownClasses(t *testing.T) {
	enc := &LabelEncoder{Classes: []string{"furnished", "semi-furnished", "unfurnished"}}
	cases := map[string]int{
		"furnished":      0,
		"semi-furnished": 1,
		"unfurnished":    2,
	}
	for value, want := range cases {
		got, err := enc.Transform(value)
		if err != nil {
			t.Fatalf("Transform(%q): %v", value, err)
		}
		if got != want {
			t.Errorf("Transform(%q) = %d, want %d", value, got, want)
		}
	}
}

func TestTransformUnseenCategoryFails(t *testing.T) {
	enc := &LabelEncoder{Classes: []string{"furnished", "semi-furnished", "unfurnished"}}
	for _, value := range []string{"luxury", "Furnished", "semi furnished", ""} {
		if _, err := enc.Transform(value); err == nil {
			t.Errorf("Transform(%q) succeeded, want hard error", value)
		}
	}
}
