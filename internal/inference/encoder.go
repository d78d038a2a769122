package inference

import "fmt"

// LabelEncoder maps known category strings to integer codes.  The class
// list is fixed at training time and shipped inside the model artifact;
// Transform returns the index of the value in that list.  A category the
// encoder has never seen is a hard error on this path — the live API must
// reject unknown furnishing statuses rather than default them.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// Transform returns the integer code for a category.  Matching is exact:
// the encoder was fit on canonical lowercase labels and the API contract
// requires clients to send them verbatim.
func (e *LabelEncoder) Transform(value string) (int, error) {
	for i, c := range e.Classes {
		if c == value {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", value)
}
