package sentiment

import "strings"

// Category is the only sentiment vocabulary exposed past this package. Raw
// service labels never travel further than Normalize.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// Normalizer maps raw service labels onto canonical categories. A prediction
// whose confidence sits below Floor is not trusted to assert polarity and is
// demoted to Neutral whatever its label says.
type Normalizer struct {
	Floor float64
}

func NewNormalizer(floor float64) Normalizer {
	return Normalizer{Floor: floor}
}

// Normalize is total: any label string and any confidence yield exactly one
// of the three categories, with Neutral as the conservative fallback.
func (n Normalizer) Normalize(rawLabel string, confidence float64) Category {
	if confidence < n.Floor {
		return Neutral
	}
	return n.NormalizeLabel(rawLabel)
}

// NormalizeLabel maps a raw label with no confidence attached. Unrecognized
// labels, the empty string, and the literal "neutral" all land on Neutral.
func (n Normalizer) NormalizeLabel(rawLabel string) Category {
	switch strings.ToLower(strings.TrimSpace(rawLabel)) {
	case "positive", "pos":
		return Positive
	case "negative", "neg":
		return Negative
	default:
		return Neutral
	}
}
