package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(0.7)

	t.Run("synonyms are case-insensitive", func(t *testing.T) {
		assert.Equal(t, Positive, n.Normalize("POSITIVE", 0.9))
		assert.Equal(t, Positive, n.Normalize("pos", 0.9))
		assert.Equal(t, Positive, n.Normalize("Positive", 0.9))
		assert.Equal(t, Negative, n.Normalize("NEGATIVE", 0.9))
		assert.Equal(t, Negative, n.Normalize("Neg", 0.9))
	})

	t.Run("unknown labels degrade to neutral", func(t *testing.T) {
		assert.Equal(t, Neutral, n.Normalize("xyz", 0.9))
		assert.Equal(t, Neutral, n.Normalize("", 0.9))
		assert.Equal(t, Neutral, n.Normalize("neutral", 0.9))
		assert.Equal(t, Neutral, n.Normalize("positively", 0.9))
	})

	t.Run("confidence floor forces neutral", func(t *testing.T) {
		for _, label := range []string{"positive", "pos", "negative", "neg", "xyz"} {
			assert.Equal(t, Neutral, n.Normalize(label, 0.69), "label %q at 0.69", label)
		}
		assert.Equal(t, Positive, n.Normalize("positive", 0.70))
		assert.Equal(t, Negative, n.Normalize("negative", 0.70))
	})

	t.Run("total over odd inputs", func(t *testing.T) {
		inputs := []string{"  positive  ", "POS\n", "💥", "null", "undefined", "\x00"}
		confidences := []float64{0, 0.5, 0.7, 1, -1, 2}
		for _, label := range inputs {
			for _, c := range confidences {
				got := n.Normalize(label, c)
				assert.Contains(t, []Category{Positive, Negative, Neutral}, got)
			}
		}
	})

	t.Run("label-only mapping skips the floor", func(t *testing.T) {
		assert.Equal(t, Positive, n.NormalizeLabel("POS"))
		assert.Equal(t, Negative, n.NormalizeLabel("negative"))
		assert.Equal(t, Neutral, n.NormalizeLabel("whatever"))
	})

	t.Run("configurable floor", func(t *testing.T) {
		strict := NewNormalizer(0.95)
		assert.Equal(t, Neutral, strict.Normalize("positive", 0.9))
		assert.Equal(t, Positive, strict.Normalize("positive", 0.96))
	})
}
