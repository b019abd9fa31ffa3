package sentiment

import "resto_dashboard/internal/domain"

// Polarity thresholds; scores inside [-Threshold, Threshold] fall back to the rating.
const Threshold = 0.1

// Estimator scores text polarity in [-1, 1].
type Estimator interface {
	Polarity(text string) float64
}

type Classifier struct{ est Estimator }

func NewClassifier(e Estimator) *Classifier {
	if e == nil {
		e = Default
	}
	return &Classifier{est: e}
}

func (c *Classifier) Classify(comment string, rating float64) domain.Sentiment {
	return Label(c.est.Polarity(comment), rating)
}

func (c *Classifier) Polarity(text string) float64 { return c.est.Polarity(text) }

// Label applies the decision rule to an already computed polarity.
func Label(p, rating float64) domain.Sentiment {
	switch {
	case p > Threshold:
		return domain.Positive
	case p < -Threshold:
		return domain.Negative
	case rating <= 2:
		return domain.Negative
	case rating == 3:
		return domain.Neutral
	default:
		return domain.Positive
	}
}

// Classify uses the built-in lexicon.
func Classify(comment string, rating float64) domain.Sentiment {
	return Label(Default.Polarity(comment), rating)
}
