package model

import (
	"fmt"
	"math"
)

const (
	ClassifierLogisticRegression = "logistic_regression"
	ClassifierMultinomialNB      = "multinomial_nb"
)

// Classifier turns a feature vector into per-class probabilities ordered by class index.
type Classifier interface {
	PredictProba(x Vector) ([]float64, error)
	NumClasses() int
	NumFeatures() int
}

// ClassifierSpec is the exported form of a fitted classifier.
type ClassifierSpec struct {
	Type           string      `json:"type"`
	MultiClass     string      `json:"multi_class,omitempty"`
	NFeatures      int         `json:"n_features"`
	Coef           [][]float64 `json:"coef,omitempty"`
	Intercept      []float64   `json:"intercept,omitempty"`
	FeatureLogProb [][]float64 `json:"feature_log_prob,omitempty"`
	ClassLogPrior  []float64   `json:"class_log_prior,omitempty"`
}

// NewClassifier builds the classifier named by spec.Type.
func NewClassifier(spec ClassifierSpec) (Classifier, error) {
	switch spec.Type {
	case ClassifierLogisticRegression:
		return newLogisticRegression(spec)
	case ClassifierMultinomialNB:
		return newMultinomialNB(spec)
	default:
		return nil, fmt.Errorf("%w: classifier type %q", ErrInvalidArtifact, spec.Type)
	}
}

// LogisticRegression scores classes with a linear model. A single coefficient row is a binary model.
type LogisticRegression struct {
	coef       [][]float64
	intercept  []float64
	multiClass string
	nFeatures  int
}

func newLogisticRegression(spec ClassifierSpec) (*LogisticRegression, error) {
	if len(spec.Coef) == 0 {
		return nil, fmt.Errorf("%w: logistic regression has no coefficients", ErrInvalidArtifact)
	}
	if err := checkRows(spec.Coef, spec.NFeatures, "coef"); err != nil {
		return nil, err
	}
	intercept := spec.Intercept
	if intercept == nil {
		intercept = make([]float64, len(spec.Coef))
	}
	if len(intercept) != len(spec.Coef) {
		return nil, fmt.Errorf("%w: %d intercepts for %d coefficient rows", ErrInvalidArtifact, len(intercept), len(spec.Coef))
	}
	mc := spec.MultiClass
	switch mc {
	case "", "auto":
		if len(spec.Coef) == 1 {
			mc = "ovr"
		} else {
			mc = "multinomial"
		}
	case "multinomial", "ovr":
	default:
		return nil, fmt.Errorf("%w: multi_class %q", ErrInvalidArtifact, mc)
	}
	return &LogisticRegression{
		coef:       spec.Coef,
		intercept:  intercept,
		multiClass: mc,
		nFeatures:  spec.NFeatures,
	}, nil
}

func (m *LogisticRegression) NumClasses() int {
	if len(m.coef) == 1 {
		return 2
	}
	return len(m.coef)
}

func (m *LogisticRegression) NumFeatures() int { return m.nFeatures }

func (m *LogisticRegression) PredictProba(x Vector) ([]float64, error) {
	if x.Dim != m.nFeatures {
		return nil, fmt.Errorf("%w: got %d, model expects %d", ErrDimensionMismatch, x.Dim, m.nFeatures)
	}
	decision := make([]float64, len(m.coef))
	for i, row := range m.coef {
		decision[i] = x.Dot(row) + m.intercept[i]
	}

	if len(decision) == 1 {
		d := decision[0]
		if m.multiClass == "multinomial" {
			return softmax([]float64{-d, d}), nil
		}
		p := sigmoid(d)
		return []float64{1 - p, p}, nil
	}

	if m.multiClass == "multinomial" {
		return softmax(decision), nil
	}

	var total float64
	for i, d := range decision {
		decision[i] = sigmoid(d)
		total += decision[i]
	}
	if total > 0 {
		for i := range decision {
			decision[i] /= total
		}
	}
	return decision, nil
}

// MultinomialNB is a multinomial naive Bayes model over non-negative features.
type MultinomialNB struct {
	featureLogProb [][]float64
	classLogPrior  []float64
	nFeatures      int
}

func newMultinomialNB(spec ClassifierSpec) (*MultinomialNB, error) {
	if len(spec.FeatureLogProb) < 2 {
		return nil, fmt.Errorf("%w: naive bayes needs at least two classes", ErrInvalidArtifact)
	}
	if err := checkRows(spec.FeatureLogProb, spec.NFeatures, "feature_log_prob"); err != nil {
		return nil, err
	}
	if len(spec.ClassLogPrior) != len(spec.FeatureLogProb) {
		return nil, fmt.Errorf("%w: %d class priors for %d classes", ErrInvalidArtifact, len(spec.ClassLogPrior), len(spec.FeatureLogProb))
	}
	return &MultinomialNB{
		featureLogProb: spec.FeatureLogProb,
		classLogPrior:  spec.ClassLogPrior,
		nFeatures:      spec.NFeatures,
	}, nil
}

func (m *MultinomialNB) NumClasses() int  { return len(m.featureLogProb) }
func (m *MultinomialNB) NumFeatures() int { return m.nFeatures }

func (m *MultinomialNB) PredictProba(x Vector) ([]float64, error) {
	if x.Dim != m.nFeatures {
		return nil, fmt.Errorf("%w: got %d, model expects %d", ErrDimensionMismatch, x.Dim, m.nFeatures)
	}
	jll := make([]float64, len(m.featureLogProb))
	for i, row := range m.featureLogProb {
		jll[i] = x.Dot(row) + m.classLogPrior[i]
	}
	lse := logSumExp(jll)
	for i := range jll {
		jll[i] = math.Exp(jll[i] - lse)
	}
	return jll, nil
}

// ArgMax returns the index of the largest value; ties go to the lowest index.
func ArgMax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

func checkRows(rows [][]float64, nFeatures int, field string) error {
	if nFeatures <= 0 {
		return fmt.Errorf("%w: n_features must be positive", ErrInvalidArtifact)
	}
	for i, row := range rows {
		if len(row) != nFeatures {
			return fmt.Errorf("%w: %s row %d has %d values, want %d", ErrInvalidArtifact, field, i, len(row), nFeatures)
		}
	}
	return nil
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

func softmax(values []float64) []float64 {
	out := make([]float64, len(values))
	lse := logSumExp(values)
	for i, v := range values {
		out[i] = math.Exp(v - lse)
	}
	return out
}

func logSumExp(values []float64) float64 {
	peak := math.Inf(-1)
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if math.IsInf(peak, -1) {
		return peak
	}
	var sum float64
	for _, v := range values {
		sum += math.Exp(v - peak)
	}
	return peak + math.Log(sum)
}
