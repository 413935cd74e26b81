package tree

import (
	"fmt"
	"strings"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
)

/*
Prediction represents a prediction made by a decision tree leaf: the
distribution of the label's values among the training records that
reached it.
*/
type Prediction struct {
	label        *feature.DiscreteFeature
	counts       []int
	distribution []float64
	class        int
	weight       int
}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrOutOfDomainValue is the error returned when classifying a record whose value
for an attribute the tree splits on is not part of the attribute's domain.
*/
const ErrOutOfDomainValue = PredictionError("value out of the attribute's domain")

/*
ErrMissingValue is the error returned when classifying a sample that lacks a
value for an attribute the tree splits on.
*/
const ErrMissingValue = PredictionError("sample has no value for attribute")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
NewPrediction takes the label feature and a slice with the number of records
having each of its values (indexed by value index) and returns a prediction
with the normalized distribution of those counts. The predicted class is the
most frequent one, the lowest index winning ties. When all counts are zero
the prediction is degenerate: it has an all-zero distribution and no
predicted class.
*/
func NewPrediction(label *feature.DiscreteFeature, counts []int) *Prediction {
	p := &Prediction{
		label:        label,
		counts:       append([]int(nil), counts...),
		distribution: make([]float64, len(counts)),
		class:        dataset.Missing,
	}
	for _, c := range counts {
		p.weight += c
	}
	if p.weight == 0 {
		return p
	}
	for i, c := range counts {
		p.distribution[i] = float64(c) / float64(p.weight)
		if p.class == dataset.Missing || c > counts[p.class] {
			p.class = i
		}
	}
	return p
}

/*
Class returns the value index of the predicted class, or dataset.Missing
for a degenerate prediction.
*/
func (p *Prediction) Class() int {
	return p.class
}

// Degenerate returns whether the prediction was made from no records at all.
func (p *Prediction) Degenerate() bool {
	return p.weight == 0
}

/*
PredictedValue returns a string with the most probable value and a float64 with
its prevalence. Degenerate predictions return an empty string and 0.
*/
func (p *Prediction) PredictedValue() (value string, prob float64) {
	if p.class == dataset.Missing {
		return "", 0
	}
	return p.label.Value(p.class), p.distribution[p.class]
}

/*
Probabilities returns a map of string to float64 containing
the probabilities of each available value
*/
func (p *Prediction) Probabilities() map[string]float64 {
	probs := make(map[string]float64, len(p.distribution))
	for i, v := range p.distribution {
		probs[p.label.Value(i)] = v
	}
	return probs
}

// Distribution returns the probabilities of each value indexed by value index.
func (p *Prediction) Distribution() []float64 {
	return append([]float64(nil), p.distribution...)
}

// Counts returns the number of training records with each value.
func (p *Prediction) Counts() []int {
	return append([]int(nil), p.counts...)
}

/*
Weight returns the weight of the prediction: an
int equal to the number of training records from which
the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.weight
}

func (p *Prediction) String() string {
	return strings.Replace(fmt.Sprintf("%v", p.Probabilities()), "map", "", 1)
}
