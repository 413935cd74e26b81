package tdidt

import (
	"math"

	"github.com/pbanos/tdidt/dataset"
)

// Epsilon is the tolerance used when comparing information gains
// and class shares.
const Epsilon = 1e-6

// ClassCounts takes a slice of records and the number of values of the
// label and returns the number of records with each class, indexed by
// value index.
func ClassCounts(records []dataset.Record, numClasses int) []int {
	counts := make([]int, numClasses)
	for _, r := range records {
		counts[r.Class]++
	}
	return counts
}

/*
Entropy takes a slice of records and the number of values of the label
and returns the Shannon entropy in bits of the class distribution among
the records. The entropy of an empty slice is 0.
*/
func Entropy(records []dataset.Record, numClasses int) float64 {
	if len(records) == 0 {
		return 0.0
	}
	return entropy(ClassCounts(records, numClasses), len(records))
}

func entropy(counts []int, total int) float64 {
	var result float64
	n := float64(total)
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		result -= p * math.Log2(p)
	}
	return result
}

/*
InformationGain takes a slice of records, an attribute and the number of
values of the label and returns the reduction of entropy obtained by
splitting the records on the attribute, or an error if a record has a value
outside the attribute's domain.
*/
func InformationGain(records []dataset.Record, a dataset.Attribute, numClasses int) (float64, error) {
	subsets, err := SplitByAttribute(records, a)
	if err != nil {
		return 0.0, err
	}
	return informationGain(records, subsets, numClasses), nil
}

func informationGain(records []dataset.Record, subsets [][]dataset.Record, numClasses int) float64 {
	if len(records) == 0 {
		return 0.0
	}
	gain := Entropy(records, numClasses)
	total := float64(len(records))
	for _, s := range subsets {
		if len(s) == 0 {
			continue
		}
		gain -= float64(len(s)) / total * Entropy(s, numClasses)
	}
	return gain
}

// GainsEqual returns whether two gains are equal within Epsilon.
func GainsEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
