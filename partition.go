package tdidt

import (
	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/tree"
	"github.com/pkg/errors"
)

/*
Partition represents a partition of a set of records according to an
attribute into subsets, one per value of the attribute's domain, with
the information gain the split provides to predict the label.
*/
type Partition struct {
	Attribute       dataset.Attribute
	Subsets         [][]dataset.Record
	InformationGain float64
}

/*
SplitByAttribute takes a slice of records and an attribute and returns a
slice with a subset of the records for each value of the attribute's domain,
indexed by value index. Records keep their relative order within each
subset. An error wrapping tree.ErrOutOfDomainValue is returned if a record
has a value that is not in the attribute's domain.
*/
func SplitByAttribute(records []dataset.Record, a dataset.Attribute) ([][]dataset.Record, error) {
	subsets := make([][]dataset.Record, a.Len())
	for i, r := range records {
		v := r.Values[a.Index]
		if v < 0 || v >= len(subsets) {
			return nil, errors.Wrapf(tree.ErrOutOfDomainValue, "record %d: attribute %s, value index %d", i, a.Name(), v)
		}
		subsets[v] = append(subsets[v], r)
	}
	return subsets, nil
}

/*
NewPartition takes a slice of records, an attribute and the number of values
of the label and returns the partition of the records for the attribute, or
an error if the records cannot be split on it.
*/
func NewPartition(records []dataset.Record, a dataset.Attribute, numClasses int) (*Partition, error) {
	subsets, err := SplitByAttribute(records, a)
	if err != nil {
		return nil, err
	}
	return &Partition{a, subsets, informationGain(records, subsets, numClasses)}, nil
}
