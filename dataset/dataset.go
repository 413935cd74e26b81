package dataset

import (
	"context"

	"github.com/pbanos/tdidt/feature"
)

/*
Dataset represents a collection of samples described by a list of features.

Its Features method returns the features for which samples may define values,
in declared order.

Its Samples method returns the samples it contains.

Its Count method returns the number of samples it contains.

Implementations are read-only: growing a tree never modifies them.
*/
type Dataset interface {
	Features() []feature.Feature
	Samples(context.Context) ([]Sample, error)
	Count(context.Context) (int, error)
}

type memoryDataset struct {
	features []feature.Feature
	samples  []Sample
}

/*
New takes a slice of features and a slice of samples and returns a dataset
kept in memory built with them.
*/
func New(features []feature.Feature, samples []Sample) Dataset {
	return &memoryDataset{features, samples}
}

func (s *memoryDataset) Features() []feature.Feature {
	return s.features
}

func (s *memoryDataset) Samples(ctx context.Context) ([]Sample, error) {
	return s.samples, nil
}

func (s *memoryDataset) Count(ctx context.Context) (int, error) {
	return len(s.samples), nil
}
