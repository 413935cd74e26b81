/*
Package csv provides functions to read datasets from CSV streams.
*/
package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

// UndefinedValue is the CSV cell content for values a sample does not define.
const UndefinedValue = "?"

/*
ReadDataset takes an io.Reader for a CSV stream and a slice of features and
returns a dataset.Dataset kept in memory with the samples parsed from the
reader or an error.

The header or first row of the CSV content is expected to consist of the names
of the features in the given slice (the last column may be an unknown one, that
will be ignored). The rest of the rows should consist of valid values for the
all features and/or the '?' string to indicate an undefined value.
*/
func ReadDataset(reader io.Reader, features []feature.Feature) (dataset.Dataset, error) {
	return readDataset(reader, features, true)
}

/*
ReadUncheckedDataset works like ReadDataset but does not check that the values
of discrete features belong to their domains, so that records to classify can
carry values a tree never saw and have them reported one by one.
*/
func ReadUncheckedDataset(reader io.Reader, features []feature.Feature) (dataset.Dataset, error) {
	return readDataset(reader, features, false)
}

func readDataset(reader io.Reader, features []feature.Feature, check bool) (dataset.Dataset, error) {
	samples := []dataset.Sample{}
	err := readDatasetBySample(reader, features, check, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(features, samples), nil
}

/*
ReadDatasetBySample takes an io.Reader for a CSV stream, a slice of features and a
lambda function on an integer and a dataset.Sample that returns a boolean value.
It parses the samples from the reader and for each it calls the lambda function
with the sample and its index as parameters. If the lambda function returns true,
it will continue processing the next sample, otherwise it will stop. An error is
returned if something goes wrong when reading the file or parsing a sample.
Values are not checked against the domain of their features, as with
ReadUncheckedDataset.
*/
func ReadDatasetBySample(reader io.Reader, features []feature.Feature, lambda func(int, dataset.Sample) (bool, error)) error {
	return readDatasetBySample(reader, features, false, lambda)
}

func readDatasetBySample(reader io.Reader, features []feature.Feature, check bool, lambda func(int, dataset.Sample) (bool, error)) error {
	featuresByName := featureSliceToMap(features)
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	columns, err := parseFeaturesFromCSVHeader(header, featuresByName)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading body")
		}
		sample, err := parseSampleFromCSVRow(row, columns, check)
		if err != nil {
			return errors.Wrapf(err, "parsing line %d", l)
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string and a slice of features,
opens the file to which the filepath points to (os.Stdin if the filepath
is empty) and uses ReadDataset to return a dataset.Dataset or an error read
from it. It will return an error if the given filepath cannot be opened
for reading.
*/
func ReadDatasetFromFilePath(ctx context.Context, filepath string, features []feature.Feature) (dataset.Dataset, error) {
	return readDatasetFromFilePath(ctx, filepath, features, true)
}

// ReadUncheckedDatasetFromFilePath is ReadDatasetFromFilePath using ReadUncheckedDataset.
func ReadUncheckedDatasetFromFilePath(ctx context.Context, filepath string, features []feature.Feature) (dataset.Dataset, error) {
	return readDatasetFromFilePath(ctx, filepath, features, false)
}

func readDatasetFromFilePath(ctx context.Context, filepath string, features []feature.Feature, check bool) (dataset.Dataset, error) {
	var d dataset.Dataset
	err := withFile(ctx, filepath, func(f *os.File) error {
		var err error
		d, err = readDataset(f, features, check)
		return err
	})
	return d, err
}

/*
ReadDatasetBySampleFromFilePath takes a context, a filepath string, a slice of
features and a lambda function, opens the file to which the filepath points to
(os.Stdin if the filepath is empty) and uses ReadDatasetBySample to stream its
samples to the lambda function. Reading stops with the context's error if it is
cancelled.
*/
func ReadDatasetBySampleFromFilePath(ctx context.Context, filepath string, features []feature.Feature, lambda func(int, dataset.Sample) (bool, error)) error {
	return withFile(ctx, filepath, func(f *os.File) error {
		return ReadDatasetBySample(f, features, func(i int, s dataset.Sample) (bool, error) {
			if err := ctx.Err(); err != nil {
				return false, err
			}
			return lambda(i, s)
		})
	})
}

func withFile(ctx context.Context, filepath string, read func(*os.File) error) error {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return errors.Wrap(err, "opening CSV file")
		}
		defer f.Close()
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	err = read(f)
	if err != nil {
		err = errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return err
}

func parseFeaturesFromCSVHeader(header []string, features map[string]feature.Feature) ([]feature.Feature, error) {
	featureOrder := []feature.Feature{}
	for i, name := range header {
		f, ok := features[name]
		if ok {
			featureOrder = append(featureOrder, f)
		} else {
			if i != len(header)-1 {
				return nil, errors.Errorf("parsing header: reference to unknown feature %s", name)
			}
		}
	}
	return featureOrder, nil
}

func parseSampleFromCSVRow(row []string, featureOrder []feature.Feature, check bool) (dataset.Sample, error) {
	featureValues := make(map[string]interface{})
	for i, f := range featureOrder {
		v := row[i]
		var value interface{}
		var err error
		var ok bool
		if v != UndefinedValue {
			if _, ok = f.(*feature.ContinuousFeature); ok {
				value, err = strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "converting %s to float64", v)
				}
			} else {
				value = v
			}
		}
		if _, discrete := f.(*feature.DiscreteFeature); discrete && !check {
			featureValues[f.Name()] = value
			continue
		}
		if ok, err = f.Valid(value); !ok {
			return nil, errors.Wrapf(err, "invalid value %v of type %T for feature %s", value, value, f.Name())
		}
		featureValues[f.Name()] = value
	}
	return dataset.NewSample(featureValues), nil
}

func featureSliceToMap(features []feature.Feature) map[string]feature.Feature {
	result := make(map[string]feature.Feature)
	for _, f := range features {
		result[f.Name()] = f
	}
	return result
}
