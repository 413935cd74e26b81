/*
Package inputsample provides an implementation of dataset.Sample that is read
from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"io"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

/*
readSample represents a sample whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type readSample struct {
	obtainedValues        map[string]interface{}
	undefinedValue        string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []feature.Feature
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(*feature.DiscreteFeature) error
	RejectValueFor(*feature.DiscreteFeature, string) error
}

/*
New takes an io.Reader, a slice of features, a
FeatureValueRequester and an undefinedValue coding string
and returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then parsing the values from the reader. Values are only
requested once, the first time they are needed.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. Lines will be read from the
reader until one with a valid value for the feature is found,
rejecting the rest with the FeatureValueRequester's RejectValueFor
method. The undefinedValue string followed by the '\n' character
will be interpreted as an undefined value.

Attempting to obtain a value for a feature not in the given
features slice or that is not discrete returns an error.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester, undefinedValue string) dataset.Sample {
	scanner := bufio.NewScanner(r)
	return &readSample{make(map[string]interface{}), undefinedValue, scanner, featureValueRequester, features}
}

func (rs *readSample) ValueFor(f feature.Feature) (interface{}, error) {
	value, ok := rs.obtainedValues[f.Name()]
	if ok {
		return value, nil
	}
	var featureWithInfo feature.Feature
	for _, feature := range rs.features {
		if f.Name() == feature.Name() {
			featureWithInfo = feature
		}
	}
	if featureWithInfo == nil {
		return nil, errors.Errorf("have no information about feature %s, do not know how to read its value", f.Name())
	}
	df, ok := featureWithInfo.(*feature.DiscreteFeature)
	if !ok {
		return nil, errors.Errorf("do not know how to read a value for features of type %T", featureWithInfo)
	}
	err := rs.featureValueRequester.RequestValueFor(df)
	if err != nil {
		return nil, err
	}
	return rs.readDiscreteFeature(df)
}

func (rs *readSample) readDiscreteFeature(df *feature.DiscreteFeature) (interface{}, error) {
	var err error
	for rs.scanner.Scan() {
		line := rs.scanner.Text()
		if line == rs.undefinedValue {
			rs.obtainedValues[df.Name()] = nil
			return nil, nil
		}
		if _, ok := df.ValueIndex(line); ok {
			rs.obtainedValues[df.Name()] = line
			return line, nil
		}
		err = rs.featureValueRequester.RejectValueFor(df, line)
		if err != nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	err = rs.scanner.Err()
	if err != nil {
		return nil, err
	}
	return nil, errors.New("EOF when requesting value")
}
