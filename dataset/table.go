package dataset

import (
	"context"
	"fmt"

	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

// Missing is the value index used for values a record does not define.
const Missing = -1

/*
Attribute is a nominal feature bound to its position among the
non-class attributes of a Table. That position indexes the values
of every Record of the table.
*/
type Attribute struct {
	Index   int
	Feature *feature.DiscreteFeature
}

// Name returns the name of the attribute's feature.
func (a Attribute) Name() string {
	return a.Feature.Name()
}

// Len returns the size of the attribute's domain.
func (a Attribute) Len() int {
	return a.Feature.Len()
}

func (a Attribute) String() string {
	return a.Feature.Name()
}

/*
Record is a sample encoded as value indexes: Values holds the value
index for each attribute of its table (by Attribute.Index) and Class
holds the value index of the class attribute. Either may be Missing.
*/
type Record struct {
	Values []int
	Class  int
}

/*
Table is the immutable snapshot of a dataset a tree is grown from:
the attributes that may be used to split, the label (class attribute)
to predict and the encoded records. Records are guaranteed to define
every attribute value and a class value.
*/
type Table struct {
	Attributes []Attribute
	Label      *feature.DiscreteFeature
	Records    []Record
	// Dropped is the number of samples discarded for lacking a class value.
	Dropped int
}

/*
Encode takes a context, a dataset and the name of the class attribute and
returns a Table with the dataset's samples encoded as records, or an error
if the dataset cannot be used to grow a tree:
  * ErrUnknownClassAttribute if no feature has the given name
  * ErrInvalidClassAttribute if the class attribute is not discrete
  * ErrNonCategoricalFeature if any other feature is not discrete
  * ErrMissingValuePresent if a sample lacks a value for a non-class feature
  * ErrRepeatedDomainValue if the domain of a feature lists a value twice

Samples lacking a value for the class attribute are dropped and counted on
the table's Dropped field. Errors are wrapped with context and can be
compared with errors.Cause.
*/
func Encode(ctx context.Context, d Dataset, label string) (*Table, error) {
	var labelFeature feature.Feature
	for _, f := range d.Features() {
		if f.Name() == label {
			labelFeature = f
			break
		}
	}
	if labelFeature == nil {
		return nil, errors.Wrapf(ErrUnknownClassAttribute, "class attribute %s", label)
	}
	lf, ok := labelFeature.(*feature.DiscreteFeature)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidClassAttribute, "class attribute %s", label)
	}
	if err := lf.CheckDomain(); err != nil {
		return nil, errors.Wrap(ErrRepeatedDomainValue, err.Error())
	}
	t := &Table{Label: lf}
	for _, f := range d.Features() {
		if f.Name() == label {
			continue
		}
		df, ok := f.(*feature.DiscreteFeature)
		if !ok {
			return nil, errors.Wrapf(ErrNonCategoricalFeature, "feature %s", f.Name())
		}
		if err := df.CheckDomain(); err != nil {
			return nil, errors.Wrap(ErrRepeatedDomainValue, err.Error())
		}
		t.Attributes = append(t.Attributes, Attribute{Index: len(t.Attributes), Feature: df})
	}
	samples, err := d.Samples(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "retrieving samples")
	}
	t.Records = make([]Record, 0, len(samples))
	for i, s := range samples {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		class, err := valueIndex(lf, s)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		if class == Missing {
			t.Dropped++
			continue
		}
		r := Record{Values: make([]int, len(t.Attributes)), Class: class}
		for _, a := range t.Attributes {
			v, err := valueIndex(a.Feature, s)
			if err != nil {
				return nil, errors.Wrapf(err, "sample %d", i)
			}
			if v == Missing {
				return nil, errors.Wrapf(ErrMissingValuePresent, "sample %d: feature %s", i, a.Name())
			}
			r.Values[a.Index] = v
		}
		t.Records = append(t.Records, r)
	}
	return t, nil
}

// Attribute takes a name and returns the table attribute with it and true,
// or a zero Attribute and false if there is none.
func (t *Table) Attribute(name string) (Attribute, bool) {
	for _, a := range t.Attributes {
		if a.Name() == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Features returns the features of the table's attributes followed by its label.
func (t *Table) Features() []feature.Feature {
	features := make([]feature.Feature, 0, len(t.Attributes)+1)
	for _, a := range t.Attributes {
		features = append(features, a.Feature)
	}
	return append(features, t.Label)
}

func valueIndex(f *feature.DiscreteFeature, s Sample) (int, error) {
	v, err := s.ValueFor(f)
	if err != nil {
		return Missing, errors.Wrapf(err, "retrieving value for feature %s", f.Name())
	}
	if v == nil {
		return Missing, nil
	}
	vs, ok := v.(string)
	if !ok {
		vs = fmt.Sprintf("%v", v)
	}
	i, ok := f.ValueIndex(vs)
	if !ok {
		return Missing, errors.Errorf("value %q is not in the domain of feature %s", vs, f.Name())
	}
	return i, nil
}
