package dataset

import (
	"context"
	"testing"

	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

var (
	color = feature.NewDiscreteFeature("color", []string{"red", "green"})
	size  = feature.NewDiscreteFeature("size", []string{"small", "big"})
	ripe  = feature.NewDiscreteFeature("ripe", []string{"no", "yes"})
)

func TestEncode(t *testing.T) {
	samples := []Sample{
		NewSample(map[string]interface{}{"color": "green", "size": "big", "ripe": "no"}),
		NewSample(map[string]interface{}{"color": "red", "size": "small"}),
		NewSample(map[string]interface{}{"color": "red", "size": "big", "ripe": "yes"}),
	}
	table, err := Encode(context.Background(), New([]feature.Feature{color, ripe, size}, samples), "ripe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Attributes) != 2 || table.Attributes[0].Name() != "color" || table.Attributes[1].Name() != "size" {
		t.Fatalf("expected attributes color and size in declared order, got %v", table.Attributes)
	}
	if table.Label != ripe {
		t.Fatalf("expected label ripe, got %v", table.Label)
	}
	if table.Dropped != 1 || len(table.Records) != 2 {
		t.Fatalf("expected 1 dropped sample and 2 records, got %d and %d", table.Dropped, len(table.Records))
	}
	r := table.Records[0]
	if r.Values[0] != 1 || r.Values[1] != 1 || r.Class != 0 {
		t.Fatalf("expected record {[1 1] 0}, got %v", r)
	}
	if a, ok := table.Attribute("size"); !ok || a.Index != 1 {
		t.Fatalf("expected attribute size at index 1, got %v %v", a, ok)
	}
}

func TestEncodeValidation(t *testing.T) {
	weight := feature.NewContinuousFeature("weight")
	repeatedRipe := feature.NewDiscreteFeature("ripe", []string{"yes", "no", "yes"})
	repeatedColor := feature.NewDiscreteFeature("color", []string{"red", "red", "green"})
	complete := NewSample(map[string]interface{}{"color": "red", "ripe": "yes", "weight": 1.0})
	testCases := []struct {
		name     string
		features []feature.Feature
		samples  []Sample
		label    string
		expected error
	}{
		{"unknown class", []feature.Feature{color, ripe}, nil, "taste", ErrUnknownClassAttribute},
		{"continuous class", []feature.Feature{color, weight}, nil, "weight", ErrInvalidClassAttribute},
		{"continuous feature", []feature.Feature{color, weight, ripe}, []Sample{complete}, "ripe", ErrNonCategoricalFeature},
		{"missing value", []feature.Feature{color, ripe}, []Sample{NewSample(map[string]interface{}{"ripe": "no"})}, "ripe", ErrMissingValuePresent},
		{"repeated class value", []feature.Feature{color, repeatedRipe}, nil, "ripe", ErrRepeatedDomainValue},
		{"repeated feature value", []feature.Feature{repeatedColor, ripe}, nil, "ripe", ErrRepeatedDomainValue},
	}
	for _, tc := range testCases {
		_, err := Encode(context.Background(), New(tc.features, tc.samples), tc.label)
		if errors.Cause(err) != tc.expected {
			t.Errorf("%s: expected error caused by %v, got %v", tc.name, tc.expected, err)
		}
	}
}

func TestEncodeOutOfDomainValue(t *testing.T) {
	samples := []Sample{NewSample(map[string]interface{}{"color": "blue", "ripe": "no"})}
	_, err := Encode(context.Background(), New([]feature.Feature{color, ripe}, samples), "ripe")
	if err == nil {
		t.Fatalf("expected error encoding value out of domain")
	}
}
