package yaml

import (
	"strings"
	"testing"

	"github.com/pbanos/tdidt/feature"
)

func TestReadFeatures(t *testing.T) {
	md := []byte(`
features:
  windy: [false, true]
  outlook: [sunny, overcast, rain]
  temperature: continuous
  play: ["no", "yes"]
`)
	features, err := ReadFeatures(md)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := []string{"windy", "outlook", "temperature", "play"}
	if len(features) != len(names) {
		t.Fatalf("expected %d features, got %d", len(names), len(features))
	}
	for i, f := range features {
		if f.Name() != names[i] {
			t.Fatalf("expected feature %d to be %s, got %s", i, names[i], f.Name())
		}
	}
	windy, ok := features[0].(*feature.DiscreteFeature)
	if !ok {
		t.Fatalf("expected windy to be discrete, got %T", features[0])
	}
	if i, ok := windy.ValueIndex("true"); !ok || i != 1 {
		t.Fatalf("expected value true at index 1, got %d (%v)", i, ok)
	}
	if _, ok := features[2].(*feature.ContinuousFeature); !ok {
		t.Fatalf("expected temperature to be continuous, got %T", features[2])
	}
}

func TestReadFeaturesErrors(t *testing.T) {
	testCases := []string{
		"other: 1\n",
		"features:\n  a: [x]\n  a: [y]\n",
		"features:\n  a: nominal\n",
		"features:\n  a: 3\n",
		"features: [",
		"features:\n  color: [red, red, green]\n",
	}
	for _, tc := range testCases {
		if _, err := ReadFeatures([]byte(tc)); err == nil {
			t.Errorf("expected error reading %q", tc)
		}
	}
}

func TestReadFeaturesRepeatedValue(t *testing.T) {
	_, err := ReadFeatures([]byte("features:\n  color: [red, red, green]\n"))
	if err == nil {
		t.Fatalf("expected error reading a repeated value")
	}
	if !strings.Contains(err.Error(), "color") || !strings.Contains(err.Error(), `"red"`) {
		t.Fatalf("expected error to name feature color and value red, got %v", err)
	}
}
