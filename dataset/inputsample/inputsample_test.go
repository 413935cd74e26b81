package inputsample

import (
	"strings"
	"testing"

	"github.com/pbanos/tdidt/feature"
)

type recordingRequester struct {
	requested []string
	rejected  []string
}

func (rr *recordingRequester) RequestValueFor(f *feature.DiscreteFeature) error {
	rr.requested = append(rr.requested, f.Name())
	return nil
}

func (rr *recordingRequester) RejectValueFor(f *feature.DiscreteFeature, v string) error {
	rr.rejected = append(rr.rejected, v)
	return nil
}

func TestValueFor(t *testing.T) {
	color := feature.NewDiscreteFeature("color", []string{"red", "green"})
	size := feature.NewDiscreteFeature("size", []string{"small", "big"})
	rr := &recordingRequester{}
	s := New(strings.NewReader("blue\ngreen\n?\n"), []feature.Feature{color, size}, rr, "?")
	v, err := s.ValueFor(color)
	if err != nil || v != "green" {
		t.Fatalf("expected green, got %v (%v)", v, err)
	}
	v, err = s.ValueFor(color)
	if err != nil || v != "green" {
		t.Fatalf("expected green again, got %v (%v)", v, err)
	}
	v, err = s.ValueFor(size)
	if err != nil || v != nil {
		t.Fatalf("expected undefined size, got %v (%v)", v, err)
	}
	if len(rr.requested) != 2 || len(rr.rejected) != 1 || rr.rejected[0] != "blue" {
		t.Fatalf("unexpected requests %v and rejections %v", rr.requested, rr.rejected)
	}
	if _, err = s.ValueFor(feature.NewDiscreteFeature("taste", nil)); err == nil {
		t.Fatalf("expected error for unknown feature")
	}
}
