package feature

import "fmt"

/*
Criterion represents the constraint a tree edge imposes on a discrete
feature: that it takes a specific value of its domain.
*/
type Criterion struct {
	feature *DiscreteFeature
	index   int
}

/*
NewCriterion takes a DiscreteFeature and a value index and returns a
Criterion constraining the feature to the value with that index.
*/
func NewCriterion(f *DiscreteFeature, index int) *Criterion {
	return &Criterion{f, index}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (c *Criterion) Feature() *DiscreteFeature {
	return c.feature
}

// Value returns the value the feature is constrained to.
func (c *Criterion) Value() string {
	return c.feature.Value(c.index)
}

/*
SatisfiedBy takes a value index for the criterion's feature and returns
whether it satisfies the criterion.
*/
func (c *Criterion) SatisfiedBy(index int) bool {
	return c.index == index
}

func (c *Criterion) String() string {
	return fmt.Sprintf("%s = %s", c.feature.Name(), c.Value())
}
