package feature

import "github.com/pkg/errors"

/*
Feature represents a property that can be observed
*/
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite, ordered set: a nominal attribute. The position
of a value in that set is its value index.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
	index           map[string]int
}

/*
ContinuousFeature represents a property that can be observed and that can take
a numeric value. Trees cannot be grown on them, but metadata may declare them
and they must be recognised to be rejected.
*/
type ContinuousFeature struct {
	name string
}

/*
NewDiscreteFeature takes a name string and a slice of available value strings
and returns a discrete feature with the given names and available values.
Features with repeated values cannot be used to encode data: their domain
must be checked with CheckDomain.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	index := make(map[string]int, len(availableValues))
	for i, v := range availableValues {
		if _, ok := index[v]; !ok {
			index[v] = i
		}
	}
	return &DiscreteFeature{name, availableValues, index}
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Valid receives an interface value and returns a boolean and an error. When the
value parameter is included in the available values fo the feature, the method
returns true and nil. Otherwise it returns false and an error describing the
reason.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	vs, ok := value.(string)
	if !ok {
		return false, errors.Errorf("discrete feature %s expects string value, got %T value", df.Name(), value)
	}
	if _, ok = df.index[vs]; !ok {
		return false, errors.Errorf("discrete feature %s got unknown value %s", df.Name(), vs)
	}
	return true, nil
}

/*
CheckDomain returns an error naming the first value that appears more than
once in the feature's available values, or nil if all of them are distinct.
*/
func (df *DiscreteFeature) CheckDomain() error {
	for i, v := range df.availableValues {
		if df.index[v] != i {
			return errors.Errorf("discrete feature %s has repeated value %q", df.name, v)
		}
	}
	return nil
}

/*
AvailableValues returns a string slice with the values available for the feature
in declared order.
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

// Len returns the size of the feature's domain.
func (df *DiscreteFeature) Len() int {
	return len(df.availableValues)
}

/*
ValueIndex takes a value and returns its index in the domain of the feature
and true, or -1 and false if the value does not belong to it.
*/
func (df *DiscreteFeature) ValueIndex(value string) (int, bool) {
	i, ok := df.index[value]
	if !ok {
		return -1, false
	}
	return i, true
}

/*
Value takes a value index and returns the corresponding value of the domain.
It returns an empty string for indexes out of the domain.
*/
func (df *DiscreteFeature) Value(i int) string {
	if i < 0 || i >= len(df.availableValues) {
		return ""
	}
	return df.availableValues[i]
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Valid receives an interface value and returns a boolean and an error. When the
value parameter is a float64 it returns true and nil, otherwise it returns
false and an error describing the reason.
*/
func (cf *ContinuousFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	_, ok := value.(float64)
	if !ok {
		return false, errors.Errorf("continuous feature %s expects float64 value, got %T value", cf.Name(), value)
	}
	return true, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}
