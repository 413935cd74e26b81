package dataset

// ValidationError represents an error found when checking
// a dataset can be used to grow a tree.
type ValidationError string

const (
	// ErrInvalidClassAttribute is returned when the class attribute
	// is not categorical.
	ErrInvalidClassAttribute = ValidationError("class attribute is not categorical")
	// ErrUnknownClassAttribute is returned when the class attribute
	// is not among the dataset's features.
	ErrUnknownClassAttribute = ValidationError("class attribute is not defined")
	// ErrNonCategoricalFeature is returned when a feature attribute
	// is not categorical.
	ErrNonCategoricalFeature = ValidationError("feature is not categorical")
	// ErrMissingValuePresent is returned when a sample lacks a value
	// for a feature attribute.
	ErrMissingValuePresent = ValidationError("sample has a missing value")
	// ErrRepeatedDomainValue is returned when the domain of the class
	// attribute or a feature attribute lists a value more than once.
	ErrRepeatedDomainValue = ValidationError("domain has a repeated value")
)

func (ve ValidationError) Error() string {
	return string(ve)
}
