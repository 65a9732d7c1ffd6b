package greenops

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Equivalency errors, comparable with errors.Is.
var (
	// ErrInvalidUnit is returned for a carbon unit NormalizeToKg does not know.
	ErrInvalidUnit = constError("invalid carbon unit")

	// ErrNegativeValue is returned for a negative carbon quantity.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow is returned for NaN or infinite quantities.
	ErrCalculationOverflow = constError("calculation overflow")
)
