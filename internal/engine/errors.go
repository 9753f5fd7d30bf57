package engine

import "fmt"

// ConflictingMeasurementTypeError indicates a ritual definition references
// the same underlying exercise with two different measurement types. Caught
// at definition time, never at completion time.
type ConflictingMeasurementTypeError struct {
	Exercise string
	First    Measurement
	Second   Measurement
}

func (e ConflictingMeasurementTypeError) Error() string {
	return fmt.Sprintf("exercise %q measured as both %s and %s in one ritual", e.Exercise, e.First, e.Second)
}
