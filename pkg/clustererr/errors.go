// Package clustererr defines the sentinel error kinds shared by every
// engine and the driver. All are precondition failures: they are raised
// before any iteration begins and never leave a partial result behind.
package clustererr

import "errors"

var (
	// ErrInvalidDistance: input is not a symmetric, zero-diagonal distance
	// store.
	ErrInvalidDistance = errors.New("clustering: invalid distance matrix")

	// ErrInvalidK: K is empty, contains a duplicate or out-of-range value.
	ErrInvalidK = errors.New("clustering: invalid K")

	// ErrInvalidSampleSize: scalOSil sub-sample size n < 2 or n > N.
	ErrInvalidSampleSize = errors.New("clustering: invalid sub-sample size")

	// ErrInvalidRepeats: scalOSil ns < 1 or rep < 1.
	ErrInvalidRepeats = errors.New("clustering: invalid repeat count")

	// ErrInvalidVariant: variant tag not recognised by the engine.
	ErrInvalidVariant = errors.New("clustering: invalid variant")

	// ErrInvalidInitMethod: init method tag not in the recognised set.
	ErrInvalidInitMethod = errors.New("clustering: invalid init method")
)
