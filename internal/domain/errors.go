package domain

import "errors"

var (
	// ErrInvalidInput is returned when the request payload is absent or is not valid JSON
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownOperation is returned when the operation selector is not recognised
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrPrediction is returned when feature encoding or model invocation fails for a batch
	ErrPrediction = errors.New("prediction failed")

	// ErrModelLoad is returned when a model artifact cannot be loaded
	ErrModelLoad = errors.New("model load failed")

	// ErrModelNotLoaded is returned when a prediction is requested before a model is available
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrFeatureMismatch is returned when a feature vector does not match the model's expected width
	ErrFeatureMismatch = errors.New("feature length mismatch")

	// ErrArtifactNotFound is returned when a model artifact does not exist in its source
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// InputError describes a payload that could not be read or decoded.
// It matches ErrInvalidInput with errors.Is.
type InputError struct {
	Detail string
}

func (e *InputError) Error() string {
	return e.Detail
}

// Is reports whether target is ErrInvalidInput
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}
