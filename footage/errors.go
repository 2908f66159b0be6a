package footage

import "errors"

var (
	ErrInvalidInteger = errors.New("invalid integer")
	ErrFrameOverflow  = errors.New("frame overflow")
	ErrFormat         = errors.New("invalid format")
	ErrReelMismatch   = errors.New("reel exceeds hours")
	ErrNegativeResult = errors.New("negative result")

	// ErrNoInput is returned when there is nothing to convert. Callers
	// usually render a placeholder instead of an error message.
	ErrNoInput   = errors.New("no input")
	ErrFrameRate = errors.New("unsupported frame rate")
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrInvalidInteger, "invalid_integer"},
	{ErrFrameOverflow, "frame_overflow"},
	{ErrFormat, "format"},
	{ErrReelMismatch, "reel_mismatch"},
	{ErrNegativeResult, "negative_result"},
	{ErrNoInput, "no_input"},
	{ErrFrameRate, "frame_rate"},
}

// Kind returns the short machine name of the validation error wrapped by
// err, or the empty string if err is not a validation error.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

// IsValidation reports whether err is one of the recoverable input
// errors produced by this package.
func IsValidation(err error) bool {
	return Kind(err) != ""
}
