package domain

import "errors"

// failure classes shared by the client, pager and feedback packages.
// callers wrap these with context and classify with errors.Is.
var (
	ErrNetwork       = errors.New("network failure")
	ErrMalformedItem = errors.New("malformed item")
	ErrMalformedList = errors.New("malformed id list")
	ErrInvalidWindow = errors.New("invalid page window")
	ErrValidation    = errors.New("validation failure")
	ErrStorage       = errors.New("storage failure")
)

// IsMalformed reports whether err is a malformed item or list failure
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedItem) || errors.Is(err, ErrMalformedList)
}
