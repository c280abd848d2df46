package agent

import "errors"

// User-input validation errors. These never corrupt session state and are
// reported to the user as-is, distinct from provider failures.
var (
	ErrEmptyInput          = errors.New("empty input")
	ErrNoSearchYet         = errors.New("we haven't searched yet; tell me what you want first")
	ErrMissingDetailsIndex = errors.New("please specify a result number, e.g., 'details 2'")
	ErrDetailsOutOfRange   = errors.New("that number isn't on the current page of results; use 'more' to see more")
)

// IsUserError reports whether err is a user-input validation error rather
// than a provider failure.
func IsUserError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNoSearchYet) ||
		errors.Is(err, ErrMissingDetailsIndex) ||
		errors.Is(err, ErrDetailsOutOfRange)
}
