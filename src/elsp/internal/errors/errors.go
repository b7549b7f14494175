package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

// IsNotFound reports whether the error chain contains any of the not found errors of this package.
func IsNotFound(e error) bool {
	var (
		uuidErr    *UUIDNotFoundError
		sessionErr *NoSessionFoundError
		scriptErr  *ScriptNotFoundError
	)
	return stderr.As(e, &uuidErr) || stderr.As(e, &sessionErr) || stderr.As(e, &scriptErr)
}
