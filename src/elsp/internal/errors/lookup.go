package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
	"go.lsp.dev/uri"
)

// UUIDNotFoundError is returned when no session is stored under the UUID.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

func (e *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", e.UUID)
}

// NoSessionFoundError is returned when a context carries no session UUID.
type NoSessionFoundError struct{}

func (e *NoSessionFoundError) Error() string {
	return "no session in context"
}

// ScriptNotFoundError is returned when no source script is open for the URI.
type ScriptNotFoundError struct {
	URI uri.URI
}

func (e *ScriptNotFoundError) Error() string {
	return fmt.Sprintf("no open script for %q", e.URI)
}

// IsScriptNotFound reports whether a ScriptNotFoundError is part of the error chain.
func IsScriptNotFound(e error) bool {
	var nf *ScriptNotFoundError
	return stderr.As(e, &nf)
}
