package errors

import (
	"fmt"

	"go.lsp.dev/uri"
)

// DocumentSizeLimitError rejects document text larger than the configured limit.
type DocumentSizeLimitError struct {
	URI   uri.URI
	Size  int64
	Limit int64
}

func (e *DocumentSizeLimitError) Error() string {
	return fmt.Sprintf("%q is %d bytes, over the %d byte limit", e.URI, e.Size, e.Limit)
}

// DocumentOutdatedError rejects a change whose version is not newer than the stored one.
type DocumentOutdatedError struct {
	URI      uri.URI
	Current  int32
	Received int32
}

func (e *DocumentOutdatedError) Error() string {
	return fmt.Sprintf("change to %q has version %d, document is already at %d", e.URI, e.Received, e.Current)
}
