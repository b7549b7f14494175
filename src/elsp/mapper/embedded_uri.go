package mapper

import (
	"net/url"
	"strings"

	"go.lsp.dev/uri"
)

// EmbeddedScheme is the URI scheme of documents generated from a source script.
const EmbeddedScheme = "embedded"

const _embeddedPrefix = EmbeddedScheme + "://"

// SourceToEmbeddedURI returns the URI under which plugins see the generated code codeID of source.
func SourceToEmbeddedURI(source uri.URI, codeID string) uri.URI {
	return uri.URI(_embeddedPrefix + url.PathEscape(codeID) + "/" + url.PathEscape(string(source)))
}

// EmbeddedURIToSource splits an embedded URI into its source URI and code ID.
// It returns false for URIs that are not embedded URIs.
func EmbeddedURIToSource(u uri.URI) (uri.URI, string, bool) {
	rest, ok := strings.CutPrefix(string(u), _embeddedPrefix)
	if !ok {
		return "", "", false
	}
	escapedID, escapedSource, ok := strings.Cut(rest, "/")
	if !ok || escapedID == "" || escapedSource == "" {
		return "", "", false
	}
	codeID, err := url.PathUnescape(escapedID)
	if err != nil {
		return "", "", false
	}
	source, err := url.PathUnescape(escapedSource)
	if err != nil {
		return "", "", false
	}
	return uri.URI(source), codeID, true
}

// IsEmbeddedURI reports whether u addresses generated code.
func IsEmbeddedURI(u uri.URI) bool {
	return strings.HasPrefix(string(u), _embeddedPrefix)
}
