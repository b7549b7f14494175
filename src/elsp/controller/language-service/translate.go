package languageservice

import (
	"context"
	"encoding/json"
	"iter"
	"math"
	"slices"

	"github.com/uber/embedded-lsp/src/elsp/controller/documents"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"github.com/uber/embedded-lsp/src/elsp/mapper"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// positionArg is a request position in the coordinates of the document a plugin sees, together
// with the capabilities of the segment it was mapped through. Mirrored positions were never mapped.
type positionArg struct {
	pos      protocol.Position
	info     entity.CodeInformation
	mirrored bool
}

// hit is a plugin result tagged with the document the plugin saw.
type hit[T any] struct {
	value T
	uri   uri.URI
}

// atPositions yields every distinct generated position of a source position that the filter allows.
func atPositions(filter entity.CodeFilter) func(positionArg, *documents.Map) iter.Seq[positionArg] {
	return func(arg positionArg, m *documents.Map) iter.Seq[positionArg] {
		return func(yield func(positionArg) bool) {
			seen := make(map[protocol.Position]struct{})
			for pos, mapping := range m.ToGeneratedPositions(arg.pos, filter) {
				if _, ok := seen[pos]; ok {
					continue
				}
				seen[pos] = struct{}{}
				if !yield(positionArg{pos: pos, info: mapping.Data}) {
					return
				}
			}
		}
	}
}

// atOverlap yields the generated range overlapping a source selection.
func atOverlap(filter entity.CodeFilter) func(protocol.Range, *documents.Map) iter.Seq[protocol.Range] {
	return func(r protocol.Range, m *documents.Map) iter.Seq[protocol.Range] {
		return func(yield func(protocol.Range) bool) {
			if found, ok := m.FindOverlapGeneratedRange(r, filter); ok {
				yield(found)
			}
		}
	}
}

// ifMapped passes the argument through unchanged for generated documents with at least one segment
// the filter allows.
func ifMapped[A any](filter entity.CodeFilter) func(A, *documents.Map) iter.Seq[A] {
	return func(arg A, m *documents.Map) iter.Seq[A] {
		return func(yield func(A) bool) {
			if slices.ContainsFunc(m.Mappings(), func(mapping entity.CodeMapping) bool {
				return filter(mapping.Data)
			}) {
				yield(arg)
			}
		}
	}
}

// wholeDocument is the range covering every character of a document.
func wholeDocument() protocol.Range {
	return protocol.Range{
		End: protocol.Position{Line: math.MaxUint32, Character: math.MaxUint32},
	}
}

// toSourceRange translates a range of any document a plugin may report, source or generated.
func (c *controller) toSourceRange(ctx context.Context, u uri.URI, r protocol.Range, filter entity.CodeFilter) (uri.URI, protocol.Range, bool) {
	if !mapper.IsEmbeddedURI(u) {
		return u, r, true
	}
	return c.documents.SourceRange(ctx, u, r, c.cfg.RangeFallback, filter)
}

// toSourceLocation translates a location of any document a plugin may report.
func (c *controller) toSourceLocation(ctx context.Context, loc protocol.Location, filter entity.CodeFilter) (protocol.Location, bool) {
	u, r, ok := c.toSourceRange(ctx, loc.URI, loc.Range, filter)
	return protocol.Location{URI: u, Range: r}, ok
}

// mapOf returns the map of the generated document addressed by an embedded URI.
func (c *controller) mapOf(ctx context.Context, u uri.URI) (*documents.Map, bool) {
	s, code, err := c.documents.Resolve(ctx, u)
	if err != nil || code == nil {
		return nil, false
	}
	return c.documents.GetMap(s, code), true
}

// toSourceEdits translates text edits of a generated document, dropping those without a translation.
func (c *controller) toSourceEdits(m *documents.Map, edits []protocol.TextEdit, filter entity.CodeFilter) []protocol.TextEdit {
	if len(edits) == 0 {
		return edits
	}
	translated := make([]protocol.TextEdit, 0, len(edits))
	for _, edit := range edits {
		r, ok := m.ToSourceRange(edit.Range, false, filter)
		if !ok {
			continue
		}
		translated = append(translated, protocol.TextEdit{Range: r, NewText: edit.NewText})
	}
	return translated
}

// decodeData converts an opaque data payload, as it arrives from the client, into a typed struct.
func decodeData[T any](data any) (T, bool) {
	var result T
	if data == nil {
		return result, false
	}
	if typed, ok := data.(T); ok {
		return typed, true
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, false
	}
	return result, true
}

func concat[R any](results [][]R) []R {
	return slices.Concat(results...)
}
