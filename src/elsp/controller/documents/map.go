package documents

import (
	"iter"

	"github.com/uber/embedded-lsp/src/elsp/entity"
	textdocument "github.com/uber/embedded-lsp/src/elsp/internal/text-document"
	"github.com/uber/embedded-lsp/src/elsp/internal/sourcemap"
	"go.lsp.dev/protocol"
)

// Map translates positions and ranges between a source document and a generated document.
type Map struct {
	*sourcemap.SourceMap
	SourceDocument    *textdocument.TextDocument
	GeneratedDocument *textdocument.TextDocument
}

// NewMap wraps a source map with the two documents it relates.
func NewMap(m *sourcemap.SourceMap, source, generated *textdocument.TextDocument) *Map {
	return &Map{
		SourceMap:         m,
		SourceDocument:    source,
		GeneratedDocument: generated,
	}
}

// IdentityMap maps a document onto itself with every feature enabled.
func IdentityMap(doc *textdocument.TextDocument) *Map {
	return NewMap(sourcemap.New([]entity.CodeMapping{{
		SourceLength:    doc.Len(),
		GeneratedLength: doc.Len(),
		Data:            entity.CodeInformation{Features: entity.FeatureAll},
	}}), doc, doc)
}

// IsIdentity reports whether both sides of the map are the same document.
func (m *Map) IsIdentity() bool {
	return m.SourceDocument == m.GeneratedDocument
}

// ToGeneratedPositions yields every generated position of a source position.
func (m *Map) ToGeneratedPositions(pos protocol.Position, filter entity.CodeFilter) iter.Seq2[protocol.Position, entity.CodeMapping] {
	return mapPositions(m.SourceDocument, m.GeneratedDocument, pos, func(offset int) iter.Seq2[int, entity.CodeMapping] {
		return m.ToGeneratedOffsets(offset, filter)
	})
}

// ToSourcePositions yields every source position of a generated position.
func (m *Map) ToSourcePositions(pos protocol.Position, filter entity.CodeFilter) iter.Seq2[protocol.Position, entity.CodeMapping] {
	return mapPositions(m.GeneratedDocument, m.SourceDocument, pos, func(offset int) iter.Seq2[int, entity.CodeMapping] {
		return m.ToSourceOffsets(offset, filter)
	})
}

// ToGeneratedPosition returns the first generated position of a source position.
func (m *Map) ToGeneratedPosition(pos protocol.Position, filter entity.CodeFilter) (protocol.Position, bool) {
	return firstPosition(m.ToGeneratedPositions(pos, filter))
}

// ToSourcePosition returns the first source position of a generated position.
func (m *Map) ToSourcePosition(pos protocol.Position, filter entity.CodeFilter) (protocol.Position, bool) {
	return firstPosition(m.ToSourcePositions(pos, filter))
}

// ToGeneratedRanges yields every generated range of a source range.
func (m *Map) ToGeneratedRanges(r protocol.Range, fallbackToAnyMatch bool, filter entity.CodeFilter) iter.Seq2[protocol.Range, entity.CodeMapping] {
	return mapRanges(m.SourceDocument, m.GeneratedDocument, r, func(start, end int) iter.Seq2[sourcemap.OffsetRange, entity.CodeMapping] {
		return m.SourceMap.ToGeneratedRanges(start, end, fallbackToAnyMatch, filter)
	})
}

// ToSourceRanges yields every source range of a generated range.
func (m *Map) ToSourceRanges(r protocol.Range, fallbackToAnyMatch bool, filter entity.CodeFilter) iter.Seq2[protocol.Range, entity.CodeMapping] {
	return mapRanges(m.GeneratedDocument, m.SourceDocument, r, func(start, end int) iter.Seq2[sourcemap.OffsetRange, entity.CodeMapping] {
		return m.SourceMap.ToSourceRanges(start, end, fallbackToAnyMatch, filter)
	})
}

// ToGeneratedRange returns the first generated range of a source range.
func (m *Map) ToGeneratedRange(r protocol.Range, fallbackToAnyMatch bool, filter entity.CodeFilter) (protocol.Range, bool) {
	return firstRange(m.ToGeneratedRanges(r, fallbackToAnyMatch, filter))
}

// ToSourceRange returns the first source range of a generated range.
func (m *Map) ToSourceRange(r protocol.Range, fallbackToAnyMatch bool, filter entity.CodeFilter) (protocol.Range, bool) {
	return firstRange(m.ToSourceRanges(r, fallbackToAnyMatch, filter))
}

// FindOverlapGeneratedRange translates an arbitrary source selection, approximating near segment edges.
func (m *Map) FindOverlapGeneratedRange(r protocol.Range, filter entity.CodeFilter) (protocol.Range, bool) {
	start, end := m.SourceDocument.OffsetAt(r.Start), m.SourceDocument.OffsetAt(r.End)
	found, ok := m.SourceMap.FindOverlapGeneratedRange(start, end, filter)
	if !ok {
		return protocol.Range{}, false
	}
	return offsetRange(m.GeneratedDocument, found), true
}

// FindOverlapSourceRange translates an arbitrary generated selection, approximating near segment edges.
func (m *Map) FindOverlapSourceRange(r protocol.Range, filter entity.CodeFilter) (protocol.Range, bool) {
	start, end := m.GeneratedDocument.OffsetAt(r.Start), m.GeneratedDocument.OffsetAt(r.End)
	found, ok := m.SourceMap.FindOverlapSourceRange(start, end, filter)
	if !ok {
		return protocol.Range{}, false
	}
	return offsetRange(m.SourceDocument, found), true
}

// LinkedMap exposes the linked code of a generated document in position coordinates.
type LinkedMap struct {
	*sourcemap.LinkedMap
	Document *textdocument.TextDocument
}

// GetLinkedPositions yields the positions mirroring pos.
func (m *LinkedMap) GetLinkedPositions(pos protocol.Position, filter entity.CodeFilter) iter.Seq[protocol.Position] {
	return func(yield func(protocol.Position) bool) {
		for offset := range m.GetLinkedOffsets(m.Document.OffsetAt(pos), filter) {
			if !yield(m.Document.PositionAt(offset)) {
				return
			}
		}
	}
}

func mapPositions(from, to *textdocument.TextDocument, pos protocol.Position, offsets func(int) iter.Seq2[int, entity.CodeMapping]) iter.Seq2[protocol.Position, entity.CodeMapping] {
	return func(yield func(protocol.Position, entity.CodeMapping) bool) {
		for offset, mapping := range offsets(from.OffsetAt(pos)) {
			if !yield(to.PositionAt(offset), mapping) {
				return
			}
		}
	}
}

func mapRanges(from, to *textdocument.TextDocument, r protocol.Range, ranges func(int, int) iter.Seq2[sourcemap.OffsetRange, entity.CodeMapping]) iter.Seq2[protocol.Range, entity.CodeMapping] {
	return func(yield func(protocol.Range, entity.CodeMapping) bool) {
		for found, mapping := range ranges(from.OffsetAt(r.Start), from.OffsetAt(r.End)) {
			if !yield(offsetRange(to, found), mapping) {
				return
			}
		}
	}
}

func offsetRange(doc *textdocument.TextDocument, r sourcemap.OffsetRange) protocol.Range {
	return protocol.Range{
		Start: doc.PositionAt(r.Start),
		End:   doc.PositionAt(r.End),
	}
}

func firstPosition(seq iter.Seq2[protocol.Position, entity.CodeMapping]) (protocol.Position, bool) {
	for pos := range seq {
		return pos, true
	}
	return protocol.Position{}, false
}

func firstRange(seq iter.Seq2[protocol.Range, entity.CodeMapping]) (protocol.Range, bool) {
	for r := range seq {
		return r, true
	}
	return protocol.Range{}, false
}
