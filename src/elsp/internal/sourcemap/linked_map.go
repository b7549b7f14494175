package sourcemap

import (
	"iter"

	"github.com/uber/embedded-lsp/src/elsp/entity"
)

// LinkedMap pairs offsets inside one generated document that carry the same meaning.
// Both sides of each mapping point into that document.
type LinkedMap struct {
	*SourceMap
}

// NewLinkedMap builds a LinkedMap from linked code mappings.
func NewLinkedMap(mappings []entity.CodeMapping) *LinkedMap {
	return &LinkedMap{SourceMap: New(mappings)}
}

// GetLinkedOffsets yields every offset mirrored with offset, following mappings in both directions.
func (m *LinkedMap) GetLinkedOffsets(offset int, filter entity.CodeFilter) iter.Seq[int] {
	return func(yield func(int) bool) {
		for linked := range m.ToGeneratedOffsets(offset, filter) {
			if !yield(linked) {
				return
			}
		}
		for linked := range m.ToSourceOffsets(offset, filter) {
			if !yield(linked) {
				return
			}
		}
	}
}
