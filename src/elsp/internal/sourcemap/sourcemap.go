// Package sourcemap translates byte offsets and ranges between a source document and one generated document.
package sourcemap

import (
	"iter"
	"slices"
	"sort"
	"sync"

	"github.com/uber/embedded-lsp/src/elsp/entity"
)

// OffsetRange is a byte range [Start, End].
type OffsetRange struct {
	Start int
	End   int
}

// SourceMap is an immutable set of mappings for one (source, generated) document pair.
// Segments may overlap and need not be contiguous; every matching segment is reported in mapping order.
type SourceMap struct {
	mappings []entity.CodeMapping

	source    side
	generated side
}

// side gives one direction of translation its own lazily built lookup index.
type side struct {
	from func(entity.CodeMapping) (int, int)
	to   func(entity.CodeMapping) (int, int)

	once  sync.Once
	index *offsetIndex
}

// New builds a SourceMap over the given mappings. The slice must not be modified afterwards.
func New(mappings []entity.CodeMapping) *SourceMap {
	return &SourceMap{
		mappings:  mappings,
		source:    side{from: sourceRange, to: generatedRange},
		generated: side{from: generatedRange, to: sourceRange},
	}
}

// Mappings returns the mappings the map was built from.
func (m *SourceMap) Mappings() []entity.CodeMapping {
	return m.mappings
}

// ToGeneratedOffsets yields every generated offset that the source offset maps to, with the mapping used.
func (m *SourceMap) ToGeneratedOffsets(offset int, filter entity.CodeFilter) iter.Seq2[int, entity.CodeMapping] {
	return m.matchingOffsets(&m.source, offset, filter, closedAffinity)
}

// ToSourceOffsets yields every source offset that the generated offset maps to, with the mapping used.
func (m *SourceMap) ToSourceOffsets(offset int, filter entity.CodeFilter) iter.Seq2[int, entity.CodeMapping] {
	return m.matchingOffsets(&m.generated, offset, filter, closedAffinity)
}

// ToGeneratedOffset returns the first generated offset the source offset maps to.
func (m *SourceMap) ToGeneratedOffset(offset int, filter entity.CodeFilter) (int, entity.CodeMapping, bool) {
	return first(m.ToGeneratedOffsets(offset, filter))
}

// ToSourceOffset returns the first source offset the generated offset maps to.
func (m *SourceMap) ToSourceOffset(offset int, filter entity.CodeFilter) (int, entity.CodeMapping, bool) {
	return first(m.ToSourceOffsets(offset, filter))
}

// ToGeneratedRanges yields generated ranges for the source range [start, end].
// With fallbackToAnyMatch, endpoints resolved through different segments are paired when nothing else matches.
func (m *SourceMap) ToGeneratedRanges(start, end int, fallbackToAnyMatch bool, filter entity.CodeFilter) iter.Seq2[OffsetRange, entity.CodeMapping] {
	return m.matchingRanges(&m.source, start, end, fallbackToAnyMatch, filter)
}

// ToSourceRanges yields source ranges for the generated range [start, end].
func (m *SourceMap) ToSourceRanges(start, end int, fallbackToAnyMatch bool, filter entity.CodeFilter) iter.Seq2[OffsetRange, entity.CodeMapping] {
	return m.matchingRanges(&m.generated, start, end, fallbackToAnyMatch, filter)
}

// FindOverlapGeneratedRange maps an arbitrary source range that may not land on segment boundaries.
func (m *SourceMap) FindOverlapGeneratedRange(start, end int, filter entity.CodeFilter) (OffsetRange, bool) {
	return m.findOverlap(&m.source, start, end, filter)
}

// FindOverlapSourceRange maps an arbitrary generated range that may not land on segment boundaries.
func (m *SourceMap) FindOverlapSourceRange(start, end int, filter entity.CodeFilter) (OffsetRange, bool) {
	return m.findOverlap(&m.generated, start, end, filter)
}

type affinity int

const (
	// closedAffinity matches offsets in [from, from+len].
	closedAffinity affinity = iota
	// leftAffinity matches offsets in [from, from+len).
	leftAffinity
	// rightAffinity matches offsets in (from, from+len].
	rightAffinity
)

func (m *SourceMap) matchingOffsets(s *side, offset int, filter entity.CodeFilter, aff affinity) iter.Seq2[int, entity.CodeMapping] {
	return func(yield func(int, entity.CodeMapping) bool) {
		for _, i := range m.candidates(s, offset) {
			mapping := m.mappings[i]
			if filter != nil && !filter(mapping.Data) {
				continue
			}
			if !accepts(s, mapping, offset, aff) {
				continue
			}
			mapped, ok := matchOffset(s, mapping, offset)
			if !ok {
				continue
			}
			if !yield(mapped, mapping) {
				return
			}
		}
	}
}

func (m *SourceMap) matchingRanges(s *side, start, end int, fallbackToAnyMatch bool, filter entity.CodeFilter) iter.Seq2[OffsetRange, entity.CodeMapping] {
	return func(yield func(OffsetRange, entity.CodeMapping) bool) {
		matched := false

		// Anchor on start, resolve end inside the same segment.
		for mappedStart, mapping := range m.matchingOffsets(s, start, filter, leftAffinity) {
			mappedEnd, ok := matchOffset(s, mapping, end)
			if !ok || mappedEnd < mappedStart {
				continue
			}
			matched = true
			if !yield(OffsetRange{Start: mappedStart, End: mappedEnd}, mapping) {
				return
			}
		}
		if matched {
			return
		}

		// Anchor on end, searching segments in reverse, and pair with start inside the same segment.
		ends := slices.Collect(pairs(m.matchingOffsets(s, end, filter, rightAffinity)))
		for i := len(ends) - 1; i >= 0; i-- {
			mappedStart, ok := matchOffset(s, ends[i].mapping, start)
			if !ok || ends[i].offset < mappedStart {
				continue
			}
			matched = true
			if !yield(OffsetRange{Start: mappedStart, End: ends[i].offset}, ends[i].mapping) {
				return
			}
		}
		if matched || !fallbackToAnyMatch {
			return
		}

		starts := slices.Collect(pairs(m.matchingOffsets(s, start, filter, closedAffinity)))
		for mappedEnd := range m.matchingOffsets(s, end, filter, closedAffinity) {
			for _, st := range starts {
				if mappedEnd < st.offset {
					continue
				}
				if !yield(OffsetRange{Start: st.offset, End: mappedEnd}, st.mapping) {
					return
				}
				break
			}
		}
	}
}

func (m *SourceMap) findOverlap(s *side, start, end int, filter entity.CodeFilter) (OffsetRange, bool) {
	for r := range m.matchingRanges(s, start, end, false, filter) {
		return r, true
	}

	result := OffsetRange{Start: -1, End: -1}
	for _, mapping := range m.mappings {
		if filter != nil && !filter(mapping.Data) {
			continue
		}
		fromStart, fromLength := s.from(mapping)
		fromEnd := fromStart + fromLength
		lo, hi := max(start, fromStart), min(end, fromEnd)
		if hi < lo {
			continue
		}
		if lo == hi && start != end && fromStart != fromEnd {
			// The ranges only touch.
			continue
		}
		mappedLo, okLo := matchOffset(s, mapping, lo)
		mappedHi, okHi := matchOffset(s, mapping, hi)
		if !okLo || !okHi {
			continue
		}
		if result.Start == -1 || mappedLo < result.Start {
			result.Start = mappedLo
		}
		if result.End == -1 || mappedHi > result.End {
			result.End = mappedHi
		}
	}
	if result.Start == -1 {
		return OffsetRange{}, false
	}
	return result, true
}

// candidates returns the indexes, in mapping order, of segments whose closed range contains offset.
func (m *SourceMap) candidates(s *side, offset int) []int {
	s.once.Do(func() {
		s.index = buildIndex(m.mappings, s.from)
	})
	return s.index.containing(offset)
}

func accepts(s *side, mapping entity.CodeMapping, offset int, aff affinity) bool {
	from, length := s.from(mapping)
	if length == 0 {
		return offset == from
	}
	switch aff {
	case leftAffinity:
		return from <= offset && offset < from+length
	case rightAffinity:
		return from < offset && offset <= from+length
	default:
		return from <= offset && offset <= from+length
	}
}

// matchOffset translates offset through a single segment, clamping into the target range when lengths differ.
func matchOffset(s *side, mapping entity.CodeMapping, offset int) (int, bool) {
	from, fromLength := s.from(mapping)
	to, toLength := s.to(mapping)
	if offset < from || offset > from+fromLength {
		return 0, false
	}
	return to + min(offset-from, toLength), true
}

func sourceRange(m entity.CodeMapping) (int, int) {
	return m.SourceOffset, m.SourceLength
}

func generatedRange(m entity.CodeMapping) (int, int) {
	return m.GeneratedOffset, m.GeneratedLength
}

type offsetMatch struct {
	offset  int
	mapping entity.CodeMapping
}

func pairs(seq iter.Seq2[int, entity.CodeMapping]) iter.Seq[offsetMatch] {
	return func(yield func(offsetMatch) bool) {
		for offset, mapping := range seq {
			if !yield(offsetMatch{offset: offset, mapping: mapping}) {
				return
			}
		}
	}
}

func first(seq iter.Seq2[int, entity.CodeMapping]) (int, entity.CodeMapping, bool) {
	for offset, mapping := range seq {
		return offset, mapping, true
	}
	return 0, entity.CodeMapping{}, false
}

// offsetIndex orders segments by start offset and tracks the running maximum end,
// so the segments containing an offset are found without scanning the whole map.
type offsetIndex struct {
	order  []int
	starts []int
	maxEnd []int
}

func buildIndex(mappings []entity.CodeMapping, from func(entity.CodeMapping) (int, int)) *offsetIndex {
	idx := &offsetIndex{
		order:  make([]int, len(mappings)),
		starts: make([]int, len(mappings)),
		maxEnd: make([]int, len(mappings)),
	}
	for i := range mappings {
		idx.order[i] = i
	}
	sort.SliceStable(idx.order, func(a, b int) bool {
		sa, _ := from(mappings[idx.order[a]])
		sb, _ := from(mappings[idx.order[b]])
		return sa < sb
	})
	runningMax := -1
	for i, mi := range idx.order {
		start, length := from(mappings[mi])
		idx.starts[i] = start
		runningMax = max(runningMax, start+length)
		idx.maxEnd[i] = runningMax
	}
	return idx
}

func (idx *offsetIndex) containing(offset int) []int {
	// Segments at positions >= k start after offset.
	k := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	})

	var found []int
	for i := k - 1; i >= 0 && idx.maxEnd[i] >= offset; i-- {
		found = append(found, idx.order[i])
	}
	slices.Sort(found)
	return found
}
