// Package textsnapshot provides the in-memory implementation of entity.Snapshot used for editor buffers.
package textsnapshot

import (
	"sync/atomic"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/uber/embedded-lsp/src/elsp/entity"
)

// Snapshot is an immutable piece of text that remembers the edit that produced it.
// The predecessor is known by id only, so superseded snapshots are not kept alive.
type Snapshot struct {
	text string

	id     uint64
	prevID uint64
	change *entity.TextChangeRange
}

var (
	_ entity.Snapshot = (*Snapshot)(nil)

	_lastID atomic.Uint64
)

// New creates a snapshot with no history.
func New(text string) *Snapshot {
	return &Snapshot{text: text, id: _lastID.Add(1)}
}

// GetText returns the text between the byte offsets start and end, clamped to the snapshot.
func (s *Snapshot) GetText(start, end int) string {
	start = max(0, min(start, len(s.text)))
	end = max(start, min(end, len(s.text)))
	return s.text[start:end]
}

// GetLength returns the length of the text in bytes.
func (s *Snapshot) GetLength() int {
	return len(s.text)
}

// String returns the full text.
func (s *Snapshot) String() string {
	return s.text
}

// Apply returns a new snapshot with the bytes [start, end) replaced by newText.
func (s *Snapshot) Apply(start, end int, newText string) *Snapshot {
	start = max(0, min(start, len(s.text)))
	end = max(start, min(end, len(s.text)))
	return &Snapshot{
		text:   s.text[:start] + newText + s.text[end:],
		id:     _lastID.Add(1),
		prevID: s.id,
		change: &entity.TextChangeRange{
			Span:      entity.TextSpan{Start: start, Length: end - start},
			NewLength: len(newText),
		},
	}
}

// GetChangeRange returns the contiguous edit between old and this snapshot.
// The recorded edit is used when old is the direct predecessor; otherwise the texts are compared.
func (s *Snapshot) GetChangeRange(old entity.Snapshot) *entity.TextChangeRange {
	if old == nil {
		return nil
	}
	if prev, ok := old.(*Snapshot); ok {
		if prev.id == s.id {
			return &entity.TextChangeRange{}
		}
		if prev.id == s.prevID && s.change != nil {
			change := *s.change
			return &change
		}
	}
	return Diff(old.GetText(0, old.GetLength()), s.text)
}

// Diff computes the smallest single replacement that turns oldText into newText.
func Diff(oldText, newText string) *entity.TextChangeRange {
	dmp := diffmatchpatch.New()

	prefix := runeBytes(oldText, dmp.DiffCommonPrefix(oldText, newText))
	oldRest, newRest := oldText[prefix:], newText[prefix:]
	suffix := len(oldRest) - runeBytesFromEnd(oldRest, dmp.DiffCommonSuffix(oldRest, newRest))

	return &entity.TextChangeRange{
		Span:      entity.TextSpan{Start: prefix, Length: len(oldRest) - suffix},
		NewLength: len(newRest) - suffix,
	}
}

// runeBytes returns the byte length of the first n runes of s.
func runeBytes(s string, n int) int {
	offset := 0
	for i := 0; i < n && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}

// runeBytesFromEnd returns the byte offset at which the last n runes of s begin.
func runeBytesFromEnd(s string, n int) int {
	offset := len(s)
	for i := 0; i < n && offset > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:offset])
		offset -= size
	}
	return offset
}
