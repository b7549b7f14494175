package entity

// Snapshot is an immutable view of one version of a document's text.
// Snapshots are compared by identity, so implementations must be comparable (usually pointers).
type Snapshot interface {
	// GetText returns the text between the byte offsets start and end.
	GetText(start, end int) string
	// GetLength returns the length of the text in bytes.
	GetLength() int
	// GetChangeRange returns the single contiguous edit that turns old into this snapshot,
	// or nil if it cannot be determined.
	GetChangeRange(old Snapshot) *TextChangeRange
}

// TextSpan is a byte range of Length bytes starting at Start.
type TextSpan struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the exclusive end offset of the span.
func (s TextSpan) End() int {
	return s.Start + s.Length
}

// TextChangeRange describes a replacement of Span in the old text by NewLength bytes of new text.
type TextChangeRange struct {
	Span      TextSpan `json:"span"`
	NewLength int      `json:"newLength"`
}

// NewEnd returns the end offset of the replacement in the new text.
func (c TextChangeRange) NewEnd() int {
	return c.Span.Start + c.NewLength
}

// IsUnchanged reports whether the range describes no change at all.
func (c TextChangeRange) IsUnchanged() bool {
	return c.Span.Length == 0 && c.NewLength == 0
}
