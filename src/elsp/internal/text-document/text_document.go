// This file includes a selection of byte offset conversion methods from the gopls "protocol" package.
// Based on the following: https://github.com/golang/tools/blob/67d73b2960c82b2c8db0b9d0694c66a789a1db11/gopls/internal/lsp/protocol/mapper.go

// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// License Revision: https://github.com/golang/tools/blob/67d73b2960c82b2c8db0b9d0694c66a789a1db11/LICENSE

// Package textdocument provides a read-only document handle over one snapshot of text,
// converting between byte offsets and LSP (UTF-16) positions.
package textdocument

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/uber/embedded-lsp/src/elsp/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// TextDocument is an immutable view of one version of a document.
type TextDocument struct {
	URI        uri.URI
	LanguageID protocol.LanguageIdentifier
	Version    int32

	content []byte

	// Line-number information is computed lazily.
	// Call initLines() before accessing fields below.
	linesOnce sync.Once
	lineStart []int // byte offset of start of ith line (0-based); last=EOF iff \n-terminated
	nonASCII  bool
}

// New creates a document over the full text of a snapshot.
func New(u uri.URI, languageID protocol.LanguageIdentifier, version int32, snapshot entity.Snapshot) *TextDocument {
	return NewFromText(u, languageID, version, snapshot.GetText(0, snapshot.GetLength()))
}

// NewFromText creates a document over the given text.
func NewFromText(u uri.URI, languageID protocol.LanguageIdentifier, version int32, text string) *TextDocument {
	return &TextDocument{
		URI:        u,
		LanguageID: languageID,
		Version:    version,
		content:    []byte(text),
	}
}

// Identifier returns the protocol identifier of the document.
func (d *TextDocument) Identifier() protocol.TextDocumentIdentifier {
	return protocol.TextDocumentIdentifier{URI: d.URI}
}

// GetText returns the full text of the document.
func (d *TextDocument) GetText() string {
	return string(d.content)
}

// GetTextRange returns the text covered by r, with out of range positions clamped.
func (d *TextDocument) GetTextRange(r protocol.Range) string {
	start, end := d.OffsetAt(r.Start), d.OffsetAt(r.End)
	if end < start {
		start, end = end, start
	}
	return string(d.content[start:end])
}

// Len returns the length of the document in bytes.
func (d *TextDocument) Len() int {
	return len(d.content)
}

// LineCount returns the number of lines in the document.
func (d *TextDocument) LineCount() int {
	d.initLines()
	return len(d.lineStart)
}

// initLines populates the lineStart table.
func (d *TextDocument) initLines() {
	d.linesOnce.Do(func() {
		nlines := bytes.Count(d.content, []byte("\n"))
		d.lineStart = make([]int, 1, nlines+1) // initially []int{0}
		for offset, b := range d.content {
			if b == '\n' {
				d.lineStart = append(d.lineStart, offset+1)
			}
			if b >= utf8.RuneSelf {
				d.nonASCII = true
			}
		}
	})
}

// OffsetAt converts a position to a byte offset. Positions past the end of a line
// resolve to the end of that line, positions past the last line resolve to the end of the document.
func (d *TextDocument) OffsetAt(p protocol.Position) int {
	d.initLines()

	if int(p.Line) >= len(d.lineStart) {
		return len(d.content)
	}

	start := d.lineStart[p.Line]
	lineEnd := len(d.content)
	if int(p.Line)+1 < len(d.lineStart) {
		lineEnd = d.lineStart[p.Line+1] - 1
		if lineEnd > start && d.content[lineEnd-1] == '\r' {
			lineEnd--
		}
	}

	offset := start
	for col16 := 0; col16 < int(p.Character) && offset < lineEnd; col16++ {
		r, sz := utf8.DecodeRune(d.content[offset:lineEnd])
		if r >= 0x10000 {
			col16++
			if col16 == int(p.Character) {
				break // requested position is in the middle of a rune
			}
		}
		offset += sz
	}
	return offset
}

// PositionAt converts a byte offset to a position, clamping the offset to the document.
func (d *TextDocument) PositionAt(offset int) protocol.Position {
	offset = max(0, min(offset, len(d.content)))
	line, col16 := d.lineCol16(offset)
	return protocol.Position{Line: saturate(line), Character: saturate(col16)}
}

// PositionOffset converts a protocol (UTF-16) position to a byte offset.
func (d *TextDocument) PositionOffset(p protocol.Position) (int, error) {
	d.initLines()

	// Validate line number.
	if int(p.Line) > len(d.lineStart) {
		return 0, fmt.Errorf("line number %d out of range 0-%d", p.Line, len(d.lineStart))
	} else if int(p.Line) == len(d.lineStart) {
		if p.Character == 0 {
			return len(d.content), nil // EOF
		}
		return 0, fmt.Errorf("column is beyond end of file")
	}

	offset := d.lineStart[p.Line]
	content := d.content[offset:] // rest of file from start of enclosing line

	// Advance bytes up to the required number of UTF-16 codes.
	col8 := 0
	for col16 := 0; col16 < int(p.Character); col16++ {
		r, sz := utf8.DecodeRune(content)
		if sz == 0 {
			return 0, fmt.Errorf("column is beyond end of file")
		}
		if r == '\n' {
			return 0, fmt.Errorf("column is beyond end of line")
		}
		if sz == 1 && r == utf8.RuneError {
			return 0, fmt.Errorf("buffer contains invalid UTF-8 text")
		}
		content = content[sz:]

		if r >= 0x10000 {
			col16++ // rune was encoded by a pair of surrogate UTF-16 codes

			if col16 == int(p.Character) {
				break // requested position is in the middle of a rune
			}
		}
		col8 += sz
	}
	return offset + col8, nil
}

// OffsetPosition converts a byte offset to a protocol (UTF-16) position.
func (d *TextDocument) OffsetPosition(offset int) (protocol.Position, error) {
	if !(0 <= offset && offset <= len(d.content)) {
		return protocol.Position{}, fmt.Errorf("invalid offset %d (want 0-%d)", offset, len(d.content))
	}

	line, col16 := d.lineCol16(offset)
	l, err := safecast.Conv[uint32](line)
	if err != nil {
		return protocol.Position{}, fmt.Errorf("line of offset %d: %w", offset, err)
	}
	c, err := safecast.Conv[uint32](col16)
	if err != nil {
		return protocol.Position{}, fmt.Errorf("column of offset %d: %w", offset, err)
	}
	return protocol.Position{Line: l, Character: c}, nil
}

// RangeOffsets converts a range to a pair of byte offsets.
func (d *TextDocument) RangeOffsets(r protocol.Range) (int, int, error) {
	start, err := d.PositionOffset(r.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("range start: %w", err)
	}
	end, err := d.PositionOffset(r.End)
	if err != nil {
		return 0, 0, fmt.Errorf("range end: %w", err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("range end %d precedes start %d", end, start)
	}
	return start, end, nil
}

// OffsetsRange converts a pair of byte offsets to a range.
func (d *TextDocument) OffsetsRange(start, end int) (protocol.Range, error) {
	s, err := d.OffsetPosition(start)
	if err != nil {
		return protocol.Range{}, err
	}
	e, err := d.OffsetPosition(end)
	if err != nil {
		return protocol.Range{}, err
	}
	return protocol.Range{Start: s, End: e}, nil
}

// lineCol16 converts a valid byte offset to line and UTF-16 column numbers, both 0-based.
func (d *TextDocument) lineCol16(offset int) (int, int) {
	line, start, cr := d.line(offset)
	var col16 int
	if d.nonASCII {
		col16 = UTF16Len(d.content[start:offset])
	} else {
		col16 = offset - start
	}
	if cr {
		col16-- // retreat from \r at line end
	}
	return line, col16
}

// line returns:
// - the 0-based index of the line that encloses the (valid) byte offset;
// - the start offset of that line; and
// - whether the offset denotes a carriage return (\r) at line end.
func (d *TextDocument) line(offset int) (int, int, bool) {
	d.initLines()
	// In effect, binary search returns a 1-based result.
	line := sort.Search(len(d.lineStart), func(i int) bool {
		return offset < d.lineStart[i]
	})

	// Adjustment for line-endings: \r|\n is the same as |\r\n.
	var eol int
	if line == len(d.lineStart) {
		eol = len(d.content) // EOF
	} else {
		eol = d.lineStart[line] - 1
	}
	cr := offset == eol && offset > 0 && d.content[offset-1] == '\r'

	line-- // 0-based

	return line, d.lineStart[line], cr
}

// UTF16Len returns the number of codes in the UTF-16 transcoding of s.
func UTF16Len(s []byte) int {
	var n int
	for len(s) > 0 {
		n++

		// Fast path for ASCII.
		if s[0] < 0x80 {
			s = s[1:]
			continue
		}

		r, size := utf8.DecodeRune(s)
		if r >= 0x10000 {
			n++ // surrogate pair
		}
		s = s[size:]
	}
	return n
}

func saturate(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}
