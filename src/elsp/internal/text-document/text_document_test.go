// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textdocument

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
)

func newDoc(text string) *TextDocument {
	return NewFromText("file:///sample.vue", "vue", 1, text)
}

func TestPositionOffset(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pos     protocol.Position
		offset  int
		wantErr bool
	}{
		{
			name: "valid example",
			text: "sample\ncontent\n",
			pos: protocol.Position{
				Line:      1,
				Character: 0,
			},
			offset:  7,
			wantErr: false,
		},
		{
			name: "invalid line number",
			text: "sample\ncontent\n",
			pos: protocol.Position{
				Line:      15,
				Character: 0,
			},
			wantErr: true,
		},
		{
			name: "end of file, valid",
			text: "sample\ncontent\n",
			pos: protocol.Position{
				Line:      3,
				Character: 0,
			},
			wantErr: false,
			offset:  15,
		},
		{
			name: "end of file, invalid",
			text: "sample\ncontent\n",
			pos: protocol.Position{
				Line:      3,
				Character: 1,
			},
			wantErr: true,
		},
		{
			name: "column is beyond end of line",
			text: "sample\ncontent\n",
			pos: protocol.Position{
				Line:      1,
				Character: 15,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDoc(tt.text)
			result, err := d.PositionOffset(tt.pos)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.Equal(t, tt.offset, result)
				assert.NoError(t, err)
			}
		})
	}
}

// Test cases for OffsetPosition conversion.
// Source: https://github.com/golang/tools/blob/67ba59975e7842e66f70fd87113c9d06ae0f8e0f/gopls/internal/lsp/protocol/mapper_test.go

type testCase struct {
	content            string      // input text
	substrOrOffset     interface{} // explicit integer offset, or a substring
	wantLine, wantChar int         // expected LSP position information
}

var tests = []testCase{
	{"a𐐀b", "a", 0, 0},
	{"a𐐀b", "𐐀", 0, 1},
	{"a𐐀b", "b", 0, 3},
	{"a𐐀b\n", "\n", 0, 4},
	{"a𐐀b\r\n", "\n", 0, 4}, // \r|\n is not a valid position, so we move back to the end of the first line.
	{"a𐐀b\r\nx", "x", 1, 0},
	{"a𐐀b\r\nx\ny", "y", 2, 0},

	// Testing EOL and EOF positions
	{"", 0, 0, 0}, // 0th position of an empty buffer is (0, 0)
	{"abc", "c", 0, 2},
	{"abc", 3, 0, 3},
	{"abc\n", "\n", 0, 3},
	{"abc\n", 4, 1, 0}, // position after a newline is on the next line
}

// offset returns the test case byte offset
func (c testCase) offset() int {
	switch x := c.substrOrOffset.(type) {
	case int:
		return x
	case string:
		i := strings.Index(c.content, x)
		if i < 0 {
			panic(fmt.Sprintf("%q does not contain substring %q", c.content, x))
		}
		return i
	}
	panic("substrOrIndex must be an integer or string")
}

func TestOffsetPosition(t *testing.T) {
	for _, test := range tests {
		d := newDoc(test.content)
		offset := test.offset()
		got, err := d.OffsetPosition(offset)
		if err != nil {
			t.Errorf("OffsetPosition(%d) failed: %v", offset, err)
			continue
		}
		want := protocol.Position{Line: uint32(test.wantLine), Character: uint32(test.wantChar)}
		if got != want {
			t.Errorf("Position(%d) = %v, want %v", offset, got, want)
		}
		assert.Equal(t, want, d.PositionAt(offset))
	}
}

func TestInvalidOffset(t *testing.T) {
	d := newDoc("a𐐀b\r\nx\ny")
	for _, offset := range []int{-1, 100} {
		_, err := d.OffsetPosition(offset)
		if err == nil {
			t.Errorf("OffsetPosition(%d), want error", offset)
		}
	}
}

func TestOffsetAt(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  protocol.Position
		want int
	}{
		{
			name: "inside line",
			text: "ab\ncd\n",
			pos:  protocol.Position{Line: 0, Character: 1},
			want: 1,
		},
		{
			name: "past end of line",
			text: "ab\ncd\n",
			pos:  protocol.Position{Line: 0, Character: 10},
			want: 2,
		},
		{
			name: "second line",
			text: "ab\ncd\n",
			pos:  protocol.Position{Line: 1, Character: 1},
			want: 4,
		},
		{
			name: "past last line",
			text: "ab\ncd\n",
			pos:  protocol.Position{Line: 5, Character: 0},
			want: 6,
		},
		{
			name: "crlf line end",
			text: "ab\r\ncd",
			pos:  protocol.Position{Line: 0, Character: 10},
			want: 2,
		},
		{
			name: "last line without newline",
			text: "ab\ncd",
			pos:  protocol.Position{Line: 1, Character: 10},
			want: 5,
		},
		{
			name: "middle of surrogate pair",
			text: "a𐐀b",
			pos:  protocol.Position{Line: 0, Character: 2},
			want: 1,
		},
		{
			name: "after surrogate pair",
			text: "a𐐀b",
			pos:  protocol.Position{Line: 0, Character: 3},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newDoc(tt.text).OffsetAt(tt.pos))
		})
	}
}

func TestPositionAtClamps(t *testing.T) {
	d := newDoc("ab\ncd")
	assert.Equal(t, protocol.Position{}, d.PositionAt(-5))
	assert.Equal(t, protocol.Position{Line: 1, Character: 2}, d.PositionAt(100))
}

func TestGetTextRange(t *testing.T) {
	d := newDoc("ab\ncd")
	assert.Equal(t, "ab\ncd", d.GetText())
	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 2, d.LineCount())
	assert.Equal(t, "b\nc", d.GetTextRange(protocol.Range{
		Start: protocol.Position{Line: 0, Character: 1},
		End:   protocol.Position{Line: 1, Character: 1},
	}))
	assert.Equal(t, "b\nc", d.GetTextRange(protocol.Range{
		Start: protocol.Position{Line: 1, Character: 1},
		End:   protocol.Position{Line: 0, Character: 1},
	}), "reversed ranges are normalized")
}

func TestRangeOffsets(t *testing.T) {
	d := newDoc("ab\ncd")

	start, end, err := d.RangeOffsets(protocol.Range{
		Start: protocol.Position{Line: 0, Character: 1},
		End:   protocol.Position{Line: 1, Character: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, start)
	assert.Equal(t, 5, end)

	r, err := d.OffsetsRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 1},
		End:   protocol.Position{Line: 1, Character: 2},
	}, r)

	_, _, err = d.RangeOffsets(protocol.Range{
		Start: protocol.Position{Line: 1, Character: 0},
		End:   protocol.Position{Line: 0, Character: 0},
	})
	assert.Error(t, err)

	_, _, err = d.RangeOffsets(protocol.Range{End: protocol.Position{Line: 9}})
	assert.Error(t, err)

	_, err = d.OffsetsRange(0, 99)
	assert.Error(t, err)
}

func TestUTF16Len(t *testing.T) {
	assert.Equal(t, 0, UTF16Len(nil))
	assert.Equal(t, 3, UTF16Len([]byte("abc")))
	assert.Equal(t, 4, UTF16Len([]byte("a𐐀b")))
	assert.Equal(t, 1, UTF16Len([]byte("é")))
}
