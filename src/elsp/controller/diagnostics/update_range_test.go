package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"
)

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func rng(startLine, startChar, endLine, endChar uint32) protocol.Range {
	return protocol.Range{Start: pos(startLine, startChar), End: pos(endLine, endChar)}
}

func TestUpdateRange(t *testing.T) {
	tests := []struct {
		name     string
		r        protocol.Range
		change   protocol.Range
		newEnd   protocol.Position
		expected protocol.Range
		ok       bool
	}{
		{
			name:     "edit before on same line",
			r:        rng(0, 10, 0, 15),
			change:   rng(0, 2, 0, 4),
			newEnd:   pos(0, 7),
			expected: rng(0, 13, 0, 18),
			ok:       true,
		},
		{
			name:     "line inserted above",
			r:        rng(3, 4, 3, 8),
			change:   rng(1, 0, 1, 0),
			newEnd:   pos(2, 0),
			expected: rng(4, 4, 4, 8),
			ok:       true,
		},
		{
			name:     "lines deleted above",
			r:        rng(5, 2, 5, 4),
			change:   rng(2, 0, 4, 0),
			newEnd:   pos(2, 0),
			expected: rng(3, 2, 3, 4),
			ok:       true,
		},
		{
			name:     "lines joined onto the edit start line",
			r:        rng(4, 3, 4, 6),
			change:   rng(3, 5, 4, 1),
			newEnd:   pos(3, 5),
			expected: rng(3, 7, 3, 10),
			ok:       true,
		},
		{
			name:     "edit after",
			r:        rng(0, 0, 0, 5),
			change:   rng(1, 0, 1, 3),
			newEnd:   pos(1, 1),
			expected: rng(0, 0, 0, 5),
			ok:       true,
		},
		{
			name:     "edit strictly inside grows the range",
			r:        rng(0, 0, 0, 10),
			change:   rng(0, 2, 0, 4),
			newEnd:   pos(0, 7),
			expected: rng(0, 0, 0, 13),
			ok:       true,
		},
		{
			name:     "range ends where the edit starts",
			r:        rng(0, 0, 0, 3),
			change:   rng(0, 3, 0, 6),
			newEnd:   pos(0, 4),
			expected: rng(0, 0, 0, 3),
			ok:       true,
		},
		{
			name:     "range starts where the edit ends",
			r:        rng(0, 6, 0, 9),
			change:   rng(0, 3, 0, 6),
			newEnd:   pos(0, 4),
			expected: rng(0, 4, 0, 7),
			ok:       true,
		},
		{
			name:     "insertion at range start shifts it",
			r:        rng(0, 5, 0, 8),
			change:   rng(0, 5, 0, 5),
			newEnd:   pos(0, 7),
			expected: rng(0, 7, 0, 10),
			ok:       true,
		},
		{
			name:     "insertion at range end keeps it",
			r:        rng(0, 5, 0, 8),
			change:   rng(0, 8, 0, 8),
			newEnd:   pos(0, 9),
			expected: rng(0, 5, 0, 8),
			ok:       true,
		},
		{
			name:     "empty range at insertion point follows the insertion",
			r:        rng(0, 5, 0, 5),
			change:   rng(0, 5, 0, 5),
			newEnd:   pos(0, 6),
			expected: rng(0, 6, 0, 6),
			ok:       true,
		},
		{
			name:     "multi-line insertion before on same line",
			r:        rng(2, 6, 2, 9),
			change:   rng(2, 1, 2, 4),
			newEnd:   pos(4, 2),
			expected: rng(4, 4, 4, 7),
			ok:       true,
		},
		{
			name:   "edit straddles range start",
			r:      rng(0, 3, 0, 10),
			change: rng(0, 1, 0, 5),
			newEnd: pos(0, 2),
		},
		{
			name:   "edit straddles range end",
			r:      rng(0, 2, 0, 8),
			change: rng(0, 5, 0, 10),
			newEnd: pos(0, 6),
		},
		{
			name:   "edit contains range",
			r:      rng(0, 2, 0, 3),
			change: rng(0, 1, 0, 5),
			newEnd: pos(0, 1),
		},
		{
			name:   "edit equals range",
			r:      rng(1, 0, 1, 4),
			change: rng(1, 0, 1, 4),
			newEnd: pos(1, 2),
		},
		{
			name:   "empty range inside deletion",
			r:      rng(0, 3, 0, 3),
			change: rng(0, 1, 0, 5),
			newEnd: pos(0, 1),
		},
		{
			name:   "empty range at deletion end",
			r:      rng(0, 5, 0, 5),
			change: rng(0, 1, 0, 5),
			newEnd: pos(0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := UpdateRange(tt.r, tt.change, tt.newEnd)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestComparePosition(t *testing.T) {
	assert.Equal(t, 0, comparePosition(pos(1, 2), pos(1, 2)))
	assert.Equal(t, -1, comparePosition(pos(1, 2), pos(1, 3)))
	assert.Equal(t, -1, comparePosition(pos(0, 9), pos(1, 0)))
	assert.Equal(t, 1, comparePosition(pos(2, 0), pos(1, 9)))
	assert.Equal(t, 1, comparePosition(pos(1, 4), pos(1, 3)))
}
