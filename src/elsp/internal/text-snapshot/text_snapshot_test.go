package textsnapshot

import (
	"runtime"
	"testing"
	"weak"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/embedded-lsp/src/elsp/entity"
)

func TestGetText(t *testing.T) {
	s := New("hello world")
	assert.Equal(t, 11, s.GetLength())
	assert.Equal(t, "world", s.GetText(6, 11))
	assert.Equal(t, "world", s.GetText(6, 100))
	assert.Equal(t, "", s.GetText(8, 3))
	assert.Equal(t, "hello world", s.String())
}

func TestApply(t *testing.T) {
	s := New("hello world")
	next := s.Apply(6, 11, "gopher")

	assert.Equal(t, "hello gopher", next.String())
	assert.Equal(t, "hello world", s.String(), "the original snapshot is unchanged")

	change := next.GetChangeRange(s)
	require.NotNil(t, change)
	assert.Equal(t, entity.TextChangeRange{Span: entity.TextSpan{Start: 6, Length: 5}, NewLength: 6}, *change)
}

func TestGetChangeRange(t *testing.T) {
	s := New("abc")
	assert.Nil(t, s.GetChangeRange(nil))
	assert.True(t, s.GetChangeRange(s).IsUnchanged())

	t.Run("non adjacent snapshots are diffed", func(t *testing.T) {
		first := s.Apply(3, 3, "d")
		second := first.Apply(0, 0, "_")
		change := second.GetChangeRange(s)
		require.NotNil(t, change)
		assert.Equal(t, entity.TextChangeRange{Span: entity.TextSpan{Start: 0, Length: 3}, NewLength: 5}, *change)
	})
}

func TestGetChangeRangeUnrelatedSnapshot(t *testing.T) {
	base := New("abc")
	next := base.Apply(1, 2, "B")

	// Same text as base, but not the snapshot the edit was applied to.
	lookalike := New("abc")
	change := next.GetChangeRange(lookalike)
	require.NotNil(t, change)
	assert.Equal(t, entity.TextChangeRange{Span: entity.TextSpan{Start: 1, Length: 1}, NewLength: 1}, *change)
}

func TestApplyReleasesSupersededSnapshots(t *testing.T) {
	current := New("")
	superseded := make([]weak.Pointer[Snapshot], 0, 100)
	for range 100 {
		superseded = append(superseded, weak.Make(current))
		current = current.Apply(current.GetLength(), current.GetLength(), "x")
	}

	reclaimed := 0
	for range 5 {
		runtime.GC()
		reclaimed = 0
		for _, p := range superseded {
			if p.Value() == nil {
				reclaimed++
			}
		}
		if reclaimed == len(superseded) {
			break
		}
	}
	assert.Equal(t, len(superseded), reclaimed)
	assert.Equal(t, 100, current.GetLength())
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name    string
		oldText string
		newText string
		want    entity.TextChangeRange
	}{
		{
			name:    "identical",
			oldText: "abc",
			newText: "abc",
			want:    entity.TextChangeRange{Span: entity.TextSpan{Start: 3}},
		},
		{
			name:    "insertion",
			oldText: "abc",
			newText: "abXbc",
			want:    entity.TextChangeRange{Span: entity.TextSpan{Start: 2}, NewLength: 2},
		},
		{
			name:    "deletion",
			oldText: "hello world",
			newText: "hello",
			want:    entity.TextChangeRange{Span: entity.TextSpan{Start: 5, Length: 6}},
		},
		{
			name:    "replacement",
			oldText: "let x = 1",
			newText: "let y = 1",
			want:    entity.TextChangeRange{Span: entity.TextSpan{Start: 4, Length: 1}, NewLength: 1},
		},
		{
			name:    "multi-byte characters are measured in bytes",
			oldText: "é=1",
			newText: "é=22",
			want:    entity.TextChangeRange{Span: entity.TextSpan{Start: 3, Length: 1}, NewLength: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *Diff(tt.oldText, tt.newText))
		})
	}
}
