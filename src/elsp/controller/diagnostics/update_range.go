package diagnostics

import (
	"go.lsp.dev/protocol"
)

// UpdateRange moves r across an edit that replaced change with text ending at newEnd.
// It reports false when the edit touches the inside of r, in which case r cannot be relocated.
func UpdateRange(r, change protocol.Range, newEnd protocol.Position) (protocol.Range, bool) {
	if comparePosition(change.Start, change.End) != 0 &&
		comparePosition(change.Start, r.Start) <= 0 && comparePosition(r.End, change.End) <= 0 {
		return protocol.Range{}, false
	}

	start, ok := updateStart(r.Start, change, newEnd)
	if !ok {
		return protocol.Range{}, false
	}

	end := start
	if comparePosition(r.Start, r.End) != 0 {
		if end, ok = updateEnd(r.End, change, newEnd); !ok {
			return protocol.Range{}, false
		}
	}

	if comparePosition(end, start) < 0 {
		return protocol.Range{}, false
	}
	return protocol.Range{Start: start, End: end}, true
}

func updateStart(pos protocol.Position, change protocol.Range, newEnd protocol.Position) (protocol.Position, bool) {
	switch {
	case comparePosition(pos, change.End) >= 0:
		return shiftPosition(pos, change.End, newEnd), true
	case comparePosition(pos, change.Start) <= 0:
		return pos, true
	}
	return protocol.Position{}, false
}

// updateEnd keeps an end that touches the start of the edit in place, so insertions at the end of a range do not grow it.
func updateEnd(pos protocol.Position, change protocol.Range, newEnd protocol.Position) (protocol.Position, bool) {
	switch {
	case comparePosition(pos, change.Start) <= 0:
		return pos, true
	case comparePosition(pos, change.End) >= 0:
		return shiftPosition(pos, change.End, newEnd), true
	}
	return protocol.Position{}, false
}

// shiftPosition moves a position at or after oldEnd by the distance between oldEnd and newEnd.
func shiftPosition(pos, oldEnd, newEnd protocol.Position) protocol.Position {
	if pos.Line == oldEnd.Line {
		return protocol.Position{
			Line:      newEnd.Line,
			Character: newEnd.Character + (pos.Character - oldEnd.Character),
		}
	}
	return protocol.Position{
		Line:      newEnd.Line + (pos.Line - oldEnd.Line),
		Character: pos.Character,
	}
}

func comparePosition(a, b protocol.Position) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Character < b.Character:
		return -1
	case a.Character > b.Character:
		return 1
	}
	return 0
}
