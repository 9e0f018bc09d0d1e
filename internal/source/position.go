// Package source maps byte offsets in program text to display
// positions: a CharPos carries both a line/column pair for error
// headers and a display width for caret alignment.
package source

import "unicode/utf8"

// CharPos identifies a single character of the source: its rune, its
// byte offset, its 0-indexed line, and its terminal display width (0
// for combining marks, 2 for wide runes, 1 otherwise).
type CharPos struct {
	Ch     rune
	Offset int
	Line   int
	Column int
	Width  int
}

// DisplayWidth is the exported form of displayWidth, used by the
// diagnostics reporter to size caret runs the same way the index
// sized each CharPos.
func DisplayWidth(r rune) int {
	return displayWidth(r)
}

// displayWidth approximates the terminal cell width of a rune. Lox
// source is not expected to carry combining marks or CJK text in
// practice, but the model supports it: ASCII and most runes are width
// 1, East-Asian wide code points are width 2, and zero-width runes
// (such as combining marks) are width 0.
func displayWidth(r rune) int {
	switch {
	case r == '\t', r == '\n':
		return 1
	case r < 0x20:
		return 0
	case r >= 0x0300 && r <= 0x036F: // combining diacritical marks
		return 0
	case isWide(r):
		return 2
	default:
		return 1
	}
}

// isWide reports whether r falls in one of the common East-Asian wide
// ranges. This is not a complete Unicode East Asian Width table, only
// enough to satisfy the display-width contract in common cases.
func isWide(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x115F, // Hangul Jamo
		r >= 0x2E80 && r <= 0xA4CF, // CJK radicals .. Yi
		r >= 0xAC00 && r <= 0xD7A3, // Hangul syllables
		r >= 0xF900 && r <= 0xFAFF, // CJK compatibility ideographs
		r >= 0xFF00 && r <= 0xFF60, // fullwidth forms
		r >= 0x1F300 && r <= 0x1FAFF: // emoji blocks
		return true
	}
	return false
}

// Index is an ordered sequence of CharPos for an entire source string,
// plus the byte offsets where each line begins. A synthetic sentinel
// line-start is appended past the end of input so that
// LineStarts[i+1] always exists for any valid line i.
type Index struct {
	chars      []CharPos
	LineStarts []int
}

// NewIndex builds a position index for src in one pass.
func NewIndex(src string) *Index {
	idx := &Index{
		chars:      make([]CharPos, 0, len(src)),
		LineStarts: []int{0},
	}

	line, col := 0, 0
	for offset, r := range src {
		idx.chars = append(idx.chars, CharPos{
			Ch:     r,
			Offset: offset,
			Line:   line,
			Column: col,
			Width:  displayWidth(r),
		})
		if r == '\n' {
			line++
			col = 0
			idx.LineStarts = append(idx.LineStarts, offset+utf8.RuneLen(r))
		} else {
			col++
		}
	}
	idx.LineStarts = append(idx.LineStarts, len(src))

	return idx
}

// At returns the CharPos recorded at a given byte offset, or the
// sentinel end-of-source position (one past the last rune; column 0 of
// the next line when the source ends with a newline) if no rune starts
// at offset.
func (idx *Index) At(offset int) CharPos {
	for _, cp := range idx.chars {
		if cp.Offset == offset {
			return cp
		}
	}
	return idx.endPos()
}

func (idx *Index) endPos() CharPos {
	if len(idx.chars) == 0 {
		return CharPos{Line: 0, Column: 0, Width: 1}
	}
	last := idx.chars[len(idx.chars)-1]
	if last.Ch == '\n' {
		return CharPos{Offset: last.Offset + 1, Line: last.Line + 1, Column: 0, Width: 1}
	}
	return CharPos{Offset: last.Offset + 1, Line: last.Line, Column: last.Column + 1, Width: 1}
}

// Line returns the raw source text of a 0-indexed line, without its
// trailing newline.
func (idx *Index) Line(src string, line int) string {
	if line < 0 || line+1 >= len(idx.LineStarts) {
		return ""
	}
	start := idx.LineStarts[line]
	end := idx.LineStarts[line+1]
	if end > len(src) {
		end = len(src)
	}
	text := src[start:end]
	for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
		text = text[:len(text)-1]
	}
	return text
}
