package parser

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// LineIndex converts byte offsets to 1-based line and column numbers.
// Columns count bytes, not runes.
type LineIndex struct {
	file   string
	starts []int
	size   int
}

func NewLineIndex(file string, src []byte) *LineIndex {
	idx := &LineIndex{file: file, starts: []int{0}, size: len(src)}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			idx.starts = append(idx.starts, i+1)
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

func (idx *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > idx.size {
		offset = idx.size
	}
	line := sort.Search(len(idx.starts), func(i int) bool {
		return idx.starts[i] > offset
	}) - 1
	return Position{
		File:   idx.file,
		Offset: offset,
		Line:   line + 1,
		Column: offset - idx.starts[line] + 1,
	}
}

func (idx *LineIndex) Span(r TextRange) Span {
	return Span{Start: idx.Position(r.Start), End: idx.Position(r.End)}
}

func (idx *LineIndex) LineCount() int {
	return len(idx.starts)
}
