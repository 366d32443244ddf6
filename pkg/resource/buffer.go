package resource

import (
	"fmt"
	"io"

	"github.com/libtour/libtour/pkg/shared"
)

// BufferSize is the number of ints each Buffer allocates.
const BufferSize = 100

// Buffer owns a block of memory that must be released exactly once.
type Buffer struct {
	Value int
	data  []int
}

// Len reports the size of the owned block, zero once freed.
func (b *Buffer) Len() int {
	return len(b.data)
}

// NewBuffer allocates a Buffer and returns the first shared handle to it.
// The destructor frees the block and writes a trace line to trace.
func NewBuffer(value int, trace io.Writer) *shared.Ref[Buffer] {
	if trace == nil {
		trace = io.Discard
	}
	b := &Buffer{Value: value, data: make([]int, BufferSize)}
	return shared.New(b, func(b *Buffer) {
		fmt.Fprintf(trace, "Destructor called for buffer %d!\n", b.Value)
		b.data = nil
	})
}
