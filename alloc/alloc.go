package alloc

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Allocator hands out memory the Go garbage collector neither scans nor
// frees. Deallocation is sized: Dealloc and Realloc must be given the exact
// size the block was allocated (or last reallocated) with, since nothing
// else identifies it.
type Allocator interface {
	Alloc(size int) unsafe.Pointer
	Dealloc(ptr unsafe.Pointer, size int)
	Realloc(ptr unsafe.Pointer, oldSize, newSize int) unsafe.Pointer
}

// ErrExhausted is the cause of the panic raised when memory cannot be mapped.
var ErrExhausted = errors.New("alloc: out of memory")

// Align is the granularity of small allocations.
const Align = 16

func classOf(size int) int {
	return (size + Align - 1) / Align
}

func bytesOf(ptr unsafe.Pointer, n int) []byte {
	return unsafe.Slice((*byte)(ptr), n)
}
