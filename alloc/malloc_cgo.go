//go:build malloc_cgo

package alloc

// #include <stdlib.h>
import "C"

import (
	"unsafe"

	"github.com/pkg/errors"
)

// CAllocator hands out C heap memory. free(3) does not need the size, so
// Dealloc only uses it to recognise zero-sized placeholders.
type CAllocator struct{}

func (CAllocator) Alloc(size int) unsafe.Pointer {
	if size == 0 {
		return Dangling()
	}
	p := C.malloc(C.size_t(size))
	if p == nil {
		panic(errors.Wrapf(ErrExhausted, "malloc %d bytes", size))
	}
	return p
}

func (CAllocator) Dealloc(ptr unsafe.Pointer, size int) {
	if ptr == nil || size == 0 {
		return
	}
	C.free(ptr)
}

func (a CAllocator) Realloc(ptr unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	switch {
	case oldSize == 0:
		return a.Alloc(newSize)
	case newSize == 0:
		a.Dealloc(ptr, oldSize)
		return Dangling()
	}
	p := C.realloc(ptr, C.size_t(newSize))
	if p == nil {
		panic(errors.Wrapf(ErrExhausted, "realloc %d bytes", newSize))
	}
	return p
}

func newDefault() Allocator {
	return CAllocator{}
}
