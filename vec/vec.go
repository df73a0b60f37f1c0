// Package vec is a growable sequence of pointer-sized unsigned integers kept
// in manually managed memory, so that its storage can outlive any Go
// reference to it.
package vec

import (
	"unsafe"

	"github.com/funny-falcon/vecreturn/alloc"
)

const elemSize = int(unsafe.Sizeof(uintptr(0)))

// Vec owns ptr[0:cap] until Drop or IntoRaw. Like a slice it may hold more
// capacity than length.
type Vec struct {
	al  alloc.Allocator
	ptr unsafe.Pointer
	len int
	cap int
}

func New(al alloc.Allocator) Vec {
	return Vec{al: al, ptr: alloc.Dangling()}
}

func WithCapacity(al alloc.Allocator, n int) Vec {
	if n == 0 {
		return New(al)
	}
	return Vec{al: al, ptr: al.Alloc(n * elemSize), cap: n}
}

// FromRawParts takes ownership of memory previously released by IntoRaw.
// ptr, length and capacity must describe that memory exactly; nothing here
// can verify it.
func FromRawParts(al alloc.Allocator, ptr unsafe.Pointer, length, capacity int) Vec {
	return Vec{al: al, ptr: ptr, len: length, cap: capacity}
}

func (v *Vec) Len() int { return v.len }
func (v *Vec) Cap() int { return v.cap }

func (v *Vec) Push(x uintptr) {
	if v.len == v.cap {
		v.grow()
	}
	*(*uintptr)(unsafe.Add(v.ptr, v.len*elemSize)) = x
	v.len++
}

func (v *Vec) grow() {
	ncap := v.cap * 2
	if ncap < 4 {
		ncap = 4
	}
	v.ptr = v.al.Realloc(v.ptr, v.cap*elemSize, ncap*elemSize)
	v.cap = ncap
}

// Slice views the elements in place. The view is invalid after any call
// that may move or free the storage.
func (v *Vec) Slice() []uintptr {
	return unsafe.Slice((*uintptr)(v.ptr), v.len)
}

// ShrinkToFit releases spare capacity so that Cap() == Len().
func (v *Vec) ShrinkToFit() {
	if v.cap == v.len {
		return
	}
	v.ptr = v.al.Realloc(v.ptr, v.cap*elemSize, v.len*elemSize)
	v.cap = v.len
}

// Drop frees the storage and leaves v empty.
func (v *Vec) Drop() {
	v.al.Dealloc(v.ptr, v.cap*elemSize)
	*v = New(v.al)
}

// IntoRaw collapses capacity to length and gives up ownership. The returned
// Raw is the only handle on the memory; v is zeroed and must not be used
// again.
func (v *Vec) IntoRaw() Raw {
	v.ShrinkToFit()
	r := Raw{Ptr: v.ptr, Len: v.len}
	*v = Vec{}
	return r
}
