package vec

import (
	"unsafe"

	"github.com/funny-falcon/vecreturn/alloc"
)

// Raw is the exposure record of a released Vec: its first element and its
// element count, with capacity equal to Len. It is the whole identity of the
// allocation; whoever holds it owns the memory and must give it back exactly
// once through Reclaim with both fields unchanged.
//
// Raw is a plain value and copying it does not copy ownership. Handing it to
// another goroutine or thread must be synchronized by the caller, and
// reclaiming it while a copy is still being read is a use after free.
type Raw struct {
	Ptr unsafe.Pointer
	Len int
}

// Slice is a read-only view of the elements. Writing through it is outside
// the contract.
func (r Raw) Slice() []uintptr {
	if r.Len == 0 {
		return nil
	}
	return unsafe.Slice((*uintptr)(r.Ptr), r.Len)
}

// Reclaim rebuilds the Vec with Len as both length and capacity and frees
// it. A nil Ptr is ignored.
func (r Raw) Reclaim(al alloc.Allocator) {
	if r.Ptr == nil {
		return
	}
	v := FromRawParts(al, r.Ptr, r.Len, r.Len)
	v.Drop()
}
