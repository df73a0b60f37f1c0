package counter

import (
	"unsafe"

	"github.com/modern-go/reflect2"
)

// GenerateTo is Generate shaped for a C caller: the start address is stored
// through out, which must be a non-nil pointer to a pointer (a **C.size_t, a
// *unsafe.Pointer, ...), and the element count is returned. out is written
// even when count is zero.
func (c *Counter) GenerateTo(start, count uintptr, out interface{}) uintptr {
	r := c.Generate(start, count)
	*(*unsafe.Pointer)(reflect2.PtrOf(out)) = r.Ptr
	return uintptr(r.Len)
}

func GenerateTo(start, count uintptr, out interface{}) uintptr {
	return Default.GenerateTo(start, count, out)
}

func Free(ptr unsafe.Pointer, count uintptr) {
	Default.Free(ptr, count)
}
