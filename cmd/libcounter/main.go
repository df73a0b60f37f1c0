// Command libcounter is built with -buildmode=c-shared and exports:
//
//	size_t counter_generate(size_t start, size_t size, size_t **vec);
//	void counter_free(size_t *vec, size_t size);
//
// counter_generate stores the address of size consecutive values starting
// at start in *vec and returns size. The memory belongs to the caller until
// it passes the same pointer and size to counter_free, exactly once. A NULL
// pointer is accepted and ignored by counter_free. Build with -tags vecdebug
// to have misuse reported instead of corrupting the heap.
package main

// #include <stddef.h>
import "C"

import (
	"unsafe"

	"github.com/funny-falcon/vecreturn/counter"
)

//export counter_generate
func counter_generate(start, size C.size_t, vec **C.size_t) C.size_t {
	return C.size_t(counter.GenerateTo(uintptr(start), uintptr(size), vec))
}

//export counter_free
func counter_free(vec *C.size_t, size C.size_t) {
	counter.Free(unsafe.Pointer(vec), uintptr(size))
}

func main() {}
