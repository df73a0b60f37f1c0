// Package counter produces runs of consecutive integers in memory the caller
// owns and takes that memory back.
//
// Ownership of a generated run passes to the caller as a bare (address,
// length) pair. The caller may read it for as long as it likes and must hand
// the identical pair back to Free exactly once. Nothing records the pair in
// between unless a registry.Registry is installed, so a wrong length, a
// second Free or a foreign address is undefined behaviour. The pair is not
// safe to share: freeing it from two threads, or reading it while another
// thread frees it, is a race the caller has to prevent.
package counter

import (
	"fmt"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/funny-falcon/vecreturn/alloc"
	"github.com/funny-falcon/vecreturn/registry"
	"github.com/funny-falcon/vecreturn/vec"
)

type Counter struct {
	Alloc   alloc.Allocator
	Tracker registry.Tracker
	Logger  log.Logger
}

func New(al alloc.Allocator, tr registry.Tracker, logger log.Logger) *Counter {
	if tr == nil {
		tr = registry.Nop{}
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Counter{Alloc: al, Tracker: tr, Logger: logger}
}

// Generate returns count values start, start+1, ... in released memory.
// start+count must not overflow; values wrap if it does.
func (c *Counter) Generate(start, count uintptr) vec.Raw {
	v := vec.New(c.Alloc)
	for x := start; x != start+count; x++ {
		v.Push(x)
	}
	r := v.IntoRaw()
	c.Tracker.Exposed(r.Ptr, r.Len)
	level.Debug(c.Logger).Log("msg", "exposed", "addr", fmt.Sprintf("%p", r.Ptr), "len", r.Len)
	return r
}

// Free releases count elements at ptr, which must be exactly what an earlier
// Generate returned. A nil ptr is ignored. If the tracker rejects the pair,
// Free panics with its error and leaves the memory alone.
func (c *Counter) Free(ptr unsafe.Pointer, count uintptr) {
	if ptr == nil {
		return
	}
	if err := c.Tracker.Reclaiming(ptr, int(count)); err != nil {
		panic(err)
	}
	vec.Raw{Ptr: ptr, Len: int(count)}.Reclaim(c.Alloc)
	level.Debug(c.Logger).Log("msg", "reclaimed", "addr", fmt.Sprintf("%p", ptr), "len", count)
}
