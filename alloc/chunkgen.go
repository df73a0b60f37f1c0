package alloc

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

var (
	mmap = func(n int) ([]byte, error) {
		return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	}
	munmap = unix.Munmap

	pageSize = unix.Getpagesize()
)

func roundPages(n int) int {
	return (n + pageSize - 1) &^ (pageSize - 1)
}

// ChunkGen maps SlabSize bytes at a time and hands them out as ChunkSize
// pieces. Chunks are never unmapped.
type ChunkGen struct {
	SlabSize  int
	ChunkSize int
	CurSlab   []byte
	Slabs     int
}

func (g *ChunkGen) Gen() ([]byte, error) {
	if len(g.CurSlab) == 0 {
		slab, err := mmap(g.SlabSize)
		if err != nil {
			return nil, errors.Wrapf(ErrExhausted, "mmap slab of %d bytes: %v", g.SlabSize, err)
		}
		g.CurSlab = slab
		g.Slabs++
	}
	chunk := g.CurSlab[:g.ChunkSize:g.ChunkSize]
	g.CurSlab = g.CurSlab[g.ChunkSize:]
	return chunk, nil
}

var guard struct {
	once sync.Once
	page []byte
}

// Dangling returns the address handed out for zero-sized allocations. It is
// never nil and points at an inaccessible page, so any read through it
// faults.
func Dangling() unsafe.Pointer {
	guard.once.Do(func() {
		page, err := unix.Mmap(-1, 0, pageSize, unix.PROT_NONE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
		if err != nil {
			panic(errors.Wrapf(ErrExhausted, "mmap guard page: %v", err))
		}
		guard.page = page
	})
	return unsafe.Pointer(unsafe.SliceData(guard.page))
}
