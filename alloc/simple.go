package alloc

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

// Simple serves small blocks from mmapped chunks with a bump pointer and
// recycles them through per-class free lists threaded through the freed
// blocks themselves. Blocks above MaxSmall are mapped one by one and unmapped
// on Dealloc, which rebuilds the mapping from the pointer and size alone.
type Simple struct {
	sync.Mutex
	cfg    Config
	gen    ChunkGen
	logger log.Logger
	cur    []byte
	free   []unsafe.Pointer
	stats  Stats
}

func NewSimple(cfg Config, logger log.Logger) (*Simple, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid allocator config")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Simple{
		cfg:    cfg,
		gen:    ChunkGen{SlabSize: cfg.SlabSize, ChunkSize: cfg.ChunkSize},
		logger: logger,
		free:   make([]unsafe.Pointer, classOf(cfg.MaxSmall)+1),
	}, nil
}

func (s *Simple) Alloc(size int) unsafe.Pointer {
	switch {
	case size < 0:
		panic(errors.Errorf("alloc: negative size %d", size))
	case size == 0:
		return Dangling()
	case size > s.cfg.MaxSmall:
		return s.allocLarge(size)
	}
	s.Lock()
	defer s.Unlock()
	return s.allocSmall(size)
}

func (s *Simple) allocSmall(size int) unsafe.Pointer {
	cl := classOf(size)
	n := cl * Align
	p := s.free[cl]
	if p != nil {
		s.free[cl] = *(*unsafe.Pointer)(p)
	} else {
		if len(s.cur) < n {
			chunk, err := s.gen.Gen()
			if err != nil {
				s.exhausted(err)
			}
			s.stats.Wasted += len(s.cur)
			s.stats.Chunks++
			s.stats.MappedBytes += len(chunk)
			s.cur = chunk
		}
		p = unsafe.Pointer(unsafe.SliceData(s.cur))
		s.cur = s.cur[n:]
	}
	s.stats.Allocs++
	s.stats.LiveBlocks++
	s.stats.LiveBytes += n
	return p
}

func (s *Simple) allocLarge(size int) unsafe.Pointer {
	n := roundPages(size)
	b, err := mmap(n)
	if err != nil {
		s.exhausted(errors.Wrapf(ErrExhausted, "mmap %d bytes: %v", n, err))
	}
	s.Lock()
	s.stats.Allocs++
	s.stats.LiveBlocks++
	s.stats.LiveBytes += n
	s.stats.LargeLive++
	s.stats.MappedBytes += n
	s.Unlock()
	return unsafe.Pointer(unsafe.SliceData(b))
}

func (s *Simple) exhausted(err error) {
	level.Error(s.logger).Log("msg", "allocation failed", "err", err)
	panic(err)
}

func (s *Simple) Dealloc(ptr unsafe.Pointer, size int) {
	if ptr == nil || size == 0 {
		return
	}
	if size > s.cfg.MaxSmall {
		s.deallocLarge(ptr, size)
		return
	}
	s.Lock()
	defer s.Unlock()
	cl := classOf(size)
	*(*unsafe.Pointer)(ptr) = s.free[cl]
	s.free[cl] = ptr
	s.stats.Deallocs++
	s.stats.LiveBlocks--
	s.stats.LiveBytes -= cl * Align
}

func (s *Simple) deallocLarge(ptr unsafe.Pointer, size int) {
	n := roundPages(size)
	if err := munmap(bytesOf(ptr, n)); err != nil {
		level.Error(s.logger).Log("msg", "munmap failed", "ptr", fmt.Sprintf("%p", ptr), "size", n, "err", err)
		panic(errors.Wrapf(err, "alloc: munmap %p of %d bytes", ptr, n))
	}
	s.Lock()
	s.stats.Deallocs++
	s.stats.LiveBlocks--
	s.stats.LiveBytes -= n
	s.stats.LargeLive--
	s.stats.MappedBytes -= n
	s.Unlock()
}

// Realloc returns a block of newSize bytes holding the first
// min(oldSize, newSize) bytes of ptr. The block stays in place when both
// sizes fall into the same small class.
func (s *Simple) Realloc(ptr unsafe.Pointer, oldSize, newSize int) unsafe.Pointer {
	if oldSize == newSize {
		return ptr
	}
	if oldSize > 0 && newSize > 0 && oldSize <= s.cfg.MaxSmall && newSize <= s.cfg.MaxSmall &&
		classOf(oldSize) == classOf(newSize) {
		return ptr
	}
	np := s.Alloc(newSize)
	if m := min(oldSize, newSize); m > 0 {
		copy(bytesOf(np, m), bytesOf(ptr, m))
	}
	s.Dealloc(ptr, oldSize)
	return np
}

func (s *Simple) Stats() Stats {
	s.Lock()
	defer s.Unlock()
	return s.stats
}
