package registry

import (
	"fmt"
	"sort"
	"sync/atomic"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/concurrent"
	"github.com/pkg/errors"
)

var (
	ErrDoubleReclaim  = errors.New("registry: address already reclaimed")
	ErrLengthMismatch = errors.New("registry: length differs from exposure")
	ErrUnknownAddress = errors.New("registry: address was never exposed")
)

type Tracker interface {
	// Exposed records that n elements at ptr now belong to a foreign caller.
	Exposed(ptr unsafe.Pointer, n int)
	// Reclaiming is called before ptr is freed. A non-nil error means the
	// memory must not be touched.
	Reclaiming(ptr unsafe.Pointer, n int) error
}

type Nop struct{}

func (Nop) Exposed(unsafe.Pointer, int) {}
func (Nop) Reclaiming(unsafe.Pointer, int) error { return nil }

type Record struct {
	Addr uintptr `json:"addr"`
	Len  int     `json:"len"`
	Seq  uint64  `json:"seq"`
}

type Registry struct {
	live      *concurrent.Map
	reclaimed *concurrent.Map
	seq       atomic.Uint64
	logger    log.Logger
}

func New(logger log.Logger) *Registry {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Registry{
		live:      concurrent.NewMap(),
		reclaimed: concurrent.NewMap(),
		logger:    logger,
	}
}

func (r *Registry) Exposed(ptr unsafe.Pointer, n int) {
	if ptr == nil || n == 0 {
		return
	}
	addr := uintptr(ptr)
	rec := Record{Addr: addr, Len: n, Seq: r.seq.Add(1)}
	r.reclaimed.Delete(addr)
	if prev, loaded := r.live.LoadOrStore(addr, rec); loaded {
		level.Error(r.logger).Log("msg", "address exposed twice", "addr", fmt.Sprintf("%#x", addr),
			"len", n, "prev_len", prev.(Record).Len)
		r.live.Store(addr, rec)
	}
}

func (r *Registry) Reclaiming(ptr unsafe.Pointer, n int) error {
	if ptr == nil {
		return nil
	}
	addr := uintptr(ptr)
	err := r.reclaim(addr, n)
	if err != nil {
		level.Error(r.logger).Log("msg", "invalid reclaim", "addr", fmt.Sprintf("%#x", addr), "len", n, "err", err)
	}
	return err
}

func (r *Registry) reclaim(addr uintptr, n int) error {
	v, ok := r.live.LoadAndDelete(addr)
	if !ok {
		switch {
		case n == 0:
			// Zero-length exposures are not tracked and free nothing.
			return nil
		case r.isReclaimed(addr):
			return errors.Wrapf(ErrDoubleReclaim, "%#x", addr)
		default:
			return errors.Wrapf(ErrUnknownAddress, "%#x", addr)
		}
	}
	rec := v.(Record)
	if rec.Len != n {
		r.live.Store(addr, rec)
		return errors.Wrapf(ErrLengthMismatch, "%#x exposed with %d elements, reclaimed with %d", addr, rec.Len, n)
	}
	r.reclaimed.Store(addr, rec)
	return nil
}

func (r *Registry) isReclaimed(addr uintptr) bool {
	_, ok := r.reclaimed.Load(addr)
	return ok
}

// Outstanding lists exposures that have not been reclaimed, oldest first.
func (r *Registry) Outstanding() []Record {
	var recs []Record
	r.live.Range(func(_, v interface{}) bool {
		recs = append(recs, v.(Record))
		return true
	})
	sort.Slice(recs, func(i, j int) bool { return recs[i].Seq < recs[j].Seq })
	return recs
}

// Report renders Outstanding as JSON.
func (r *Registry) Report() ([]byte, error) {
	recs := r.Outstanding()
	if recs == nil {
		recs = []Record{}
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(recs)
}
