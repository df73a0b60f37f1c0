package counter_test

import (
	"testing"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funny-falcon/vecreturn/alloc"
	"github.com/funny-falcon/vecreturn/counter"
	"github.com/funny-falcon/vecreturn/registry"
)

func newCounter(t testing.TB) (*counter.Counter, *alloc.Simple, *registry.Registry) {
	al, err := alloc.NewSimple(alloc.DefaultConfig(), nil)
	require.NoError(t, err)
	reg := registry.New(nil)
	return counter.New(al, reg, nil), al, reg
}

func elems(p unsafe.Pointer, n uintptr) []uintptr {
	return unsafe.Slice((*uintptr)(p), n)
}

func TestGenerate(t *testing.T) {
	c, al, reg := newCounter(t)
	for _, tc := range []struct {
		start, count uintptr
	}{
		{0, 1},
		{0, 10},
		{5, 3},
		{1 << 20, 4097},
		{^uintptr(0) - 100, 50},
	} {
		r := c.Generate(tc.start, tc.count)
		require.Equal(t, int(tc.count), r.Len)
		got := r.Slice()
		for i := range got {
			if got[i] != tc.start+uintptr(i) {
				t.Fatalf("start %d count %d: elem %d is %d", tc.start, tc.count, i, got[i])
			}
		}
		c.Free(r.Ptr, uintptr(r.Len))
	}
	assert.Empty(t, reg.Outstanding())
	st := al.Stats()
	assert.Equal(t, 0, st.LiveBytes)
	assert.Equal(t, 0, st.LargeLive)
}

func TestGenerate_zero(t *testing.T) {
	c, al, _ := newCounter(t)
	var out *uintptr
	n := c.GenerateTo(7, 0, &out)
	require.Equal(t, uintptr(0), n)
	require.NotNil(t, out)
	c.Free(unsafe.Pointer(out), n)
	require.Equal(t, 0, al.Stats().Allocs)
}

func TestGenerateTo(t *testing.T) {
	c, al, reg := newCounter(t)
	var out unsafe.Pointer
	n := c.GenerateTo(100, 10, &out)
	require.Equal(t, uintptr(10), n)
	require.Equal(t, []uintptr{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}, elems(out, n))
	require.Len(t, reg.Outstanding(), 1)

	c.Free(out, n)
	require.Empty(t, reg.Outstanding())
	require.Equal(t, 0, al.Stats().LiveBytes)
}

func TestFree_nil(t *testing.T) {
	c, al, _ := newCounter(t)
	for _, n := range []uintptr{0, 1, 1 << 30, ^uintptr(0)} {
		require.NotPanics(t, func() { c.Free(nil, n) })
	}
	require.Equal(t, 0, al.Stats().Deallocs)
}

// Freeing twice is undefined without a registry. With one installed it is
// reported and the allocator is not touched.
func TestFree_double(t *testing.T) {
	c, al, _ := newCounter(t)
	r := c.Generate(0, 16)
	c.Free(r.Ptr, 16)
	before := al.Stats()

	requireCause(t, registry.ErrDoubleReclaim, func() { c.Free(r.Ptr, 16) })
	require.Equal(t, before, al.Stats())
}

func TestFree_wrongLength(t *testing.T) {
	c, al, reg := newCounter(t)
	r := c.Generate(0, 16)
	requireCause(t, registry.ErrLengthMismatch, func() { c.Free(r.Ptr, 15) })
	require.Len(t, reg.Outstanding(), 1)
	c.Free(r.Ptr, 16)
	require.Equal(t, 0, al.Stats().LiveBytes)
}

func TestFree_foreign(t *testing.T) {
	c, _, _ := newCounter(t)
	var x [4]uintptr
	requireCause(t, registry.ErrUnknownAddress, func() { c.Free(unsafe.Pointer(&x[0]), 4) })
}

func requireCause(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok)
		require.Equal(t, want, errors.Cause(err))
	}()
	f()
}

func TestGenerate_stress(t *testing.T) {
	if testing.Short() {
		t.Skip("short")
	}
	c, al, reg := newCounter(t)
	var base alloc.Stats
	for i := 0; i < 5; i++ {
		var out unsafe.Pointer
		n := c.GenerateTo(0, 1_000_000, &out)
		require.Equal(t, uintptr(1_000_000), n)
		e := elems(out, n)
		require.Equal(t, uintptr(0), e[0])
		require.Equal(t, uintptr(999_999), e[999_999])
		c.Free(out, n)

		st := al.Stats()
		require.Equal(t, 0, st.LiveBytes)
		require.Equal(t, 0, st.LargeLive)
		// Small chunks are kept for reuse, so mapped memory stops growing
		// after the first round.
		if i == 0 {
			base = st
		}
		require.Equal(t, base.MappedBytes, st.MappedBytes)
	}
	require.Empty(t, reg.Outstanding())
}

func TestDefault(t *testing.T) {
	var out *uintptr
	n := counter.GenerateTo(3, 4, &out)
	require.Equal(t, uintptr(4), n)
	require.Equal(t, []uintptr{3, 4, 5, 6}, elems(unsafe.Pointer(out), n))
	counter.Free(unsafe.Pointer(out), n)
	counter.Free(nil, 4)
}

func BenchmarkGenerate(b *testing.B) {
	c := counter.New(alloc.Global, nil, nil)
	for i := 0; i < b.N; i++ {
		r := c.Generate(0, 1000)
		c.Free(r.Ptr, uintptr(r.Len))
	}
}
