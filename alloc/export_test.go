package alloc

// SetMmap replaces the mapping function until restore is called.
func SetMmap(f func(n int) ([]byte, error)) (restore func()) {
	old := mmap
	mmap = f
	return func() { mmap = old }
}

var PageSize = pageSize
