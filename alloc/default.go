//go:build !malloc_cgo

package alloc

import "github.com/funny-falcon/vecreturn/logging"

func newDefault() Allocator {
	s, err := NewSimple(DefaultConfig(), logging.Default)
	if err != nil {
		panic(err)
	}
	return s
}
