//go:build !vecdebug

package counter

import "github.com/funny-falcon/vecreturn/registry"

func defaultTracker() registry.Tracker {
	return registry.Nop{}
}
