//go:build vecdebug

package counter

import (
	"github.com/funny-falcon/vecreturn/logging"
	"github.com/funny-falcon/vecreturn/registry"
)

func defaultTracker() registry.Tracker {
	return registry.New(logging.Default)
}
