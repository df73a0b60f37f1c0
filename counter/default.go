package counter

import (
	"github.com/funny-falcon/vecreturn/alloc"
	"github.com/funny-falcon/vecreturn/logging"
)

// Default backs the exported C entry points.
var Default = New(alloc.Global, defaultTracker(), logging.Default)
