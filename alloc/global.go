package alloc

// Global is the process-wide allocator used by the exported entry points.
var Global = newDefault()
