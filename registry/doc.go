// Package registry tracks exposed allocations so that misuse of an exposure
// record can be reported instead of corrupting memory.
//
// Nothing in a bare (address, length) pair proves where it came from. A
// Registry remembers every non-empty exposure by address and checks each
// reclaim against it: a second reclaim, a length that differs from the one
// exposed, or an address that was never exposed all become errors. It costs
// a map operation per call and is meant for tests and debug builds; release
// builds use Nop.
package registry
