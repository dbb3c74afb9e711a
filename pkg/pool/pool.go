// Package pool provides pooled copy buffers and the block-wise copy loops built
// on them.
//
// sync.Pool caches allocated but unused buffers for reuse, relieving pressure
// on the garbage collector. Items in the pool may be dropped at any garbage
// collection, so it holds only short-lived scratch space.
package pool
