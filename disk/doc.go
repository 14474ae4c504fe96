// Package disk provides sector storage for emulated floppy drives and
// the interception glue that gives the bridge first dibs on every
// access.
//
// Storage backends implement the [Storage] interface over 512-byte
// sectors, each carrying a 12-byte tag area as classic Mac floppies do:
//
//   - [MemoryImage] - RAM-backed image
//   - [FileImage] - image file on disk (tags held in memory)
//
// An [Interceptor] owns a set of drives and a
// [github.com/ardnew/softfloppy/bridge.Bridge]. Every sector access is
// offered to the bridge first; only unclassified accesses reach real
// storage. The interceptor serializes classification with a single
// mutex, which the bridge requires of multi-threaded callers.
package disk
