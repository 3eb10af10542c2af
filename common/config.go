// this code is from https://github.com/pzhzqt/goostub
// there is license and copyright notice in licenses/goostub dir

package common

const (
	// size of a data page in bytes
	PageSize = 4096
	// default capacity of an extendible hash table bucket
	DefaultBucketSize = 50
	// default K for the LRU-K replacer
	DefaultK = 2
)

// EnableDebug gates the buffer pool manager's debug logging, the goroutine
// stack dump before a disk-I/O panic, and DumpRecentEvictions.
var EnableDebug bool = false
