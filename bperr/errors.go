// Package bperr centralizes the error kinds of the buffer pool core.
//
// The public BufferPoolManager API never returns these directly — it
// surfaces failure as nil/false/NONE per the manager's contract — but
// the manager's debug logging and its disk-I/O panic use them to name
// failures precisely.
package bperr

import "errors"

var (
	// ErrNoFrameAvailable: every frame is pinned; New/FetchPage have no
	// frame to give out.
	ErrNoFrameAvailable = errors.New("bufpool: no frame available")
	// ErrPageNotResident: Unpin/Flush referenced a page id not currently
	// mapped in the buffer pool.
	ErrPageNotResident = errors.New("bufpool: page not resident")
	// ErrInvalidUnpin: Unpin was called on a page whose pin count is
	// already zero.
	ErrInvalidUnpin = errors.New("bufpool: pin count already zero")
	// ErrPagePinned: Delete was called on a page with a positive pin
	// count.
	ErrPagePinned = errors.New("bufpool: page is pinned")
	// ErrDiskIO: the disk manager failed a read or write. Fatal at this
	// layer — the buffer pool manager panics wrapping this error.
	ErrDiskIO = errors.New("bufpool: disk I/O failure")
)
