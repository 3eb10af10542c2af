// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package frame

import (
	"sync/atomic"

	"github.com/nodedb/bufpool/common"
	"github.com/nodedb/bufpool/types"
)

// Frame holds one resident page's bytes plus the bookkeeping the buffer
// pool manager needs: the resident page id, a pin count, and a dirty bit.
// The manager creates a new Frame each time a page is brought into a pool
// slot and drops it when the page leaves; an empty slot holds nil rather
// than a Frame carrying types.InvalidPageID.
type Frame struct {
	id       types.PageID
	pinCount int32
	isDirty  bool
	data     *[common.PageSize]byte
}

// New wraps data read from disk as a resident, pinned frame.
func New(id types.PageID, data *[common.PageSize]byte) *Frame {
	return &Frame{id: id, pinCount: 1, isDirty: false, data: data}
}

// NewEmpty allocates a zeroed, pinned frame for a freshly-allocated page.
func NewEmpty(id types.PageID) *Frame {
	return &Frame{id: id, pinCount: 1, isDirty: false, data: &[common.PageSize]byte{}}
}

// IncPinCount increments the pin count.
func (f *Frame) IncPinCount() {
	atomic.AddInt32(&f.pinCount, 1)
}

// DecPinCount decrements the pin count. It is a usage error to call this
// when PinCount() is already zero; callers (the buffer pool manager) are
// expected to have checked before calling.
func (f *Frame) DecPinCount() {
	atomic.AddInt32(&f.pinCount, -1)
}

// PinCount returns the pin count.
func (f *Frame) PinCount() int32 {
	return atomic.LoadInt32(&f.pinCount)
}

// ID returns the resident page id.
func (f *Frame) ID() types.PageID {
	return f.id
}

// Data returns the frame's raw byte buffer.
func (f *Frame) Data() *[common.PageSize]byte {
	return f.data
}

// Copy copies data into the frame's buffer at offset.
func (f *Frame) Copy(offset uint32, data []byte) {
	copy(f.data[offset:], data)
}

// SetIsDirty sets the dirty bit.
func (f *Frame) SetIsDirty(isDirty bool) {
	f.isDirty = isDirty
}

// IsDirty reports the dirty bit.
func (f *Frame) IsDirty() bool {
	return f.isDirty
}
