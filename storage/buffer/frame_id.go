package buffer

// FrameID is the type for frame id, an index into the buffer pool
// manager's frame array.
type FrameID uint32

// InvalidFrameID is never a valid index; it is used internally by the
// replacer and the buffer pool manager's frame selection to signal "no
// frame" without resorting to a pointer.
const InvalidFrameID = FrameID(1<<32 - 1)
