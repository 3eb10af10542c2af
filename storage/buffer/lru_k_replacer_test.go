package buffer

import (
	"testing"

	"github.com/nodedb/bufpool/storage/buffer/buffertest"
)

func TestLRUKReplacerHistoryPhaseWinsOverSteady(t *testing.T) {
	// k=2. Access pattern on frames {A=0,B=1,C=2}: A,B,C,A,B.
	// C is still in history phase (1 access); A and B are steady (2 accesses).
	r := NewLRUKReplacer(7, 2)

	const a, b, c = FrameID(0), FrameID(1), FrameID(2)

	r.RecordAccess(a)
	r.RecordAccess(b)
	r.RecordAccess(c)
	r.RecordAccess(a)
	r.RecordAccess(b)

	r.SetEvictable(a, true)
	r.SetEvictable(b, true)
	r.SetEvictable(c, true)
	buffertest.Equals(t, 3, r.Size())

	victim, ok := r.Evict()
	buffertest.Equals(t, true, ok)
	buffertest.Equals(t, c, victim)
	buffertest.Equals(t, 2, r.Size())
}

func TestLRUKReplacerStayedPhaseEarliestMostRecent(t *testing.T) {
	// Continuation of the scenario above: with C removed, A's most-recent
	// access precedes B's, so A is evicted next.
	r := NewLRUKReplacer(7, 2)

	const a, b, c = FrameID(0), FrameID(1), FrameID(2)

	r.RecordAccess(a)
	r.RecordAccess(b)
	r.RecordAccess(c)
	r.RecordAccess(a)
	r.RecordAccess(b)

	r.SetEvictable(a, true)
	r.SetEvictable(b, true)
	r.SetEvictable(c, true)

	r.Remove(c)
	buffertest.Equals(t, 2, r.Size())

	victim, ok := r.Evict()
	buffertest.Equals(t, true, ok)
	buffertest.Equals(t, a, victim)

	victim, ok = r.Evict()
	buffertest.Equals(t, true, ok)
	buffertest.Equals(t, b, victim)

	_, ok = r.Evict()
	buffertest.Equals(t, false, ok)
}

func TestLRUKReplacerSetEvictableOnUnknownFrameIsIgnored(t *testing.T) {
	r := NewLRUKReplacer(7, 2)
	r.SetEvictable(FrameID(9), true)
	buffertest.Equals(t, 0, r.Size())
}

func TestLRUKReplacerRecordAccessOutOfRangeFrameIsIgnored(t *testing.T) {
	r := NewLRUKReplacer(2, 2)
	r.RecordAccess(FrameID(50))
	r.SetEvictable(FrameID(50), true)
	buffertest.Equals(t, 0, r.Size())
}
