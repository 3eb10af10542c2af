package buffer

import (
	deadlock "github.com/sasha-s/go-deadlock"

	"github.com/puzpuzpuz/xsync/v3"
)

// lrukNode tracks one frame's access history. A node is in the history
// phase while len(history) < k (backward k-distance is infinite); once
// the kth access lands it transitions to the steady phase and keeps
// only the single most recent timestamp.
type lrukNode struct {
	history    []int64
	steady     bool
	mostRecent int64
	evictable  bool
}

// LRUKReplacer implements the LRU-K victim-selection policy: frames
// still in their history phase (fewer than k recorded accesses) are
// evicted ahead of any steady-phase frame, since a history-phase frame
// has infinite backward k-distance. Among history-phase candidates the
// victim is the one with the earliest oldest access (classical LRU);
// among steady-phase candidates it is the one with the earliest most
// recent access.
type LRUKReplacer struct {
	mu           deadlock.Mutex
	nodes        *xsync.MapOf[FrameID, *lrukNode]
	k            int
	clock        int64
	size         int
	replacerSize uint32
}

// NewLRUKReplacer returns a replacer tracking up to replacerSize frames
// with the given k.
func NewLRUKReplacer(replacerSize uint32, k int) *LRUKReplacer {
	return &LRUKReplacer{
		nodes:        xsync.NewMapOf[FrameID, *lrukNode](),
		k:            k,
		replacerSize: replacerSize,
	}
}

func (r *LRUKReplacer) tick() int64 {
	r.clock++
	return r.clock
}

// RecordAccess records that frameID was accessed now. A frame out of
// range is silently ignored.
func (r *LRUKReplacer) RecordAccess(frameID FrameID) {
	if uint32(frameID) >= r.replacerSize {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.tick()

	node, ok := r.nodes.Load(frameID)
	if !ok {
		node = &lrukNode{}
		r.nodes.Store(frameID, node)
	}

	if node.steady {
		node.mostRecent = now
		return
	}

	node.history = append(node.history, now)
	if len(node.history) >= r.k {
		node.steady = true
		node.mostRecent = now
		node.history = nil
	}
}

// SetEvictable marks frameID evictable or not. A frame that isn't
// tracked is ignored — in particular, a set-to-true on an unknown
// frame does not create tracking state.
func (r *LRUKReplacer) SetEvictable(frameID FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes.Load(frameID)
	if !ok {
		return
	}

	if node.evictable == evictable {
		return
	}
	node.evictable = evictable
	if evictable {
		r.size++
	} else {
		r.size--
	}
}

// Evict selects a victim frame among the evictable ones, removes its
// tracking state, and returns it. The second return value is false iff
// there is no evictable frame.
func (r *LRUKReplacer) Evict() (FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		haveHistoryVictim bool
		historyVictim     FrameID
		historyTimestamp  int64

		haveSteadyVictim bool
		steadyVictim     FrameID
		steadyTimestamp  int64
	)

	r.nodes.Range(func(frameID FrameID, node *lrukNode) bool {
		if !node.evictable {
			return true
		}

		if !node.steady {
			oldest := node.history[0]
			if !haveHistoryVictim || oldest < historyTimestamp ||
				(oldest == historyTimestamp && frameID < historyVictim) {
				haveHistoryVictim = true
				historyVictim = frameID
				historyTimestamp = oldest
			}
			return true
		}

		if !haveSteadyVictim || node.mostRecent < steadyTimestamp ||
			(node.mostRecent == steadyTimestamp && frameID < steadyVictim) {
			haveSteadyVictim = true
			steadyVictim = frameID
			steadyTimestamp = node.mostRecent
		}
		return true
	})

	var victim FrameID
	switch {
	case haveHistoryVictim:
		victim = historyVictim
	case haveSteadyVictim:
		victim = steadyVictim
	default:
		return InvalidFrameID, false
	}

	r.nodes.Delete(victim)
	r.size--
	return victim, true
}

// Remove unconditionally drops all tracking state for frameID. Callers
// must only remove evictable or untracked frames.
func (r *LRUKReplacer) Remove(frameID FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	node, ok := r.nodes.Load(frameID)
	if !ok {
		return
	}
	if node.evictable {
		r.size--
	}
	r.nodes.Delete(frameID)
}

// Size returns the number of currently evictable frames.
func (r *LRUKReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}
