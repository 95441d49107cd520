package framealloc

import (
	"math"
	"sync/atomic"
	"unsafe"
)

const nullOffset uint32 = math.MaxUint32

// frameLink overlays the leading word of a free frame. Once the frame is
// handed to a caller the whole frame is theirs and the link is dead.
type frameLink struct {
	next uint32
}

// freeList is an intrusive stack of free frames threaded through the region.
// The head packs the top frame's byte offset (low half) with a version
// counter (high half) into one compare-and-swap word, so the swap observes
// every intervening push and pop even when the offset bits come back around
// to a previously seen value.
type freeList struct {
	head atomic.Uint64

	base unsafe.Pointer

	nrFrees  atomic.Uint64
	nrAllocs atomic.Uint64
}

func packHead(off uint32, counter uint32) uint64 {
	return uint64(counter)<<32 | uint64(off)
}

func unpackHead(head uint64) (off uint32, counter uint32) {
	return uint32(head), uint32(head >> 32)
}

func (f *freeList) linkAt(off uint32) *frameLink {
	return (*frameLink)(unsafe.Pointer(uintptr(f.base) + uintptr(off)))
}

// init threads every frame into the stack exactly once, lowest offset on top.
// Runs before the list is shared, so plain stores are enough.
func (f *freeList) init(base unsafe.Pointer, frameSize uint32, nrFrames uint32) {
	f.base = base

	top := nullOffset
	for i := nrFrames; i > 0; i-- {
		off := (i - 1) * frameSize
		f.linkAt(off).next = top
		top = off
	}
	f.head.Store(packHead(top, 0))
}

// push makes off the new top of the stack.
func (f *freeList) push(off uint32) {
	link := f.linkAt(off)
	for {
		old := f.head.Load()
		top, counter := unpackHead(old)

		atomic.StoreUint32(&link.next, top)
		if f.head.CompareAndSwap(old, packHead(off, counter+1)) {
			break
		}
	}
	f.nrFrees.Add(1)
}

// pop removes and returns the top frame's offset. It never waits: an empty
// stack reports ok=false immediately.
func (f *freeList) pop() (uint32, bool) {
	for {
		old := f.head.Load()
		top, counter := unpackHead(old)
		if top == nullOffset {
			return 0, false
		}

		// The link may belong to a frame another caller just popped and is
		// already writing into; the swap below fails in that case and the
		// stale value is discarded.
		next := atomic.LoadUint32(&f.linkAt(top).next)
		if f.head.CompareAndSwap(old, packHead(next, counter+1)) {
			f.nrAllocs.Add(1)
			return top, true
		}
	}
}

func (f *freeList) counts() (nrFrees uint64, nrAllocs uint64) {
	return f.nrFrees.Load(), f.nrAllocs.Load()
}

func (f *freeList) contentOfList() []uint32 {
	var result []uint32
	off, _ := unpackHead(f.head.Load())
	for off != nullOffset {
		result = append(result, off)
		off = f.linkAt(off).next
	}
	return result
}
