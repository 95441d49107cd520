// Package framealloc hands out fixed-size memory frames from one
// pre-reserved region. Allocate and Release are lock-free: any number of
// goroutines may call them concurrently and coordination happens through a
// single compare-and-swap word, never a blocking lock.
package framealloc

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/osmx/framealloc/assert"
	"github.com/osmx/framealloc/diag"
	"github.com/osmx/framealloc/region"
)

const (
	cacheLineSize = uint32(unsafe.Sizeof(cpu.CacheLinePad{}))
	linkSize      = uint32(unsafe.Sizeof(frameLink{}))
)

var (
	// ErrExhausted reports an empty free list. The caller can retry, drop
	// the work, or apply backpressure; Allocate never waits for a frame.
	ErrExhausted = errors.New("framealloc: no frames available")
	// ErrOutOfMemory reports a failed region reservation at construction.
	ErrOutOfMemory = errors.New("framealloc: out of memory")
)

// Allocator ...
type Allocator struct {
	free freeList

	rgn       *region.Region
	frameSize uint32
	nrFrames  uint32

	log *diag.Logger
}

// Option ...
type Option func(*Allocator)

// WithDiag ...
func WithDiag(log *diag.Logger) Option {
	return func(a *Allocator) {
		a.log = log
	}
}

// New reserves nrFrames frames of frameBytes each, rounded up to cache-line
// granularity, and threads all of them onto the free list. On failure
// nothing is left reserved.
func New(frameBytes uint32, nrFrames uint32, opts ...Option) (*Allocator, error) {
	assert.Arg(frameBytes > 0, "frameBytes must > 0")
	assert.Arg(nrFrames > 0, "nrFrames must > 0")

	a := &Allocator{
		log: diag.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}

	frameSize := roundUpFrameSize(frameBytes)
	rgnSize := frameSize * uint64(nrFrames)
	if frameSize > math.MaxUint32 || rgnSize > math.MaxUint32 || rgnSize > uint64(math.MaxInt) {
		a.log.Warn("requested pool is not addressable",
			"frameBytes", frameBytes, "nrFrames", nrFrames)
		return nil, fmt.Errorf("%w: %d frames of %d bytes", ErrOutOfMemory, nrFrames, frameBytes)
	}

	rgn, err := region.Reserve(int(rgnSize))
	if err != nil {
		a.log.Warn("region reservation failed", "size", rgnSize, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	a.rgn = rgn
	a.frameSize = uint32(frameSize)
	a.nrFrames = nrFrames
	a.free.init(rgn.Base(), a.frameSize, nrFrames)

	a.log.Debug("frame allocator created",
		"nrFrames", nrFrames, "frameSize", a.frameSize)
	return a, nil
}

func roundUpFrameSize(frameBytes uint32) uint64 {
	size := (uint64(frameBytes) + uint64(cacheLineSize) - 1) &^ (uint64(cacheLineSize) - 1)
	if size < uint64(linkSize) {
		size = uint64(linkSize)
	}
	return size
}

// Allocate pops one frame off the free list and returns it as a slice over
// the region. An exhausted pool fails immediately with ErrExhausted.
func (a *Allocator) Allocate() ([]byte, error) {
	assert.BugOn(a.rgn == nil, "use of closed allocator")
	data := a.rgn.Bytes()

	off, ok := a.free.pop()
	if !ok {
		a.log.Debug("no more space in allocator")
		return nil, ErrExhausted
	}
	return data[off : off+a.frameSize : off+a.frameSize], nil
}

// Release pushes frame back onto the free list. The caller must not touch
// the frame afterward; releasing a frame that is still referenced elsewhere
// breaks the exclusivity of future Allocate results.
func (a *Allocator) Release(frame []byte) {
	a.free.push(a.offsetOf(frame))
}

func (a *Allocator) offsetOf(frame []byte) uint32 {
	assert.BugOn(a.rgn == nil, "use of closed allocator")
	assert.Arg(len(frame) > 0, "frame must not be empty")

	base := uintptr(a.rgn.Base())
	p := uintptr(unsafe.Pointer(&frame[0]))
	assert.BugOn(p < base || p >= base+uintptr(a.rgn.Len()),
		"frame does not belong to this allocator")

	off := p - base
	assert.BugOn(off%uintptr(a.frameSize) != 0,
		"frame is not aligned to a frame boundary")
	return uint32(off)
}

// FrameSize returns the effective frame size after rounding.
func (a *Allocator) FrameSize() uint32 {
	return a.frameSize
}

// NumFrames ...
func (a *Allocator) NumFrames() uint32 {
	return a.nrFrames
}

// Counts returns the diagnostic free and allocation counters. They are
// best-effort and eventually consistent, not load-bearing.
func (a *Allocator) Counts() (nrFrees uint64, nrAllocs uint64) {
	return a.free.counts()
}

// Close releases the whole region in one step. All concurrent Allocate and
// Release activity must have quiesced first; closing twice is a bug.
func (a *Allocator) Close() error {
	assert.BugOn(a.rgn == nil, "allocator closed twice")

	rgn := a.rgn
	a.rgn = nil
	return rgn.Release()
}
