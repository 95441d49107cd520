// Package region reserves a single contiguous, zero-filled memory extent
// from the operating system and releases it in one step.
package region

import (
	"fmt"
	"unsafe"

	"github.com/osmx/framealloc/assert"
)

// Region ...
type Region struct {
	data []byte
}

// Reserve obtains size bytes of anonymous, zero-filled memory. On failure no
// partial state is left behind.
func Reserve(size int) (*Region, error) {
	assert.Arg(size > 0, "region size must > 0")

	data, err := reserve(size)
	if err != nil {
		return nil, fmt.Errorf("region: reserve %d bytes: %w", size, err)
	}
	return &Region{data: data}, nil
}

// Bytes ...
func (r *Region) Bytes() []byte {
	assert.BugOn(r.data == nil, "use of released region")
	return r.data
}

// Base ...
func (r *Region) Base() unsafe.Pointer {
	assert.BugOn(r.data == nil, "use of released region")
	return unsafe.Pointer(&r.data[0])
}

// Len ...
func (r *Region) Len() int {
	return len(r.data)
}

// Release returns the whole extent to the operating system. Calling it
// twice is a bug.
func (r *Region) Release() error {
	assert.BugOn(r.data == nil, "region released twice")

	data := r.data
	r.data = nil

	if err := release(data); err != nil {
		return fmt.Errorf("region: release %d bytes: %w", len(data), err)
	}
	return nil
}
