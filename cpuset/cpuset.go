// Package cpuset holds CPU core masks and builds them from configuration.
package cpuset

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/osmx/framealloc/config"
)

var (
	// ErrInvalid ...
	ErrInvalid = errors.New("cpuset: invalid core specification")
	// ErrNoEntry ...
	ErrNoEntry = errors.New("cpuset: configuration field not found")
	// ErrUnsupported ...
	ErrUnsupported = errors.New("cpuset: affinity not supported on this platform")
)

const wordBits = 64

// Mask is a growable bitset of CPU core IDs.
type Mask struct {
	words []uint64
}

// NewMask ...
func NewMask() *Mask {
	return &Mask{}
}

// Set ...
func (m *Mask) Set(core int) {
	word := core / wordBits
	for len(m.words) <= word {
		m.words = append(m.words, 0)
	}
	m.words[word] |= 1 << (core % wordBits)
}

// Clear ...
func (m *Mask) Clear(core int) {
	word := core / wordBits
	if word < len(m.words) {
		m.words[word] &^= 1 << (core % wordBits)
	}
}

// IsSet ...
func (m *Mask) IsSet(core int) bool {
	word := core / wordBits
	return word < len(m.words) && m.words[word]&(1<<(core%wordBits)) != 0
}

// Count ...
func (m *Mask) Count() int {
	total := 0
	for _, w := range m.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// Cores returns the set core IDs in ascending order.
func (m *Mask) Cores() []int {
	var cores []int
	for i, w := range m.words {
		for w != 0 {
			pos := bits.TrailingZeros64(w)
			cores = append(cores, i*wordBits+pos)
			w &^= 1 << pos
		}
	}
	return cores
}

// FromConfig builds a Mask from field in cfg. The field holds either a single
// non-negative core ID or a non-empty array of them; an array with any
// malformed or negative entry is rejected as a whole.
func FromConfig(cfg *config.Config, field string) (*Mask, error) {
	mask := NewMask()

	core, intErr := cfg.Int(field)
	if intErr == nil {
		if core < 0 {
			return nil, fmt.Errorf("%w: negative core ID %d", ErrInvalid, core)
		}
		mask.Set(core)
		return mask, nil
	}

	arr, arrErr := cfg.Array(field)
	if arrErr != nil {
		if errors.Is(intErr, config.ErrNoEntry) && errors.Is(arrErr, config.ErrNoEntry) {
			return nil, fmt.Errorf("%w: %q", ErrNoEntry, field)
		}
		return nil, fmt.Errorf("%w: %q is neither a core ID nor an array of core IDs",
			ErrInvalid, field)
	}

	if arr.Len() == 0 {
		return nil, fmt.Errorf("%w: %q is an empty core list", ErrInvalid, field)
	}

	numSet := 0
	failed := false
	for i := 0; i < arr.Len(); i++ {
		core, err := arr.IntAt(i)
		if err != nil || core < 0 {
			failed = true
			continue
		}
		mask.Set(core)
		numSet++
	}
	if failed || numSet == 0 {
		return nil, fmt.Errorf("%w: %q has malformed core entries", ErrInvalid, field)
	}

	return mask, nil
}
