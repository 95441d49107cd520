//go:build linux

package cpuset

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Apply installs the mask as the scheduling affinity of pid. A pid of 0
// means the calling thread.
func (m *Mask) Apply(pid int) error {
	var set unix.CPUSet
	for _, core := range m.Cores() {
		set.Set(core)
	}
	if err := unix.SchedSetaffinity(pid, &set); err != nil {
		return fmt.Errorf("cpuset: apply affinity: %w", err)
	}
	return nil
}
