//go:build !linux

package cpuset

// Apply installs the mask as the scheduling affinity of pid. Only supported
// on Linux.
func (m *Mask) Apply(pid int) error {
	return ErrUnsupported
}
