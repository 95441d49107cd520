//go:build !unix

package region

import "unsafe"

const reserveAlign = 64

// Heap fallback for platforms without anonymous mappings. The runtime hands
// out zeroed memory; alignment to reserveAlign is done by hand.
func reserve(size int) ([]byte, error) {
	buf := make([]byte, size+reserveAlign)

	shift := 0
	if rem := uintptr(unsafe.Pointer(&buf[0])) % reserveAlign; rem != 0 {
		shift = int(reserveAlign - rem)
	}
	return buf[shift : shift+size : shift+size], nil
}

func release(data []byte) error {
	return nil
}
