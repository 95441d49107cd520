//go:build unix

package region

import "golang.org/x/sys/unix"

func reserve(size int) ([]byte, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	return unix.Mmap(-1, 0, size, prot, flags)
}

func release(data []byte) error {
	return unix.Munmap(data)
}
