//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// readInput returns the file's contents and a closer to release them. In
// mmap mode the returned slice is a direct view of the kernel page cache
// (golang.org/x/sys/unix.Mmap), avoiding a copy for large inputs; the
// closer unmaps it.
func readInput(path string, useMmap bool) ([]byte, func(), error) {
	if !useMmap {
		data, err := os.ReadFile(path)
		return data, func() {}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if info.Size() == 0 {
		return nil, func() {}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() { unix.Munmap(data) }, nil
}
